// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ik5/peaks/audio"
)

// DefaultRegistry returns a registry holding every decoder in this package,
// keyed by the usual file extension.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("aiff", AIFF{})
	reg.Register("mp3", MP3{})
	reg.Register("ogg", Vorbis{})
	reg.Register("wav", WAV{})

	return reg
}

// Detect sniffs the head of r and decodes it with the matching decoder.
func Detect(reg *audio.Registry, r io.Reader) (audio.Source, string, error) {
	br := bufio.NewReader(r)

	header, err := br.Peek(audio.SniffLen)
	if err != nil && err != io.EOF {
		return nil, "", fmt.Errorf("reading media header: %w", err)
	}

	format, dec, ok := reg.Detect(header)
	if !ok {
		return nil, "", ErrUnknownFormat
	}

	src, err := dec.Decode(br)
	if err != nil {
		return nil, format, fmt.Errorf("decoding %s: %w", format, err)
	}

	return src, format, nil
}

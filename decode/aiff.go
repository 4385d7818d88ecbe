// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"io"

	"github.com/go-audio/aiff"
	"github.com/ik5/peaks/audio"
)

// AIFF decodes big-endian PCM AIFF and uncompressed AIFF-C.
type AIFF struct{}

func (AIFF) Sniff(header []byte) bool {
	if len(header) < 12 || !bytes.Equal(header[:4], []byte("FORM")) {
		return false
	}

	kind := header[8:12]
	return bytes.Equal(kind, []byte("AIFF")) || bytes.Equal(kind, []byte("AIFC"))
}

func (AIFF) Decode(r io.Reader) (audio.Source, error) {
	rs, err := seekable(r)
	if err != nil {
		return nil, err
	}

	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAIFF
	}
	dec.ReadInfo()

	return newPCMSource(dec, int(dec.BitDepth))
}

// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/ik5/peaks/audio"
	"github.com/jfreymuth/oggvorbis"
)

// oggReader is the part of oggvorbis.Reader we rely on.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type vorbisSource struct {
	dec oggReader
}

func (s *vorbisSource) SampleRate() int { return s.dec.SampleRate() }
func (s *vorbisSource) Channels() int   { return s.dec.Channels() }
func (s *vorbisSource) Close() error    { return nil }

// ReadSamples reads whole frames only; dst shorter than one frame reads nothing.
func (s *vorbisSource) ReadSamples(dst []float32) (int, error) {
	whole := len(dst) - len(dst)%s.dec.Channels()
	if whole == 0 {
		return 0, nil
	}

	return s.dec.Read(dst[:whole])
}

// Vorbis decodes Ogg Vorbis.
type Vorbis struct{}

func (Vorbis) Sniff(header []byte) bool {
	return bytes.HasPrefix(header, []byte("OggS"))
}

func (Vorbis) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if dec.Channels() <= 0 {
		return nil, audio.ErrNoChannels
	}

	return &vorbisSource{dec: dec}, nil
}

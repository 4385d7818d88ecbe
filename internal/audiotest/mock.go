// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides synthetic audio sources for tests.
package audiotest

import (
	"io"
	"math"
)

// Source generates interleaved samples from a function of (frame, channel).
// It satisfies audio.Source without importing it.
type Source struct {
	rate    int
	chans   int
	frames  int
	pos     int
	closed  bool
	sampleF func(frame, channel int) float32
}

func New(rate, channels, frames int, f func(frame, channel int) float32) *Source {
	return &Source{rate: rate, chans: channels, frames: frames, sampleF: f}
}

// Silence yields zeros.
func Silence(rate, channels, frames int) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return 0 })
}

// Constant yields the same value on every channel.
func Constant(rate, channels, frames int, v float32) *Source {
	return New(rate, channels, frames, func(int, int) float32 { return v })
}

// Sine yields a full-scale sine wave of freq Hz.
func Sine(rate, channels, frames int, freq float64) *Source {
	return New(rate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	})
}

// Values yields mono samples verbatim.
func Values(rate int, v ...float32) *Source {
	return New(rate, 1, len(v), func(frame, _ int) float32 { return v[frame] })
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.chans }
func (s *Source) Closed() bool    { return s.closed }

func (s *Source) Close() error {
	s.closed = true
	return nil
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if s.pos >= s.frames {
		return 0, io.EOF
	}

	n := min(len(dst)/s.chans, s.frames-s.pos)
	for f := range n {
		for ch := range s.chans {
			dst[f*s.chans+ch] = s.sampleF(s.pos+f, ch)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.chans, io.EOF
	}

	return n * s.chans, nil
}

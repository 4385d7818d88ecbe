// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"io"

	"github.com/ik5/peaks/audio"
	"github.com/ik5/peaks/internal/pcm"
)

const maxStalls = 100

// BuildOptions controls local waveform computation.
type BuildOptions struct {
	// SamplesPerPixel is the output resolution. Required.
	SamplesPerPixel int
	// Bits is 8 or 16; zero means 8.
	Bits int
	// SplitChannels keeps each channel; otherwise the source is mixed to mono.
	SplitChannels bool
	// BufferSize is the read size in frames; zero means 4096.
	BufferSize int
}

// Build computes a waveform dataset by scanning src once. It does not close src.
func Build(src audio.Source, opts BuildOptions) (*Data, error) {
	if opts.SamplesPerPixel <= 0 {
		return nil, ErrInvalidScale
	}

	bits := opts.Bits
	if bits == 0 {
		bits = 8
	}
	if bits != 8 && bits != 16 {
		return nil, fmt.Errorf("%w: bits %d", ErrInvalidFormat, bits)
	}

	bufFrames := opts.BufferSize
	if bufFrames <= 0 {
		bufFrames = 4096
	}

	if !opts.SplitChannels && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}

	channels := src.Channels()
	if channels <= 0 {
		return nil, audio.ErrNoChannels
	}

	d := &Data{
		Version:         2,
		Channels:        channels,
		SampleRate:      src.SampleRate(),
		SamplesPerPixel: opts.SamplesPerPixel,
		Bits:            bits,
		Samples:         []int16{},
	}

	lo := make([]float32, channels)
	hi := make([]float32, channels)
	reset := func() {
		for ch := range channels {
			lo[ch], hi[ch] = 1, -1
		}
	}
	flush := func() {
		for ch := range channels {
			d.Samples = append(d.Samples, pcm.Quantize(lo[ch], bits), pcm.Quantize(hi[ch], bits))
		}
		d.Length++
		reset()
	}

	reset()
	inPixel, stalls := 0, 0
	buf := make([]float32, bufFrames*channels)

	for {
		n, err := src.ReadSamples(buf)
		for f := range n / channels {
			for ch := range channels {
				v := buf[f*channels+ch]
				lo[ch] = min(lo[ch], v)
				hi[ch] = max(hi[ch], v)
			}

			inPixel++
			if inPixel == opts.SamplesPerPixel {
				flush()
				inPixel = 0
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading audio: %w", err)
		}

		if n == 0 {
			if stalls++; stalls > maxStalls {
				return nil, io.ErrNoProgress
			}
			continue
		}
		stalls = 0
	}

	if inPixel > 0 {
		flush()
	}

	return d, nil
}

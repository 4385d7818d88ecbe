// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"fmt"
	"time"
)

// Data is an immutable waveform dataset.
type Data struct {
	Version         int
	Channels        int
	SampleRate      int
	SamplesPerPixel int
	Bits            int
	Length          int

	// Samples holds min,max pairs, channels interleaved per pixel:
	// [p0c0min p0c0max p0c1min p0c1max p1c0min ...].
	Samples []int16
}

// maxSamples bounds the sample count, and so the allocation, a header may
// claim.
const maxSamples = 1 << 28

// sampleCount returns length*channels*2, or false when either factor is out
// of range or the product exceeds maxSamples.
func sampleCount(length, channels int) (int, bool) {
	if length < 0 || channels < 1 || channels > maxSamples/2 || length > maxSamples/(channels*2) {
		return 0, false
	}

	return length * channels * 2, true
}

// validate checks the header fields against the sample slice.
func (d *Data) validate() error {
	switch {
	case d.Version != 1 && d.Version != 2:
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	case d.Bits != 8 && d.Bits != 16:
		return fmt.Errorf("%w: bits %d", ErrInvalidFormat, d.Bits)
	case d.Channels < 1:
		return fmt.Errorf("%w: channels %d", ErrInvalidFormat, d.Channels)
	case d.Version == 1 && d.Channels != 1:
		return fmt.Errorf("%w: version 1 carries a single channel", ErrInvalidFormat)
	case d.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidFormat, d.SampleRate)
	case d.SamplesPerPixel <= 0:
		return fmt.Errorf("%w: samples per pixel %d", ErrInvalidFormat, d.SamplesPerPixel)
	case d.Length < 0:
		return fmt.Errorf("%w: length %d", ErrInvalidFormat, d.Length)
	}

	count, ok := sampleCount(d.Length, d.Channels)
	switch {
	case !ok:
		return fmt.Errorf("%w: length %d with %d channels exceeds limit", ErrInvalidFormat, d.Length, d.Channels)
	case len(d.Samples) != count:
		return fmt.Errorf("%w: %d samples for length %d and %d channels",
			ErrInvalidFormat, len(d.Samples), d.Length, d.Channels)
	}

	return nil
}

// PixelsPerSecond is the horizontal density at this resolution.
func (d *Data) PixelsPerSecond() float64 {
	return float64(d.SampleRate) / float64(d.SamplesPerPixel)
}

// Duration covered by the dataset.
func (d *Data) Duration() time.Duration {
	seconds := float64(d.Length) * float64(d.SamplesPerPixel) / float64(d.SampleRate)
	return time.Duration(seconds * float64(time.Second))
}

// Min returns the minimum of pixel i on channel ch.
func (d *Data) Min(ch, i int) int16 { return d.Samples[(i*d.Channels+ch)*2] }

// Max returns the maximum of pixel i on channel ch.
func (d *Data) Max(ch, i int) int16 { return d.Samples[(i*d.Channels+ch)*2+1] }

// Channel copies the min and max series of channel ch.
func (d *Data) Channel(ch int) (mins, maxs []int16) {
	mins = make([]int16, d.Length)
	maxs = make([]int16, d.Length)
	for i := range d.Length {
		mins[i] = d.Min(ch, i)
		maxs[i] = d.Max(ch, i)
	}

	return mins, maxs
}

// PixelAt maps a playback position to a pixel index, clamped to the dataset.
func (d *Data) PixelAt(pos time.Duration) int {
	px := int(pos.Seconds() * d.PixelsPerSecond())

	return max(0, min(px, d.Length-1))
}

// Resample returns a view of d at samplesPerPixel, which must not be finer
// than d itself. Every output pixel aggregates the input pixels it overlaps.
func (d *Data) Resample(samplesPerPixel int) (*Data, error) {
	switch {
	case samplesPerPixel <= 0:
		return nil, ErrInvalidScale
	case samplesPerPixel < d.SamplesPerPixel:
		return nil, fmt.Errorf("%w: want %d, have %d",
			ErrResolutionUnavailable, samplesPerPixel, d.SamplesPerPixel)
	case samplesPerPixel == d.SamplesPerPixel:
		return d, nil
	}

	totalSamples := d.Length * d.SamplesPerPixel
	length := (totalSamples + samplesPerPixel - 1) / samplesPerPixel

	out := &Data{
		Version:         d.Version,
		Channels:        d.Channels,
		SampleRate:      d.SampleRate,
		SamplesPerPixel: samplesPerPixel,
		Bits:            d.Bits,
		Length:          length,
		Samples:         make([]int16, length*d.Channels*2),
	}

	for o := range length {
		first := o * samplesPerPixel / d.SamplesPerPixel
		last := min(((o+1)*samplesPerPixel-1)/d.SamplesPerPixel, d.Length-1)

		for ch := range d.Channels {
			lo, hi := d.Min(ch, first), d.Max(ch, first)
			for i := first + 1; i <= last; i++ {
				lo = min(lo, d.Min(ch, i))
				hi = max(hi, d.Max(ch, i))
			}
			out.Samples[(o*d.Channels+ch)*2] = lo
			out.Samples[(o*d.Channels+ch)*2+1] = hi
		}
	}

	return out, nil
}

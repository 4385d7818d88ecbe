// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"errors"
	"testing"

	"github.com/ik5/peaks/internal/audiotest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Mono8Bit(t *testing.T) {
	t.Parallel()

	src := audiotest.Values(8000, 0.5, -0.5, 1, 0, -1)

	d, err := Build(src, BuildOptions{SamplesPerPixel: 2, BufferSize: 2})
	require.NoError(t, err)

	assert.Equal(t, 2, d.Version)
	assert.Equal(t, 8, d.Bits)
	assert.Equal(t, 3, d.Length)
	assert.Equal(t, []int16{-63, 63, 0, 127, -127, -127}, d.Samples)
	assert.NoError(t, d.validate())
}

func TestBuild_MixesStereoByDefault(t *testing.T) {
	t.Parallel()

	src := audiotest.New(8000, 2, 4, func(_ int, ch int) float32 {
		if ch == 0 {
			return 1
		}
		return 0
	})

	d, err := Build(src, BuildOptions{SamplesPerPixel: 4, Bits: 16})
	require.NoError(t, err)

	assert.Equal(t, 1, d.Channels)
	assert.Equal(t, []int16{16383, 16383}, d.Samples)
}

func TestBuild_SplitChannels(t *testing.T) {
	t.Parallel()

	src := audiotest.New(8000, 2, 4, func(_ int, ch int) float32 {
		return float32(ch) - 0.5
	})

	d, err := Build(src, BuildOptions{SamplesPerPixel: 2, SplitChannels: true, Bits: 8})
	require.NoError(t, err)

	assert.Equal(t, 2, d.Channels)
	assert.Equal(t, 2, d.Length)
	assert.Equal(t, int16(-63), d.Max(0, 0))
	assert.Equal(t, int16(63), d.Min(1, 1))
}

func TestBuild_SineCoversFullScale(t *testing.T) {
	t.Parallel()

	d, err := Build(audiotest.Sine(8000, 1, 8000, 100), BuildOptions{SamplesPerPixel: 800})
	require.NoError(t, err)

	assert.Equal(t, 10, d.Length)
	for i := range d.Length {
		assert.LessOrEqual(t, d.Min(0, i), int16(-120))
		assert.GreaterOrEqual(t, d.Max(0, i), int16(120))
	}
}

func TestBuild_Errors(t *testing.T) {
	t.Parallel()

	_, err := Build(audiotest.Silence(8000, 1, 10), BuildOptions{})
	assert.ErrorIs(t, err, ErrInvalidScale)

	_, err = Build(audiotest.Silence(8000, 1, 10), BuildOptions{SamplesPerPixel: 2, Bits: 24})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	boom := errors.New("boom")
	_, err = Build(failingSource{err: boom}, BuildOptions{SamplesPerPixel: 2})
	assert.ErrorIs(t, err, boom)
}

type failingSource struct{ err error }

func (failingSource) SampleRate() int                     { return 8000 }
func (failingSource) Channels() int                       { return 1 }
func (failingSource) Close() error                        { return nil }
func (f failingSource) ReadSamples([]float32) (int, error) { return 0, f.err }

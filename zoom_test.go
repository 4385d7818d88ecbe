// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/peaks/dataset"
	"github.com/ik5/peaks/media"
)

func readyPeaks(t *testing.T, datasetScale int) *Peaks {
	t.Helper()

	srv := newTestServer(t, datasetScale)

	p := initPeaks(t, Options{
		Container:    container,
		MediaElement: media.File("sample.mp3"),
		DataURI:      dataset.URI{JSON: srv.dataURL("sample.json")},
		HTTPClient:   srv.Client(),
		Keyboard:     true,
		Height:       240,
	})
	waitReady(t, p)

	return p
}

func TestZoom_Initial(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 512)

	assert.Equal(t, 0, p.Zoom.Index())
	assert.Equal(t, 512, p.Zoom.Zoom())
	assert.True(t, p.Options().Keyboard)
}

func TestZoom_SetZoomDispatchesSamplesPerPixel(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 512)

	var got []int
	p.OnZoomLevelChanged(func(spp int) { got = append(got, spp) })

	p.Zoom.SetZoom(1)

	assert.Equal(t, 1, p.Zoom.Index())
	assert.Equal(t, []int{1024}, got)
}

func TestZoom_NegativeIndexIsClamped(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 512)

	p.Zoom.SetZoom(-1)

	assert.Equal(t, 0, p.Zoom.Index())
}

func TestZoom_ReassignedLevelsClampPastEnd(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 512)

	require.NoError(t, p.SetZoomLevels([]int{512, 1024}))
	p.Zoom.SetZoom(2)

	assert.Equal(t, 1, p.Zoom.Index())
	assert.Equal(t, 1024, p.Zoom.Zoom())
}

func TestZoom_OutAndIn(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 512)
	levels := p.Zoom.Levels()

	var got []int
	p.OnZoomLevelChanged(func(spp int) { got = append(got, spp) })

	p.Zoom.ZoomOut()
	p.Zoom.ZoomIn()

	assert.Equal(t, []int{levels[1], levels[0]}, got)
}

func TestView_FollowsZoom(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 512)

	view, err := p.View()
	require.NoError(t, err)
	assert.Equal(t, 512, view.SamplesPerPixel)
	assert.Equal(t, 8, view.Length)

	p.Zoom.SetZoom(3)

	view, err = p.View()
	require.NoError(t, err)
	assert.Equal(t, 4096, view.SamplesPerPixel)
	assert.Equal(t, 1, view.Length)
	assert.Equal(t, int16(-8), view.Min(0, 0))
	assert.Equal(t, int16(8), view.Max(0, 0))
}

func TestView_InsufficientDataFallsBack(t *testing.T) {
	t.Parallel()

	p := readyPeaks(t, 2048)

	assert.NotPanics(t, func() { p.Zoom.SetZoom(0) })

	view, err := p.View()
	require.NoError(t, err)
	assert.Equal(t, 2048, view.SamplesPerPixel)
}

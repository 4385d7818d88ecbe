// SPDX-License-Identifier: EPL-2.0

// Package peaks is the view-independent core of an audio waveform viewer.
//
// It resolves the waveform dataset for a media element, either from
// precomputed audiowaveform data served over HTTP or by decoding the media
// locally, and tracks the zoom level the waveform is shown at.
//
// # Quick Start
//
//	p, err := peaks.Init(ctx, peaks.Options{
//	    Container:    peaks.Viewport{W: 1000, H: 200},
//	    MediaElement: media.File("clip.mp3"),
//	    DataURI:      dataset.URI{ArrayBuffer: "https://example.com/clip.dat"},
//	})
//	if err != nil {
//	    // configuration errors are reported here, before any I/O
//	}
//
//	p.OnDatasetReady(func(res *dataset.Result) { ... })
//	p.OnZoomLevelChanged(func(samplesPerPixel int) { ... })
//	p.OnError(func(err error) { ... })
//
//	p.Zoom.ZoomOut()
//
// # Data Sources
//
// DataURI picks one source, in this order:
//   - ArrayBuffer: binary .dat file
//   - JSON: JSON document
//   - URL: fetched with DefaultDataURIFormat (JSON unless set)
//   - none: computed from MediaElement with the decoders in package decode
//
// # Notifications
//
// Dataset and error observers registered after resolution has finished are
// called immediately with the outcome, so registration order relative to
// Init does not matter. Zoom observers fire on every effective level change.
//
// # Zoom
//
// Zoom navigation never fails. Indexes are clamped, and View falls back to
// the finest resolution the dataset holds when a level is finer than the data.
package peaks

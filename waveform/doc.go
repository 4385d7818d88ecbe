// SPDX-License-Identifier: EPL-2.0

// Package waveform holds precomputed waveform datasets: per-pixel minimum and
// maximum amplitudes at a fixed samples-per-pixel resolution.
//
// Two encodings are supported, both produced by audiowaveform and consumed by
// waveform-data.js: a JSON document and a little-endian binary (".dat") file.
//
// # Binary Layout
//
//	int32   version            1 or 2
//	uint32  flags              bit 0 set: 8-bit samples, else 16-bit
//	int32   sample_rate
//	int32   samples_per_pixel
//	uint32  length             number of pixels
//	int32   channels           version 2 only
//	[]int8 | []int16           min,max pairs, channels interleaved per pixel
//
// # Zoom
//
// A dataset can only be viewed at its own resolution or coarser. Resample
// derives a coarser dataset; asking for a finer one returns
// ErrResolutionUnavailable.
package waveform

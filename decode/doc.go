// SPDX-License-Identifier: EPL-2.0

// Package decode turns encoded media (WAV, AIFF, MP3, Ogg Vorbis) into
// audio.Source streams for local waveform computation.
//
// Every decoder implements audio.Sniffer, so a stream of unknown type can be
// matched against DefaultRegistry:
//
//	reg := decode.DefaultRegistry()
//	src, format, err := decode.Detect(reg, file)
//
// WAV and AIFF are read through github.com/go-audio and need random access;
// plain readers are buffered in memory first.
package decode

// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-audio primitives the waveform builder
// consumes.
//
// # Source Interface
//
// Every decoder yields a Source of interleaved float32 samples in [-1.0, 1.0]:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    Close() error
//	}
//
// ReadSamples returns io.EOF once the stream is exhausted. It may return the
// final samples together with io.EOF, so callers consume n before checking err.
//
// # Channel Mixing
//
// MonoMixer folds a multi-channel Source into one channel by averaging:
//
//	mono := audio.NewMonoMixer(source)
//	buf := make([]float32, 4096)
//	n, err := mono.ReadSamples(buf)
//
// # Format Registry
//
// The Registry maps format keys to decoders. Decoders that implement Sniffer
// can be found from the first SniffLen bytes of a stream:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", decode.WAV{})
//	format, decoder, ok := registry.Detect(header)
package audio

// SPDX-License-Identifier: EPL-2.0

// Package pcm converts normalised float samples to fixed-point amplitudes.
package pcm

// Quantize scales x in [-1, 1] to a signed integer of the given bit depth
// (8 or 16). Out-of-range input is clamped.
func Quantize(x float32, bits int) int16 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Positive max (127 / 32767) keeps +1.0 from overflowing.
	if bits == 8 {
		return int16(x * 127)
	}

	return int16(x * 32767)
}

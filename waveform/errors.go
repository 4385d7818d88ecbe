// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var (
	ErrInvalidFormat         = errors.New("invalid waveform data")
	ErrUnsupportedVersion    = errors.New("unsupported waveform data version")
	ErrResolutionUnavailable = errors.New("resolution finer than the waveform data")
	ErrInvalidScale          = errors.New("samples per pixel must be positive")
)

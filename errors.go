// SPDX-License-Identifier: EPL-2.0

package peaks

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("peaks: configuration error")

	ErrMissingMediaElement = fmt.Errorf("%w: please provide an audio element", ErrConfiguration)
	ErrInvalidMediaElement = fmt.Errorf("%w: mediaElement must be an audio or video element", ErrConfiguration)
	ErrMissingContainer    = fmt.Errorf("%w: please provide a container object", ErrConfiguration)
	ErrContainerLayout     = fmt.Errorf("%w: container must have a non-zero width and height", ErrConfiguration)

	ErrNotReady = errors.New("peaks: waveform data not ready")
)

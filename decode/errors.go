// SPDX-License-Identifier: EPL-2.0

package decode

import "errors"

var (
	ErrNotWAV              = errors.New("not a WAV file")
	ErrNotAIFF             = errors.New("not an AIFF file")
	ErrUnsupportedEncoding = errors.New("only linear PCM is supported")
	ErrUnsupportedBitDepth = errors.New("unsupported bit depth")
	ErrUnknownFormat       = errors.New("unrecognised media format")
)

// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"errors"
	"fmt"
)

var (
	ErrCapabilityUnavailable = errors.New("capability unavailable")
	ErrFetch                 = errors.New("waveform data fetch failed")
	ErrResolutionInFlight    = errors.New("a resolution is already in progress")
	ErrUnknownFormat         = errors.New("unknown data format")
	ErrNoMediaElement        = errors.New("no media element to compute waveform data from")
)

// FetchError describes a failed GET of remote waveform data. It matches ErrFetch.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}

	return fmt.Sprintf("fetching %s: HTTP %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetch }

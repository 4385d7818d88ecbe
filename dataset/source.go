// SPDX-License-Identifier: EPL-2.0

package dataset

import (
	"fmt"
	"strings"
)

// Format is the encoding of remote waveform data.
type Format string

const (
	FormatJSON   Format = "json"
	FormatBinary Format = "arraybuffer"
)

// ParseFormat accepts "json" and "arraybuffer" (or its aliases "binary" and
// "dat"). The empty string is JSON.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "arraybuffer", "binary", "dat":
		return FormatBinary, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ContentType is the response type served for f on the legacy wire contract.
func (f Format) ContentType() string {
	if f == FormatBinary {
		return "text/plain"
	}

	return "application/json"
}

// Source selects where waveform data comes from. It is one of Binary, JSON,
// BareURL or Local.
type Source interface {
	fmt.Stringer
	isSource()
}

// Binary is a remote audiowaveform .dat file.
type Binary struct{ URL string }

// JSON is a remote audiowaveform JSON document.
type JSON struct{ URL string }

// BareURL is a remote file whose format comes from the resolver's default.
type BareURL struct{ URL string }

// Local computes waveform data from the media element itself.
type Local struct{}

func (Binary) isSource()  {}
func (JSON) isSource()    {}
func (BareURL) isSource() {}
func (Local) isSource()   {}

func (s Binary) String() string  { return "arraybuffer:" + s.URL }
func (s JSON) String() string    { return "json:" + s.URL }
func (s BareURL) String() string { return "url:" + s.URL }
func (Local) String() string     { return "local" }

// URI is the configuration shape of a data source: either a bare URL or a
// set of per-format candidates.
type URI struct {
	URL         string `toml:"url" yaml:"url"`
	ArrayBuffer string `toml:"arraybuffer" yaml:"arraybuffer"`
	JSON        string `toml:"json" yaml:"json"`
}

// Source picks exactly one candidate: ArrayBuffer, then JSON, then the bare
// URL, and Local when none is set.
func (u URI) Source() Source {
	switch {
	case u.ArrayBuffer != "":
		return Binary{URL: u.ArrayBuffer}
	case u.JSON != "":
		return JSON{URL: u.JSON}
	case u.URL != "":
		return BareURL{URL: u.URL}
	}

	return Local{}
}

// IsZero reports whether no candidate is configured.
func (u URI) IsZero() bool {
	return u == URI{}
}

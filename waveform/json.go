// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"encoding/json"
	"fmt"
	"io"
)

type jsonDocument struct {
	Version         int     `json:"version"`
	Channels        int     `json:"channels,omitempty"`
	SampleRate      int     `json:"sample_rate"`
	SamplesPerPixel int     `json:"samples_per_pixel"`
	Bits            int     `json:"bits"`
	Length          int     `json:"length"`
	Data            []int16 `json:"data"`
}

// ParseJSON decodes an audiowaveform JSON document.
func ParseJSON(r io.Reader) (*Data, error) {
	var doc jsonDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}

	d := &Data{
		Version:         doc.Version,
		Channels:        doc.Channels,
		SampleRate:      doc.SampleRate,
		SamplesPerPixel: doc.SamplesPerPixel,
		Bits:            doc.Bits,
		Length:          doc.Length,
		Samples:         doc.Data,
	}

	if d.Version == 1 && d.Channels == 0 {
		d.Channels = 1
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// WriteJSON encodes d as an audiowaveform JSON document.
func (d *Data) WriteJSON(w io.Writer) error {
	doc := jsonDocument{
		Version:         d.Version,
		SampleRate:      d.SampleRate,
		SamplesPerPixel: d.SamplesPerPixel,
		Bits:            d.Bits,
		Length:          d.Length,
		Data:            d.Samples,
	}
	if d.Version >= 2 {
		doc.Channels = d.Channels
	}

	if err := json.NewEncoder(w).Encode(doc); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

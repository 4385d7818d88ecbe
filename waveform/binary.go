// SPDX-License-Identifier: EPL-2.0

package waveform

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

const flag8Bit = 0x1

type binaryHeader struct {
	Version         int32
	Flags           uint32
	SampleRate      int32
	SamplesPerPixel int32
	Length          uint32
}

// ParseBinary decodes an audiowaveform binary (.dat) file.
func ParseBinary(r io.Reader) (*Data, error) {
	br := bufio.NewReader(r)

	var h binaryHeader
	if err := binary.Read(br, binary.LittleEndian, &h); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrInvalidFormat, err)
	}

	d := &Data{
		Version:         int(h.Version),
		Channels:        1,
		SampleRate:      int(h.SampleRate),
		SamplesPerPixel: int(h.SamplesPerPixel),
		Bits:            16,
		Length:          int(h.Length),
	}
	if h.Flags&flag8Bit != 0 {
		d.Bits = 8
	}

	switch d.Version {
	case 1:
	case 2:
		var channels int32
		if err := binary.Read(br, binary.LittleEndian, &channels); err != nil {
			return nil, fmt.Errorf("%w: channels: %w", ErrInvalidFormat, err)
		}
		d.Channels = int(channels)
		if d.Channels < 1 {
			return nil, fmt.Errorf("%w: channels %d", ErrInvalidFormat, d.Channels)
		}
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, d.Version)
	}

	count, ok := sampleCount(d.Length, d.Channels)
	if !ok {
		return nil, fmt.Errorf("%w: length %d with %d channels exceeds limit",
			ErrInvalidFormat, d.Length, d.Channels)
	}
	d.Samples = make([]int16, count)

	if d.Bits == 8 {
		raw := make([]int8, count)
		if err := binary.Read(br, binary.LittleEndian, raw); err != nil {
			return nil, fmt.Errorf("%w: data: %w", ErrInvalidFormat, err)
		}
		for i, v := range raw {
			d.Samples[i] = int16(v)
		}
	} else if err := binary.Read(br, binary.LittleEndian, d.Samples); err != nil {
		return nil, fmt.Errorf("%w: data: %w", ErrInvalidFormat, err)
	}

	if err := d.validate(); err != nil {
		return nil, err
	}

	return d, nil
}

// WriteBinary encodes d in the audiowaveform binary format.
func (d *Data) WriteBinary(w io.Writer) error {
	if err := d.validate(); err != nil {
		return err
	}

	bw := bufio.NewWriter(w)

	h := binaryHeader{
		Version:         int32(d.Version),
		SampleRate:      int32(d.SampleRate),
		SamplesPerPixel: int32(d.SamplesPerPixel),
		Length:          uint32(d.Length),
	}
	if d.Bits == 8 {
		h.Flags |= flag8Bit
	}

	if err := binary.Write(bw, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("%w", err)
	}

	if d.Version == 2 {
		if err := binary.Write(bw, binary.LittleEndian, int32(d.Channels)); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	var err error
	if d.Bits == 8 {
		raw := make([]int8, len(d.Samples))
		for i, v := range d.Samples {
			raw[i] = int8(v)
		}
		err = binary.Write(bw, binary.LittleEndian, raw)
	} else {
		err = binary.Write(bw, binary.LittleEndian, d.Samples)
	}
	if err != nil {
		return fmt.Errorf("%w", err)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package decode

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/ik5/peaks/internal/audiotest"
)

type mockPCMReader struct {
	format  *goaudio.Format
	samples []int
	offset  int
	err     error
}

func (m *mockPCMReader) Format() *goaudio.Format { return m.format }

func (m *mockPCMReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.samples[m.offset:])
	m.offset += n

	return n, nil
}

func readAll(t *testing.T, src interface {
	ReadSamples([]float32) (int, error)
}) []float32 {
	t.Helper()

	var out []float32
	buf := make([]float32, 4)
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestPCMSource_Normalisation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		bitDepth int
		sample   int
		want     float32
	}{
		{8, 64, 0.5},
		{16, -16384, -0.5},
		{24, 4194304, 0.5},
		{32, -1073741824, -0.5},
	}

	for _, tt := range tests {
		dec := &mockPCMReader{
			format:  &goaudio.Format{NumChannels: 1, SampleRate: 8000},
			samples: []int{tt.sample},
		}

		src, err := newPCMSource(dec, tt.bitDepth)
		if err != nil {
			t.Fatalf("newPCMSource(%d) error = %v", tt.bitDepth, err)
		}

		got := readAll(t, src)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("bitDepth %d: samples = %v, want [%v]", tt.bitDepth, got, tt.want)
		}
	}
}

func TestPCMSource_UnsupportedBitDepth(t *testing.T) {
	t.Parallel()

	dec := &mockPCMReader{format: &goaudio.Format{NumChannels: 1, SampleRate: 8000}}

	_, err := newPCMSource(dec, 12)
	if !errors.Is(err, ErrUnsupportedBitDepth) {
		t.Errorf("newPCMSource(12) error = %v, want ErrUnsupportedBitDepth", err)
	}
}

func TestPCMSource_ReadError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	dec := &mockPCMReader{
		format: &goaudio.Format{NumChannels: 2, SampleRate: 8000},
		err:    boom,
	}

	src, err := newPCMSource(dec, 16)
	if err != nil {
		t.Fatalf("newPCMSource() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 4)); !errors.Is(err, boom) {
		t.Errorf("ReadSamples() error = %v, want boom", err)
	}
}

func TestWAV_Decode(t *testing.T) {
	t.Parallel()

	data := audiotest.WAV16(8000, 2, []int16{16384, -16384, 0, 32767, -32768, 8192})

	src, err := WAV{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if src.SampleRate() != 8000 {
		t.Errorf("SampleRate() = %d, want 8000", src.SampleRate())
	}

	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}

	got := readAll(t, src)
	if len(got) != 6 {
		t.Fatalf("read %d samples, want 6", len(got))
	}

	if got[0] != 0.5 || got[1] != -0.5 || got[4] != -1 {
		t.Errorf("samples = %v", got)
	}
}

func TestWAV_NotWAV(t *testing.T) {
	t.Parallel()

	_, err := WAV{}.Decode(bytes.NewReader([]byte("definitely not a riff file at all")))
	if !errors.Is(err, ErrNotWAV) {
		t.Errorf("Decode() error = %v, want ErrNotWAV", err)
	}
}

func TestAIFF_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := AIFF{}.Decode(bytes.NewReader([]byte("This is not AIFF data")))
	if !errors.Is(err, ErrNotAIFF) {
		t.Errorf("Decode() error = %v, want ErrNotAIFF", err)
	}
}

func TestMP3_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (MP3{}).Decode(bytes.NewReader(nil)); err == nil {
		t.Error("Decode() error = nil, want error for empty input")
	}
}

func TestVorbis_InvalidInput(t *testing.T) {
	t.Parallel()

	if _, err := (Vorbis{}).Decode(bytes.NewReader([]byte("This is not Ogg data"))); err == nil {
		t.Error("Decode() error = nil, want error for invalid data")
	}
}

type mockMP3Reader struct {
	rate int
	pcm  []byte
}

func (m *mockMP3Reader) SampleRate() int { return m.rate }

func (m *mockMP3Reader) Read(p []byte) (int, error) {
	if len(m.pcm) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.pcm)
	m.pcm = m.pcm[n:]
	return n, nil
}

func TestMP3Source_ReadSamples(t *testing.T) {
	t.Parallel()

	src := &mp3Source{dec: &mockMP3Reader{
		rate: 44100,
		pcm:  []byte{0x00, 0x40, 0x00, 0xC0},
	}}

	if src.Channels() != 2 || src.SampleRate() != 44100 {
		t.Fatalf("format = %d ch @ %d Hz", src.Channels(), src.SampleRate())
	}

	got := readAll(t, src)
	if len(got) != 2 || got[0] != 0.5 || got[1] != -0.5 {
		t.Errorf("samples = %v, want [0.5 -0.5]", got)
	}
}

type mockOggReader struct {
	channels int
	values   []float32
}

func (m *mockOggReader) SampleRate() int { return 48000 }
func (m *mockOggReader) Channels() int   { return m.channels }

func (m *mockOggReader) Read(p []float32) (int, error) {
	if len(m.values) == 0 {
		return 0, io.EOF
	}
	n := copy(p, m.values)
	m.values = m.values[n:]
	return n, nil
}

func TestVorbisSource_WholeFrames(t *testing.T) {
	t.Parallel()

	src := &vorbisSource{dec: &mockOggReader{channels: 2, values: []float32{0.1, 0.2, 0.3, 0.4}}}

	buf := make([]float32, 3)
	n, err := src.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}

	if n != 2 {
		t.Errorf("ReadSamples() n = %d, want 2", n)
	}

	if n, _ := src.ReadSamples(buf[:1]); n != 0 {
		t.Errorf("ReadSamples(short) n = %d, want 0", n)
	}
}

func TestSniff(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header []byte
		want   string
	}{
		{"wav", []byte("RIFF\x24\x00\x00\x00WAVE"), "wav"},
		{"aiff", []byte("FORM\x00\x00\x00\x00AIFF"), "aiff"},
		{"aifc", []byte("FORM\x00\x00\x00\x00AIFC"), "aiff"},
		{"ogg", []byte("OggS\x00\x02\x00\x00\x00\x00\x00\x00"), "ogg"},
		{"mp3 id3", []byte("ID3\x04\x00\x00\x00\x00\x00\x00\x00\x00"), "mp3"},
		{"mp3 sync", []byte{0xFF, 0xFB, 0x90, 0x64, 0, 0, 0, 0, 0, 0, 0, 0}, "mp3"},
		{"unknown", []byte("hello world!"), ""},
	}

	reg := DefaultRegistry()
	for _, tt := range tests {
		got, _, _ := reg.Detect(tt.header)
		if got != tt.want {
			t.Errorf("%s: Detect() = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestDetect_WAV(t *testing.T) {
	t.Parallel()

	samples := make([]int16, 800)
	for i := range samples {
		samples[i] = int16(10000 * math.Sin(float64(i)/10))
	}

	src, format, err := Detect(DefaultRegistry(), bytes.NewReader(audiotest.WAV16(8000, 1, samples)))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if format != "wav" {
		t.Errorf("Detect() format = %q, want wav", format)
	}

	if got := readAll(t, src); len(got) != len(samples) {
		t.Errorf("read %d samples, want %d", len(got), len(samples))
	}
}

func TestDetect_Unknown(t *testing.T) {
	t.Parallel()

	_, _, err := Detect(DefaultRegistry(), bytes.NewReader([]byte("plain text, no audio")))
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Detect() error = %v, want ErrUnknownFormat", err)
	}
}

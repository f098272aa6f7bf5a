// SPDX-License-Identifier: EPL-2.0

package pcm

import (
	"errors"
	"io"
	"testing"

	goaudio "github.com/go-audio/audio"
)

// mockReader simulates a go-audio decoder
type mockReader struct {
	format *goaudio.Format
	data   []int
	offset int
	err    error
}

func (m *mockReader) Format() *goaudio.Format { return m.format }

func (m *mockReader) PCMBuffer(buf *goaudio.IntBuffer) (int, error) {
	if m.err != nil {
		return 0, m.err
	}

	n := copy(buf.Data, m.data[m.offset:])
	m.offset += n

	return n, nil
}

func stereo(data ...int) *mockReader {
	return &mockReader{format: &goaudio.Format{NumChannels: 2, SampleRate: 44100}, data: data}
}

func TestNewSource_InvalidFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		format *goaudio.Format
	}{
		{"nil format", nil},
		{"no channels", &goaudio.Format{SampleRate: 8000}},
		{"no rate", &goaudio.Format{NumChannels: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewSource(&mockReader{format: tt.format}, 16); err == nil {
				t.Error("NewSource() accepted an invalid format")
			}
		})
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	src, err := NewSource(stereo(0, 16384, -32768, 8192, 100, -100), 16)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	if src.SampleRate() != 44100 || src.Channels() != 2 || src.BitDepth() != 16 {
		t.Errorf("metadata = %d Hz, %d ch, %d bit", src.SampleRate(), src.Channels(), src.BitDepth())
	}

	buf := make([]float32, 4)
	n, err := src.ReadSamples(buf)
	if n != 4 || err != nil {
		t.Fatalf("ReadSamples() = %d, %v; want 4, nil", n, err)
	}

	want := []float32{0, 0.5, -1, 0.25}
	for i := range want {
		if buf[i] != want[i] {
			t.Errorf("buf[%d] = %v, want %v", i, buf[i], want[i])
		}
	}

	n, err = src.ReadSamples(buf)
	if n != 2 || err != io.EOF {
		t.Fatalf("short read = %d, %v; want 2, io.EOF", n, err)
	}

	n, err = src.ReadSamples(buf)
	if n != 0 || err != io.EOF {
		t.Fatalf("read past end = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	cause := errors.New("truncated chunk")
	reader := stereo(1, 2)
	reader.err = cause

	src, err := NewSource(reader, 16)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}

	if _, err := src.ReadSamples(make([]float32, 2)); !errors.Is(err, cause) {
		t.Errorf("ReadSamples() error = %v, want %v", err, cause)
	}
}

func TestSource_BufSize(t *testing.T) {
	t.Parallel()

	src, _ := NewSource(stereo(make([]int, 10000)...), 24)
	if got := src.BufSize(); got != 4096 {
		t.Errorf("BufSize() before reading = %d, want 4096", got)
	}

	_, _ = src.ReadSamples(make([]float32, 8192))
	if got := src.BufSize(); got != 8192 {
		t.Errorf("BufSize() after reading = %d, want 8192", got)
	}

	_, _ = src.ReadSamples(make([]float32, 16))
	if got := src.BufSize(); got != 8192 {
		t.Errorf("BufSize() after a smaller read = %d, want 8192", got)
	}
}

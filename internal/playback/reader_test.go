// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audkern/internal/audiotest"
)

func decode(b []byte) []float32 {
	out := make([]float32, len(b)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}

	return out
}

func TestReader_ReadAll(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(8000, 2, 3000)
	src.MaxFrames = 700

	data, err := io.ReadAll(NewReader(src))
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}

	got := decode(data)
	if len(got) != 6000 {
		t.Fatalf("read %d samples, want 6000", len(got))
	}
	for f := range 3000 {
		for c := range 2 {
			if want := float32(f) + float32(c)/10; got[2*f+c] != want {
				t.Fatalf("frame %d channel %d = %v, want %v", f, c, got[2*f+c], want)
			}
		}
	}
}

func TestReader_OddSizedReads(t *testing.T) {
	t.Parallel()

	r := NewReader(audiotest.NewConstantSource(8000, 1, 5, 0.25))

	var data []byte
	p := make([]byte, 3)
	for {
		n, err := r.Read(p)
		data = append(data, p[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}

	got := decode(data)
	if len(got) != 5 {
		t.Fatalf("read %d samples, want 5", len(got))
	}
	for i, x := range got {
		if x != 0.25 {
			t.Errorf("sample %d = %v, want 0.25", i, x)
		}
	}
}

func TestReader_SourceError(t *testing.T) {
	t.Parallel()

	errDevice := errors.New("device gone")
	src := audiotest.NewConstantSource(8000, 1, 4, 1)
	src.Err = errDevice

	r := NewReader(src)
	p := make([]byte, 64)

	n, err := r.Read(p)
	if err != nil || n != 16 {
		t.Fatalf("Read() = %d, %v; want 16, nil", n, err)
	}
	if _, err := r.Read(p); !errors.Is(err, errDevice) {
		t.Errorf("Read() error = %v, want %v", err, errDevice)
	}
}

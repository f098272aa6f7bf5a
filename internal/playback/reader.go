// SPDX-License-Identifier: EPL-2.0

// Package playback adapts sources to sound card players.
package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"

	"github.com/ik5/audkern/audio"
)

// Reader serves the samples of a Source as interleaved little endian
// float32 bytes, the layout oto.FormatFloat32LE expects.
type Reader struct {
	src     audio.Source
	samples []float32
	bytes   []byte
	pending []byte // encoded, not yet read
	err     error
}

func NewReader(src audio.Source) *Reader {
	size := max(src.BufSize()/src.Channels(), 1) * src.Channels()

	return &Reader{
		src:     src,
		samples: make([]float32, size),
		bytes:   make([]byte, 4*size),
	}
}

func (r *Reader) fill() {
	n, err := r.src.ReadSamples(r.samples)
	for i, x := range r.samples[:n] {
		binary.LittleEndian.PutUint32(r.bytes[4*i:], math.Float32bits(x))
	}
	r.pending = r.bytes[:4*n]

	if err != nil {
		r.err = err
	}
}

// Read fills p until the source ends. Source errors are returned once the
// samples read before them are consumed.
func (r *Reader) Read(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		if len(r.pending) == 0 {
			if r.err != nil {
				break
			}
			r.fill()
			continue
		}

		n := copy(p[written:], r.pending)
		r.pending = r.pending[n:]
		written += n
	}

	if written == 0 && r.err != nil {
		if errors.Is(r.err, io.EOF) {
			return 0, io.EOF
		}
		return 0, r.err
	}

	return written, nil
}

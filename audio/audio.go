// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"slices"
	"sync"
)

// Source is a stream of interleaved samples, the form decoders produce and
// files and sound cards consume. Kernels work on planar blocks instead; see
// Deinterleave and Interleave.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry for decoders by format key (e.g., "wav", "mp3", "ogg").
type Registry struct {
	codecs map[string]Decoder

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		codecs: make(map[string]Decoder),
		mtx:    &sync.Mutex{},
	}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	d, ok := r.codecs[format]
	return d, ok
}

// Formats lists the registered format keys in sorted order.
func (r *Registry) Formats() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	keys := make([]string, 0, len(r.codecs))
	for k := range r.codecs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return keys
}

// Silence is a Source of a fixed number of zero frames. Instruments render
// over it: they have no input but are processed in place like effects.
type Silence struct {
	sampleRate int
	channels   int
	remaining  int // frames
}

func NewSilence(sampleRate, channels, frames int) *Silence {
	return &Silence{sampleRate: sampleRate, channels: channels, remaining: frames}
}

func (s *Silence) SampleRate() int { return s.sampleRate }
func (s *Silence) Channels() int   { return s.channels }
func (s *Silence) BufSize() int    { return 4096 }
func (s *Silence) Close() error    { return nil }

func (s *Silence) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if s.remaining == 0 {
		return 0, io.EOF
	}

	frames := min(len(dst)/s.channels, s.remaining)
	n := frames * s.channels
	clear(dst[:n])
	s.remaining -= frames

	if s.remaining == 0 {
		return n, io.EOF
	}

	return n, nil
}

// ReadAll drains src and returns everything it produced.
func ReadAll(src Source) ([]float32, error) {
	buf := make([]float32, max(src.BufSize()/src.Channels(), 1)*src.Channels())
	var out []float32

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("reading samples: %w", err)
		}
	}
}

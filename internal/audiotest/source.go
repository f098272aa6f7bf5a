// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audkern/audio"
)

// Generator returns the sample of channel at frame.
type Generator func(frame, channel int) float32

// Source is a synthetic audio.Source of a fixed number of frames.
type Source struct {
	sampleRate int
	channels   int
	frames     int
	pos        int
	gen        Generator

	// MaxFrames caps the frames returned by one read, to exercise callers
	// that must cope with short reads. Zero means no cap.
	MaxFrames int
	// Err, when set, is returned once the frames are exhausted instead
	// of io.EOF.
	Err error
	// Closed reports whether Close was called.
	Closed bool
}

var _ audio.Source = (*Source)(nil)

func NewSource(sampleRate, channels, frames int, gen Generator) *Source {
	return &Source{
		sampleRate: sampleRate,
		channels:   channels,
		frames:     frames,
		gen:        gen,
	}
}

func NewSilentSource(sampleRate, channels, frames int) *Source {
	return NewConstantSource(sampleRate, channels, frames, 0)
}

func NewConstantSource(sampleRate, channels, frames int, value float32) *Source {
	return NewSource(sampleRate, channels, frames, func(int, int) float32 { return value })
}

// NewSineSource is a full scale sine at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, frames int, frequency float64) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewRampSource counts frames: sample value is the frame index, plus a
// tenth of the channel index.
func NewRampSource(sampleRate, channels, frames int) *Source {
	return NewSource(sampleRate, channels, frames, func(frame, channel int) float32 {
		return float32(frame) + float32(channel)/10
	})
}

func (s *Source) SampleRate() int { return s.sampleRate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return 4096 }

func (s *Source) Close() error {
	s.Closed = true
	return nil
}

// Rewind starts the source over.
func (s *Source) Rewind() { s.pos = 0 }

func (s *Source) end() error {
	if s.Err != nil {
		return s.Err
	}

	return io.EOF
}

func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if s.pos >= s.frames {
		return 0, s.end()
	}

	n := min(len(dst)/s.channels, s.frames-s.pos)
	if s.MaxFrames > 0 {
		n = min(n, s.MaxFrames)
	}

	for f := range n {
		for c := range s.channels {
			dst[f*s.channels+c] = s.gen(s.pos+f, c)
		}
	}
	s.pos += n

	if s.pos >= s.frames {
		return n * s.channels, s.end()
	}

	return n * s.channels, nil
}

// SPDX-License-Identifier: EPL-2.0

package audkern

import (
	"cmp"
	"fmt"
	"io"
	"slices"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/kernel"
)

// Stream runs a kernel over a Source one block at a time. It is itself a
// Source, so it can feed a file writer, a sound card or another Stream.
//
// Events carry absolute times, in frames from the start of the stream.
// Each block receives the events that fall inside it, rebased to the start
// of the block. Events timed past the end of the source are never
// delivered.
type Stream struct {
	src       audio.Source
	k         kernel.Kernel
	channels  int
	blockSize int

	events   []kernel.Event
	next     int   // first undelivered event
	position int64 // frames processed before the current block
	blockEnd int64
	pending  []kernel.Event // events of the current block, rebased

	in     []float32
	planar [][]float32
	out    []float32 // processed, interleaved
	outPos int
	eof    bool
}

// NewStream processes src with k in blocks of blockSize frames. A
// blockSize <= 0 uses the source's preferred buffer size. The kernel must
// have been created for src.Channels() channels; it processes in place, so
// the stream has as many channels as its source. events is copied and
// sorted by time, keeping the order of simultaneous events.
func NewStream(src audio.Source, k kernel.Kernel, blockSize int, events []kernel.Event) *Stream {
	channels := src.Channels()
	if blockSize <= 0 {
		blockSize = max(src.BufSize()/max(channels, 1), 1)
	}

	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b kernel.Event) int { return cmp.Compare(a.Time, b.Time) })

	s := &Stream{
		src:       src,
		k:         k,
		channels:  channels,
		blockSize: blockSize,
		events:    sorted,
		in:        make([]float32, blockSize*channels),
		planar:    make([][]float32, channels),
		out:       make([]float32, 0, blockSize*channels),
		pending:   make([]kernel.Event, 0, len(sorted)),
	}
	for c := range s.planar {
		s.planar[c] = make([]float32, blockSize)
	}

	return s
}

func (s *Stream) SampleRate() int { return s.src.SampleRate() }
func (s *Stream) Channels() int   { return s.channels }
func (s *Stream) BufSize() int    { return s.blockSize * s.channels }

func (s *Stream) Close() error {
	if err := s.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// Position is the number of frames processed so far.
func (s *Stream) Position() int64 { return s.position }

// blockEvents collects the events that fall before blockEnd, rebased to
// the start of the current block.
func (s *Stream) blockEvents() []kernel.Event {
	s.pending = s.pending[:0]
	for s.next < len(s.events) && s.events[s.next].Time < s.blockEnd {
		ev := s.events[s.next]
		ev.Time = max(ev.Time-s.position, 0)
		s.pending = append(s.pending, ev)
		s.next++
	}

	return s.pending
}

// process reads one block from the source and runs the kernel over it.
func (s *Stream) process() error {
	n, err := s.src.ReadSamples(s.in)
	if err == io.EOF {
		s.eof = true
	} else if err != nil {
		return fmt.Errorf("reading source: %w", err)
	}

	frames := n / s.channels
	if frames == 0 {
		return nil
	}

	block := audio.NewViewMut(s.planar).Slice(0, frames)
	audio.Deinterleave(block, s.in[:frames*s.channels])

	s.blockEnd = s.position + int64(frames)
	s.k.Process(block, s.blockEvents())

	s.out = s.out[:frames*s.channels]
	audio.Interleave(s.out, block.Freeze())
	s.outPos = 0
	s.position = s.blockEnd

	return nil
}

func (s *Stream) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.channels != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	written := 0
	for written < len(dst) {
		if s.outPos == len(s.out) {
			if s.eof {
				return written, io.EOF
			}
			if err := s.process(); err != nil {
				return written, err
			}
			continue
		}

		n := copy(dst[written:], s.out[s.outPos:])
		s.outPos += n
		written += n
	}

	if s.eof && s.outPos == len(s.out) {
		return written, io.EOF
	}

	return written, nil
}

// Render runs k over the whole of src and returns the processed,
// interleaved samples. See Stream for the event timing rules.
func Render(src audio.Source, k kernel.Kernel, blockSize int, events []kernel.Event) ([]float32, error) {
	out, err := audio.ReadAll(NewStream(src, k, blockSize, events))
	if err != nil {
		return out, fmt.Errorf("rendering: %w", err)
	}

	return out, nil
}

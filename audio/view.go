// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"iter"
)

// ViewMut is a non-owning, exclusive window over deinterleaved channel
// buffers. All channels expose the same number of frames.
//
// A ViewMut borrows its storage from the caller for the duration of one
// call (typically one Process call) and must not be retained after it.
// Only one ViewMut may cover a given frame range at a time: a sub view
// returned by Slice or SplitFirst takes over that range until it is
// dropped, and the parent must not be written to meanwhile.
type ViewMut struct {
	chans  [][]float32
	offset int
	frames int
}

// View is the read-only counterpart of ViewMut.
type View struct {
	chans  [][]float32
	offset int
	frames int
}

func checkLengths(channels [][]float32) int {
	if len(channels) == 0 {
		return 0
	}

	frames := len(channels[0])
	for i, ch := range channels[1:] {
		if len(ch) != frames {
			panic(fmt.Errorf("%w: channel %d has %d frames, channel 0 has %d",
				ErrChannelLengthMismatch, i+1, len(ch), frames))
		}
	}

	return frames
}

func checkRange(start, end, frames int) {
	if start < 0 || end > frames || start > end {
		panic(fmt.Errorf("%w: [%d, %d) of %d frames", ErrRangeOutOfBounds, start, end, frames))
	}
}

// NewViewMut wraps channels without copying. It panics when the channels
// differ in length.
func NewViewMut(channels [][]float32) ViewMut {
	return ViewMut{chans: channels, frames: checkLengths(channels)}
}

// NewView wraps channels without copying. It panics when the channels
// differ in length.
func NewView(channels [][]float32) View {
	return View{chans: channels, frames: checkLengths(channels)}
}

func (v ViewMut) Len() int         { return v.frames }
func (v ViewMut) NumChannels() int { return len(v.chans) }

// IsEmpty reports whether the view has no frames or no channels.
func (v ViewMut) IsEmpty() bool { return v.frames == 0 || len(v.chans) == 0 }

// Channel returns the samples of channel i restricted to the view's range.
func (v ViewMut) Channel(i int) []float32 {
	return v.chans[i][v.offset : v.offset+v.frames : v.offset+v.frames]
}

// Channels yields every channel of the view in order.
func (v ViewMut) Channels() iter.Seq2[int, []float32] {
	return func(yield func(int, []float32) bool) {
		for c := range v.chans {
			if !yield(c, v.Channel(c)) {
				return
			}
		}
	}
}

// Slice returns a view over frames [start, end) of v sharing the same
// storage. It panics when the range does not fit inside v.
func (v ViewMut) Slice(start, end int) ViewMut {
	checkRange(start, end, v.frames)

	return ViewMut{chans: v.chans, offset: v.offset + start, frames: end - start}
}

// SplitFirst returns the first channel and a view over the remaining
// channels. ok is false when v has no channels.
func (v ViewMut) SplitFirst() (first []float32, rest ViewMut, ok bool) {
	if len(v.chans) == 0 {
		return nil, v, false
	}

	rest = ViewMut{chans: v.chans[1:], offset: v.offset, frames: v.frames}

	return v.Channel(0), rest, true
}

// Freeze converts v into a read-only view. v must not be written through
// afterwards.
func (v ViewMut) Freeze() View {
	return View{chans: v.chans, offset: v.offset, frames: v.frames}
}

// Fill sets every sample in the view to x.
func (v ViewMut) Fill(x float32) {
	for c := range v.chans {
		ch := v.Channel(c)
		for i := range ch {
			ch[i] = x
		}
	}
}

func (v View) Len() int         { return v.frames }
func (v View) NumChannels() int { return len(v.chans) }
func (v View) IsEmpty() bool    { return v.frames == 0 || len(v.chans) == 0 }

// Channel returns the samples of channel i restricted to the view's range.
// Callers must treat the returned slice as read-only.
func (v View) Channel(i int) []float32 {
	return v.chans[i][v.offset : v.offset+v.frames : v.offset+v.frames]
}

func (v View) Channels() iter.Seq2[int, []float32] {
	return func(yield func(int, []float32) bool) {
		for c := range v.chans {
			if !yield(c, v.Channel(c)) {
				return
			}
		}
	}
}

func (v View) Slice(start, end int) View {
	checkRange(start, end, v.frames)

	return View{chans: v.chans, offset: v.offset + start, frames: end - start}
}

func (v View) SplitFirst() (first []float32, rest View, ok bool) {
	if len(v.chans) == 0 {
		return nil, v, false
	}

	rest = View{chans: v.chans[1:], offset: v.offset, frames: v.frames}

	return v.Channel(0), rest, true
}

// SPDX-License-Identifier: EPL-2.0

package kernel

import (
	"fmt"

	"github.com/ik5/audkern/audio"
)

// Handler receives the output of SplitAtEvents.
type Handler interface {
	HandleEvent(ev Event)
	HandleAudio(buf audio.ViewMut)
}

// SplitAtEvents walks buf and events together, handing h the audio
// between consecutive event times and each event at its exact frame.
//
// Events must arrive in non-decreasing time order. An event at or before
// the current position is handled immediately, so simultaneous events fire
// in input order with no audio between them. An event later than the
// current position must lie inside the block (time < buf.Len()), otherwise
// SplitAtEvents panics with ErrEventOutOfRange.
//
// The audio segments are contiguous, never overlap and add up to the whole
// block. The trailing segment is always delivered, even when it is empty.
func SplitAtEvents[H Handler](buf audio.ViewMut, events []Event, h H) {
	length := buf.Len()
	cursor := 0

	for _, ev := range events {
		if ev.Time <= int64(cursor) {
			h.HandleEvent(ev)
			continue
		}

		if ev.Time >= int64(length) {
			panic(fmt.Errorf("%w: time %d, block length %d", ErrEventOutOfRange, ev.Time, length))
		}

		at := int(ev.Time)
		h.HandleAudio(buf.Slice(cursor, at))
		cursor = at
		h.HandleEvent(ev)
	}

	h.HandleAudio(buf.Slice(cursor, length))
}

// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"fmt"
	"strings"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/kernel"
)

// Call is one callback observed by a Recorder.
type Call struct {
	Event  *kernel.Event // nil for audio segments
	Start  int           // first frame of an audio segment within the block
	Frames int           // length of an audio segment
}

func (c Call) String() string {
	if c.Event != nil {
		return fmt.Sprintf("event(t=%d,v=%g)", c.Event.Time, c.Event.Param.Value)
	}

	return fmt.Sprintf("audio[%d,%d)", c.Start, c.Start+c.Frames)
}

// Recorder is a kernel.Handler that logs every callback and adds 1 to each
// sample it is handed, so tests can check that every frame was visited
// exactly once.
type Recorder struct {
	Calls    []Call
	position int
}

func (r *Recorder) HandleEvent(ev kernel.Event) {
	r.Calls = append(r.Calls, Call{Event: &ev})
}

func (r *Recorder) HandleAudio(buf audio.ViewMut) {
	r.Calls = append(r.Calls, Call{Start: r.position, Frames: buf.Len()})
	r.position += buf.Len()

	for c := range buf.NumChannels() {
		ch := buf.Channel(c)
		for i := range ch {
			ch[i]++
		}
	}
}

// Trace renders the calls as a single line, e.g.
// "event(t=0,v=1) audio[0,3) event(t=3,v=2)".
func (r *Recorder) Trace() string {
	parts := make([]string, len(r.Calls))
	for i, c := range r.Calls {
		parts[i] = c.String()
	}

	return strings.Join(parts, " ")
}

// Silence returns channels zeroed buffers of frames samples each.
func Silence(channels, frames int) [][]float32 {
	bufs := make([][]float32, channels)
	for c := range bufs {
		bufs[c] = make([]float32, frames)
	}

	return bufs
}

// SPDX-License-Identifier: EPL-2.0

package kernel_test

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/internal/audiotest"
	"github.com/ik5/audkern/kernel"
)

func paramEvents(times ...int64) []kernel.Event {
	evs := make([]kernel.Event, len(times))
	for i, t := range times {
		evs[i] = kernel.NewParameterChange(t, 0, float64(i+1))
	}

	return evs
}

func checkCoverage(t *testing.T, bufs [][]float32) {
	t.Helper()

	for c, ch := range bufs {
		for i, x := range ch {
			if x != 1 {
				t.Fatalf("channel %d frame %d visited %v times, want 1", c, i, x)
			}
		}
	}
}

func TestSplitAtEvents_Trace(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		length int
		times  []int64
		want   string
	}{
		{
			name:   "simultaneous events",
			length: 8,
			times:  []int64{0, 3, 3, 6},
			want:   "event(t=0,v=1) audio[0,3) event(t=3,v=2) event(t=3,v=3) audio[3,6) event(t=6,v=4) audio[6,8)",
		},
		{
			name:   "no events",
			length: 8,
			want:   "audio[0,8)",
		},
		{
			name:   "event on last frame",
			length: 4,
			times:  []int64{3},
			want:   "audio[0,3) event(t=3,v=1) audio[3,4)",
		},
		{
			name:   "negative time fires first",
			length: 4,
			times:  []int64{-2, 0, 1},
			want:   "event(t=-2,v=1) event(t=0,v=2) audio[0,1) event(t=1,v=3) audio[1,4)",
		},
		{
			name:   "empty block",
			length: 0,
			times:  []int64{0, 0},
			want:   "event(t=0,v=1) event(t=0,v=2) audio[0,0)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			bufs := audiotest.Silence(2, tt.length)
			rec := &audiotest.Recorder{}
			kernel.SplitAtEvents(audio.NewViewMut(bufs), paramEvents(tt.times...), rec)

			if got := rec.Trace(); got != tt.want {
				t.Errorf("trace:\n got %s\nwant %s", got, tt.want)
			}
			checkCoverage(t, bufs)
		})
	}
}

func TestSplitAtEvents_OutOfRangePanics(t *testing.T) {
	t.Parallel()

	for _, time := range []int64{8, 100} {
		func() {
			defer func() {
				err, ok := recover().(error)
				if !ok || !errors.Is(err, kernel.ErrEventOutOfRange) {
					t.Errorf("time %d: panic = %v, want ErrEventOutOfRange", time, err)
				}
			}()

			bufs := audiotest.Silence(1, 8)
			kernel.SplitAtEvents(audio.NewViewMut(bufs), paramEvents(2, time), &audiotest.Recorder{})
		}()
	}
}

// TestSplitAtEvents_Properties checks random ascending schedules: segments
// tile the block in order and every event fires once, at its frame.
func TestSplitAtEvents_Properties(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(1, 2))

	for iter := range 500 {
		length := 1 + rng.IntN(300)
		n := rng.IntN(12)
		times := make([]int64, n)
		var at int64
		for i := range times {
			at += int64(rng.IntN(length/4 + 1))
			times[i] = min(at, int64(length-1))
		}

		bufs := audiotest.Silence(3, length)
		rec := &audiotest.Recorder{}
		kernel.SplitAtEvents(audio.NewViewMut(bufs), paramEvents(times...), rec)

		checkCoverage(t, bufs)

		position, fired := 0, 0
		for _, call := range rec.Calls {
			if call.Event == nil {
				if call.Start != position {
					t.Fatalf("iteration %d: segment starts at %d, want %d", iter, call.Start, position)
				}
				position += call.Frames
				continue
			}

			if call.Event.Param.Value != float64(fired+1) {
				t.Fatalf("iteration %d: event %v fired out of order", iter, call.Event.Param.Value)
			}
			if want := max(call.Event.Time, 0); int64(position) != want {
				t.Fatalf("iteration %d: event at t=%d fired at frame %d", iter, call.Event.Time, position)
			}
			fired++
		}

		if position != length {
			t.Fatalf("iteration %d: segments cover %d frames, want %d", iter, position, length)
		}
		if fired != n {
			t.Fatalf("iteration %d: %d events fired, want %d", iter, fired, n)
		}
		if last := rec.Calls[len(rec.Calls)-1]; last.Event != nil {
			t.Fatalf("iteration %d: last callback is an event, want the trailing segment", iter)
		}
	}
}

type countingHandler struct {
	events, segments, frames int
}

func (h *countingHandler) HandleEvent(kernel.Event)      { h.events++ }
func (h *countingHandler) HandleAudio(buf audio.ViewMut) { h.segments++; h.frames += buf.Len() }

func TestSplitAtEvents_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	bufs := audiotest.Silence(2, 512)
	view := audio.NewViewMut(bufs)
	evs := paramEvents(0, 10, 10, 200, 511)
	h := &countingHandler{}

	allocs := testing.AllocsPerRun(1000, func() {
		kernel.SplitAtEvents(view, evs, h)
	})

	if allocs > 0 {
		t.Errorf("SplitAtEvents allocated %v times, want 0", allocs)
	}
}

func BenchmarkSplitAtEvents(b *testing.B) {
	bufs := audiotest.Silence(2, 512)
	view := audio.NewViewMut(bufs)
	evs := paramEvents(0, 64, 128, 256, 300, 301, 480)
	h := &countingHandler{}

	b.ReportAllocs()

	for b.Loop() {
		kernel.SplitAtEvents(view, evs, h)
	}
}

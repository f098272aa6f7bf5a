// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample containers kernels work on and the
// streaming primitives hosts use to feed them.
//
// This package contains:
//   - View and ViewMut, non-owning windows over planar channel buffers
//   - Deinterleave and Interleave to move between planar and interleaved data
//   - Source interface for streamed, interleaved audio
//   - Format registry for decoder registration
//
// # Views
//
// A view borrows one []float32 per channel; every channel has the same
// length. Views never copy and never own their storage:
//
//	left := make([]float32, 512)
//	right := make([]float32, 512)
//	buf := audio.NewViewMut([][]float32{left, right})
//
//	head := buf.Slice(0, 128) // frames [0,128) of both channels
//	head.Fill(0)
//
// Slicing is O(1) and allocation free, so it is safe on the audio thread.
// A sub view aliases its parent: only one of them may be written at a time.
// Freeze turns a ViewMut into a read-only View; the ViewMut must not be used
// afterwards.
//
// Construction with channels of different lengths, or slicing outside the
// view, panics. These are programming errors, not runtime conditions.
//
// # Streams
//
// Hosts move audio between files, kernels and sound cards as interleaved
// float32 streams in [-1, 1]. Source is that stream: decoders in the
// formats packages return one, Silence gives instruments a fixed number of
// empty frames to render over, and ReadAll drains a Source into memory.
// ReadSamples reports the end of a stream with io.EOF, possibly together
// with the final samples.
//
// Decoders are looked up by file extension through a Registry, which is
// safe for concurrent use:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, err := registry.Get("wav")
package audio

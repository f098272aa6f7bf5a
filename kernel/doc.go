// SPDX-License-Identifier: EPL-2.0

// Package kernel defines DSP kernels and drives them sample accurately.
//
// A host calls a kernel once per audio block with the block's buffers and
// the control events that fall inside it. SplitAtEvents cuts the block at
// every event time, so a parameter change at frame 37 affects exactly the
// frames from 37 on, without dispatching per sample:
//
//	events: t=0        t=3 t=3           t=6
//	audio:       [0,3)          [3,6)          [6,8)
//
// # Writing a kernel
//
// Describe the kernel once with an Info (parameters, bypass parameter,
// allowed channel formats, effect or instrument). Put the per-instance
// bookkeeping in a Core: it holds the parameter values, a configuration
// derived from all of them through a pure DeriveFunc, and the mutable DSP
// state that Reset clears. Process then hands the block to Run together
// with a Renderer that transforms audio segments and consumes MIDI.
//
// # Real-time rules
//
// Everything here runs on the audio thread: no locks, no I/O and no
// allocation once a kernel is built. Contract violations (an event past
// the end of the block, an unknown parameter address) panic; they are
// host bugs, not conditions to recover from.
//
// # Ramped parameter changes
//
// RampedParameterChange events carry a ramp length in frames. The ramp is
// not interpreted: the value is applied at the event time, like a
// ParameterChange.
package kernel

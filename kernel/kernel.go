// SPDX-License-Identifier: EPL-2.0

package kernel

import (
	"github.com/ik5/audkern/audio"
)

// Kernel is one running instance of a DSP kernel. All methods are called
// from the audio thread, one at a time.
type Kernel interface {
	// SetParameter overwrites a parameter. Unknown addresses panic.
	SetParameter(address uint64, value float64)
	// Parameter reads a parameter. Unknown addresses panic.
	Parameter(address uint64) float64
	// Latency is the processing delay in frames.
	Latency() uint64
	// Process renders buf in place, applying events at their frame offsets.
	// events is only valid for the duration of the call.
	Process(buf audio.ViewMut, events []Event)
	// Reset clears DSP state. Parameters are kept.
	Reset()
}

// Factory describes and creates one kind of kernel.
type Factory interface {
	Info() *Info
	New(format AudioFormat) Kernel
}

// Config is the constraint on derived configurations.
type Config interface {
	// Bypassed reports whether audio segments must be left untouched.
	Bypassed() bool
}

// DeriveFunc computes a configuration from the format and the complete
// parameter set. It must be pure and must not allocate: it runs on the
// audio thread on every parameter change.
type DeriveFunc[C Config] func(format AudioFormat, params *ParamSet) C

// Core carries the bookkeeping every kernel shares: parameter values, the
// configuration derived from them and the mutable DSP state. Embed it and
// add Process:
//
//	type Kernel struct {
//	    *kernel.Core[Config, State]
//	}
//
//	func (k *Kernel) Process(buf audio.ViewMut, events []kernel.Event) {
//	    kernel.Run(k.Core, buf, events, k)
//	}
type Core[C Config, S any] struct {
	format AudioFormat
	params *ParamSet
	derive DeriveFunc[C]
	config C

	state     S
	initState func(*S)
}

// NewCore seeds the parameters from the defaults declared in info and
// derives the initial configuration. initState puts the state into its
// default; it runs now and on every Reset. A nil initState uses the zero
// value of S, which then has to be named:
//
//	kernel.NewCore[Config, State](info, format, Derive, nil)
func NewCore[C Config, S any](info *Info, format AudioFormat, derive DeriveFunc[C], initState func(*S)) *Core[C, S] {
	c := &Core[C, S]{
		format:    format,
		params:    NewParamSet(info.Params),
		derive:    derive,
		initState: initState,
	}
	c.config = derive(format, c.params)
	c.resetState()

	return c
}

func (c *Core[C, S]) resetState() {
	if c.initState == nil {
		var zero S
		c.state = zero
		return
	}

	c.initState(&c.state)
}

// SetParameter stores value and recomputes the whole configuration.
func (c *Core[C, S]) SetParameter(address uint64, value float64) {
	c.params.Set(address, value)
	c.config = c.derive(c.format, c.params)
}

func (c *Core[C, S]) Parameter(address uint64) float64 {
	return c.params.Get(address)
}

// Latency is zero unless the embedding kernel overrides it.
func (c *Core[C, S]) Latency() uint64 { return 0 }

// Reset restores the DSP state; parameters and configuration are kept.
func (c *Core[C, S]) Reset() { c.resetState() }

func (c *Core[C, S]) Format() AudioFormat { return c.format }
func (c *Core[C, S]) Config() C           { return c.config }
func (c *Core[C, S]) State() *S           { return &c.state }
func (c *Core[C, S]) Params() *ParamSet   { return c.params }

// ApplyEvent applies parameter events. MIDI payloads are returned for the
// kernel to interpret.
//
// A ramped change is applied immediately: its ramp duration is not
// interpreted yet.
func (c *Core[C, S]) ApplyEvent(ev Event) (MIDIMessage, bool) {
	switch ev.Kind {
	case ParameterChange, RampedParameterChange:
		c.SetParameter(ev.Param.Address, ev.Param.Value)
	case MIDI:
		return ev.MIDI, true
	}

	return MIDIMessage{}, false
}

// Renderer is the kernel specific half of processing.
type Renderer interface {
	// Render transforms one segment in place. It is not called while the
	// configuration is bypassed and must accept empty segments.
	Render(buf audio.ViewMut)
	// HandleMIDI receives MIDI events at their position in the block.
	HandleMIDI(msg MIDIMessage)
}

type runHandler[C Config, S any, R Renderer] struct {
	core *Core[C, S]
	r    R
}

func (h runHandler[C, S, R]) HandleEvent(ev Event) {
	if msg, ok := h.core.ApplyEvent(ev); ok {
		h.r.HandleMIDI(msg)
	}
}

func (h runHandler[C, S, R]) HandleAudio(buf audio.ViewMut) {
	if h.core.config.Bypassed() {
		return
	}

	h.r.Render(buf)
}

// Run processes one block for a kernel built on Core.
func Run[C Config, S any, R Renderer](c *Core[C, S], buf audio.ViewMut, events []Event, r R) {
	SplitAtEvents(buf, events, runHandler[C, S, R]{core: c, r: r})
}

// IgnoreMIDI can be embedded by effects that have no use for MIDI.
type IgnoreMIDI struct{}

func (IgnoreMIDI) HandleMIDI(MIDIMessage) {}

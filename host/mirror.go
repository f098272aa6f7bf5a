// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"math"
	"slices"
	"sync/atomic"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/kernel"
)

// Mirror keeps a copy of a kernel's parameters that another goroutine
// (a UI, a control socket) can read and write while the audio thread runs.
// The two sides converge at every Sync; there is no stronger ordering.
type Mirror struct {
	addresses []uint64        // sorted
	shared    []atomic.Uint64 // float64 bits, written by both sides
	dsp       []float64       // last values seen by the audio thread
	loaded    []uint64        // shared bits read by the current Sync
}

// NewMirror seeds a mirror with the parameter defaults declared in info.
func NewMirror(info *kernel.Info) *Mirror {
	params := slices.Clone(info.Params)
	slices.SortFunc(params, func(a, b kernel.ParamInfo) int {
		switch {
		case a.Address < b.Address:
			return -1
		case a.Address > b.Address:
			return 1
		}
		return 0
	})

	m := &Mirror{
		addresses: make([]uint64, len(params)),
		shared:    make([]atomic.Uint64, len(params)),
		dsp:       make([]float64, len(params)),
		loaded:    make([]uint64, len(params)),
	}
	for i, p := range params {
		v := p.Details.DefaultValue()
		m.addresses[i] = p.Address
		m.shared[i].Store(math.Float64bits(v))
		m.dsp[i] = v
	}

	return m
}

func (m *Mirror) index(address uint64) (int, error) {
	i, found := slices.BinarySearch(m.addresses, address)
	if !found {
		return 0, fmt.Errorf("%w: %d", kernel.ErrUnknownParameter, address)
	}

	return i, nil
}

// Get returns the latest value known to the mirror.
func (m *Mirror) Get(address uint64) (float64, error) {
	i, err := m.index(address)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(m.shared[i].Load()), nil
}

// Set records a change to be delivered at the next Sync.
func (m *Mirror) Set(address uint64, value float64) error {
	i, err := m.index(address)
	if err != nil {
		return err
	}

	m.shared[i].Store(math.Float64bits(value))

	return nil
}

// Sync runs on the audio thread. It pushes values set since the last Sync
// into k, then publishes values k changed itself, e.g. through events.
// A Set racing with Sync wins over the kernel's value and reaches k at the
// next Sync.
func (m *Mirror) Sync(k kernel.Kernel) {
	for i, addr := range m.addresses {
		m.loaded[i] = m.shared[i].Load()
		v := math.Float64frombits(m.loaded[i])
		if v != m.dsp[i] {
			m.dsp[i] = v
			k.SetParameter(addr, v)
		}
	}

	for i, addr := range m.addresses {
		v := k.Parameter(addr)
		if v != m.dsp[i] {
			m.dsp[i] = v
			m.shared[i].CompareAndSwap(m.loaded[i], math.Float64bits(v))
		}
	}
}

// Mirrored is a kernel whose parameters follow a Mirror. Every Process
// call syncs first.
type Mirrored struct {
	kernel.Kernel
	mirror *Mirror
}

// NewMirrored wraps k with a fresh mirror of info's parameters.
func NewMirrored(k kernel.Kernel, info *kernel.Info) *Mirrored {
	return &Mirrored{Kernel: k, mirror: NewMirror(info)}
}

// Mirror is the side to hand to other goroutines.
func (w *Mirrored) Mirror() *Mirror { return w.mirror }

func (w *Mirrored) Process(buf audio.ViewMut, events []kernel.Event) {
	w.mirror.Sync(w.Kernel)
	w.Kernel.Process(buf, events)
}

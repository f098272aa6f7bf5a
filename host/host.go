// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"math"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/kernel"
)

// Handle identifies a kernel instance created by a Host. The zero Handle
// is never issued.
type Handle uint64

type instance struct {
	k      kernel.Kernel
	format kernel.AudioFormat

	// Reused on every Process call.
	chans  [][]float32
	events []kernel.Event
}

// Host exposes the kernels of one factory through flat, handle based
// operations. Handle management is safe for concurrent use; the
// operations on one handle must not run concurrently with each other.
type Host struct {
	factory kernel.Factory
	info    *kernel.Info

	mtx     *sync.Mutex
	handles map[Handle]*instance
	next    Handle
}

func New(factory kernel.Factory) *Host {
	return &Host{
		factory: factory,
		info:    factory.Info(),
		mtx:     &sync.Mutex{},
		handles: make(map[Handle]*instance),
	}
}

// Info is the static description shared by every instance.
func (h *Host) Info() *kernel.Info { return h.info }

// Create instantiates a kernel for the given channel counts.
func (h *Host) Create(inputChannels, outputChannels uint32, sampleRate float64) (Handle, error) {
	format := kernel.AudioFormat{
		InputChannels:  inputChannels,
		OutputChannels: outputChannels,
		SampleRate:     sampleRate,
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 1) {
		return 0, fmt.Errorf("%w: sample rate %v", ErrUnsupportedFormat, sampleRate)
	}
	if !h.info.Supports(format) {
		return 0, fmt.Errorf("%w: %d in, %d out", ErrUnsupportedFormat, inputChannels, outputChannels)
	}

	inst := &instance{
		k:      h.factory.New(format),
		format: format,
		chans:  make([][]float32, 0, outputChannels),
		events: make([]kernel.Event, 0, 64),
	}

	h.mtx.Lock()
	defer h.mtx.Unlock()

	h.next++
	h.handles[h.next] = inst

	logrus.WithFields(logrus.Fields{
		"handle":      h.next,
		"input":       inputChannels,
		"output":      outputChannels,
		"sample_rate": sampleRate,
	}).Debug("kernel created")

	return h.next, nil
}

func (h *Host) lookup(handle Handle) (*instance, error) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	inst, ok := h.handles[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}

	return inst, nil
}

func (h *Host) Destroy(handle Handle) error {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	if _, ok := h.handles[handle]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, handle)
	}
	delete(h.handles, handle)

	logrus.WithField("handle", handle).Debug("kernel destroyed")

	return nil
}

// Len is the number of live instances.
func (h *Host) Len() int {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	return len(h.handles)
}

// Kernel returns the instance behind handle.
func (h *Host) Kernel(handle Handle) (kernel.Kernel, error) {
	inst, err := h.lookup(handle)
	if err != nil {
		return nil, err
	}

	return inst.k, nil
}

func (h *Host) Reset(handle Handle) error {
	inst, err := h.lookup(handle)
	if err != nil {
		return err
	}

	inst.k.Reset()

	return nil
}

// Parameter reads a parameter. Unknown addresses panic, as in the kernel.
func (h *Host) Parameter(handle Handle, address uint64) (float64, error) {
	inst, err := h.lookup(handle)
	if err != nil {
		return 0, err
	}

	return inst.k.Parameter(address), nil
}

// SetParameter writes a parameter. Unknown addresses panic.
func (h *Host) SetParameter(handle Handle, address uint64, value float64) error {
	inst, err := h.lookup(handle)
	if err != nil {
		return err
	}

	inst.k.SetParameter(address, value)

	return nil
}

func (h *Host) Latency(handle Handle) (uint64, error) {
	inst, err := h.lookup(handle)
	if err != nil {
		return 0, err
	}

	return inst.k.Latency(), nil
}

// Process renders frames frames of the first channels buffers of data in
// place. Events are pulled from next until it returns nil; their times
// must be ascending and inside the block. Buffers shorter than frames
// panic.
func (h *Host) Process(handle Handle, data [][]float32, channels, frames uint64, next func() *EventRecord) error {
	inst, err := h.lookup(handle)
	if err != nil {
		return err
	}

	if channels != uint64(inst.format.OutputChannels) || channels > uint64(len(data)) {
		return fmt.Errorf("%w: got %d, instance has %d", ErrChannelCount, channels, inst.format.OutputChannels)
	}

	inst.chans = inst.chans[:0]
	for c := range channels {
		inst.chans = append(inst.chans, data[c][:frames])
	}

	inst.events = inst.events[:0]
	if next != nil {
		for r := next(); r != nil; r = next() {
			inst.events = append(inst.events, r.Decode())
		}
	}

	inst.k.Process(audio.NewViewMut(inst.chans), inst.events)

	return nil
}

// SPDX-License-Identifier: EPL-2.0

package host

import (
	"fmt"
	"slices"
	"sync"

	"github.com/ik5/audkern/kernel"
)

// Registry for kernel factories by name (e.g., "gain", "synth").
type Registry struct {
	factories map[string]kernel.Factory

	mtx *sync.Mutex
}

func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]kernel.Factory),
		mtx:       &sync.Mutex{},
	}
}

func (r *Registry) Register(name string, f kernel.Factory) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.factories[name] = f
}

func (r *Registry) Lookup(name string) (kernel.Factory, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKernel, name)
	}

	return f, nil
}

// Names lists the registered kernels in sorted order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	slices.Sort(names)

	return names
}

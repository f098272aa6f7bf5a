// SPDX-License-Identifier: EPL-2.0

package kernel

import (
	"fmt"
	"iter"
	"slices"
)

// ParamSet holds the current value of every declared parameter. The set
// of addresses is fixed when it is built; reads and writes never allocate.
type ParamSet struct {
	addresses []uint64 // sorted
	values    []float64
}

// NewParamSet seeds a set with the default of every parameter in params.
// Duplicate addresses panic.
func NewParamSet(params []ParamInfo) *ParamSet {
	sorted := slices.Clone(params)
	slices.SortFunc(sorted, func(a, b ParamInfo) int {
		switch {
		case a.Address < b.Address:
			return -1
		case a.Address > b.Address:
			return 1
		}
		return 0
	})

	s := &ParamSet{
		addresses: make([]uint64, len(sorted)),
		values:    make([]float64, len(sorted)),
	}
	for i, p := range sorted {
		if i > 0 && sorted[i-1].Address == p.Address {
			panic(fmt.Errorf("kernel: duplicate parameter address %d (%q, %q)",
				p.Address, sorted[i-1].ID, p.ID))
		}
		s.addresses[i] = p.Address
		s.values[i] = p.Details.DefaultValue()
	}

	return s
}

func (s *ParamSet) index(address uint64) int {
	i, found := slices.BinarySearch(s.addresses, address)
	if !found {
		panic(fmt.Errorf("%w: %d", ErrUnknownParameter, address))
	}

	return i
}

// Get returns the value at address. Unknown addresses panic.
func (s *ParamSet) Get(address uint64) float64 {
	return s.values[s.index(address)]
}

// Set overwrites the value at address. Unknown addresses panic.
func (s *ParamSet) Set(address uint64, value float64) {
	s.values[s.index(address)] = value
}

// Lookup is Get without the panic.
func (s *ParamSet) Lookup(address uint64) (float64, bool) {
	i, found := slices.BinarySearch(s.addresses, address)
	if !found {
		return 0, false
	}

	return s.values[i], true
}

func (s *ParamSet) Len() int { return len(s.addresses) }

// All yields every (address, value) pair in ascending address order.
func (s *ParamSet) All() iter.Seq2[uint64, float64] {
	return func(yield func(uint64, float64) bool) {
		for i, addr := range s.addresses {
			if !yield(addr, s.values[i]) {
				return
			}
		}
	}
}

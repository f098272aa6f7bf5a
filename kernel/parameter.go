// SPDX-License-Identifier: EPL-2.0

package kernel

// UnitKind enumerates the display units a numeric parameter can declare.
type UnitKind uint8

const (
	UnitGeneric UnitKind = iota
	UnitPercent
	UnitSeconds
	UnitSampleFrames
	UnitRate
	UnitCustom
)

// Unit is a parameter's display unit. Name is only used with UnitCustom.
type Unit struct {
	Kind UnitKind
	Name string
}

// CustomUnit returns a unit displayed with the given name.
func CustomUnit(name string) Unit { return Unit{Kind: UnitCustom, Name: name} }

// Details describes the value range of a parameter. It is either Numeric
// or Indexed.
type Details interface {
	// DefaultValue is the value a fresh kernel starts with.
	DefaultValue() float64

	details()
}

// Numeric is a continuous parameter in [Min, Max].
type Numeric struct {
	Min     float64
	Max     float64
	Unit    Unit
	Default float64
}

// Indexed is a parameter choosing one of Names by index.
type Indexed struct {
	Names   []string
	Default int
}

func (n Numeric) DefaultValue() float64 { return n.Default }
func (i Indexed) DefaultValue() float64 { return float64(i.Default) }

func (Numeric) details() {}
func (Indexed) details() {}

// DisplayScale hints how a host should draw a parameter control.
type DisplayScale uint8

const (
	Linear DisplayScale = iota
	Logarithmic
)

type Flags struct {
	Readable bool
	Writable bool
	Scale    DisplayScale
}

// ReadWrite is the common flag set for automatable parameters.
func ReadWrite(scale DisplayScale) Flags {
	return Flags{Readable: true, Writable: true, Scale: scale}
}

// ParamInfo declares one parameter of a kernel.
type ParamInfo struct {
	ID                  string
	Address             uint64
	Name                string
	Details             Details
	Flags               Flags
	DependentParameters []uint64
}

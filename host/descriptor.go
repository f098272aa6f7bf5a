// SPDX-License-Identifier: EPL-2.0

package host

import (
	"github.com/ik5/audkern/kernel"
)

// AnyChannels is the channel count meaning "any count allowed".
const AnyChannels int32 = -1

// ChannelFormat is one supported input/output channel pair.
type ChannelFormat struct {
	Input  int32
	Output int32
}

func channelCount(a kernel.AllowedChannels) int32 {
	n, exact := a.Count()
	if !exact {
		return AnyChannels
	}

	return int32(n)
}

// Parameter flag bits.
const (
	FlagLogarithmic uint32 = 1 << 22
	FlagReadable    uint32 = 1 << 30
	FlagWritable    uint32 = 1 << 31
)

// FlagsWord packs parameter flags into the host flag word.
func FlagsWord(f kernel.Flags) uint32 {
	var w uint32
	if f.Readable {
		w |= FlagReadable
	}
	if f.Writable {
		w |= FlagWritable
	}
	if f.Scale == kernel.Logarithmic {
		w |= FlagLogarithmic
	}

	return w
}

// Unit codes.
const (
	UnitGeneric      uint32 = 0
	UnitPercent      uint32 = 3
	UnitSeconds      uint32 = 4
	UnitSampleFrames uint32 = 5
	UnitRate         uint32 = 7
	UnitCustom       uint32 = 26
)

// UnitCode maps a unit to its host code. The custom name is only set for
// UnitCustom.
func UnitCode(u kernel.Unit) (code uint32, customName string) {
	switch u.Kind {
	case kernel.UnitGeneric:
		return UnitGeneric, ""
	case kernel.UnitPercent:
		return UnitPercent, ""
	case kernel.UnitSeconds:
		return UnitSeconds, ""
	case kernel.UnitSampleFrames:
		return UnitSampleFrames, ""
	case kernel.UnitRate:
		return UnitRate, ""
	case kernel.UnitCustom:
		return UnitCustom, u.Name
	}

	return UnitGeneric, ""
}

// NumericDescriptor is the flat record of a numeric parameter.
type NumericDescriptor struct {
	ID                  string
	Address             uint64
	Name                string
	Flags               uint32
	DependentParameters []uint64

	Min            float64
	Max            float64
	Unit           uint32
	UnitCustomName string
	Default        float64
}

// IndexedDescriptor is the flat record of an indexed parameter.
type IndexedDescriptor struct {
	ID                  string
	Address             uint64
	Name                string
	Flags               uint32
	DependentParameters []uint64

	ValueNames []string
	Default    uint64
}

// Describe emits one descriptor per declared parameter, in declaration
// order, through the callback matching its kind.
func Describe(info *kernel.Info, numeric func(NumericDescriptor), indexed func(IndexedDescriptor)) {
	for _, p := range info.Params {
		switch d := p.Details.(type) {
		case kernel.Numeric:
			unit, custom := UnitCode(d.Unit)
			numeric(NumericDescriptor{
				ID:                  p.ID,
				Address:             p.Address,
				Name:                p.Name,
				Flags:               FlagsWord(p.Flags),
				DependentParameters: p.DependentParameters,
				Min:                 d.Min,
				Max:                 d.Max,
				Unit:                unit,
				UnitCustomName:      custom,
				Default:             d.Default,
			})
		case kernel.Indexed:
			indexed(IndexedDescriptor{
				ID:                  p.ID,
				Address:             p.Address,
				Name:                p.Name,
				Flags:               FlagsWord(p.Flags),
				DependentParameters: p.DependentParameters,
				ValueNames:          d.Names,
				Default:             uint64(d.Default),
			})
		}
	}
}

// Formats lists the supported channel formats of info.
func Formats(info *kernel.Info) []ChannelFormat {
	out := make([]ChannelFormat, len(info.Formats))
	for i, f := range info.Formats {
		out[i] = ChannelFormat{Input: channelCount(f.Input), Output: channelCount(f.Output)}
	}

	return out
}

// Bypass returns 1 and the bypass address when info declares a bypass
// parameter, else 0 and 0.
func Bypass(info *kernel.Info) (hasBypass, address uint64) {
	if !info.HasBypass {
		return 0, 0
	}

	return 1, info.BypassParam
}

// KernelType is the host tag: 0 for effects, 1 for instruments.
func KernelType(info *kernel.Info) uint32 { return uint32(info.Type) }

// SPDX-License-Identifier: EPL-2.0

package kernel

// Type classifies a kernel for the host.
type Type uint32

const (
	Effect Type = iota
	Instrument
)

func (t Type) String() string {
	switch t {
	case Effect:
		return "effect"
	case Instrument:
		return "instrument"
	}

	return "unknown"
}

// Info is the static description of a kernel. It is built once, before
// any kernel is created, and never modified afterwards; kernels usually
// expose it through sync.OnceValue.
type Info struct {
	Params []ParamInfo

	HasBypass   bool
	BypassParam uint64

	Type    Type
	Formats []AllowedFormat
}

// Param returns the declaration of the parameter at address.
func (i *Info) Param(address uint64) (*ParamInfo, bool) {
	for idx := range i.Params {
		if i.Params[idx].Address == address {
			return &i.Params[idx], true
		}
	}

	return nil, false
}

// ParamByID returns the declaration with the given string identifier.
func (i *Info) ParamByID(id string) (*ParamInfo, bool) {
	for idx := range i.Params {
		if i.Params[idx].ID == id {
			return &i.Params[idx], true
		}
	}

	return nil, false
}

// Supports reports whether one of the allowed formats accepts the channel
// counts of format.
func (i *Info) Supports(format AudioFormat) bool {
	for _, f := range i.Formats {
		if f.Allows(format.InputChannels, format.OutputChannels) {
			return true
		}
	}

	return false
}

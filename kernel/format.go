// SPDX-License-Identifier: EPL-2.0

package kernel

// AudioFormat is the stream layout a kernel instance is created for.
type AudioFormat struct {
	InputChannels  uint32
	OutputChannels uint32
	SampleRate     float64
}

// AllowedChannels is either "any channel count" or one exact count.
type AllowedChannels struct {
	any   bool
	count uint32
}

// AnyChannels allows every channel count.
func AnyChannels() AllowedChannels { return AllowedChannels{any: true} }

// Channels allows exactly n channels.
func Channels(n uint32) AllowedChannels { return AllowedChannels{count: n} }

// Count returns the exact count and false for AnyChannels.
func (a AllowedChannels) Count() (uint32, bool) { return a.count, !a.any }

func (a AllowedChannels) IsAny() bool { return a.any }

func (a AllowedChannels) Allows(n uint32) bool { return a.any || a.count == n }

// AllowedFormat pairs allowed input and output channel counts.
type AllowedFormat struct {
	Input  AllowedChannels
	Output AllowedChannels
}

func (f AllowedFormat) Allows(input, output uint32) bool {
	return f.Input.Allows(input) && f.Output.Allows(output)
}

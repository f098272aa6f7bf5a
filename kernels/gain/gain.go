// SPDX-License-Identifier: EPL-2.0

// Package gain is a minimal effect: it scales every sample by one
// automatable factor and can be bypassed.
package gain

import (
	"sync"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/kernel"
)

// Parameter addresses.
const (
	ParamBypass uint64 = iota
	ParamGain
)

// DefaultGain is the gain of a fresh kernel.
const DefaultGain = 0.1

var info = sync.OnceValue(func() *kernel.Info {
	return &kernel.Info{
		Params: []kernel.ParamInfo{
			{
				ID:      "bypass",
				Address: ParamBypass,
				Name:    "Bypass",
				Details: kernel.Numeric{Min: 0, Max: 1, Unit: kernel.Unit{Kind: kernel.UnitGeneric}},
				Flags:   kernel.ReadWrite(kernel.Linear),
			},
			{
				ID:      "gain",
				Address: ParamGain,
				Name:    "Gain",
				Details: kernel.Numeric{Min: 0, Max: 1, Unit: kernel.Unit{Kind: kernel.UnitGeneric}, Default: DefaultGain},
				Flags:   kernel.ReadWrite(kernel.Logarithmic),
			},
		},
		HasBypass:   true,
		BypassParam: ParamBypass,
		Type:        kernel.Effect,
		Formats: []kernel.AllowedFormat{
			{Input: kernel.Channels(1), Output: kernel.Channels(1)},
			{Input: kernel.Channels(2), Output: kernel.Channels(2)},
		},
	}
})

// Config is derived from the parameters on every change.
type Config struct {
	Gain   float32
	Bypass bool
}

func (c Config) Bypassed() bool { return c.Bypass }

// Derive computes the configuration. Bypass engages from 0.5 up, so a
// continuous host control behaves like a switch.
func Derive(_ kernel.AudioFormat, params *kernel.ParamSet) Config {
	return Config{
		Gain:   float32(params.Get(ParamGain)),
		Bypass: params.Get(ParamBypass) >= 0.5,
	}
}

// Kernel is a running gain effect. It keeps no DSP state.
type Kernel struct {
	*kernel.Core[Config, struct{}]
	kernel.IgnoreMIDI
}

func New(format kernel.AudioFormat) *Kernel {
	return &Kernel{Core: kernel.NewCore[Config, struct{}](info(), format, Derive, nil)}
}

func (k *Kernel) Process(buf audio.ViewMut, events []kernel.Event) {
	kernel.Run(k.Core, buf, events, k)
}

func (k *Kernel) Render(buf audio.ViewMut) {
	gain := k.Config().Gain

	for c := range buf.NumChannels() {
		ch := buf.Channel(c)
		for i := range ch {
			ch[i] *= gain
		}
	}
}

// Factory registers the gain effect with a host.
type Factory struct{}

func (Factory) Info() *kernel.Info { return info() }

func (Factory) New(format kernel.AudioFormat) kernel.Kernel { return New(format) }

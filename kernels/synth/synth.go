// SPDX-License-Identifier: EPL-2.0

// Package synth is a small polyphonic instrument: sine voices with a
// linear attack/release envelope, played over MIDI.
package synth

import (
	"math"
	"sync"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/kernel"
	"github.com/ik5/audkern/midi"
	"github.com/ik5/audkern/pitch"
	"github.com/ik5/audkern/voices"
)

// Parameter addresses.
const (
	ParamBypass uint64 = iota
	ParamVolume
	ParamTuning
	ParamAttack
	ParamRelease
)

// NumVoices is the polyphony. Notes beyond it are dropped.
const NumVoices = 8

const (
	DefaultVolume  = 0.5
	DefaultAttack  = 0.01
	DefaultRelease = 0.3

	// minEnvelope keeps envelope steps finite.
	minEnvelope = 0.001
)

var info = sync.OnceValue(func() *kernel.Info {
	seconds := kernel.Unit{Kind: kernel.UnitSeconds}

	return &kernel.Info{
		Params: []kernel.ParamInfo{
			{
				ID: "bypass", Address: ParamBypass, Name: "Bypass",
				Details: kernel.Numeric{Min: 0, Max: 1},
				Flags:   kernel.ReadWrite(kernel.Linear),
			},
			{
				ID: "volume", Address: ParamVolume, Name: "Volume",
				Details: kernel.Numeric{Min: 0, Max: 1, Default: DefaultVolume},
				Flags:   kernel.ReadWrite(kernel.Logarithmic),
			},
			{
				ID: "tuning", Address: ParamTuning, Name: "Tuning",
				Details: kernel.Numeric{Min: 415, Max: 466, Unit: kernel.CustomUnit("Hz"), Default: pitch.ConcertA},
				Flags:   kernel.ReadWrite(kernel.Linear),
			},
			{
				ID: "attack", Address: ParamAttack, Name: "Attack",
				Details: kernel.Numeric{Min: minEnvelope, Max: 5, Unit: seconds, Default: DefaultAttack},
				Flags:   kernel.ReadWrite(kernel.Logarithmic),
			},
			{
				ID: "release", Address: ParamRelease, Name: "Release",
				Details: kernel.Numeric{Min: minEnvelope, Max: 10, Unit: seconds, Default: DefaultRelease},
				Flags:   kernel.ReadWrite(kernel.Logarithmic),
			},
		},
		HasBypass:   true,
		BypassParam: ParamBypass,
		Type:        kernel.Instrument,
		Formats: []kernel.AllowedFormat{
			{Input: kernel.Channels(0), Output: kernel.Channels(1)},
			{Input: kernel.Channels(0), Output: kernel.Channels(2)},
		},
	}
})

// Config is derived from the parameters on every change.
type Config struct {
	Scale       pitch.EqualTemperament
	Volume      float32
	SampleRate  float64
	AttackStep  float32 // envelope rise per frame
	ReleaseStep float32 // envelope fall per frame
	Mute        bool
}

// Bypassed is always false: an instrument has no input to pass through,
// so a bypassed synth renders silence instead.
func (Config) Bypassed() bool { return false }

func envelopeStep(seconds, sampleRate float64) float32 {
	return float32(1 / (max(seconds, minEnvelope) * sampleRate))
}

func Derive(format kernel.AudioFormat, params *kernel.ParamSet) Config {
	return Config{
		Scale:       pitch.NewEqualTemperament(float32(params.Get(ParamTuning))),
		Volume:      float32(params.Get(ParamVolume)),
		SampleRate:  format.SampleRate,
		AttackStep:  envelopeStep(params.Get(ParamAttack), format.SampleRate),
		ReleaseStep: envelopeStep(params.Get(ParamRelease), format.SampleRate),
		Mute:        params.Get(ParamBypass) >= 0.5,
	}
}

type stage uint8

const (
	idle stage = iota
	attack
	sustain
	release
)

type voice struct {
	stage    stage
	phase    float64 // in cycles, [0, 1)
	phaseInc float64
	amp      float32
	env      float32
}

func (v *voice) NoteOn(cfg *Config, note, velocity uint8) {
	v.stage = attack
	v.phase = 0
	v.phaseInc = float64(cfg.Scale.ToFrequency(float32(note))) / cfg.SampleRate
	v.amp = float32(velocity) / 127
	v.env = 0
}

func (v *voice) NoteOff(*Config, uint8) {
	if v.stage != idle {
		v.stage = release
	}
}

func (v *voice) IsRunning() bool { return v.stage != idle }

func (v *voice) next(cfg *Config) float32 {
	switch v.stage {
	case idle:
		return 0
	case attack:
		v.env += cfg.AttackStep
		if v.env >= 1 {
			v.env = 1
			v.stage = sustain
		}
	case release:
		v.env -= cfg.ReleaseStep
		if v.env <= 0 {
			v.env = 0
			v.stage = idle
			return 0
		}
	}

	x := float32(math.Sin(2 * math.Pi * v.phase))
	v.phase += v.phaseInc
	if v.phase >= 1 {
		v.phase -= math.Floor(v.phase)
	}

	return x * v.amp * v.env
}

// State is the DSP state cleared by Reset.
type State struct {
	Voices [NumVoices]voice
	// noteCfg is the configuration handed to voices on note events.
	noteCfg Config
}

// Kernel is a running synth.
type Kernel struct {
	*kernel.Core[Config, State]

	behavior midi.Behavior
	manager  *voices.Manager[Config, *voice]
	voices   []*voice // points into the Core state
}

// New creates a synth listening on every cable and channel.
func New(format kernel.AudioFormat) *Kernel {
	return NewWithBehavior(format, midi.Omni())
}

// NewWithBehavior creates a synth that only plays notes accepted by behavior.
func NewWithBehavior(format kernel.AudioFormat, behavior midi.Behavior) *Kernel {
	k := &Kernel{
		Core:     kernel.NewCore[Config, State](info(), format, Derive, nil),
		behavior: behavior,
		manager:  voices.NewManager[Config, *voice](NumVoices),
		voices:   make([]*voice, NumVoices),
	}
	for i := range k.voices {
		k.voices[i] = &k.State().Voices[i]
	}

	return k
}

func (k *Kernel) Process(buf audio.ViewMut, events []kernel.Event) {
	kernel.Run(k.Core, buf, events, k)
}

// Reset silences every voice at once.
func (k *Kernel) Reset() {
	k.Core.Reset()
	k.manager.Reset()
}

// Active is the number of notes being tracked as sounding.
func (k *Kernel) Active() int { return k.manager.Active() }

func (k *Kernel) HandleMIDI(msg kernel.MIDIMessage) {
	m, ok := midi.Parse(msg.Cable, msg.Data(), k.behavior)
	if !ok {
		return
	}

	st := k.State()
	st.noteCfg = k.Config()

	switch m.Kind {
	case midi.NoteOn:
		k.manager.NoteOn(k.voices, &st.noteCfg, m.Note, m.Velocity)
	case midi.NoteOff:
		k.manager.NoteOff(k.voices, &st.noteCfg, m.Note, m.Velocity)
	}
}

// Render overwrites buf with the mix of all voices, the same signal on
// every channel.
func (k *Kernel) Render(buf audio.ViewMut) {
	if buf.NumChannels() == 0 {
		return
	}

	cfg := k.Config()
	first := buf.Channel(0)

	// Muted voices keep running so released notes still free their slots.
	volume := cfg.Volume
	if cfg.Mute {
		volume = 0
	}

	st := k.State()
	for i := range first {
		var x float32
		for v := range st.Voices {
			x += st.Voices[v].next(&cfg)
		}
		first[i] = x * volume
	}

	for c := 1; c < buf.NumChannels(); c++ {
		copy(buf.Channel(c), first)
	}
}

// Factory registers the synth with a host.
type Factory struct{}

func (Factory) Info() *kernel.Info { return info() }

func (Factory) New(format kernel.AudioFormat) kernel.Kernel { return New(format) }

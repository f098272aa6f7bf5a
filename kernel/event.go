// SPDX-License-Identifier: EPL-2.0

package kernel

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// EventKind tags the payload of an Event.
type EventKind uint8

const (
	ParameterChange EventKind = iota
	RampedParameterChange
	MIDI
)

func (k EventKind) String() string {
	switch k {
	case ParameterChange:
		return "ParameterChange"
	case RampedParameterChange:
		return "RampedParameterChange"
	case MIDI:
		return "MIDI"
	}

	return "Unknown"
}

// ParamChange is the payload of ParameterChange and RampedParameterChange
// events. RampFrames is zero for ParameterChange.
type ParamChange struct {
	Address    uint64
	Value      float64
	RampFrames uint32
}

// MIDIMessage is the payload of MIDI events: up to three bytes received on
// Cable, of which ValidBytes are meaningful.
type MIDIMessage struct {
	Cable      uint8
	ValidBytes uint16
	Bytes      [3]byte
}

// Data returns the valid bytes of the message.
func (m *MIDIMessage) Data() []byte {
	return m.Bytes[:min(int(m.ValidBytes), len(m.Bytes))]
}

// Event is a time-stamped control event. Time counts frames from the start
// of the block being processed. Exactly one of Param and MIDI is
// meaningful, selected by Kind.
//
// Events are plain values so a host can hand them over without touching
// the heap on the audio thread.
type Event struct {
	Time  int64
	Kind  EventKind
	Param ParamChange
	MIDI  MIDIMessage
}

// NewParameterChange builds an immediate parameter change.
func NewParameterChange(time int64, address uint64, value float64) Event {
	return Event{
		Time:  time,
		Kind:  ParameterChange,
		Param: ParamChange{Address: address, Value: value},
	}
}

// NewRampedParameterChange builds a parameter change carrying a ramp
// duration in frames.
func NewRampedParameterChange(time int64, address uint64, value float64, rampFrames uint32) Event {
	return Event{
		Time:  time,
		Kind:  RampedParameterChange,
		Param: ParamChange{Address: address, Value: value, RampFrames: rampFrames},
	}
}

// NewMIDI builds a MIDI event from raw bytes. Bytes past the third are
// dropped; this core only handles short messages.
func NewMIDI(time int64, cable uint8, data []byte) Event {
	ev := Event{Time: time, Kind: MIDI, MIDI: MIDIMessage{Cable: cable}}
	n := copy(ev.MIDI.Bytes[:], data)
	ev.MIDI.ValidBytes = uint16(n)

	return ev
}

// NewMIDIMessage builds a MIDI event from a gomidi message.
func NewMIDIMessage(time int64, cable uint8, msg gomidi.Message) Event {
	return NewMIDI(time, cable, []byte(msg))
}

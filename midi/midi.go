// SPDX-License-Identifier: EPL-2.0

package midi

import (
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Status nibbles understood by Parse.
const (
	statusNoteOff uint8 = 0x80
	statusNoteOn  uint8 = 0x90
)

// Filter is the kind of a Behavior.
type Filter uint8

const (
	FilterOmni Filter = iota
	FilterCable
	FilterChannel
	FilterSpecific
)

// Behavior selects which cable/channel combinations Parse accepts.
// Build it with Omni, CableOmni, ChannelOmni or Specific; the zero value is
// Omni. Cable and Channel are only meaningful for the filters that use them.
type Behavior struct {
	Filter  Filter
	Cable   uint8
	Channel uint8
}

// Omni accepts every cable and channel.
func Omni() Behavior { return Behavior{Filter: FilterOmni} }

// CableOmni accepts any channel on one cable.
func CableOmni(cable uint8) Behavior { return Behavior{Filter: FilterCable, Cable: cable} }

// ChannelOmni accepts one channel on any cable.
func ChannelOmni(channel uint8) Behavior {
	return Behavior{Filter: FilterChannel, Channel: channel}
}

// Specific accepts exactly one cable and channel pair.
func Specific(cable, channel uint8) Behavior {
	return Behavior{Filter: FilterSpecific, Cable: cable, Channel: channel}
}

func (b Behavior) accepts(cable, channel uint8) bool {
	switch b.Filter {
	case FilterOmni:
		return true
	case FilterCable:
		return b.Cable == cable
	case FilterChannel:
		return b.Channel == channel
	case FilterSpecific:
		return b.Cable == cable && b.Channel == channel
	}

	return false
}

// Kind tags a decoded Message.
type Kind uint8

const (
	NoteOn Kind = iota + 1
	NoteOff
)

func (k Kind) String() string {
	switch k {
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	}

	return "Unknown"
}

// Message is a decoded note on or note off.
type Message struct {
	Kind     Kind
	Note     uint8
	Velocity uint8
}

// Parse decodes a three byte note message received on cable.
// ok is false when bytes is empty, when behavior filters the message out,
// or when it is not a note on/off message; none of these are errors.
// A note on with velocity zero decodes as NoteOff.
func Parse(cable uint8, bytes []byte, behavior Behavior) (msg Message, ok bool) {
	if len(bytes) == 0 {
		return Message{}, false
	}

	channel := bytes[0] & 0x0F
	if !behavior.accepts(cable, channel) {
		return Message{}, false
	}

	if len(bytes) != 3 {
		return Message{}, false
	}

	msg = Message{Note: bytes[1], Velocity: bytes[2]}

	switch bytes[0] & 0xF0 {
	case statusNoteOff:
		msg.Kind = NoteOff
	case statusNoteOn:
		msg.Kind = NoteOn
		if msg.Velocity == 0 {
			msg.Kind = NoteOff
		}
	default:
		return Message{}, false
	}

	return msg, true
}

// ParseMessage is Parse for messages built with gitlab.com/gomidi/midi/v2.
func ParseMessage(cable uint8, msg gomidi.Message, behavior Behavior) (Message, bool) {
	return Parse(cable, []byte(msg), behavior)
}

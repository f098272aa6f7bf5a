// SPDX-License-Identifier: EPL-2.0

package host

import (
	"github.com/ik5/audkern/kernel"
)

// Event record type tags.
const (
	EventParameterChange       uint64 = 0
	EventRampedParameterChange uint64 = 1
	EventMIDI                  uint64 = 2
)

// EventRecord is the flat event layout a host hands over. Type selects
// which fields are meaningful.
type EventRecord struct {
	Time           int64
	Type           uint64
	ParamAddress   uint64
	ParamValue     float64
	RampFrames     uint32
	MIDICable      uint8
	MIDIValidBytes uint16
	MIDIBytes      [3]byte
}

// Decode converts a record to an event. An unknown type decodes as an
// immediate parameter change.
func (r *EventRecord) Decode() kernel.Event {
	switch r.Type {
	case EventRampedParameterChange:
		return kernel.NewRampedParameterChange(r.Time, r.ParamAddress, r.ParamValue, r.RampFrames)
	case EventMIDI:
		n := min(int(r.MIDIValidBytes), len(r.MIDIBytes))
		return kernel.NewMIDI(r.Time, r.MIDICable, r.MIDIBytes[:n])
	}

	return kernel.NewParameterChange(r.Time, r.ParamAddress, r.ParamValue)
}

// Record is the inverse of Decode.
func Record(ev kernel.Event) EventRecord {
	r := EventRecord{Time: ev.Time}

	switch ev.Kind {
	case kernel.ParameterChange:
		r.Type = EventParameterChange
		r.ParamAddress, r.ParamValue = ev.Param.Address, ev.Param.Value
	case kernel.RampedParameterChange:
		r.Type = EventRampedParameterChange
		r.ParamAddress, r.ParamValue = ev.Param.Address, ev.Param.Value
		r.RampFrames = ev.Param.RampFrames
	case kernel.MIDI:
		r.Type = EventMIDI
		r.MIDICable = ev.MIDI.Cable
		r.MIDIValidBytes = ev.MIDI.ValidBytes
		r.MIDIBytes = ev.MIDI.Bytes
	}

	return r
}

// SliceSource returns a pull-style event source over records; it yields
// nil once they are exhausted.
func SliceSource(records []EventRecord) func() *EventRecord {
	i := 0
	return func() *EventRecord {
		if i == len(records) {
			return nil
		}
		i++

		return &records[i-1]
	}
}

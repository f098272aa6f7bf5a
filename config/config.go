// SPDX-License-Identifier: EPL-2.0

// Package config loads and saves render sessions: which kernel to run,
// how to set it up and which events to play through it.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/sirupsen/logrus"
	gomidi "gitlab.com/gomidi/midi/v2"

	"github.com/ik5/audkern/kernel"
)

var (
	ErrUnknownParam = errors.New("config: unknown parameter")
	ErrInvalidEvent = errors.New("config: invalid event")
	ErrInvalid      = errors.New("config: invalid session")
)

// EventType names the kind of a scheduled event.
type EventType string

const (
	EventParam   EventType = "param"
	EventNoteOn  EventType = "noteOn"
	EventNoteOff EventType = "noteOff"
)

// EventConfig is one scheduled event. At is in seconds from the start of
// the render.
type EventConfig struct {
	At   float64   `json:"at"`
	Type EventType `json:"type"`

	// Parameter changes.
	Param string  `json:"param,omitempty"`
	Value float64 `json:"value,omitempty"`
	Ramp  float64 `json:"ramp,omitempty"` // seconds

	// Notes.
	Cable    uint8 `json:"cable,omitempty"`
	Channel  uint8 `json:"channel,omitempty"`
	Note     uint8 `json:"note,omitempty"`
	Velocity uint8 `json:"velocity,omitempty"`
}

// Session is a complete render description.
type Session struct {
	Kernel    string `json:"kernel"`
	BlockSize int    `json:"blockSize,omitempty"`
	BitDepth  int    `json:"bitDepth,omitempty"`

	// Instruments have no input; these describe the rendered output.
	SampleRate int     `json:"sampleRate,omitempty"`
	Channels   int     `json:"channels,omitempty"`
	Duration   float64 `json:"duration,omitempty"` // seconds

	Params map[string]float64 `json:"params,omitempty"` // by parameter id
	Events []EventConfig      `json:"events,omitempty"`
}

// DefaultConfig returns a session with sensible defaults.
func DefaultConfig() *Session {
	return &Session{
		Kernel:     "gain",
		BlockSize:  256,
		BitDepth:   16,
		SampleRate: 48000,
		Channels:   2,
		Duration:   4,
	}
}

// Load reads a session from path, or returns defaults if it does not exist.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Debug("no session file, using defaults")
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}

	s := DefaultConfig()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing session %s: %w", path, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes the session to path, creating its directory.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}

	return nil
}

// Validate checks the fields that do not depend on the kernel.
func (s *Session) Validate() error {
	switch {
	case s.Kernel == "":
		return fmt.Errorf("%w: no kernel", ErrInvalid)
	case s.BlockSize < 0:
		return fmt.Errorf("%w: negative block size %d", ErrInvalid, s.BlockSize)
	case !slices.Contains([]int{16, 24, 32}, s.BitDepth):
		return fmt.Errorf("%w: bit depth %d", ErrInvalid, s.BitDepth)
	case s.SampleRate <= 0 || s.Channels <= 0 || s.Duration < 0:
		return fmt.Errorf("%w: output %d Hz, %d channels, %gs", ErrInvalid, s.SampleRate, s.Channels, s.Duration)
	}

	return nil
}

// Frames is the output length of an instrument render.
func (s *Session) Frames() int {
	return int(math.Round(s.Duration * float64(s.SampleRate)))
}

// ApplyParams sets every configured parameter on k.
func (s *Session) ApplyParams(k kernel.Kernel, info *kernel.Info) error {
	ids := make([]string, 0, len(s.Params))
	for id := range s.Params {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	for _, id := range ids {
		p, ok := info.ParamByID(id)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownParam, id)
		}
		k.SetParameter(p.Address, s.Params[id])

		logrus.WithFields(logrus.Fields{"param": id, "value": s.Params[id]}).Debug("parameter set")
	}

	return nil
}

// BuildEvents converts the scheduled events to kernel events at
// sampleRate, in session order.
func (s *Session) BuildEvents(info *kernel.Info, sampleRate float64) ([]kernel.Event, error) {
	events := make([]kernel.Event, 0, len(s.Events))

	for i, e := range s.Events {
		if e.At < 0 {
			return nil, fmt.Errorf("%w: event %d at %gs", ErrInvalidEvent, i, e.At)
		}
		frame := int64(math.Round(e.At * sampleRate))

		switch e.Type {
		case EventParam:
			p, ok := info.ParamByID(e.Param)
			if !ok {
				return nil, fmt.Errorf("%w: event %d: %w: %q", ErrInvalidEvent, i, ErrUnknownParam, e.Param)
			}
			if e.Ramp > 0 {
				ramp := uint32(math.Round(e.Ramp * sampleRate))
				events = append(events, kernel.NewRampedParameterChange(frame, p.Address, e.Value, ramp))
			} else {
				events = append(events, kernel.NewParameterChange(frame, p.Address, e.Value))
			}

		case EventNoteOn, EventNoteOff:
			if e.Channel > 15 || e.Note > 127 || e.Velocity > 127 {
				return nil, fmt.Errorf("%w: event %d: channel %d note %d velocity %d",
					ErrInvalidEvent, i, e.Channel, e.Note, e.Velocity)
			}

			msg := gomidi.NoteOn(e.Channel, e.Note, e.Velocity)
			if e.Type == EventNoteOff {
				msg = gomidi.NoteOff(e.Channel, e.Note)
			}
			events = append(events, kernel.NewMIDIMessage(frame, e.Cable, msg))

		default:
			return nil, fmt.Errorf("%w: event %d: type %q", ErrInvalidEvent, i, e.Type)
		}
	}

	return events, nil
}

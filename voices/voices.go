// SPDX-License-Identifier: EPL-2.0

package voices

import (
	"fmt"
	"math/bits"
)

// Voice is one synthesis voice of a polyphonic instrument. C is the
// configuration value handed to the voice on every note event.
type Voice[C any] interface {
	NoteOn(cfg *C, note, velocity uint8)
	NoteOff(cfg *C, velocity uint8)

	// IsRunning returns false once the voice can take a new note without
	// an audible glitch, i.e. its release has finished. A voice may stop
	// running before it receives a note off; it then gets no note off.
	IsRunning() bool
}

type usedVoice struct {
	slot int
	note uint8
}

// Manager allocates voices to notes. It never steals a sounding voice:
// when every voice is busy a new note is dropped.
type Manager[C any, V Voice[C]] struct {
	numVoices int
	used      []usedVoice // allocation order
	free      []uint64    // bitset over slots
}

// NewManager returns a manager for exactly numVoices voices.
func NewManager[C any, V Voice[C]](numVoices int) *Manager[C, V] {
	return &Manager[C, V]{
		numVoices: numVoices,
		used:      make([]usedVoice, 0, numVoices),
		free:      make([]uint64, (numVoices+63)/64),
	}
}

func (m *Manager[C, V]) NumVoices() int { return m.numVoices }

// Active returns the number of notes currently tracked as sounding.
func (m *Manager[C, V]) Active() int { return len(m.used) }

func (m *Manager[C, V]) check(voices []V) {
	if len(voices) != m.numVoices {
		panic(fmt.Errorf("%w: got %d voices, manager has %d",
			ErrVoiceCountMismatch, len(voices), m.numVoices))
	}
}

func (m *Manager[C, V]) firstFree() (int, bool) {
	for w, word := range m.free {
		if word != 0 {
			return w*64 + bits.TrailingZeros64(word), true
		}
	}

	return 0, false
}

// NoteOn starts note on the lowest numbered free voice. The note is
// silently dropped when no voice is free.
func (m *Manager[C, V]) NoteOn(voices []V, cfg *C, note, velocity uint8) {
	m.check(voices)

	// Forget voices that finished on their own, e.g. a drum hit that
	// decayed before its note off.
	kept := m.used[:0]
	for _, u := range m.used {
		if voices[u.slot].IsRunning() {
			kept = append(kept, u)
		}
	}
	m.used = kept

	for i, v := range voices {
		if !v.IsRunning() {
			m.free[i>>6] |= 1 << (i & 63)
		}
	}

	slot, ok := m.firstFree()
	if !ok {
		return
	}

	m.free[slot>>6] &^= 1 << (slot & 63)
	voices[slot].NoteOn(cfg, note, velocity)
	m.used = append(m.used, usedVoice{slot: slot, note: note})
}

// NoteOff releases every voice playing note. Voices that already stopped
// are forgotten without a call.
func (m *Manager[C, V]) NoteOff(voices []V, cfg *C, note, velocity uint8) {
	m.check(voices)

	kept := m.used[:0]
	for _, u := range m.used {
		if u.note != note {
			kept = append(kept, u)
			continue
		}

		if voices[u.slot].IsRunning() {
			voices[u.slot].NoteOff(cfg, velocity)
		}
	}
	m.used = kept
}

// NoteOnDefault is NoteOn with the zero configuration.
func (m *Manager[C, V]) NoteOnDefault(voices []V, note, velocity uint8) {
	var cfg C
	m.NoteOn(voices, &cfg, note, velocity)
}

// NoteOffDefault is NoteOff with the zero configuration.
func (m *Manager[C, V]) NoteOffDefault(voices []V, note, velocity uint8) {
	var cfg C
	m.NoteOff(voices, &cfg, note, velocity)
}

// Reset forgets every tracked note. Call it after silencing the voices.
func (m *Manager[C, V]) Reset() {
	m.used = m.used[:0]
	clear(m.free)
}

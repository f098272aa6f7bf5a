// SPDX-License-Identifier: EPL-2.0

// Package pitch maps MIDI note numbers to frequencies.
package pitch

import "math"

// ConcertA is the default frequency of note 69 (A4) in Hz.
const ConcertA = 440.0

// Scale converts a (possibly fractional) note number to a frequency in Hz.
type Scale interface {
	ToFrequency(note float32) float32
}

// EqualTemperament is twelve-tone equal temperament anchored at note 69.
type EqualTemperament struct {
	freqForNote69 float32
}

// NewEqualTemperament returns a scale with note 69 tuned to concertA Hz.
func NewEqualTemperament(concertA float32) EqualTemperament {
	return EqualTemperament{freqForNote69: concertA}
}

// DefaultEqualTemperament is tuned to A4 = 440 Hz.
func DefaultEqualTemperament() EqualTemperament {
	return NewEqualTemperament(ConcertA)
}

func (s EqualTemperament) ConcertA() float32 { return s.freqForNote69 }

func (s EqualTemperament) ToFrequency(note float32) float32 {
	offset := float64(note) - 69

	return s.freqForNote69 * float32(math.Exp2(offset/12))
}

// SPDX-License-Identifier: EPL-2.0

// Package voices allocates synthesis voices to MIDI notes.
//
// The instrument owns a fixed slice of voices; the Manager only decides
// which slot plays which note:
//
//	vs := make([]*SineVoice, 8)
//	m := voices.NewManager[Config, *SineVoice](len(vs))
//	m.NoteOn(vs, &cfg, 60, 100)
//	m.NoteOff(vs, &cfg, 60, 0)
//
// # Allocation policy
//
//   - A note on goes to the lowest numbered voice that is not running.
//   - When every voice is running the new note is dropped. Sounding voices
//     are never stolen.
//   - A note off reaches every voice started for that note, so a note
//     re-triggered without an intervening note off is released on all of
//     its voices.
//   - Voices that stopped by themselves are forgotten and get no note off.
//
// Passing a voice slice of the wrong length panics with
// ErrVoiceCountMismatch: it is a programming error, not a runtime
// condition.
package voices

// SPDX-License-Identifier: EPL-2.0

// Package midi decodes MIDI 1.0 short note messages for kernels.
//
// Only note on and note off are decoded; everything else (controllers,
// system exclusive, running status) yields ok == false. Messages can be
// filtered by cable (virtual port) and channel:
//
//	msg, ok := midi.Parse(cable, bytes, midi.ChannelOmni(0))
//	if ok && msg.Kind == midi.NoteOn {
//	    // start a voice
//	}
//
// Messages produced with gitlab.com/gomidi/midi/v2 are accepted by
// ParseMessage.
package midi

// SPDX-License-Identifier: EPL-2.0

// Package audkern runs sample-accurate DSP kernels over audio files and
// streams.
//
// A kernel (see the kernel package) processes one block of audio in place
// and applies time-stamped parameter changes and MIDI notes at the exact
// frame they are due. This package drives a kernel block by block from an
// audio.Source:
//
//	src, _ := formats.Open(formats.NewRegistry(), "drums.wav")
//	k := gain.New(kernel.AudioFormat{InputChannels: 2, OutputChannels: 2, SampleRate: 44100})
//
//	out := audkern.NewStream(src, k, 256, []kernel.Event{
//	    kernel.NewParameterChange(44100, gain.ParamGain, 0.5), // after one second
//	})
//	wav.WriteFile("out.wav", out, 16)
//
// Stream is itself an audio.Source, so it can feed a file writer, a sound
// card or another Stream. Render collects the whole result in memory.
//
// Instruments have no input. Render them over audio.NewSilence:
//
//	src := audio.NewSilence(48000, 2, 48000*4)
//	k := synth.New(kernel.AudioFormat{OutputChannels: 2, SampleRate: 48000})
//	samples, err := audkern.Render(src, k, 0, notes)
//
// # Packages
//
//   - audio: non-owning multichannel views and the Source interface
//   - kernel: events, parameters, the Kernel contract and the event/audio
//     interleaver
//   - voices, midi, pitch: building blocks for instruments
//   - kernels/gain, kernels/synth: ready made kernels
//   - host: the flat, handle based boundary for host applications
//   - formats: WAV, AIFF, MP3 and Ogg Vorbis input, WAV output
//   - config: JSON render sessions
package audkern

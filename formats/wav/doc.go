// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes integer PCM WAV files (16, 24 or 32 bit, any
// channel count and sample rate) through github.com/go-audio/wav.
//
// Decoder turns a file into an audio.Source of float32 samples in [-1, 1].
// Readers that cannot seek are buffered in memory first:
//
//	f, err := os.Open("drums.wav")
//	...
//	src, err := wav.Decoder{}.Decode(f)
//
// Encode drains any audio.Source into a seekable writer and WriteFile does
// the same for a path. Samples outside [-1, 1] are clamped:
//
//	frames, err := wav.WriteFile("out.wav", stream, 24)
//
// Files that are not RIFF/WAVE fail with ErrNotWavFile, float or broken
// layouts with ErrUnsupportedWavLayout, and other depths with
// ErrUnsupportedBitDepth.
package wav

// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files:
//
//	decoder := mp3.Decoder{}
//	file, _ := os.Open("audio.mp3")
//	source, err := decoder.Decode(file)
//
// go-mp3 always produces 16-bit stereo, so the returned audio.Source has
// two channels even for mono files, at the rate stored in the file.
// Effects built for mono input therefore need a stereo variant to process
// MP3 input.
package mp3

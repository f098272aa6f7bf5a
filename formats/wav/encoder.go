// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/utils"
)

// Encode drains src into w as an integer PCM WAV stream of bitDepth bits
// (16, 24 or 32), keeping the source's rate and channel count. It returns
// the number of frames written. The WAV header is finalized by seeking
// back once the stream ends, so w must be seekable.
func Encode(w io.WriteSeeker, src audio.Source, bitDepth int) (int, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return 0, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	channels := src.Channels()
	enc := gowav.NewEncoder(w, src.SampleRate(), bitDepth, channels, formatPCM)

	frames := max(src.BufSize()/channels, 1)
	buf := make([]float32, frames*channels)
	intBuf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: channels,
			SampleRate:  src.SampleRate(),
		},
		Data:           make([]int, len(buf)),
		SourceBitDepth: bitDepth,
	}

	written := 0
	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			intBuf.Data = intBuf.Data[:n]
			for i, x := range buf[:n] {
				intBuf.Data[i] = utils.Float32ToInt(x, bitDepth)
			}

			if werr := enc.Write(intBuf); werr != nil {
				return written, errors.Join(fmt.Errorf("writing wav data: %w", werr), enc.Close())
			}
			written += n / channels
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return written, errors.Join(fmt.Errorf("reading samples: %w", err), enc.Close())
		}
	}

	if err := enc.Close(); err != nil {
		return written, fmt.Errorf("finalizing wav header: %w", err)
	}

	return written, nil
}

// WriteFile creates (or truncates) path and encodes src into it.
func WriteFile(path string, src audio.Source, bitDepth int) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	frames, err := Encode(f, src, bitDepth)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w", cerr)
	}

	return frames, err
}

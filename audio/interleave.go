// SPDX-License-Identifier: EPL-2.0

package audio

// Deinterleave copies frames from interleaved src into dst, one frame per
// dst frame, and returns the number of frames copied. A src shorter than
// dst.Len()*dst.NumChannels() samples leaves the remaining frames silent.
func Deinterleave(dst ViewMut, src []float32) int {
	channels := dst.NumChannels()
	if channels == 0 {
		return 0
	}

	frames := min(len(src)/channels, dst.Len())

	switch channels {
	case 1:
		copy(dst.Channel(0), src[:frames])
	case 2:
		left, right := dst.Channel(0), dst.Channel(1)
		for f := range frames {
			idx := f << 1
			left[f] = src[idx]
			right[f] = src[idx+1]
		}
	default:
		for c := range channels {
			ch := dst.Channel(c)
			for f := range frames {
				ch[f] = src[f*channels+c]
			}
		}
	}

	if frames < dst.Len() {
		dst.Slice(frames, dst.Len()).Fill(0)
	}

	return frames
}

// Interleave writes src into dst as interleaved frames and returns the
// number of samples written. Frames that do not fit in dst are skipped.
func Interleave(dst []float32, src View) int {
	channels := src.NumChannels()
	if channels == 0 {
		return 0
	}

	frames := min(len(dst)/channels, src.Len())

	switch channels {
	case 1:
		copy(dst, src.Channel(0)[:frames])
	case 2:
		left, right := src.Channel(0), src.Channel(1)
		for f := range frames {
			idx := f << 1
			dst[idx] = left[f]
			dst[idx+1] = right[f]
		}
	default:
		for c := range channels {
			ch := src.Channel(c)
			for f := range frames {
				dst[f*channels+c] = ch[f]
			}
		}
	}

	return frames * channels
}

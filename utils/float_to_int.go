// SPDX-License-Identifier: EPL-2.0

package utils

// PCMScale is the magnitude of full scale for signed integer PCM of the
// given bit depth. Unknown depths are treated as 16 bit.
func PCMScale(bitDepth int) float32 {
	switch bitDepth {
	case 8:
		return 128.0
	case 24:
		return 8388608.0
	case 32:
		return 2147483648.0
	}

	return 32768.0
}

// IntToFloat32 normalizes a signed PCM sample to [-1, 1).
func IntToFloat32(v int, bitDepth int) float32 {
	return float32(v) / PCMScale(bitDepth)
}

// Float32ToInt converts a normalized sample to signed PCM of bitDepth,
// clamping to full scale. The positive limit is used for both signs, so
// the result is symmetric.
func Float32ToInt(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	return int(float64(x) * (float64(PCMScale(bitDepth)) - 1))
}

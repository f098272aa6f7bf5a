// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	// ErrUnsupportedBitDepth is returned for depths other than 16, 24 and
	// 32 bit integer PCM.
	ErrUnsupportedBitDepth = errors.New("unsupported WAV bit depth")
)

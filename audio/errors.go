// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")

	// ErrChannelLengthMismatch is the panic cause when a view is built from
	// channels of different lengths.
	ErrChannelLengthMismatch = errors.New("channel lengths differ")

	// ErrRangeOutOfBounds is the panic cause when a slice range does not fit
	// inside a view.
	ErrRangeOutOfBounds = errors.New("frame range out of bounds")
)

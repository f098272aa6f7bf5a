// SPDX-License-Identifier: EPL-2.0

package kernel

import "errors"

// Panic causes for contract violations. They signal a bug in the caller
// (usually the host) and are never returned as ordinary errors.
var (
	// ErrEventOutOfRange: an event time is at or past the end of the block.
	ErrEventOutOfRange = errors.New("kernel: event time outside the audio block")

	// ErrUnknownParameter: an address that the kernel never declared.
	ErrUnknownParameter = errors.New("kernel: unknown parameter address")
)

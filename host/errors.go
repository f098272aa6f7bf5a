// SPDX-License-Identifier: EPL-2.0

package host

import "errors"

var (
	ErrUnknownHandle     = errors.New("host: unknown kernel handle")
	ErrUnsupportedFormat = errors.New("host: unsupported audio format")
	ErrUnknownKernel     = errors.New("host: unknown kernel")
	ErrChannelCount      = errors.New("host: channel count does not match the kernel instance")
)

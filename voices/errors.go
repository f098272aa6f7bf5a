// SPDX-License-Identifier: EPL-2.0

package voices

import "errors"

// ErrVoiceCountMismatch is the panic cause when a Manager is handed a voice
// slice whose length differs from the one it was built for.
var ErrVoiceCountMismatch = errors.New("voices: voice slice length does not match manager")

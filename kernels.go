// SPDX-License-Identifier: EPL-2.0

package audkern

import (
	"github.com/ik5/audkern/host"
	"github.com/ik5/audkern/kernels/gain"
	"github.com/ik5/audkern/kernels/synth"
)

// Kernels returns a registry of the built in kernels.
func Kernels() *host.Registry {
	r := host.NewRegistry()
	r.Register("gain", gain.Factory{})
	r.Register("synth", synth.Factory{})

	return r
}

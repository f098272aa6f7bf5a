// SPDX-License-Identifier: EPL-2.0

// Package host is the flat boundary between kernels and a host
// application.
//
// It carries only data: channel formats with -1 meaning any count,
// parameter descriptors with their flag word (bit 30 readable, bit 31
// writable, bit 22 logarithmic) and unit codes, the kernel type tag,
// handle based lifecycle and parameter calls, and EventRecord, the flat
// event layout a host feeds to Process through a pull function. Every
// decision is left to the kernel package.
//
//	h := host.New(gain.Factory{})
//	handle, err := h.Create(2, 2, 48000)
//	if err != nil {
//	    // unsupported channel format or sample rate
//	}
//	defer h.Destroy(handle)
//
//	records := []host.EventRecord{{Time: 0, Type: host.EventParameterChange, ParamAddress: gain.ParamGain, ParamValue: 0.5}}
//	_ = h.Process(handle, buffers, 2, frames, host.SliceSource(records))
//
// Mirror lets another goroutine read and write parameters of a running
// kernel; Mirrored applies those changes before every block.
package host

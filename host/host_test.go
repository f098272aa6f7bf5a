// SPDX-License-Identifier: EPL-2.0

package host_test

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ik5/audkern/host"
	"github.com/ik5/audkern/internal/audiotest"
	"github.com/ik5/audkern/kernel"
	"github.com/ik5/audkern/kernels/gain"
	"github.com/ik5/audkern/kernels/synth"
)

// describedInfo covers every descriptor variant.
var describedInfo = &kernel.Info{
	Params: []kernel.ParamInfo{
		{
			ID: "level", Address: 4, Name: "Level",
			Details:             kernel.Numeric{Min: -1, Max: 1, Unit: kernel.Unit{Kind: kernel.UnitPercent}, Default: 0.5},
			Flags:               kernel.ReadWrite(kernel.Logarithmic),
			DependentParameters: []uint64{9},
		},
		{
			ID: "detune", Address: 5, Name: "Detune",
			Details: kernel.Numeric{Min: 0, Max: 100, Unit: kernel.CustomUnit("cents")},
			Flags:   kernel.Flags{Readable: true},
		},
		{
			ID: "shape", Address: 9, Name: "Shape",
			Details: kernel.Indexed{Names: []string{"sine", "square"}, Default: 1},
			Flags:   kernel.ReadWrite(kernel.Linear),
		},
	},
	Type: kernel.Instrument,
	Formats: []kernel.AllowedFormat{
		{Input: kernel.AnyChannels(), Output: kernel.Channels(2)},
	},
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	var numeric []host.NumericDescriptor
	var indexed []host.IndexedDescriptor
	host.Describe(describedInfo,
		func(d host.NumericDescriptor) { numeric = append(numeric, d) },
		func(d host.IndexedDescriptor) { indexed = append(indexed, d) },
	)

	require.Len(t, numeric, 2)
	require.Len(t, indexed, 1)

	require.Equal(t, host.NumericDescriptor{
		ID: "level", Address: 4, Name: "Level",
		Flags:               host.FlagReadable | host.FlagWritable | host.FlagLogarithmic,
		DependentParameters: []uint64{9},
		Min:                 -1, Max: 1, Unit: host.UnitPercent, Default: 0.5,
	}, numeric[0])

	require.Equal(t, host.UnitCustom, numeric[1].Unit)
	require.Equal(t, "cents", numeric[1].UnitCustomName)
	require.Equal(t, host.FlagReadable, numeric[1].Flags)

	require.Equal(t, []string{"sine", "square"}, indexed[0].ValueNames)
	require.Equal(t, uint64(1), indexed[0].Default)
	require.Equal(t, uint64(9), indexed[0].Address)
}

func TestFlagBits(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint32(1<<30), host.FlagsWord(kernel.Flags{Readable: true}))
	require.Equal(t, uint32(1<<31), host.FlagsWord(kernel.Flags{Writable: true}))
	require.Equal(t, uint32(1<<22), host.FlagsWord(kernel.Flags{Scale: kernel.Logarithmic}))
}

func TestUnitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit kernel.Unit
		code uint32
	}{
		{kernel.Unit{Kind: kernel.UnitGeneric}, 0},
		{kernel.Unit{Kind: kernel.UnitPercent}, 3},
		{kernel.Unit{Kind: kernel.UnitSeconds}, 4},
		{kernel.Unit{Kind: kernel.UnitSampleFrames}, 5},
		{kernel.Unit{Kind: kernel.UnitRate}, 7},
		{kernel.CustomUnit("Hz"), 26},
	}
	for _, tt := range tests {
		code, name := host.UnitCode(tt.unit)
		require.Equal(t, tt.code, code)
		if tt.code == host.UnitCustom {
			require.Equal(t, "Hz", name)
		} else {
			require.Empty(t, name)
		}
	}
}

func TestFormatsAndBypass(t *testing.T) {
	t.Parallel()

	require.Equal(t, []host.ChannelFormat{{Input: -1, Output: 2}}, host.Formats(describedInfo))

	has, addr := host.Bypass(describedInfo)
	require.Zero(t, has)
	require.Zero(t, addr)

	has, addr = host.Bypass(gain.Factory{}.Info())
	require.Equal(t, uint64(1), has)
	require.Equal(t, gain.ParamBypass, addr)

	require.Equal(t, uint32(0), host.KernelType(gain.Factory{}.Info()))
	require.Equal(t, uint32(1), host.KernelType(synth.Factory{}.Info()))
}

func TestEventRecord_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  host.EventRecord
		want kernel.Event
	}{
		{
			name: "parameter change",
			rec:  host.EventRecord{Time: 3, Type: host.EventParameterChange, ParamAddress: 1, ParamValue: 0.5},
			want: kernel.NewParameterChange(3, 1, 0.5),
		},
		{
			name: "ramped",
			rec:  host.EventRecord{Time: 4, Type: host.EventRampedParameterChange, ParamAddress: 2, ParamValue: 1, RampFrames: 32},
			want: kernel.NewRampedParameterChange(4, 2, 1, 32),
		},
		{
			name: "midi",
			rec:  host.EventRecord{Time: 5, Type: host.EventMIDI, MIDICable: 2, MIDIValidBytes: 3, MIDIBytes: [3]byte{0x90, 60, 100}},
			want: kernel.NewMIDI(5, 2, []byte{0x90, 60, 100}),
		},
		{
			name: "short midi",
			rec:  host.EventRecord{Type: host.EventMIDI, MIDIValidBytes: 1, MIDIBytes: [3]byte{0xF8, 1, 2}},
			want: kernel.NewMIDI(0, 0, []byte{0xF8}),
		},
		{
			name: "unknown type",
			rec:  host.EventRecord{Time: 1, Type: 77, ParamAddress: 1, ParamValue: 0.25},
			want: kernel.NewParameterChange(1, 1, 0.25),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tt.want, tt.rec.Decode())
			if tt.rec.Type <= host.EventMIDI {
				rec := host.Record(tt.want)
				require.Equal(t, tt.want, rec.Decode())
			}
		})
	}
}

func TestHost_CreateRejectsSampleRate(t *testing.T) {
	t.Parallel()

	h := host.New(synth.Factory{})

	for _, sr := range []float64{0, -44100, math.NaN(), math.Inf(1)} {
		_, err := h.Create(0, 1, sr)
		require.ErrorIs(t, err, host.ErrUnsupportedFormat, "sample rate %v", sr)
	}
	require.Zero(t, h.Len())
}

func TestHost_Lifecycle(t *testing.T) {
	t.Parallel()

	h := host.New(gain.Factory{})

	_, err := h.Create(1, 2, 48000)
	require.ErrorIs(t, err, host.ErrUnsupportedFormat)

	a, err := h.Create(2, 2, 48000)
	require.NoError(t, err)
	b, err := h.Create(1, 1, 44100)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
	require.NotZero(t, a)
	require.Equal(t, 2, h.Len())

	require.NoError(t, h.SetParameter(a, gain.ParamGain, 0.75))
	v, err := h.Parameter(a, gain.ParamGain)
	require.NoError(t, err)
	require.Equal(t, 0.75, v)

	v, err = h.Parameter(b, gain.ParamGain)
	require.NoError(t, err)
	require.Equal(t, gain.DefaultGain, v)

	lat, err := h.Latency(a)
	require.NoError(t, err)
	require.Zero(t, lat)

	require.NoError(t, h.Reset(a))
	require.NoError(t, h.Destroy(a))
	require.ErrorIs(t, h.Destroy(a), host.ErrUnknownHandle)
	require.ErrorIs(t, h.Reset(a), host.ErrUnknownHandle)
	_, err = h.Parameter(a, gain.ParamGain)
	require.ErrorIs(t, err, host.ErrUnknownHandle)
	require.Equal(t, 1, h.Len())
}

func TestHost_Process(t *testing.T) {
	t.Parallel()

	h := host.New(gain.Factory{})
	handle, err := h.Create(2, 2, 48000)
	require.NoError(t, err)

	data := audiotest.Silence(2, 8)
	for _, ch := range data {
		for i := range ch {
			ch[i] = 1
		}
	}

	records := []host.EventRecord{
		{Time: 0, Type: host.EventParameterChange, ParamAddress: gain.ParamGain, ParamValue: 0.5},
		{Time: 4, Type: host.EventParameterChange, ParamAddress: gain.ParamBypass, ParamValue: 1},
	}
	require.NoError(t, h.Process(handle, data, 2, 6, host.SliceSource(records)))

	want := []float32{0.5, 0.5, 0.5, 0.5, 1, 1, 1, 1}
	require.Equal(t, want, data[0])
	require.Equal(t, want, data[1])

	err = h.Process(handle, data, 1, 8, nil)
	require.ErrorIs(t, err, host.ErrChannelCount)
}

func TestHost_ProcessInstrument(t *testing.T) {
	t.Parallel()

	h := host.New(synth.Factory{})
	handle, err := h.Create(0, 1, 48000)
	require.NoError(t, err)

	data := audiotest.Silence(1, 256)
	records := []host.EventRecord{
		{Type: host.EventMIDI, MIDIValidBytes: 3, MIDIBytes: [3]byte{0x90, 69, 127}},
	}
	require.NoError(t, h.Process(handle, data, 1, 256, host.SliceSource(records)))

	var energy float32
	for _, x := range data[0] {
		energy += x * x
	}
	require.Greater(t, energy, float32(0))
}

func TestHost_ConcurrentHandles(t *testing.T) {
	t.Parallel()

	h := host.New(gain.Factory{})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			handle, err := h.Create(1, 1, 44100)
			if err != nil {
				t.Error(err)
				return
			}
			if err := h.Destroy(handle); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	require.Zero(t, h.Len())
}

func TestRegistry(t *testing.T) {
	t.Parallel()

	r := host.NewRegistry()
	r.Register("synth", synth.Factory{})
	r.Register("gain", gain.Factory{})

	require.Equal(t, []string{"gain", "synth"}, r.Names())

	f, err := r.Lookup("gain")
	require.NoError(t, err)
	require.Equal(t, gain.Factory{}.Info(), f.Info())

	_, err = r.Lookup("reverb")
	require.ErrorIs(t, err, host.ErrUnknownKernel)
}

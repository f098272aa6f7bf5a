// SPDX-License-Identifier: EPL-2.0

// kernrender runs a kernel over an audio file, or plays an instrument,
// and writes the result to a WAV file or the sound card.
//
//	kernrender -kernel gain -in drums.mp3 -out quiet.wav
//	kernrender -session chord.json -out chord.wav
//	kernrender -session chord.json -play
//
// While playing, parameter changes can be typed on stdin as "id value",
// e.g. "volume 0.3".
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ik5/audkern"
	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/config"
	"github.com/ik5/audkern/formats"
	"github.com/ik5/audkern/formats/wav"
	"github.com/ik5/audkern/host"
	"github.com/ik5/audkern/kernel"
)

type options struct {
	session   string
	kernel    string
	in        string
	out       string
	play      bool
	list      bool
	blockSize int
	bitDepth  int
	verbose   bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.session, "session", "", "session file (JSON)")
	flag.StringVar(&o.kernel, "kernel", "", "kernel to run, overrides the session")
	flag.StringVar(&o.in, "in", "", "input file for effects (wav, aiff, mp3, ogg)")
	flag.StringVar(&o.out, "out", "out.wav", "output WAV file")
	flag.BoolVar(&o.play, "play", false, "play on the sound card instead of writing a file")
	flag.BoolVar(&o.list, "list", false, "list kernels and their parameters")
	flag.IntVar(&o.blockSize, "block", 0, "block size in frames, overrides the session")
	flag.IntVar(&o.bitDepth, "bits", 0, "output bit depth (16, 24, 32), overrides the session")
	flag.BoolVar(&o.verbose, "v", false, "verbose logging")
	flag.Parse()

	return o
}

func main() {
	o := parseFlags()

	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if o.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	kernels := audkern.Kernels()

	if o.list {
		list(kernels)
		return
	}

	if err := run(o, kernels); err != nil {
		logrus.WithError(err).Error("kernrender failed")
		os.Exit(1)
	}
}

func loadSession(o options) (*config.Session, error) {
	s := config.DefaultConfig()
	if o.session != "" {
		var err error
		if s, err = config.Load(o.session); err != nil {
			return nil, err
		}
	}

	if o.kernel != "" {
		s.Kernel = o.kernel
	}
	if o.blockSize != 0 {
		s.BlockSize = o.blockSize
	}
	if o.bitDepth != 0 {
		s.BitDepth = o.bitDepth
	}

	return s, s.Validate()
}

// openSource returns the input of an effect, or silence for an
// instrument to render over.
func openSource(o options, s *config.Session, info *kernel.Info) (audio.Source, kernel.AudioFormat, error) {
	if info.Type == kernel.Instrument {
		src := audio.NewSilence(s.SampleRate, s.Channels, s.Frames())
		return src, kernel.AudioFormat{
			OutputChannels: uint32(s.Channels),
			SampleRate:     float64(s.SampleRate),
		}, nil
	}

	if o.in == "" {
		return nil, kernel.AudioFormat{}, fmt.Errorf("kernel %q is an effect and needs -in", s.Kernel)
	}

	src, err := formats.Open(formats.NewRegistry(), o.in)
	if err != nil {
		return nil, kernel.AudioFormat{}, err
	}

	return src, kernel.AudioFormat{
		InputChannels:  uint32(src.Channels()),
		OutputChannels: uint32(src.Channels()),
		SampleRate:     float64(src.SampleRate()),
	}, nil
}

func run(o options, kernels *host.Registry) error {
	s, err := loadSession(o)
	if err != nil {
		return err
	}

	factory, err := kernels.Lookup(s.Kernel)
	if err != nil {
		return err
	}
	info := factory.Info()

	src, format, err := openSource(o, s, info)
	if err != nil {
		return err
	}
	defer src.Close()

	if !info.Supports(format) {
		return fmt.Errorf("%w: %s cannot run %d in, %d out",
			host.ErrUnsupportedFormat, s.Kernel, format.InputChannels, format.OutputChannels)
	}

	k := factory.New(format)
	if err := s.ApplyParams(k, info); err != nil {
		return err
	}

	events, err := s.BuildEvents(info, format.SampleRate)
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"kernel":      s.Kernel,
		"channels":    format.OutputChannels,
		"sample_rate": format.SampleRate,
		"events":      len(events),
	})

	if o.play {
		mirrored := host.NewMirrored(k, info)
		go readControls(os.Stdin, mirrored.Mirror(), info)

		log.Info("playing")
		return play(audkern.NewStream(src, mirrored, s.BlockSize, events))
	}

	frames, err := wav.WriteFile(o.out, audkern.NewStream(src, k, s.BlockSize, events), s.BitDepth)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"out": o.out, "frames": frames}).Info("rendered")

	return nil
}

func list(kernels *host.Registry) {
	for _, name := range kernels.Names() {
		f, _ := kernels.Lookup(name)
		info := f.Info()

		fmt.Printf("%s (%s)\n", name, info.Type)
		for _, cf := range host.Formats(info) {
			fmt.Printf("  channels: %s -> %s\n", channelsString(cf.Input), channelsString(cf.Output))
		}

		host.Describe(info,
			func(d host.NumericDescriptor) {
				fmt.Printf("  %-8s %g..%g, default %g\n", d.ID, d.Min, d.Max, d.Default)
			},
			func(d host.IndexedDescriptor) {
				fmt.Printf("  %-8s %v, default %d\n", d.ID, d.ValueNames, d.Default)
			},
		)
	}
}

func channelsString(n int32) string {
	if n == host.AnyChannels {
		return "any"
	}

	return fmt.Sprint(n)
}

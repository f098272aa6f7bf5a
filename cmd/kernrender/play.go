// SPDX-License-Identifier: EPL-2.0

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"

	"github.com/ik5/audkern/audio"
	"github.com/ik5/audkern/host"
	"github.com/ik5/audkern/internal/playback"
	"github.com/ik5/audkern/kernel"
)

// play blocks until src is exhausted and the sound card drained it.
func play(src audio.Source) error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   src.SampleRate(),
		ChannelCount: src.Channels(),
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	player := ctx.NewPlayer(playback.NewReader(src))
	defer player.Close()

	player.Play()
	for player.IsPlaying() {
		time.Sleep(50 * time.Millisecond)
	}

	if err := player.Err(); err != nil && err != io.EOF {
		return fmt.Errorf("playing: %w", err)
	}

	return nil
}

// parseControl reads one "id value" line.
func parseControl(line string, info *kernel.Info) (uint64, float64, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("want \"id value\", got %q", line)
	}

	p, ok := info.ParamByID(fields[0])
	if !ok {
		return 0, 0, fmt.Errorf("unknown parameter %q", fields[0])
	}

	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parameter %s: %w", fields[0], err)
	}

	return p.Address, v, nil
}

// readControls applies parameter changes typed on r until it is closed.
func readControls(r io.Reader, m *host.Mirror, info *kernel.Info) {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}

		addr, v, err := parseControl(line, info)
		if err == nil {
			err = m.Set(addr, v)
		}
		if err != nil {
			logrus.WithError(err).Warn("ignoring control")
			continue
		}

		logrus.WithFields(logrus.Fields{"address": addr, "value": v}).Debug("control")
	}
}

// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/mixer"
)

var (
	errNotLoaded    = errors.New("file could not be loaded")
	errNoChannel    = errors.New("no free channel")
	errEndlessLoop  = errors.New("rendering an endless loop needs --duration")
	errRenderFailed = errors.New("rendering failed")
)

type options struct {
	files    []string
	loop     int
	volume   int
	master   float32
	pan      float32
	speed    float64
	stream   bool
	duration time.Duration
}

// start puts every input file on its own channel. Loaded files come from
// the mixer's effect bank, in order.
func start(m *mixer.Mixer, opts options) ([]*mixer.Channel, error) {
	m.SetMasterVolume(opts.master)

	chans := make([]*mixer.Channel, 0, len(opts.files))
	for i, path := range opts.files {
		var ch *mixer.Channel
		if opts.stream {
			st, err := audmix.OpenStream(path)
			if err != nil {
				return nil, err
			}
			ch = m.PlayStream(st, opts.loop)
			m.SetVolume(ch, opts.volume)
			m.SetPan(ch, opts.pan)
			m.SetRate(ch, opts.speed)
		} else {
			if fx := m.Effect(i); fx == nil || fx.Length() == 0 {
				return nil, fmt.Errorf("%w: %s", errNotLoaded, path)
			}
			ch = m.PlayEffect(i, opts.loop, opts.volume, opts.pan, opts.speed, false)
		}
		if ch == nil {
			return nil, fmt.Errorf("%w: %s", errNoChannel, path)
		}

		slog.Debug("Started channel", "file", path, "loop", opts.loop)
		chans = append(chans, ch)
	}
	return chans, nil
}

func playing(m *mixer.Mixer, chans []*mixer.Channel) bool {
	for _, ch := range chans {
		if m.IsPlaying(ch) {
			return true
		}
	}
	return false
}

func renderToFile(ctx context.Context, cfg mixer.Config, opts options, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	frames, err := render(ctx, cfg, opts, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return err
	}

	slog.Info("Rendered", "path", path, "frames", frames)
	return nil
}

// render mixes offline into a WAV file on out and returns the number of
// frames written.
func render(ctx context.Context, cfg mixer.Config, opts options, out io.WriteSeeker) (int, error) {
	if opts.loop == mixer.LoopInfinite && opts.duration <= 0 {
		return 0, errEndlessLoop
	}

	dev := device.NewManual()
	m := mixer.New(dev, cfg)
	if err := m.Init(); err != nil {
		return 0, err
	}
	defer m.Close()

	chans, err := start(m, opts)
	if err != nil {
		return 0, err
	}

	format := m.Format()
	w, err := wav.NewWriter(out, format)
	if err != nil {
		return 0, err
	}

	limit := 0
	if opts.duration > 0 {
		limit = int(int64(opts.duration) * int64(format.Rate) / int64(time.Second))
	}

	fs := format.FrameSize()
	buf := make([]byte, cfg.BufferFrames*fs)
	total := 0
	for playing(m, chans) && (limit == 0 || total < limit) {
		if err := ctx.Err(); err != nil {
			break
		}

		n := cfg.BufferFrames
		if limit > 0 {
			n = min(n, limit-total)
		}
		p := buf[:n*fs]
		if err := dev.Render(p); err != nil {
			return total, fmt.Errorf("%w: %w", errRenderFailed, err)
		}
		if _, err := w.Write(p); err != nil {
			return total, fmt.Errorf("%w: %w", errRenderFailed, err)
		}
		total += n
	}

	if err := w.Close(); err != nil {
		return total, err
	}
	return total, nil
}

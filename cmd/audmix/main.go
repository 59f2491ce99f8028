// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli"

	"github.com/ik5/audmix"
	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/mixer"
)

func main() {
	app := cli.NewApp()
	app.Name = "audmix"
	app.Description = "Play or render audio files through the software mixer"
	app.Usage = "audmix [options] <file>..."
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "rate",
			Usage: "Output sample rate in Hz",
			Value: 44100,
		},
		cli.IntFlag{
			Name:  "channels",
			Usage: "Output channels, 1 or 2",
			Value: 2,
		},
		cli.StringFlag{
			Name:  "encoding",
			Usage: "Output sample encoding: u8, s8, s16le, s16be or f32le",
			Value: "s16le",
		},
		cli.IntFlag{
			Name:  "buffer",
			Usage: "Frames mixed per device callback",
			Value: 1024,
		},
		cli.IntFlag{
			Name:  "volume",
			Usage: fmt.Sprintf("Channel volume, 0 to %d", mixer.MaxVolume),
			Value: mixer.MaxVolume,
		},
		cli.Float64Flag{
			Name:  "master",
			Usage: "Master volume, 1 is unity",
			Value: 1,
		},
		cli.IntFlag{
			Name:  "loop",
			Usage: "Extra times to play each file (-1 = forever)",
			Value: mixer.LoopNone,
		},
		cli.Float64Flag{
			Name:  "pan",
			Usage: "Stereo position, 0 is left and 1 is right",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "speed",
			Usage: "Playback rate multiplier",
			Value: 1,
		},
		cli.DurationFlag{
			Name:  "duration",
			Usage: "Stop after this long (0 = when every file has finished)",
		},
		cli.BoolFlag{
			Name:  "stream",
			Usage: "Read WAV files from disk while playing instead of loading them",
		},
		cli.StringFlag{
			Name:  "device",
			Usage: "Output device name",
		},
		cli.StringFlag{
			Name:  "output, o",
			Usage: "Render to this WAV file instead of the sound card",
		},
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "Log debug output",
		},
	}
	app.Action = runMixer

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running mixer", "error", err)
		os.Exit(1)
	}
}

func runMixer(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("verbose") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return errors.New("no input files provided")
	}

	enc, err := audio.ParseEncoding(c.String("encoding"))
	if err != nil {
		return err
	}

	cfg := mixer.DefaultConfig()
	cfg.DeviceName = c.String("device")
	cfg.SampleRate = c.Int("rate")
	cfg.Channels = c.Int("channels")
	cfg.Encoding = enc
	cfg.BufferFrames = c.Int("buffer")
	cfg.Logger = logger

	opts := options{
		files:    c.Args(),
		loop:     c.Int("loop"),
		volume:   c.Int("volume"),
		master:   float32(c.Float64("master")),
		pan:      float32(c.Float64("pan")),
		speed:    c.Float64("speed"),
		stream:   c.Bool("stream"),
		duration: c.Duration("duration"),
	}
	if !opts.stream {
		cfg.Bank = audmix.FileBank{Paths: opts.files}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if out := c.String("output"); out != "" {
		return renderToFile(ctx, cfg, opts, out)
	}
	return playDevice(ctx, cfg, opts)
}

// playDevice plays through the sound card until every channel finishes,
// the duration runs out or the process is interrupted.
func playDevice(ctx context.Context, cfg mixer.Config, opts options) error {
	m := mixer.New(device.NewOto(), cfg)
	if err := m.Init(); err != nil {
		return err
	}
	defer m.Close()

	chans, err := start(m, opts)
	if err != nil {
		return err
	}
	slog.Info("Playing", "files", len(chans), "format", m.Format().String())

	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for playing(m, chans) {
		select {
		case <-ctx.Done():
			slog.Debug("Stopping playback", "reason", context.Cause(ctx))
			for _, ch := range chans {
				m.Stop(ch)
			}
			// Two callbacks cover the fade out
			time.Sleep(2 * bufferDuration(m.Format(), cfg.BufferFrames))
			return nil
		case <-ticker.C:
		}
	}

	slog.Info("Playback finished")
	return nil
}

func bufferDuration(f audio.AudioFormat, frames int) time.Duration {
	if f.Rate <= 0 {
		return 0
	}
	return time.Duration(frames) * time.Second / time.Duration(f.Rate)
}

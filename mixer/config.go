// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"

	"github.com/ik5/audmix/audio"
)

// Config describes the device the mixer asks for and the sounds it preloads.
type Config struct {
	// DeviceName is passed to Device.Open. Empty selects the default device.
	DeviceName string

	SampleRate int
	Channels   int
	Encoding   audio.Encoding

	// BufferFrames is the number of frames mixed per callback.
	BufferFrames int

	// MaxChannels caps the number of live channels. 0 means unlimited.
	MaxChannels int

	// Bank is loaded and converted to the output format by Init. May be nil.
	Bank SampleBank
	// Music loads music lazily for LoadMusic and PlayMusic. May be nil.
	Music MusicLoader

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns 44.1 kHz stereo S16LE with 1024 frames per callback.
func DefaultConfig() Config {
	return Config{
		SampleRate:   44100,
		Channels:     2,
		Encoding:     audio.S16LE,
		BufferFrames: 1024,
	}
}

// Format is the output format requested from the device.
func (c Config) Format() audio.AudioFormat {
	return audio.AudioFormat{Rate: c.SampleRate, Encoding: c.Encoding, Channels: c.Channels}
}

func (c Config) validate() error {
	if err := c.Format().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.BufferFrames <= 0 {
		return fmt.Errorf("%w: buffer of %d frames", ErrInvalidConfig, c.BufferFrames)
	}
	if c.MaxChannels < 0 {
		return fmt.Errorf("%w: max channels %d", ErrInvalidConfig, c.MaxChannels)
	}
	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

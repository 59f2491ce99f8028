// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

var _ audio.Source = (*Generator)(nil)

// Generator is a decoder Source computing every sample from a waveform.
// It yields a fixed number of frames, then io.EOF.
type Generator struct {
	rate     int
	channels int
	frames   int
	wave     func(frame, channel int) float32

	pos int
}

func NewGenerator(rate, channels, frames int, wave func(frame, channel int) float32) *Generator {
	return &Generator{rate: rate, channels: channels, frames: frames, wave: wave}
}

// NewSineSource returns frames frames of a full-scale sine at freq Hz on
// every channel.
func NewSineSource(rate, channels, frames int, freq float64) *Generator {
	step := 2 * math.Pi * freq / float64(rate)
	return NewGenerator(rate, channels, frames, func(frame, _ int) float32 {
		return float32(math.Sin(step * float64(frame)))
	})
}

// NewConstantSource returns frames frames holding v.
func NewConstantSource(rate, channels, frames int, v float32) *Generator {
	return NewGenerator(rate, channels, frames, func(int, int) float32 { return v })
}

func (g *Generator) SampleRate() int { return g.rate }
func (g *Generator) Channels() int   { return g.channels }
func (g *Generator) BufSize() int    { return 1024 * g.channels }
func (g *Generator) Close() error    { return nil }

// Rewind starts the generator over.
func (g *Generator) Rewind() { g.pos = 0 }

func (g *Generator) ReadSamples(dst []float32) (int, error) {
	if g.pos >= g.frames {
		return 0, io.EOF
	}

	frames := min(len(dst)/g.channels, g.frames-g.pos)
	i := 0
	for f := g.pos; f < g.pos+frames; f++ {
		for c := range g.channels {
			dst[i] = g.wave(f, c)
			i++
		}
	}
	g.pos += frames

	if g.pos == g.frames {
		return i, io.EOF
	}
	return i, nil
}

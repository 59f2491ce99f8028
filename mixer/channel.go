// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"io"
	"math"

	"github.com/ik5/audmix/audio"
)

const (
	// MaxVolume is full volume on the channel volume scale.
	MaxVolume = 128
	// MinRate is the slowest playback rate a channel accepts.
	MinRate = 0.001

	// LoopNone plays a stream once.
	LoopNone = 0
	// LoopInfinite repeats a stream until it is stopped.
	LoopInfinite = -1
)

// Group tags a channel for group volume and muting.
type Group int

const (
	GroupSound Group = iota
	GroupMusic

	numGroups
)

func (g Group) valid() bool { return g >= 0 && g < numGroups }

func (g Group) String() string {
	switch g {
	case GroupSound:
		return "sound"
	case GroupMusic:
		return "music"
	default:
		return "unknown"
	}
}

// Channel is one playback of a Stream. Channels are created by the Mixer
// and changed through its methods.
//
// The getters read fields the callback writes. They are only safe while
// holding the mixer lock or from inside the callback.
type Channel struct {
	stream audio.Stream
	owned  bool // stream is closed when the channel is destroyed

	offset int
	rate   float64
	loop   int

	volume    int
	oldVolume int

	pan          float32
	gainL, gainR float32
	oldL, oldR   float32

	group Group

	done         bool
	stopping     bool
	deleteOnDone bool

	// started is false until the first callback mixes the channel.
	started   bool
	destroyed bool
	warned    bool

	resampler *audio.Resampler
	// Frames read ahead for the resampler, in output channel layout.
	pend           []float32
	pendPos, pendN int
}

func newChannel() *Channel {
	c := &Channel{}
	c.setRate(1)
	c.setVolume(MaxVolume)
	c.setPan(0.5)
	return c
}

// play binds stream and rewinds. Volume, pan and rate are kept.
func (c *Channel) play(stream audio.Stream, loop int) {
	c.stream = stream
	c.loop = loop
	c.offset = 0
	c.done = false
	c.stopping = false
	c.rewind()
}

// rewind drops resampler state after the read position jumps.
func (c *Channel) rewind() {
	if c.resampler != nil {
		c.resampler.Reset()
	}
	c.pendPos, c.pendN = 0, 0
}

func (c *Channel) setVolume(v int) {
	c.volume = min(max(v, 0), MaxVolume)
}

func (c *Channel) setPan(p float32) {
	// NaN fails both comparisons and lands in the centre.
	switch {
	case p <= 0:
		p = 0
	case p >= 1:
		p = 1
	case p != p:
		p = 0.5
	}
	c.pan = p
	c.gainL = float32(math.Sin(float64(1-p) * math.Pi / 2))
	c.gainR = float32(math.Sin(float64(p) * math.Pi / 2))
}

func (c *Channel) setRate(r float64) {
	if !(r >= MinRate) {
		r = MinRate
	}
	c.rate = r
}

func (c *Channel) setOffset(off int) bool {
	if c.stream == nil || off < 0 || off >= c.stream.Length() {
		return false
	}
	fs := c.stream.Format().FrameSize()
	c.offset = off / fs * fs
	c.rewind()
	return true
}

func (c *Channel) destroy() error {
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	c.done = true
	c.resampler = nil
	c.pend = nil

	if c.owned {
		if cl, ok := c.stream.(io.Closer); ok {
			return cl.Close()
		}
	}
	return nil
}

func (c *Channel) Stream() audio.Stream { return c.stream }
func (c *Channel) Volume() int          { return c.volume }
func (c *Channel) Pan() float32         { return c.pan }
func (c *Channel) Rate() float64        { return c.rate }
func (c *Channel) Loop() int            { return c.loop }
func (c *Channel) Group() Group         { return c.group }
func (c *Channel) Stopping() bool       { return c.stopping }

// Gains returns the constant-power left and right pan gains.
func (c *Channel) Gains() (left, right float32) { return c.gainL, c.gainR }

// IsPlaying reports whether the channel has not finished.
func (c *Channel) IsPlaying() bool { return !c.done }

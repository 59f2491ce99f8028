// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/ik5/audmix/audio"
)

type groupState struct {
	gain    float32
	enabled bool
}

// Mixer combines live channels into the output of one Device.
//
// Every exported method except Init and Close takes the device lock for
// the duration of a few field assignments, so they may be called from any
// goroutine. Lock and Unlock expose the same lock for batching several
// changes into one callback.
type Mixer struct {
	dev Device
	cfg Config
	log *slog.Logger

	// Guarded by the device lock.
	initialized bool
	format      audio.AudioFormat
	frames      int
	channels    []*Channel
	groups      [numGroups]groupState
	master      float32
	effects     []audio.Stream

	// Callback scratch, sized at Init.
	decoded []float32
	work    []float32
	reader  channelReader

	musicMu sync.Mutex
	music   map[int]*audio.SampleStream
}

// New returns a mixer for dev. Nothing is opened until Init.
func New(dev Device, cfg Config) *Mixer {
	m := &Mixer{
		dev:    dev,
		cfg:    cfg,
		log:    cfg.logger(),
		master: 1,
		music:  make(map[int]*audio.SampleStream),
	}
	for g := range m.groups {
		m.groups[g] = groupState{gain: 1, enabled: true}
	}
	m.reader.m = m
	return m
}

// Init opens the device and preloads the effect bank converted to the
// format the device settled on.
func (m *Mixer) Init() error {
	if err := m.cfg.validate(); err != nil {
		return err
	}

	m.Lock()
	initialized := m.initialized
	m.Unlock()
	if initialized {
		return ErrAlreadyInitialized
	}

	frames := m.cfg.BufferFrames
	// Callbacks may arrive as soon as Open returns; they render silence in
	// m.format until initialized is set.
	m.decoded = make([]float32, frames*2)
	m.work = make([]float32, frames*2)

	want := m.cfg.Format()
	m.Lock()
	m.format = want
	m.Unlock()

	have, err := m.dev.Open(m.cfg.DeviceName, want, frames, m.mix)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDeviceOpen, err)
	}
	if err := have.Validate(); err != nil {
		m.dev.Close()
		return fmt.Errorf("%w: device settled on %s: %w", ErrDeviceOpen, have, err)
	}

	m.Lock()
	m.format = have
	m.Unlock()

	effects := m.loadBank(have)

	m.Lock()
	m.frames = frames
	m.effects = effects
	m.initialized = true
	m.Unlock()

	m.log.Info("mixer initialized",
		"device", m.cfg.DeviceName,
		"format", have.String(),
		"frames", frames,
		"effects", len(effects))

	return nil
}

// Close destroys every channel, then closes the device and drops the
// effect bank and music cache. It returns ErrNotInitialized when there is
// nothing to close.
func (m *Mixer) Close() error {
	m.Lock()
	if !m.initialized {
		m.Unlock()
		return ErrNotInitialized
	}
	for _, ch := range m.channels {
		if err := ch.destroy(); err != nil {
			m.log.Warn("closing channel stream", "error", err)
		}
	}
	clear(m.channels)
	m.channels = m.channels[:0]
	m.initialized = false
	effects := m.effects
	m.effects = nil
	m.Unlock()

	err := m.dev.Close()

	for _, st := range effects {
		if ss, ok := st.(*audio.SampleStream); ok {
			ss.Sample().Release()
		}
	}
	m.musicMu.Lock()
	for id, st := range m.music {
		st.Sample().Release()
		delete(m.music, id)
	}
	m.musicMu.Unlock()

	m.log.Info("mixer closed")
	if err != nil {
		return fmt.Errorf("closing audio device: %w", err)
	}
	return nil
}

// Lock holds off the device callback so several channel changes land in
// the same callback. Keep the critical section short.
func (m *Mixer) Lock() { m.dev.Lock() }

// Unlock releases Lock.
func (m *Mixer) Unlock() { m.dev.Unlock() }

// Format is the output format negotiated by Init.
func (m *Mixer) Format() audio.AudioFormat {
	m.Lock()
	defer m.Unlock()
	return m.format
}

// Len returns the number of live channels.
func (m *Mixer) Len() int {
	m.Lock()
	defer m.Unlock()
	return len(m.channels)
}

// Play starts stream on a new channel at full volume, centred, at rate 1.
// It returns nil when the mixer is not initialized, stream is nil or
// MaxChannels channels are live. The channel stays in the mixer after it
// finishes unless deleteOnDone is set or it is stopped.
func (m *Mixer) Play(stream audio.Stream, loop int, deleteOnDone bool) *Channel {
	m.Lock()
	defer m.Unlock()
	return m.play(stream, loop, deleteOnDone)
}

// play requires the lock.
func (m *Mixer) play(stream audio.Stream, loop int, deleteOnDone bool) *Channel {
	if !m.initialized || stream == nil {
		return nil
	}
	if m.cfg.MaxChannels > 0 && len(m.channels) >= m.cfg.MaxChannels {
		return nil
	}

	ch := newChannel()
	ch.play(stream, loop)
	ch.deleteOnDone = deleteOnDone
	m.channels = append(m.channels, ch)
	return ch
}

// Replay rewinds a channel that has not been removed and plays its stream
// again with the given loop count. Volume, pan and rate are kept.
func (m *Mixer) Replay(ch *Channel, loop int) bool {
	if ch == nil {
		return false
	}
	m.Lock()
	defer m.Unlock()
	if ch.destroyed {
		return false
	}
	ch.play(ch.stream, loop)
	return true
}

// Stop fades the channel out during the next callback and removes it.
func (m *Mixer) Stop(ch *Channel) {
	if ch == nil {
		return
	}
	m.Lock()
	ch.stopping = true
	m.Unlock()
}

// SetVolume sets the channel volume, clamped to [0, MaxVolume]. The change
// is faded in over the next callback.
func (m *Mixer) SetVolume(ch *Channel, volume int) {
	if ch == nil {
		return
	}
	m.Lock()
	ch.setVolume(volume)
	m.Unlock()
}

// SetPan sets the stereo position, clamped to [0, 1] where 0 is left.
func (m *Mixer) SetPan(ch *Channel, pan float32) {
	if ch == nil {
		return
	}
	m.Lock()
	ch.setPan(pan)
	m.Unlock()
}

// SetRate sets the playback speed multiplier, at least MinRate.
func (m *Mixer) SetRate(ch *Channel, rate float64) {
	if ch == nil {
		return
	}
	m.Lock()
	ch.setRate(rate)
	m.Unlock()
}

// IsPlaying reports whether ch has not finished. A nil ch is not playing.
func (m *Mixer) IsPlaying(ch *Channel) bool {
	if ch == nil {
		return false
	}
	m.Lock()
	defer m.Unlock()
	return ch.IsPlaying()
}

// Offset returns the channel's read position in its stream, in bytes.
func (m *Mixer) Offset(ch *Channel) int {
	if ch == nil {
		return 0
	}
	m.Lock()
	defer m.Unlock()
	return ch.offset
}

// SetOffset moves the read position to off, rounded down to a whole frame.
// It reports false when off is outside the stream.
func (m *Mixer) SetOffset(ch *Channel, off int) bool {
	if ch == nil {
		return false
	}
	m.Lock()
	defer m.Unlock()
	return ch.setOffset(off)
}

// SetGroup moves ch to group g. Invalid groups are ignored.
func (m *Mixer) SetGroup(ch *Channel, g Group) {
	if ch == nil || !g.valid() {
		return
	}
	m.Lock()
	ch.group = g
	m.Unlock()
}

// SetGroupVolume sets a group's volume in percent, clamped to [0, 100].
// The applied gain is (percent/100)^(10/6).
func (m *Mixer) SetGroupVolume(g Group, percent int) {
	if !g.valid() {
		return
	}
	percent = min(max(percent, 0), 100)
	gain := float32(math.Pow(float64(percent)/100, 10.0/6.0))

	m.Lock()
	m.groups[g].gain = gain
	m.Unlock()
}

// SetGroupEnabled mutes or unmutes a group. Muted channels do not advance.
func (m *Mixer) SetGroupEnabled(g Group, enabled bool) {
	if !g.valid() {
		return
	}
	m.Lock()
	m.groups[g].enabled = enabled
	m.Unlock()
}

// SetMasterVolume scales every channel. 1 is unity; negative values are
// treated as 0.
func (m *Mixer) SetMasterVolume(v float32) {
	if !(v >= 0) {
		v = 0
	}
	m.Lock()
	m.master = v
	m.Unlock()
}

// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"io"

	"github.com/ik5/audmix/audio"
)

// loadBank loads every bank effect and converts it to format. Effects that
// fail become empty streams so their ids stay valid.
func (m *Mixer) loadBank(format audio.AudioFormat) []audio.Stream {
	bank := m.cfg.Bank
	if bank == nil {
		return nil
	}

	n := bank.Len()
	effects := make([]audio.Stream, n)
	for id := range n {
		effects[id] = audio.NullStream{AudioFormat: format}

		s, err := bank.LoadSample(id)
		if err != nil {
			m.log.Warn("loading effect", "id", id, "error", err)
			continue
		}
		if _, err := s.Convert(format); err != nil {
			m.log.Warn("converting effect", "id", id, "format", format.String(), "error", err)
			continue
		}
		effects[id] = audio.NewSampleStream(s)
	}

	return effects
}

// Effect returns the bank stream for id, or nil when id is out of range.
func (m *Mixer) Effect(id int) audio.Stream {
	m.Lock()
	defer m.Unlock()
	if id < 0 || id >= len(m.effects) {
		return nil
	}
	return m.effects[id]
}

// PlayEffect plays bank effect id in the sound group with the given
// settings. It returns nil for unknown ids, while sound is disabled, or
// when Play would.
func (m *Mixer) PlayEffect(id, loop, volume int, pan float32, rate float64, deleteOnDone bool) *Channel {
	m.Lock()
	defer m.Unlock()

	if !m.initialized || !m.groups[GroupSound].enabled {
		return nil
	}
	if id < 0 || id >= len(m.effects) {
		m.log.Error("tried to play an invalid effect id", "id", id, "effects", len(m.effects))
		return nil
	}

	ch := m.play(m.effects[id], loop, deleteOnDone)
	if ch == nil {
		return nil
	}
	ch.setVolume(volume)
	ch.setPan(pan)
	ch.setRate(rate)
	return ch
}

// LoadMusic loads music id through the configured MusicLoader and caches
// it. It reports whether the track is available; failures are not cached
// and are retried on the next call. It refuses to load while the mixer is
// not initialized. The load runs without the device lock.
func (m *Mixer) LoadMusic(id int) bool {
	_, ok := m.musicStream(id)
	return ok
}

// outputFormat returns the negotiated format and whether the mixer is
// initialized.
func (m *Mixer) outputFormat() (audio.AudioFormat, bool) {
	m.Lock()
	defer m.Unlock()
	return m.format, m.initialized
}

func (m *Mixer) musicStream(id int) (*audio.SampleStream, bool) {
	m.musicMu.Lock()
	defer m.musicMu.Unlock()

	format, ok := m.outputFormat()
	if !ok {
		return nil, false
	}
	if st, ok := m.music[id]; ok {
		return st, true
	}
	if m.cfg.Music == nil {
		return nil, false
	}

	s, err := m.cfg.Music.LoadMusic(id)
	if err != nil {
		m.log.Warn("loading music", "id", id, "error", err)
		return nil, false
	}

	if _, err := s.Convert(format); err != nil {
		// The callback converts on the fly instead.
		m.log.Warn("converting music", "id", id, "format", format.String(), "error", err)
	}

	// Close may have run during the load.
	if _, ok := m.outputFormat(); !ok {
		s.Release()
		return nil, false
	}

	st := audio.NewSampleStream(s)
	m.music[id] = st
	return st, true
}

// PlayMusic plays music id in the music group, loading it first if needed.
// Callers usually pass LoopInfinite.
func (m *Mixer) PlayMusic(id, loop int) *Channel {
	st, ok := m.musicStream(id)
	if !ok {
		return nil
	}

	m.Lock()
	defer m.Unlock()

	ch := m.play(st, loop, false)
	if ch != nil {
		ch.group = GroupMusic
	}
	return ch
}

// PlayStream plays a stream the channel takes ownership of, in the music
// group. The stream is closed when the channel is destroyed, or right away
// when no channel could be created.
func (m *Mixer) PlayStream(stream audio.Stream, loop int) *Channel {
	if stream == nil {
		return nil
	}

	m.Lock()
	ch := m.play(stream, loop, false)
	if ch != nil {
		ch.owned = true
		ch.group = GroupMusic
	}
	m.Unlock()

	if ch == nil {
		if cl, ok := stream.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				m.log.Warn("closing unplayed stream", "error", err)
			}
		}
	}
	return ch
}

// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/device"
	"github.com/ik5/audmix/internal/audiotest"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMixer(t *testing.T, opts ...func(*Config)) (*Mixer, *device.Manual) {
	t.Helper()

	cfg := DefaultConfig()
	cfg.BufferFrames = 256
	cfg.Logger = quietLogger()
	for _, o := range opts {
		o(&cfg)
	}

	dev := device.NewManual()
	m := New(dev, cfg)
	require.NoError(t, m.Init())
	t.Cleanup(func() { m.Close() })

	return m, dev
}

// pull renders frames frames of S16LE output.
func pull(t *testing.T, dev *device.Manual, frames int) []int16 {
	t.Helper()

	p, err := dev.Pull(frames)
	require.NoError(t, err)
	return audiotest.ReadS16(p)
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, audio.AudioFormat{Rate: 44100, Encoding: audio.S16LE, Channels: 2}, cfg.Format())
	assert.Equal(t, 1024, cfg.BufferFrames)
	assert.Zero(t, cfg.MaxChannels)
	assert.NoError(t, cfg.validate())
}

func TestInit_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"zero rate", func(c *Config) { c.SampleRate = 0 }},
		{"six channels", func(c *Config) { c.Channels = 6 }},
		{"no encoding", func(c *Config) { c.Encoding = 0 }},
		{"no buffer", func(c *Config) { c.BufferFrames = 0 }},
		{"negative max channels", func(c *Config) { c.MaxChannels = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			cfg.Logger = quietLogger()
			tt.modify(&cfg)

			err := New(device.NewManual(), cfg).Init()
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestInit_DeviceErrors(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Logger = quietLogger()

	broken := errors.New("no device")
	m := New(&device.Manual{OpenErr: broken}, cfg)
	err := m.Init()
	assert.ErrorIs(t, err, ErrDeviceOpen)
	assert.ErrorIs(t, err, broken)
	assert.Nil(t, m.Play(audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 10, 1)), LoopNone, false))

	bad := audio.AudioFormat{Rate: 44100, Encoding: audio.S16LE, Channels: 6}
	m = New(&device.Manual{Actual: &bad}, cfg)
	assert.ErrorIs(t, m.Init(), ErrDeviceOpen)
}

func TestInit_UsesDeviceFormat(t *testing.T) {
	t.Parallel()

	actual := audio.AudioFormat{Rate: 22050, Encoding: audio.U8, Channels: 1}
	dev := &device.Manual{Actual: &actual}

	cfg := DefaultConfig()
	cfg.DeviceName = "speakers"
	cfg.Logger = quietLogger()
	m := New(dev, cfg)
	require.NoError(t, m.Init())
	defer m.Close()

	assert.Equal(t, actual, m.Format())
	assert.Equal(t, "speakers", dev.Name())
	assert.ErrorIs(t, m.Init(), ErrAlreadyInitialized)
}

func TestClose(t *testing.T) {
	t.Parallel()

	m, dev := newTestMixer(t)

	closer := &countingCloser{}
	data := audiotest.S16(make([]int16, 200)...)
	st := audio.NewReaderStream(readerAt(data), 0, len(data), audio.AudioFormat{Rate: 44100, Encoding: audio.S16LE, Channels: 2}, closer)

	a := m.Play(audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 100, 5)), LoopInfinite, false)
	b := m.PlayStream(st, LoopInfinite)
	require.NotNil(t, a)
	require.NotNil(t, b)

	require.NoError(t, m.Close())
	assert.False(t, a.IsPlaying())
	assert.False(t, b.IsPlaying())
	assert.Equal(t, 1, closer.calls)
	assert.Zero(t, m.Len())

	// The device is closed
	_, err := dev.Pull(10)
	assert.ErrorIs(t, err, device.ErrNotOpen)

	assert.ErrorIs(t, m.Close(), ErrNotInitialized)
	assert.Nil(t, m.Play(audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 10, 1)), LoopNone, false))
}

func TestPlay_Defaults(t *testing.T) {
	t.Parallel()

	m, _ := newTestMixer(t)
	ch := m.Play(audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 10, 1)), 3, false)
	require.NotNil(t, ch)

	m.Lock()
	defer m.Unlock()
	assert.Equal(t, MaxVolume, ch.Volume())
	assert.Equal(t, float32(0.5), ch.Pan())
	assert.Equal(t, 1.0, ch.Rate())
	assert.Equal(t, 3, ch.Loop())
	assert.Equal(t, GroupSound, ch.Group())
	assert.True(t, ch.IsPlaying())
	assert.False(t, ch.Stopping())
}

func TestPlay_NilStream(t *testing.T) {
	t.Parallel()

	m, _ := newTestMixer(t)
	assert.Nil(t, m.Play(nil, LoopNone, false))
	assert.Nil(t, m.PlayStream(nil, LoopNone))
	assert.Zero(t, m.Len())
}

func TestPlay_MaxChannels(t *testing.T) {
	t.Parallel()

	m, dev := newTestMixer(t, func(c *Config) { c.MaxChannels = 2 })
	st := audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 10, 1))

	a := m.Play(st, LoopNone, true)
	b := m.Play(st, LoopNone, true)
	require.NotNil(t, a)
	require.NotNil(t, b)
	assert.Nil(t, m.Play(st, LoopNone, true))

	// Finished channels free their slots
	pull(t, dev, 64)
	assert.NotNil(t, m.Play(st, LoopNone, true))
}

func TestPlay_NotOwnedStreamIsNotClosed(t *testing.T) {
	t.Parallel()

	m, dev := newTestMixer(t)

	closer := &countingCloser{}
	data := audiotest.S16(1, 2, 3, 4)
	st := audio.NewReaderStream(readerAt(data), 0, len(data), audio.AudioFormat{Rate: 44100, Encoding: audio.S16LE, Channels: 1}, closer)

	ch := m.Play(st, LoopNone, true)
	require.NotNil(t, ch)
	pull(t, dev, 16)

	assert.False(t, m.IsPlaying(ch))
	assert.Zero(t, closer.calls)
}

func TestControl_NilChannel(t *testing.T) {
	t.Parallel()

	m, _ := newTestMixer(t)

	assert.NotPanics(t, func() {
		m.Stop(nil)
		m.SetVolume(nil, 1)
		m.SetPan(nil, 1)
		m.SetRate(nil, 1)
		m.SetGroup(nil, GroupMusic)
	})
	assert.False(t, m.IsPlaying(nil))
	assert.Zero(t, m.Offset(nil))
	assert.False(t, m.SetOffset(nil, 0))
	assert.False(t, m.Replay(nil, LoopNone))
}

func TestChannel_Clamps(t *testing.T) {
	t.Parallel()

	m, _ := newTestMixer(t)
	ch := m.Play(audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 10, 1)), LoopNone, false)
	require.NotNil(t, ch)

	volumes := []struct{ in, want int }{
		{-5, 0},
		{0, 0},
		{64, 64},
		{MaxVolume, MaxVolume},
		{1 << 30, MaxVolume},
	}
	for _, v := range volumes {
		m.SetVolume(ch, v.in)
		m.Lock()
		assert.Equal(t, v.want, ch.Volume(), "SetVolume(%d)", v.in)
		m.Unlock()
	}

	rates := []struct{ in, want float64 }{
		{0, MinRate},
		{-3, MinRate},
		{math.NaN(), MinRate},
		{0.0001, MinRate},
		{2.5, 2.5},
	}
	for _, r := range rates {
		m.SetRate(ch, r.in)
		m.Lock()
		assert.Equal(t, r.want, ch.Rate(), "SetRate(%v)", r.in)
		m.Unlock()
	}

	pans := []struct{ in, want float32 }{
		{-1, 0},
		{0.25, 0.25},
		{2, 1},
		{float32(math.NaN()), 0.5},
	}
	for _, p := range pans {
		m.SetPan(ch, p.in)
		m.Lock()
		assert.Equal(t, p.want, ch.Pan(), "SetPan(%v)", p.in)
		m.Unlock()
	}
}

func TestChannel_PanSymmetry(t *testing.T) {
	t.Parallel()

	c := newChannel()

	c.setPan(0.5)
	l, r := c.Gains()
	assert.Equal(t, l, r)
	assert.InDelta(t, math.Sqrt2/2, l, 1e-6)

	c.setPan(0)
	l, r = c.Gains()
	assert.Equal(t, float32(1), l)
	assert.Zero(t, r)

	c.setPan(1)
	l2, r2 := c.Gains()
	assert.Equal(t, r, l2)
	assert.Equal(t, l, r2)

	for _, p := range []float32{0.1, 0.3, 0.45} {
		c.setPan(p)
		l, r := c.Gains()
		c.setPan(1 - p)
		ml, mr := c.Gains()
		assert.InDelta(t, l, mr, 1e-6, "pan %v", p)
		assert.InDelta(t, r, ml, 1e-6, "pan %v", p)
		// Constant power
		assert.InDelta(t, 1, l*l+r*r, 1e-6, "pan %v", p)
	}
}

func TestChannel_Offset(t *testing.T) {
	t.Parallel()

	m, dev := newTestMixer(t)
	s := audiotest.RampS16(44100, 100, 0, 10)
	ch := m.Play(audio.NewSampleStream(s), LoopNone, false)
	require.NotNil(t, ch)

	assert.Zero(t, m.Offset(ch))

	// Rounded down to a whole frame
	assert.True(t, m.SetOffset(ch, 101))
	assert.Equal(t, 100, m.Offset(ch))

	out := pull(t, dev, 2)
	assert.Equal(t, []int16{500, 500, 510, 510}, out)
	assert.Equal(t, 104, m.Offset(ch))

	assert.False(t, m.SetOffset(ch, 200))
	assert.False(t, m.SetOffset(ch, -2))
	assert.Equal(t, 104, m.Offset(ch))
}

func TestReplay(t *testing.T) {
	t.Parallel()

	m, dev := newTestMixer(t)
	ch := m.Play(audio.NewSampleStream(audiotest.ConstantS16(44100, 1, 10, 300)), LoopNone, false)
	require.NotNil(t, ch)
	m.SetVolume(ch, MaxVolume/2)

	pull(t, dev, 20)
	require.False(t, m.IsPlaying(ch))
	assert.Equal(t, 1, m.Len())

	require.True(t, m.Replay(ch, LoopNone))
	assert.True(t, m.IsPlaying(ch))

	out := pull(t, dev, 10)
	for i, v := range out {
		require.Equal(t, int16(150), v, "sample %d", i)
	}

	m.Stop(ch)
	pull(t, dev, 1)
	assert.False(t, m.Replay(ch, LoopNone))
}

func TestConcurrentControl(t *testing.T) {
	t.Parallel()

	m, dev := newTestMixer(t, func(c *Config) { c.BufferFrames = 64 })
	st := audio.NewSampleStream(audiotest.ConstantS16(44100, 2, 500, 100))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 500 {
			ch := m.Play(st, i%3, i%2 == 0)
			m.SetVolume(ch, i%MaxVolume)
			m.SetPan(ch, float32(i%10)/10)
			m.SetRate(ch, 0.5+float64(i%4)/2)
			if i%5 == 0 {
				m.Stop(ch)
			}
			m.IsPlaying(ch)
		}
	}()

	for range 200 {
		_, err := dev.Pull(64)
		require.NoError(t, err)
	}
	wg.Wait()
}

type countingCloser struct {
	calls int
}

func (c *countingCloser) Close() error {
	c.calls++
	return nil
}

type readerAt []byte

func (r readerAt) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(r)) {
		return 0, io.EOF
	}
	n := copy(p, r[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

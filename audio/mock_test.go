// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// mockSource generates audio for decoder-facing tests.
type mockSource struct {
	sampleRate   int
	channels     int
	totalSamples int // per channel
	generated    int
	waveform     func(sample int, channel int) float32
}

func newMockSource(sampleRate, channels, totalSamples int, waveform func(sample int, channel int) float32) *mockSource {
	return &mockSource{
		sampleRate:   sampleRate,
		channels:     channels,
		totalSamples: totalSamples,
		waveform:     waveform,
	}
}

func newSilentSource(sampleRate, channels, totalSamples int) *mockSource {
	return newConstantSource(sampleRate, channels, totalSamples, 0)
}

func newConstantSource(sampleRate, channels, totalSamples int, value float32) *mockSource {
	return newMockSource(sampleRate, channels, totalSamples, func(int, int) float32 {
		return value
	})
}

func (m *mockSource) SampleRate() int { return m.sampleRate }
func (m *mockSource) Channels() int   { return m.channels }
func (m *mockSource) BufSize() int    { return 4096 }
func (m *mockSource) Close() error    { return nil }

func (m *mockSource) ReadSamples(dst []float32) (int, error) {
	if m.generated >= m.totalSamples {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalSamples-m.generated)
	for frame := range frames {
		for ch := range m.channels {
			dst[frame*m.channels+ch] = m.waveform(m.generated+frame, ch)
		}
	}
	m.generated += frames

	if m.generated >= m.totalSamples {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}

// u8Source reports an 8-bit encoding so ReadSample keeps it.
type u8Source struct {
	*mockSource
}

func (u8Source) Encoding() Encoding { return U8 }

// sliceReader serves frames from an interleaved slice.
type sliceReader struct {
	data     []float32
	channels int
	pos      int // frames
	calls    int
}

func (s *sliceReader) ReadFrames(dst []float32, frames int) int {
	s.calls++
	avail := len(s.data)/s.channels - s.pos
	n := min(frames, avail, len(dst)/s.channels)
	copy(dst, s.data[s.pos*s.channels:(s.pos+n)*s.channels])
	s.pos += n
	return n
}

func rampFrames(frames, channels int) []float32 {
	out := make([]float32, frames*channels)
	for f := range frames {
		for c := range channels {
			out[f*channels+c] = float32(f) / float32(frames)
		}
	}
	return out
}

func sineFrames(frames, rate int, freq float64) []float32 {
	out := make([]float32, frames)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * freq * float64(i) / float64(rate)))
	}
	return out
}

// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/audio"
)

// mockOggVorbisReader simulates the oggvorbis.Reader for testing.
// Like the real reader, Read counts interleaved values.
type mockOggVorbisReader struct {
	sampleRate int
	channels   int
	samples    []float32
	offset     int
	maxFrames  int // frames per Read, 0 for unlimited
	err        error
}

func (m *mockOggVorbisReader) SampleRate() int { return m.sampleRate }
func (m *mockOggVorbisReader) Channels() int   { return m.channels }

func (m *mockOggVorbisReader) Read(buf []float32) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	if m.offset >= len(m.samples) {
		return 0, io.EOF
	}

	frames := min(len(buf), len(m.samples)-m.offset) / m.channels
	if m.maxFrames > 0 {
		frames = min(frames, m.maxFrames)
	}
	n := frames * m.channels
	copy(buf, m.samples[m.offset:m.offset+n])
	m.offset += n

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{"garbage", []byte("This is not Ogg Vorbis data")},
		{"empty", []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := (Decoder{}).Decode(bytes.NewReader(tt.data)); err == nil {
				t.Error("Decode() error = nil, want error for invalid data")
			}
			if _, err := LoadSample(bytes.NewReader(tt.data)); err == nil {
				t.Error("LoadSample() error = nil, want error for invalid data")
			}
		})
	}
}

func TestSource_Metadata(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 2})

	if src.SampleRate() != 44100 {
		t.Errorf("SampleRate() = %d, want 44100", src.SampleRate())
	}
	if src.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", src.Channels())
	}
	if src.BufSize() <= 0 {
		t.Errorf("BufSize() = %d, want positive value", src.BufSize())
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	testSamples := []float32{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8}
	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: testSamples})

	dst := make([]float32, 8)
	n, err := src.ReadSamples(dst)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	if n != 8 {
		t.Errorf("ReadSamples() n = %d, want 8", n)
	}
	for i := range n {
		if dst[i] != testSamples[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], testSamples[i])
		}
	}

	n, err = src.ReadSamples(dst)
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() after end = (%d, %v), want (0, EOF)", n, err)
	}
}

func TestSource_ReadSamples_Chunked(t *testing.T) {
	t.Parallel()

	samples := make([]float32, 3*2*7)
	for i := range samples {
		samples[i] = float32(i) / 100
	}
	src := newSource(&mockOggVorbisReader{sampleRate: 44100, channels: 3, samples: samples, maxFrames: 2})

	// 7 is not a whole number of 3-channel frames
	dst := make([]float32, 7)
	var got []float32
	for {
		n, err := src.ReadSamples(dst)
		if n%3 != 0 {
			t.Fatalf("ReadSamples() n = %d, want whole frames", n)
		}
		got = append(got, dst[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}

	if len(got) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got), len(samples))
	}
	for i := range got {
		if got[i] != samples[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], samples[i])
		}
	}
}

func TestSource_ReadSamples_EmptyBuffer(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 2, samples: []float32{0.1, 0.2}})

	for _, dst := range [][]float32{nil, make([]float32, 1)} {
		n, err := src.ReadSamples(dst)
		if n != 0 || err != nil {
			t.Errorf("ReadSamples(len %d) = (%d, %v), want (0, nil)", len(dst), n, err)
		}
	}
}

func TestSource_ReadSamples_Error(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{sampleRate: 8000, channels: 1, err: io.ErrUnexpectedEOF})

	_, err := src.ReadSamples(make([]float32, 4))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadSamples() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReadSample_FromSource(t *testing.T) {
	t.Parallel()

	src := newSource(&mockOggVorbisReader{
		sampleRate: 22050,
		channels:   1,
		samples:    []float32{0, 0.5, -0.5, 1},
		maxFrames:  3,
	})

	s, err := audio.ReadSample(src)
	if err != nil {
		t.Fatalf("ReadSample() error = %v", err)
	}

	want := audio.AudioFormat{Rate: 22050, Encoding: audio.S16LE, Channels: 1}
	if s.Format() != want {
		t.Errorf("Format() = %v, want %v", s.Format(), want)
	}
	if s.Frames() != 4 {
		t.Errorf("Frames() = %d, want 4", s.Frames())
	}
}

func TestToSample(t *testing.T) {
	t.Parallel()

	s, err := toSample([]float32{0, 0.5, -0.5, 0.25}, 48000, 2)
	if err != nil {
		t.Fatalf("toSample() error = %v", err)
	}
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", s.Frames())
	}

	dst := make([]float32, 4)
	audio.DecodeSamples(audio.S16LE, s.Data(), dst)
	want := []float32{0, 0.5, -0.5, 0.25}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, dst[i], want[i])
		}
	}
}

func TestToSample_Errors(t *testing.T) {
	t.Parallel()

	if _, err := toSample(nil, 44100, 2); !errors.Is(err, audio.ErrEmptySource) {
		t.Errorf("toSample(nil) error = %v, want audio.ErrEmptySource", err)
	}
	if _, err := toSample(make([]float32, 6), 44100, 6); !errors.Is(err, audio.ErrUnsupportedFormat) {
		t.Errorf("toSample(6ch) error = %v, want audio.ErrUnsupportedFormat", err)
	}
}

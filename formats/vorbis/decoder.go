// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audmix/audio"
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
}

func newSource(dec oggReader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return 4096 }

// ReadSamples decodes straight into dst. The reader counts interleaved
// values, so n is already a sample count.
func (s *source) ReadSamples(dst []float32) (int, error) {
	want := len(dst) - len(dst)%s.channels
	if want == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:want])
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		if n == 0 {
			return 0, io.EOF
		}
		return n, nil
	default:
		return n, fmt.Errorf("decoding vorbis: %w", err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("decoding vorbis: %w", err)
	}

	return newSource(dec), nil
}

// LoadSample decodes a whole Ogg Vorbis file into an S16LE Sample.
func LoadSample(r io.Reader) (*audio.Sample, error) {
	data, info, err := oggvorbis.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding vorbis: %w", err)
	}

	return toSample(data, info.SampleRate, info.Channels)
}

func toSample(data []float32, rate, channels int) (*audio.Sample, error) {
	format := audio.AudioFormat{Rate: rate, Encoding: audio.S16LE, Channels: channels}
	if err := format.Validate(); err != nil {
		return nil, err
	}
	if len(data) < channels {
		return nil, audio.ErrEmptySource
	}

	pcm := make([]byte, len(data)*2)
	audio.EncodeSamples(audio.S16LE, data, pcm)

	return audio.NewSample(format, pcm)
}

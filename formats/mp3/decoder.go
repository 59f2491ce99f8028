// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audmix/audio"
)

// go-mp3 always produces 16-bit little-endian stereo.
const channels = 2

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, 8192),
	}
}

func (s *source) SampleRate() int          { return s.sampleRate }
func (s *source) Channels() int            { return channels }
func (s *source) Close() error             { return nil }
func (s *source) BufSize() int             { return cap(s.buf) / 2 } // samples, not bytes
func (s *source) Encoding() audio.Encoding { return audio.S16LE }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	want := len(dst) * 2
	if cap(s.buf) < want {
		s.buf = make([]byte, want)
	}
	s.buf = s.buf[:want]

	n, err := io.ReadFull(s.dec, s.buf)
	samples := audio.DecodeSamples(audio.S16LE, s.buf[:n], dst)

	switch err {
	case nil:
		return samples, nil
	case io.EOF, io.ErrUnexpectedEOF:
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	default:
		return samples, fmt.Errorf("decoding mp3: %w", err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	return newSource(dec), nil
}

// LoadSample decodes a whole MP3 file into a stereo S16LE Sample. The
// decoder output is kept as is, without a float round trip.
func LoadSample(r io.Reader) (*audio.Sample, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	return readAll(dec, dec.Length())
}

// readAll drains dec. sizeHint is the decoded size in bytes, or negative
// when unknown.
func readAll(dec mp3Reader, sizeHint int64) (*audio.Sample, error) {
	buf := new(bytes.Buffer)
	if sizeHint > 0 {
		buf.Grow(int(sizeHint))
	}
	if _, err := buf.ReadFrom(dec); err != nil {
		return nil, fmt.Errorf("decoding mp3: %w", err)
	}

	format := audio.AudioFormat{Rate: dec.SampleRate(), Encoding: audio.S16LE, Channels: channels}
	if buf.Len() < format.FrameSize() {
		return nil, audio.ErrEmptySource
	}

	return audio.NewSample(format, buf.Bytes())
}

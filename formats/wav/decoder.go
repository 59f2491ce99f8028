// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// source reads the data chunk of a WAV file.
type source struct {
	r          io.Reader // limited to the data chunk
	size       int
	sampleRate int
	channels   int
	bitDepth   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 }
func (s *source) Close() error    { return nil }

// Encoding keeps 8-bit files unsigned 8-bit; every other depth loads as 16-bit.
func (s *source) Encoding() audio.Encoding {
	if s.bitDepth == 8 {
		return audio.U8
	}
	return audio.S16LE
}

func (s *source) format() audio.AudioFormat {
	return audio.AudioFormat{Rate: s.sampleRate, Encoding: s.Encoding(), Channels: s.channels}
}

// native reports whether the data chunk can be used as is.
func (s *source) native() bool {
	return s.bitDepth == 8 || s.bitDepth == 16
}

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	bps := s.bitDepth / 8
	want := len(dst) * bps
	if len(s.buf) < want {
		s.buf = make([]byte, want)
	}

	n, err := io.ReadFull(s.r, s.buf[:want])
	samples := n / bps
	raw := s.buf[:samples*bps]

	switch s.bitDepth {
	case 8:
		audio.DecodeSamples(audio.U8, raw, dst)
	case 16:
		audio.DecodeSamples(audio.S16LE, raw, dst)
	case 24:
		for i := range samples {
			dst[i] = float32(goaudio.Int24LETo32(raw[3*i:3*i+3])) / 8388608.0
		}
	case 32:
		for i := range samples {
			dst[i] = float32(int32(binary.LittleEndian.Uint32(raw[4*i:]))) / 2147483648.0
		}
	}

	switch err {
	case nil:
		return samples, nil
	case io.EOF, io.ErrUnexpectedEOF:
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, nil
	default:
		return samples, fmt.Errorf("reading wav data: %w", err)
	}
}

// open parses the headers of a WAV file and leaves r at the start of the
// data chunk.
func open(r io.Reader) (*source, error) {
	// go-audio needs to seek while looking for chunks
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := wav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}

	if dec.WavAudioFormat != formatPCM && dec.WavAudioFormat != formatExtensible {
		return nil, fmt.Errorf("%w: format tag %d", ErrUnsupportedWavLayout, dec.WavAudioFormat)
	}

	switch dec.BitDepth {
	case 8, 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, dec.BitDepth)
	}

	if err := dec.FwdToPCM(); err != nil || dec.PCMChunk == nil {
		return nil, ErrUnsupportedWavChunks
	}

	return &source{
		r:          io.LimitReader(rs, int64(dec.PCMSize)),
		size:       dec.PCMSize,
		sampleRate: int(dec.SampleRate),
		channels:   int(dec.NumChans),
		bitDepth:   int(dec.BitDepth),
	}, nil
}

// Decoder decodes PCM WAV files of 8, 16, 24 or 32 bits.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	s, err := open(r)
	if err != nil {
		return nil, err
	}
	return s, nil
}

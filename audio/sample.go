// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// Sample is a fully decoded PCM clip held in memory.
// Streams reference a Sample without owning it.
type Sample struct {
	data   []byte
	format AudioFormat
}

// NewSample wraps data in format. The slice is used directly, not copied,
// and is truncated to a whole number of frames.
func NewSample(format AudioFormat, data []byte) (*Sample, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}
	fs := format.FrameSize()
	return &Sample{data: data[:len(data)/fs*fs], format: format}, nil
}

func (s *Sample) Format() AudioFormat { return s.format }

// Len is the length of the PCM data in bytes.
func (s *Sample) Len() int { return len(s.data) }

// Frames is the length of the PCM data in frames.
func (s *Sample) Frames() int {
	fs := s.format.FrameSize()
	if fs == 0 {
		return 0
	}
	return len(s.data) / fs
}

// Data exposes the raw PCM bytes. Callers must not modify them while the
// sample is being played.
func (s *Sample) Data() []byte { return s.data }

// Release drops the PCM buffer. Streams over a released sample read as empty.
func (s *Sample) Release() {
	s.data = nil
}

// ReadSample drains src into a new Sample. Sources implementing
// EncodingSource keep their encoding, everything else becomes S16LE.
func ReadSample(src Source) (*Sample, error) {
	channels := src.Channels()
	format := AudioFormat{Rate: src.SampleRate(), Encoding: S16LE, Channels: channels}
	if es, ok := src.(EncodingSource); ok {
		format.Encoding = es.Encoding()
	}
	if err := format.Validate(); err != nil {
		return nil, err
	}

	bufSize := src.BufSize()
	if bufSize < channels {
		bufSize = 4096
	}
	bufSize -= bufSize % channels
	buf := make([]float32, bufSize)
	bps := format.Encoding.BytesPerSample()
	data := make([]byte, 0, bufSize*bps)

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			start := len(data)
			data = append(data, make([]byte, n*bps)...)
			EncodeSamples(format.Encoding, buf[:n], data[start:])
		}

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading samples: %w", err)
		}
		if n == 0 {
			break
		}
	}

	if len(data) < format.FrameSize() {
		return nil, ErrEmptySource
	}

	return NewSample(format, data)
}

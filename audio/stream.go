// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Stream is a read-only view over PCM bytes. It holds no playback position,
// so one stream over a Sample can feed many channels at once.
//
// The set of implementations is closed: SampleStream, NullStream and
// ReaderStream.
type Stream interface {
	// Length is the total size of the PCM data in bytes.
	Length() int
	Format() AudioFormat
	// GetSome returns up to length bytes starting at offset. The result is
	// empty once offset reaches Length.
	GetSome(offset, length int) []byte

	stream()
}

func clip(total, offset, length int) int {
	if offset < 0 || offset >= total || length <= 0 {
		return 0
	}
	return min(length, total-offset)
}

// SampleStream reads directly from a Sample's buffer.
type SampleStream struct {
	sample *Sample
}

func NewSampleStream(s *Sample) *SampleStream {
	return &SampleStream{sample: s}
}

func (s *SampleStream) Sample() *Sample     { return s.sample }
func (s *SampleStream) Length() int         { return s.sample.Len() }
func (s *SampleStream) Format() AudioFormat { return s.sample.format }

func (s *SampleStream) GetSome(offset, length int) []byte {
	n := clip(len(s.sample.data), offset, length)
	if n == 0 {
		return nil
	}
	return s.sample.data[offset : offset+n]
}

func (*SampleStream) stream() {}

// NullStream is an empty stream. It stands in for sounds that failed to load.
type NullStream struct {
	AudioFormat AudioFormat
}

func (NullStream) Length() int             { return 0 }
func (n NullStream) Format() AudioFormat   { return n.AudioFormat }
func (NullStream) GetSome(_, _ int) []byte { return nil }
func (NullStream) stream()                 {}

// ReaderStream reads PCM on demand from a region of an io.ReaderAt, such as
// the data chunk of a WAV file on disk. It reuses one read buffer, so it must
// feed a single channel at a time.
type ReaderStream struct {
	r      io.ReaderAt
	closer io.Closer
	start  int64
	length int
	format AudioFormat

	buf []byte
	err error

	closeOnce sync.Once
}

// NewReaderStream exposes length bytes of r starting at start. closer may be nil.
func NewReaderStream(r io.ReaderAt, start int64, length int, format AudioFormat, closer io.Closer) *ReaderStream {
	fs := format.FrameSize()
	if fs > 0 {
		length -= length % fs
	}
	return &ReaderStream{
		r:      r,
		closer: closer,
		start:  start,
		length: length,
		format: format,
		buf:    make([]byte, 16*1024),
	}
}

func (s *ReaderStream) Length() int         { return s.length }
func (s *ReaderStream) Format() AudioFormat { return s.format }

// Err returns the last read error other than io.EOF.
func (s *ReaderStream) Err() error { return s.err }

func (s *ReaderStream) GetSome(offset, length int) []byte {
	n := clip(s.length, offset, length)
	if n == 0 {
		return nil
	}
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	buf := s.buf[:n]

	m, err := s.r.ReadAt(buf, s.start+int64(offset))
	if err != nil && err != io.EOF {
		s.err = err
	}
	return buf[:m]
}

// Close releases the underlying reader. It is safe to call more than once.
func (s *ReaderStream) Close() error {
	var err error
	s.closeOnce.Do(func() {
		if s.closer != nil {
			err = s.closer.Close()
		}
	})
	return err
}

func (*ReaderStream) stream() {}

// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/audio"
)

// LoadSample reads a whole WAV file into memory. 8 and 16-bit data is kept
// byte for byte; 24 and 32-bit data is reduced to 16-bit.
func LoadSample(r io.Reader) (*audio.Sample, error) {
	s, err := open(r)
	if err != nil {
		return nil, err
	}

	if !s.native() {
		return audio.ReadSample(s)
	}

	data, err := io.ReadAll(s.r)
	if err != nil {
		return nil, fmt.Errorf("reading wav data: %w", err)
	}

	format := s.format()
	if len(data) < format.FrameSize() {
		return nil, audio.ErrEmptySource
	}

	return audio.NewSample(format, data)
}

// File is what OpenStream reads from, usually an *os.File.
type File interface {
	io.ReadSeeker
	io.ReaderAt
}

// OpenStream exposes the data chunk of an 8 or 16-bit WAV file as a stream
// that reads from f on demand. closer, when not nil, is closed with the
// stream.
func OpenStream(f File, closer io.Closer) (*audio.ReaderStream, error) {
	s, err := open(f)
	if err != nil {
		return nil, err
	}
	if !s.native() {
		return nil, fmt.Errorf("%w: %d-bit data cannot be streamed", ErrUnsupportedBitDepth, s.bitDepth)
	}

	format := s.format()
	if err := format.Validate(); err != nil {
		return nil, err
	}

	start, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating wav data: %w", err)
	}
	end, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("locating wav data: %w", err)
	}

	// Headers written by streaming encoders often overstate the data size
	size := min(int64(s.size), end-start)

	return audio.NewReaderStream(f, start, int(size), format, closer), nil
}

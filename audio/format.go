// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// Encoding is the binary representation of a single PCM sample.
type Encoding int

const (
	// U8 is unsigned 8-bit PCM centred on 0x80.
	U8 Encoding = iota + 1
	// S8 is signed 8-bit PCM.
	S8
	// S16LE is signed 16-bit little-endian PCM, the native mixing encoding.
	S16LE
	// S16BE is signed 16-bit big-endian PCM.
	S16BE
	// F32LE is 32-bit IEEE float little-endian PCM in [-1, 1].
	F32LE
)

// BytesPerSample returns the size of one sample, or 0 for an unknown encoding.
func (e Encoding) BytesPerSample() int {
	switch e {
	case U8, S8:
		return 1
	case S16LE, S16BE:
		return 2
	case F32LE:
		return 4
	default:
		return 0
	}
}

// Valid reports whether e is one of the known encodings.
func (e Encoding) Valid() bool { return e.BytesPerSample() > 0 }

// Silence returns the byte value that represents zero amplitude.
func (e Encoding) Silence() byte {
	if e == U8 {
		return 0x80
	}
	return 0
}

func (e Encoding) String() string {
	switch e {
	case U8:
		return "u8"
	case S8:
		return "s8"
	case S16LE:
		return "s16le"
	case S16BE:
		return "s16be"
	case F32LE:
		return "f32le"
	default:
		return fmt.Sprintf("encoding(%d)", int(e))
	}
}

// ParseEncoding maps the String form of an encoding back to its value.
func ParseEncoding(s string) (Encoding, error) {
	for _, e := range []Encoding{U8, S8, S16LE, S16BE, F32LE} {
		if e.String() == s {
			return e, nil
		}
	}
	return 0, fmt.Errorf("%w: encoding %q", ErrUnsupportedFormat, s)
}

// AudioFormat describes interleaved PCM data.
type AudioFormat struct {
	Rate     int
	Encoding Encoding
	Channels int
}

// FrameSize is the number of bytes holding one sample for every channel.
func (f AudioFormat) FrameSize() int {
	return f.Channels * f.Encoding.BytesPerSample()
}

// Validate reports whether the mixer and converters can handle f.
func (f AudioFormat) Validate() error {
	switch {
	case f.Rate <= 0:
		return fmt.Errorf("%w: rate %d", ErrUnsupportedFormat, f.Rate)
	case !f.Encoding.Valid():
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, f.Encoding)
	case f.Channels != 1 && f.Channels != 2:
		return fmt.Errorf("%w: %d channels", ErrUnsupportedFormat, f.Channels)
	}
	return nil
}

func (f AudioFormat) String() string {
	return fmt.Sprintf("%dHz %s %dch", f.Rate, f.Encoding, f.Channels)
}

// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/utils"
)

func bitDepthFor(enc audio.Encoding) (int, error) {
	switch enc {
	case audio.U8:
		return 8, nil
	case audio.S16LE:
		return 16, nil
	default:
		return 0, fmt.Errorf("%w: cannot write %s", ErrUnsupportedBitDepth, enc)
	}
}

// WriteWAV writes pcm as a complete WAV file. format must be U8 or S16LE,
// the encodings WAV stores natively.
func WriteWAV(w io.Writer, format audio.AudioFormat, pcm []byte) error {
	bits, err := bitDepthFor(format.Encoding)
	if err != nil {
		return err
	}

	numChannels := uint16(format.Channels)
	bitsPerSample := uint16(bits)
	byteRate := uint32(format.Rate) * uint32(numChannels) * uint32(bitsPerSample/8)
	blockAlign := numChannels * (bitsPerSample / 8)
	dataSize := uint32(len(pcm))
	riffSize := 36 + dataSize + dataSize%2

	header := make([]byte, 44)

	// RIFF header (12 bytes)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], riffSize)
	copy(header[8:12], "WAVE")

	// fmt chunk (24 bytes)
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16)
	binary.LittleEndian.PutUint16(header[20:22], formatPCM)
	binary.LittleEndian.PutUint16(header[22:24], numChannels)
	binary.LittleEndian.PutUint32(header[24:28], uint32(format.Rate))
	binary.LittleEndian.PutUint32(header[28:32], byteRate)
	binary.LittleEndian.PutUint16(header[32:34], blockAlign)
	binary.LittleEndian.PutUint16(header[34:36], bitsPerSample)

	// data chunk header (8 bytes)
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("writing wav header: %w", err)
	}
	if _, err := w.Write(pcm); err != nil {
		return fmt.Errorf("writing wav data: %w", err)
	}
	if dataSize%2 == 1 {
		if _, err := w.Write([]byte{0}); err != nil {
			return fmt.Errorf("writing wav data: %w", err)
		}
	}

	return nil
}

// Writer encodes raw PCM into a WAV file as it arrives. U8 is written as
// 8-bit; every other encoding is written as 16-bit.
type Writer struct {
	enc     *wav.Encoder
	format  audio.AudioFormat
	bits    int
	samples []float32
	buf     *goaudio.IntBuffer
	wrote   bool
}

func NewWriter(w io.WriteSeeker, format audio.AudioFormat) (*Writer, error) {
	if err := format.Validate(); err != nil {
		return nil, err
	}

	bits := 16
	if format.Encoding == audio.U8 {
		bits = 8
	}

	return &Writer{
		enc:    wav.NewEncoder(w, format.Rate, bits, format.Channels, formatPCM),
		format: format,
		bits:   bits,
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: format.Channels, SampleRate: format.Rate},
			SourceBitDepth: bits,
		},
	}, nil
}

// Write encodes every whole frame in p and reports the bytes consumed.
func (w *Writer) Write(p []byte) (int, error) {
	fs := w.format.FrameSize()
	frames := len(p) / fs
	if frames == 0 {
		return 0, nil
	}
	n := frames * w.format.Channels
	p = p[:frames*fs]

	if cap(w.buf.Data) < n {
		w.buf.Data = make([]int, n)
	}
	data := w.buf.Data[:n]
	w.buf.Data = data

	if w.bits == 8 {
		for i, b := range p {
			data[i] = int(b)
		}
	} else {
		if cap(w.samples) < n {
			w.samples = make([]float32, n)
		}
		samples := w.samples[:n]
		audio.DecodeSamples(w.format.Encoding, p, samples)
		for i, v := range samples {
			data[i] = int(utils.Float32ToInt16(v))
		}
	}

	if err := w.enc.Write(w.buf); err != nil {
		return 0, fmt.Errorf("encoding wav: %w", err)
	}
	w.wrote = true
	return len(p), nil
}

// Close finalises the headers. It does not close the underlying writer.
func (w *Writer) Close() error {
	if !w.wrote {
		// An empty file still needs its header and data chunk
		w.buf.Data = w.buf.Data[:0]
		if err := w.enc.Write(w.buf); err != nil {
			return fmt.Errorf("encoding wav: %w", err)
		}
		w.wrote = true
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("finishing wav: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"encoding/binary"
	"math"

	"github.com/ik5/audmix/utils"
)

// DecodeSamples converts raw PCM in encoding enc to float32 samples in [-1, 1].
// It returns the number of samples written, bounded by both buffers.
func DecodeSamples(enc Encoding, src []byte, dst []float32) int {
	bps := enc.BytesPerSample()
	if bps == 0 {
		return 0
	}
	n := min(len(src)/bps, len(dst))

	switch enc {
	case U8:
		for i := range n {
			dst[i] = float32(int(src[i])-128) / 128.0
		}
	case S8:
		for i := range n {
			dst[i] = float32(int8(src[i])) / 128.0
		}
	case S16LE:
		for i := range n {
			dst[i] = float32(int16(binary.LittleEndian.Uint16(src[2*i:]))) / 32768.0
		}
	case S16BE:
		for i := range n {
			dst[i] = float32(int16(binary.BigEndian.Uint16(src[2*i:]))) / 32768.0
		}
	case F32LE:
		for i := range n {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
		}
	}

	return n
}

// EncodeSamples converts float32 samples to raw PCM, clamping out of range values.
// It returns the number of samples written.
func EncodeSamples(enc Encoding, src []float32, dst []byte) int {
	bps := enc.BytesPerSample()
	if bps == 0 {
		return 0
	}
	n := min(len(src), len(dst)/bps)

	switch enc {
	case U8:
		for i := range n {
			dst[i] = byte(int(utils.Float32ToInt8(src[i])) + 128)
		}
	case S8:
		for i := range n {
			dst[i] = byte(utils.Float32ToInt8(src[i]))
		}
	case S16LE:
		for i := range n {
			binary.LittleEndian.PutUint16(dst[2*i:], uint16(utils.Float32ToInt16(src[i])))
		}
	case S16BE:
		for i := range n {
			binary.BigEndian.PutUint16(dst[2*i:], uint16(utils.Float32ToInt16(src[i])))
		}
	case F32LE:
		for i := range n {
			binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(utils.ClampUnit(src[i])))
		}
	}

	return n
}

// MixSamples adds src onto the PCM already in dst with saturation.
// It returns the number of samples mixed.
func MixSamples(enc Encoding, dst []byte, src []float32) int {
	bps := enc.BytesPerSample()
	if bps == 0 {
		return 0
	}
	n := min(len(src), len(dst)/bps)

	switch enc {
	case U8:
		for i := range n {
			s := float32(int(dst[i])-128) + src[i]*128
			dst[i] = byte(int(clamp(s, -128, 127)) + 128)
		}
	case S8:
		for i := range n {
			s := float32(int8(dst[i])) + src[i]*128
			dst[i] = byte(int8(clamp(s, -128, 127)))
		}
	case S16LE:
		for i := range n {
			b := dst[2*i:]
			s := float32(int16(binary.LittleEndian.Uint16(b))) + src[i]*32768
			binary.LittleEndian.PutUint16(b, uint16(int16(clamp(s, -32768, 32767))))
		}
	case S16BE:
		for i := range n {
			b := dst[2*i:]
			s := float32(int16(binary.BigEndian.Uint16(b))) + src[i]*32768
			binary.BigEndian.PutUint16(b, uint16(int16(clamp(s, -32768, 32767))))
		}
	case F32LE:
		for i := range n {
			b := dst[4*i:]
			s := math.Float32frombits(binary.LittleEndian.Uint32(b)) + src[i]
			binary.LittleEndian.PutUint32(b, math.Float32bits(utils.ClampUnit(s)))
		}
	}

	return n
}

// FillSilence writes the neutral level of enc over dst.
func FillSilence(enc Encoding, dst []byte) {
	v := enc.Silence()
	for i := range dst {
		dst[i] = v
	}
}

func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

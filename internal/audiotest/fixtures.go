// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats/wav"
)

// S16 packs values as S16LE PCM.
func S16(values ...int16) []byte {
	b := make([]byte, 2*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}

// ReadS16 unpacks S16LE PCM.
func ReadS16(b []byte) []int16 {
	out := make([]int16, len(b)/2)
	for i := range out {
		out[i] = int16(binary.LittleEndian.Uint16(b[2*i:]))
	}
	return out
}

// ConstantS16 returns a Sample of frames frames with every sample set to v.
func ConstantS16(rate, channels, frames int, v int16) *audio.Sample {
	values := make([]int16, frames*channels)
	for i := range values {
		values[i] = v
	}
	return MustSample(audio.AudioFormat{Rate: rate, Encoding: audio.S16LE, Channels: channels}, S16(values...))
}

// RampS16 returns a mono Sample whose frame i holds start+i*step.
func RampS16(rate, frames int, start, step int16) *audio.Sample {
	values := make([]int16, frames)
	for i := range values {
		values[i] = start + int16(i)*step
	}
	return MustSample(audio.AudioFormat{Rate: rate, Encoding: audio.S16LE, Channels: 1}, S16(values...))
}

// MustSample wraps audio.NewSample and panics on error.
func MustSample(format audio.AudioFormat, data []byte) *audio.Sample {
	s, err := audio.NewSample(format, data)
	if err != nil {
		panic(err)
	}
	return s
}

// WAV returns a complete WAV file holding pcm.
func WAV(format audio.AudioFormat, pcm []byte) []byte {
	var buf bytes.Buffer
	if err := wav.WriteWAV(&buf, format, pcm); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// WriteFile writes data to name inside a test temp directory and returns
// its path.
func WriteFile(tb testing.TB, name string, data []byte) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		tb.Fatalf("writing %s: %v", path, err)
	}
	return path
}

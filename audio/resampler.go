// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"github.com/ik5/audmix/utils"
)

// FrameReader supplies interleaved float32 frames on demand.
// ReadFrames returns the number of frames written to dst, 0 once exhausted.
type FrameReader interface {
	ReadFrames(dst []float32, frames int) int
}

// Resampler converts a pulled frame stream by a variable ratio using cubic
// interpolation. The ratio is the number of source frames consumed per output
// frame. Phase and the interpolation window survive between calls, so output
// produced in several calls is continuous.
type Resampler struct {
	channels int
	ratio    float64

	// Window of 4 frames for cubic interpolation
	// frames[0] = t-1, frames[1] = t0, frames[2] = t+1, frames[3] = t+2
	frames [4][]float32
	valid  [4]bool

	// Fractional position between frames[1] and frames[2]
	pos float64

	primed    bool
	eof       bool
	exhausted bool
}

func NewResampler(channels int) *Resampler {
	r := &Resampler{
		channels: channels,
		ratio:    1,
	}
	for i := range r.frames {
		r.frames[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) Channels() int  { return r.channels }
func (r *Resampler) Ratio() float64 { return r.ratio }

// SetRatio changes the conversion ratio. Non-positive ratios are ignored.
func (r *Resampler) SetRatio(ratio float64) {
	if ratio > 0 {
		r.ratio = ratio
	}
}

// Exhausted reports whether the source ran dry and every buffered frame
// has been emitted.
func (r *Resampler) Exhausted() bool { return r.exhausted }

// Reset drops the window and phase so the next call starts a new stream.
func (r *Resampler) Reset() {
	r.pos = 0
	r.primed = false
	r.eof = false
	r.exhausted = false
	r.valid = [4]bool{}
}

// shift advances the window by one source frame.
func (r *Resampler) shift(src FrameReader) {
	first := r.frames[0]
	r.frames[0], r.frames[1], r.frames[2] = r.frames[1], r.frames[2], r.frames[3]
	r.frames[3] = first
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]
	r.valid[3] = r.fetch(src, r.frames[3])
}

func (r *Resampler) fetch(src FrameReader, dst []float32) bool {
	if r.eof {
		return false
	}
	if src.ReadFrames(dst, 1) == 1 {
		return true
	}
	r.eof = true
	return false
}

func (r *Resampler) prime(src FrameReader) bool {
	if !r.fetch(src, r.frames[1]) {
		return false
	}
	// The first output frame lands exactly on the first source frame.
	copy(r.frames[0], r.frames[1])
	r.valid[0], r.valid[1] = true, true
	r.valid[2] = r.fetch(src, r.frames[2])
	r.valid[3] = r.fetch(src, r.frames[3])
	r.primed = true
	return true
}

// Resample fills dst with converted frames pulled from src and returns the
// number of frames written. A short count means src is exhausted.
func (r *Resampler) Resample(src FrameReader, dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if r.exhausted {
		return 0, nil
	}
	if !r.primed && !r.prime(src) {
		r.exhausted = true
		return 0, nil
	}

	want := len(dst) / r.channels
	written := 0
	for written < want {
		for r.pos >= 1.0 {
			r.pos -= 1.0
			r.shift(src)
		}

		if !r.valid[1] {
			r.exhausted = true
			break
		}

		// Past the last source frame the edge frame is held.
		y0, y1, y2, y3 := r.frames[0], r.frames[1], r.frames[2], r.frames[3]
		if !r.valid[0] {
			y0 = y1
		}
		if !r.valid[2] {
			y2 = y1
		}
		if !r.valid[3] {
			y3 = y2
		}

		base := written * r.channels
		utils.CubicFrame(dst[base:base+r.channels], y0, y1, y2, y3, float32(r.pos))

		written++
		r.pos += r.ratio
	}

	return written, nil
}

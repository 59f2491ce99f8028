// SPDX-License-Identifier: EPL-2.0

package mixer

import (
	"github.com/ik5/audmix/audio"
)

// maxRatio caps how many source frames one output frame may consume.
const maxRatio = 256

// panScale normalises the sine pan gains so the louder side is unity.
func panScale(l, r float32) (float32, float32) {
	m := max(l, r)
	if m <= 0 {
		return 1, 1
	}
	return l / m, r / m
}

// mix is the device callback. It runs with the device lock held.
func (m *Mixer) mix(out []byte) {
	audio.FillSilence(m.format.Encoding, out)
	if !m.initialized {
		return
	}

	live := m.channels[:0]
	for _, ch := range m.channels {
		if !m.mixChannelSafe(ch, out) {
			ch.done = true
			ch.deleteOnDone = true
		}

		if (ch.done && ch.deleteOnDone) || ch.stopping {
			if err := ch.destroy(); err != nil {
				m.log.Warn("closing channel stream", "error", err)
			}
			continue
		}
		live = append(live, ch)
	}
	clear(m.channels[len(live):])
	m.channels = live
}

// mixChannelSafe reports false when mixing ch panicked.
func (m *Mixer) mixChannelSafe(ch *Channel, out []byte) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			m.log.Error("channel panicked during mixing, removing it", "panic", r)
			ok = false
		}
	}()

	m.mixChannel(ch, out)
	return true
}

func (m *Mixer) mixChannel(ch *Channel, out []byte) {
	if ch.done || ch.stream == nil {
		return
	}
	if !m.groups[ch.group].enabled {
		return
	}

	sf := ch.stream.Format()
	if err := sf.Validate(); err != nil {
		if !ch.warned {
			ch.warned = true
			m.log.Warn("cannot convert channel stream, skipping it",
				"from", sf.String(), "to", m.format.String(), "error", err)
		}
		return
	}

	length := ch.stream.Length()
	if length == 0 {
		ch.done = true
		return
	}

	if !ch.started {
		ch.started = true
		ch.oldVolume = ch.volume
		ch.oldL, ch.oldR = ch.gainL, ch.gainR
	}

	outCh := m.format.Channels
	fs := m.format.FrameSize()
	total := len(out) / fs

	ratio := min(ch.rate*float64(sf.Rate)/float64(m.format.Rate), maxRatio)
	resample := ratio != 1 || ch.resampler != nil
	if resample && ch.resampler == nil {
		ch.resampler = audio.NewResampler(outCh)
		ch.pend = make([]float32, m.frames*outCh)
		ch.pendPos, ch.pendN = 0, 0
	}
	if resample {
		ch.resampler.SetRatio(ratio)
	}

	g := m.groups[ch.group].gain * m.master / MaxVolume
	startGain := float32(ch.oldVolume) * g
	endGain := float32(ch.volume) * g
	if ch.stopping {
		endGain = 0
	}

	pan := outCh == 2 && (ch.pan != 0.5 || ch.oldL != ch.oldR)
	oldL, oldR := panScale(ch.oldL, ch.oldR)
	newL, newR := panScale(ch.gainL, ch.gainR)

	m.reader.ch = ch
	m.reader.length = length
	m.reader.format = sf

	drained := false
	for written := 0; written < total && !drained; {
		want := min(total-written, m.frames)
		buf := m.work[:want*outCh]

		var n int
		if resample {
			n, _ = ch.resampler.Resample(&m.reader, buf)
		} else {
			n = m.reader.fill(buf, want)
		}
		if n < want {
			drained = true
		}
		if n == 0 {
			break
		}
		buf = buf[:n*outCh]

		inv := 1 / float32(total)
		for f := range n {
			t := float32(written+f) * inv
			gain := startGain + (endGain-startGain)*t
			base := f * outCh
			if pan {
				buf[base] *= gain * (oldL + (newL-oldL)*t)
				buf[base+1] *= gain * (oldR + (newR-oldR)*t)
				continue
			}
			if gain != 1 {
				for c := range outCh {
					buf[base+c] *= gain
				}
			}
		}

		audio.MixSamples(m.format.Encoding, out[written*fs:], buf)
		written += n
	}

	ch.oldVolume = ch.volume
	ch.oldL, ch.oldR = ch.gainL, ch.gainR

	if drained || (!resample && ch.loop == 0 && ch.offset >= length) {
		ch.done = true
	}
}

// channelReader feeds one channel's stream to the mixer as frames in the
// output channel layout. Loops are wrapped here, so the resampler sees one
// continuous stream.
type channelReader struct {
	m      *Mixer
	ch     *Channel
	length int
	format audio.AudioFormat
}

// fill reads up to frames frames at the channel offset into dst.
func (r *channelReader) fill(dst []float32, frames int) int {
	ch := r.ch
	fs := r.format.FrameSize()
	srcCh := r.format.Channels
	outCh := r.m.format.Channels
	got := 0

	for got < frames {
		if ch.offset >= r.length {
			if ch.loop == 0 {
				break
			}
			if ch.loop > 0 {
				ch.loop--
			}
			ch.offset = 0
		}

		want := min(frames-got, len(r.m.decoded)/srcCh)
		b := ch.stream.GetSome(ch.offset, want*fs)
		k := len(b) / fs
		if k == 0 {
			// The stream came up short of its own length.
			r.m.log.Warn("channel stream read failed, ending it", "offset", ch.offset, "length", r.length)
			ch.offset = r.length
			ch.loop = 0
			break
		}

		audio.DecodeSamples(r.format.Encoding, b[:k*fs], r.m.decoded)
		audio.Remix(dst[got*outCh:], outCh, r.m.decoded[:k*srcCh], srcCh)
		ch.offset += k * fs
		got += k
	}

	return got
}

// ReadFrames serves the resampler from the channel's read-ahead buffer.
func (r *channelReader) ReadFrames(dst []float32, frames int) int {
	ch := r.ch
	outCh := r.m.format.Channels
	got := 0

	for got < frames {
		if ch.pendPos == ch.pendN {
			ch.pendPos = 0
			ch.pendN = r.fill(ch.pend, len(ch.pend)/outCh)
			if ch.pendN == 0 {
				break
			}
		}
		k := min(frames-got, ch.pendN-ch.pendPos)
		copy(dst[got*outCh:(got+k)*outCh], ch.pend[ch.pendPos*outCh:(ch.pendPos+k)*outCh])
		ch.pendPos += k
		got += k
	}

	return got
}

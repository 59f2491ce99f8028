// SPDX-License-Identifier: EPL-2.0

//go:build !headless

package device

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ik5/audmix/audio"
)

// Oto plays through the system audio output using oto. A process can only
// open one Oto device. oto has no device selection, so the name given to
// Open is ignored.
type Oto struct {
	mu       sync.Mutex
	ctx      *oto.Context
	ctxFmt   audio.AudioFormat
	player   *oto.Player
	format   audio.AudioFormat
	frames   int
	callback func([]byte)
	open     bool
}

func NewOto() *Oto {
	return &Oto{}
}

// otoFormat maps an encoding to the oto sample format. oto only plays
// U8, S16LE and F32LE; everything else is negotiated down to S16LE.
func otoFormat(enc audio.Encoding) (oto.Format, audio.Encoding) {
	switch enc {
	case audio.U8:
		return oto.FormatUnsignedInt8, audio.U8
	case audio.F32LE:
		return oto.FormatFloat32LE, audio.F32LE
	default:
		return oto.FormatSignedInt16LE, audio.S16LE
	}
}

func (d *Oto) Open(_ string, want audio.AudioFormat, frames int, callback func([]byte)) (audio.AudioFormat, error) {
	if frames <= 0 {
		return audio.AudioFormat{}, fmt.Errorf("invalid buffer of %d frames", frames)
	}

	d.mu.Lock()
	if d.open {
		d.mu.Unlock()
		return audio.AudioFormat{}, ErrAlreadyOpen
	}
	d.mu.Unlock()

	have := want
	var format oto.Format
	format, have.Encoding = otoFormat(want.Encoding)

	if d.ctx == nil {
		op := &oto.NewContextOptions{
			SampleRate:   have.Rate,
			ChannelCount: have.Channels,
			Format:       format,
			BufferSize:   time.Duration(frames) * time.Second / time.Duration(have.Rate),
		}

		ctx, ready, err := oto.NewContext(op)
		if err != nil {
			return audio.AudioFormat{}, fmt.Errorf("creating oto context: %w", err)
		}
		<-ready
		d.ctx = ctx
		d.ctxFmt = have
	} else {
		if err := d.ctx.Resume(); err != nil {
			return audio.AudioFormat{}, fmt.Errorf("resuming oto context: %w", err)
		}
		// The context keeps the format it was created with
		have = d.ctxFmt
	}

	d.mu.Lock()
	d.format = have
	d.frames = frames
	d.callback = callback
	d.open = true
	d.mu.Unlock()

	d.player = d.ctx.NewPlayer(d)
	d.player.SetBufferSize(frames * have.FrameSize())
	d.player.Play()

	return have, nil
}

// Read is pulled by the oto player. It renders whole frames only.
func (d *Oto) Read(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		audio.FillSilence(d.format.Encoding, p)
		return len(p), nil
	}

	n := render(d.callback, p, d.format.FrameSize(), d.frames)
	if n == 0 {
		return len(p), nil
	}
	return n, nil
}

func (d *Oto) Lock()   { d.mu.Lock() }
func (d *Oto) Unlock() { d.mu.Unlock() }

// Close stops the player and suspends the context. oto contexts cannot be
// destroyed, so a later Open resumes the same one.
func (d *Oto) Close() error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return ErrNotOpen
	}
	d.open = false
	d.callback = nil
	d.mu.Unlock()

	if err := d.player.Close(); err != nil {
		return fmt.Errorf("closing oto player: %w", err)
	}
	d.player = nil

	if err := d.ctx.Suspend(); err != nil {
		return fmt.Errorf("suspending oto context: %w", err)
	}
	return nil
}

// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"sync"

	"github.com/ik5/audmix/audio"
)

// Manual is a device whose callback runs only when the caller asks for
// output. It renders offline and drives tests.
type Manual struct {
	// Actual, when set, replaces the requested format on Open.
	Actual *audio.AudioFormat
	// OpenErr, when set, is returned by Open.
	OpenErr error

	mu       sync.Mutex
	format   audio.AudioFormat
	frames   int
	callback func([]byte)
	open     bool
	name     string
}

func NewManual() *Manual {
	return &Manual{}
}

func (d *Manual) Open(name string, want audio.AudioFormat, frames int, callback func([]byte)) (audio.AudioFormat, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.OpenErr != nil {
		return audio.AudioFormat{}, d.OpenErr
	}
	if d.open {
		return audio.AudioFormat{}, ErrAlreadyOpen
	}
	if frames <= 0 {
		return audio.AudioFormat{}, fmt.Errorf("invalid buffer of %d frames", frames)
	}

	d.format = want
	if d.Actual != nil {
		d.format = *d.Actual
	}
	d.name = name
	d.frames = frames
	d.callback = callback
	d.open = true

	return d.format, nil
}

func (d *Manual) Lock()   { d.mu.Lock() }
func (d *Manual) Unlock() { d.mu.Unlock() }

func (d *Manual) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrNotOpen
	}
	d.open = false
	d.callback = nil
	return nil
}

// Format returns the format given out by the last Open.
func (d *Manual) Format() audio.AudioFormat {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.format
}

// Name returns the device name given to the last Open.
func (d *Manual) Name() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.name
}

// Render fills p by running the callback under the lock, once per
// buffer of frames. A trailing partial frame is zeroed.
func (d *Manual) Render(p []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.open {
		return ErrNotOpen
	}
	render(d.callback, p, d.format.FrameSize(), d.frames)
	return nil
}

// Pull renders frames frames into a new buffer.
func (d *Manual) Pull(frames int) ([]byte, error) {
	fs := d.Format().FrameSize()
	p := make([]byte, frames*fs)
	if err := d.Render(p); err != nil {
		return nil, err
	}
	return p, nil
}

// render runs callback over the whole frames of p, at most frames frames
// at a time, and returns the number of bytes rendered.
func render(callback func([]byte), p []byte, frameSize, frames int) int {
	if frameSize <= 0 || frames <= 0 {
		clear(p)
		return 0
	}

	whole := len(p) - len(p)%frameSize
	clear(p[whole:])

	chunk := frames * frameSize
	for off := 0; off < whole; off += chunk {
		callback(p[off:min(off+chunk, whole)])
	}
	return whole
}

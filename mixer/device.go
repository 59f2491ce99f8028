// SPDX-License-Identifier: EPL-2.0

package mixer

import "github.com/ik5/audmix/audio"

// Device is an audio output that periodically asks for PCM.
//
// Open starts delivery: callback is invoked from the device goroutine with a
// buffer of at most frames frames in the returned format, which may differ
// from want. The device holds its lock for the whole of every callback, so
// holding Lock pauses delivery. Lock must only guard short, non-blocking
// work: a holder that sleeps or does I/O delays the next callback and the
// listener hears it.
type Device interface {
	Open(name string, want audio.AudioFormat, frames int, callback func([]byte)) (audio.AudioFormat, error)
	Lock()
	Unlock()
	Close() error
}

// SampleBank supplies the short effects preloaded by Init, addressed by
// ids 0 to Len()-1.
type SampleBank interface {
	Len() int
	LoadSample(id int) (*audio.Sample, error)
}

// MusicLoader supplies music tracks on demand.
type MusicLoader interface {
	LoadMusic(id int) (*audio.Sample, error)
}

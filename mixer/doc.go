// SPDX-License-Identifier: EPL-2.0

// Package mixer mixes any number of playing sounds into the buffer an audio
// device pulls from its own goroutine.
//
// # Lifecycle
//
//	m := mixer.New(dev, mixer.DefaultConfig())
//	if err := m.Init(); err != nil { ... }
//	defer m.Close()
//
// Init opens the Device and keeps whatever format it settles on. Every
// stream is converted to that format while mixing, so a Sample may be in
// any supported format, though converting it once at load time with
// audio.Sample.Convert saves work in the callback. Effects from
// Config.Bank are converted that way by Init.
//
// # Channels
//
// Play returns a *Channel that identifies one playback:
//
//	ch := m.Play(audio.NewSampleStream(s), mixer.LoopNone, false)
//	m.SetPan(ch, 0.25)
//	m.SetVolume(ch, mixer.MaxVolume/2)
//	m.Stop(ch)
//
// Control methods take the device lock themselves and are no-ops on a nil
// channel. A channel fades volume and pan changes across the next callback
// instead of jumping. Stop fades to silence over one callback and then
// removes the channel. A channel that reaches the end of its stream reports
// IsPlaying false; it is removed at once when played with deleteOnDone.
//
// A loop count of N plays the stream N+1 times. LoopInfinite repeats until
// Stop.
//
// # Locking
//
// The device holds its lock while the callback runs. Lock and Unlock take
// the same lock to apply several changes atomically:
//
//	m.Lock()
//	// no I/O or blocking calls here
//	m.Unlock()
//
// Holding the lock for longer than one callback period causes an audible
// dropout.
//
// # Failures
//
// A channel whose stream cannot be converted is skipped and logged once. A
// channel that panics while mixing is logged and removed. Neither affects
// the other channels.
package mixer

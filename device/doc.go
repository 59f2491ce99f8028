// SPDX-License-Identifier: EPL-2.0

// Package device provides audio outputs for the mixer.
//
// Oto plays through the system output with github.com/ebitengine/oto/v3.
// Building with the headless tag replaces it with a stub whose Open fails,
// so programs link without audio libraries.
//
// Manual never runs on its own: Render and Pull invoke the callback on the
// caller's goroutine. It renders to files and drives tests, and can be made
// to hand out a different format or fail on Open.
//
//	dev := device.NewManual()
//	m := mixer.New(dev, mixer.DefaultConfig())
//	m.Init()
//	pcm, _ := dev.Pull(44100) // one second
//
// Both deliver the callback at most one buffer of frames at a time and
// hold the device lock while it runs.
package device

// SPDX-License-Identifier: EPL-2.0

//go:build headless

package device

import "github.com/ik5/audmix/audio"

// Oto is a stand-in for builds without system audio. Open always fails
// with ErrUnavailable.
type Oto struct{}

func NewOto() *Oto {
	return &Oto{}
}

func (*Oto) Open(string, audio.AudioFormat, int, func([]byte)) (audio.AudioFormat, error) {
	return audio.AudioFormat{}, ErrUnavailable
}

func (*Oto) Lock()        {}
func (*Oto) Unlock()      {}
func (*Oto) Close() error { return ErrNotOpen }

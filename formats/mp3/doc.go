// SPDX-License-Identifier: EPL-2.0

// Package mp3 provides MP3 audio file decoding.
//
// This package uses github.com/hajimehoshi/go-mp3 to decode MP3 files.
// go-mp3 always produces 16-bit little-endian stereo, whatever the
// channel layout of the file, so every Source and Sample from this
// package is stereo S16LE at the file's sample rate.
//
// # Loading
//
// LoadSample keeps the decoder's PCM bytes as they are:
//
//	f, _ := os.Open("music/theme.mp3")
//	s, err := mp3.LoadSample(f)
//	changed, err := s.Convert(deviceFormat)
//
// # Streaming
//
// Decoder implements audio.Decoder:
//
//	src, err := mp3.Decoder{}.Decode(f)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// Samples are float32 values in [-1.0, 1.0]. Decoding errors are wrapped
// with a "decoding mp3" prefix.
package mp3

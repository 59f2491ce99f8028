// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis files using github.com/jfreymuth/oggvorbis.
//
// LoadSample decodes a whole file into an S16LE audio.Sample ready for
// Sample.Convert and the mixer's sample bank:
//
//	f, _ := os.Open("sfx/door.ogg")
//	s, err := vorbis.LoadSample(f)
//
// Decoder implements audio.Decoder for registries and incremental reads.
// Its Source yields interleaved float32 samples in [-1, 1] and always returns
// whole frames, so a read buffer that is not a multiple of the channel count
// is used only up to the last whole frame.
//
// Encoding is not supported.
package vorbis

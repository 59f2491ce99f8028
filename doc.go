// SPDX-License-Identifier: EPL-2.0

// Package audmix ties the audio mixer to files on disk.
//
// The mixer itself lives in the mixer subpackage and knows nothing about
// files. This package supplies the pieces a program needs to feed it:
//
//   - NewRegistry and DefaultRegistry map file extensions to the decoders
//     in formats/wav, formats/mp3, formats/vorbis and formats/aiff
//   - LoadFile decodes a whole file into an audio.Sample
//   - OpenStream opens a file for playback, reading WAV data from disk
//   - FileBank and FileMusic implement mixer.SampleBank and
//     mixer.MusicLoader over file paths
//
// # Quick Start
//
//	cfg := mixer.DefaultConfig()
//	cfg.Bank = audmix.FileBank{Paths: []string{"jump.wav", "coin.ogg"}}
//	cfg.Music = audmix.FileMusic{Paths: map[int]string{0: "theme.mp3"}}
//
//	dev := device.NewOto()
//	m := mixer.New(dev, cfg)
//	if err := m.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer m.Close()
//
//	m.PlayMusic(0, mixer.LoopInfinite)
//	m.PlayEffect(1, mixer.LoopNone, mixer.MaxVolume, 0.5, 1, true)
//
// # Supported Formats
//
//   - WAV, PCM 8, 16, 24 and 32-bit (.wav, .wave)
//   - MP3 (.mp3)
//   - Ogg Vorbis (.ogg, .oga)
//   - AIFF, PCM 8, 16, 24 and 32-bit (.aiff, .aif)
//
// 24 and 32-bit data is reduced to 16-bit on load. Everything is converted
// to the mixer's output format once, when the mixer loads it.
package audmix

// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes PCM WAV files.
//
// Header parsing and encoding go through github.com/go-audio/wav. Sample
// data is read straight from the data chunk, so trailing metadata chunks are
// never mistaken for audio.
//
// # Supported Formats
//
//   - PCM 8-bit (unsigned), 16, 24 and 32-bit (signed)
//   - Any channel count for decoding; mono and stereo for Samples and streams
//   - Any sample rate
//
// # Loading
//
// LoadSample keeps 8 and 16-bit data exactly as stored:
//
//	f, _ := os.Open("click.wav")
//	s, err := wav.LoadSample(f)
//
// Decoder returns an audio.Source yielding float32 values in [-1.0, 1.0] and
// can be registered in an audio.Registry.
//
// # Streaming
//
// OpenStream leaves the data on disk and reads it as the mixer asks for it:
//
//	f, _ := os.Open("theme.wav")
//	st, err := wav.OpenStream(f, f) // closing st closes f
//
// # Writing
//
// WriteWAV writes a finished buffer to any io.Writer. Writer encodes PCM as
// it is produced and needs an io.WriteSeeker to patch the header on Close:
//
//	out, _ := os.Create("mix.wav")
//	w, _ := wav.NewWriter(out, format)
//	w.Write(pcm)
//	w.Close()
//
// # Error Handling
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE file
//   - ErrUnsupportedWavLayout: the data is not integer PCM
//   - ErrUnsupportedBitDepth: bit depth this package cannot read or write
//   - ErrUnsupportedWavChunks: no data chunk was found
package wav

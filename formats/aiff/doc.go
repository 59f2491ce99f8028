// SPDX-License-Identifier: EPL-2.0

// Package aiff provides AIFF (Audio Interchange File Format) decoding.
//
// This package uses github.com/go-audio/aiff to decode AIFF files.
// AIFF is Apple's standard audio file format, commonly used on macOS.
//
// # Supported Formats
//
//   - PCM at 8, 16, 24 and 32 bits
//   - Mono and stereo for the mixer, wider layouts for decoding only
//   - Any sample rate
//
// # Decoding AIFF Files
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The Source yields whole frames of float32 samples in [-1.0, 1.0]. It
// also implements audio.EncodingSource: 8-bit data reports audio.S8 and
// 16-bit data audio.S16BE, so LoadSample and audio.ReadSample keep the
// file's own layout. 24 and 32-bit data is reduced to audio.S16LE.
//
// # Error Handling
//
//   - ErrNotAiffFile: The input is not a valid AIFF file
//   - ErrUnsupportedBitDepth: The sample size is not 8, 16, 24 or 32 bits
//   - ErrUnsupportedAiffLayout: Unsupported AIFF file structure
//
// # AIFF vs. WAV
//
// AIFF is similar to WAV but:
//   - Uses big-endian byte order (WAV uses little-endian)
//   - Stores 8-bit samples signed (WAV stores them unsigned)
//   - Stores sample rate as 80-bit float (WAV uses 32-bit int)
package aiff

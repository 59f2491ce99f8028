// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM building blocks the mixer is made of.
//
// This package contains:
//   - AudioFormat and Encoding describing raw interleaved PCM
//   - a PCM codec: DecodeSamples, EncodeSamples and the saturating MixSamples
//   - Sample, an in-memory decoded clip, and its load-time Convert
//   - Stream, a position-free view over PCM (SampleStream, NullStream, ReaderStream)
//   - Remix for mono/stereo layout changes
//   - Resampler, a stateful variable-ratio cubic resampler
//   - Source, Decoder and Registry for format decoders
//
// # Formats
//
// An AudioFormat is a rate, an encoding and a channel count:
//
//	f := audio.AudioFormat{Rate: 44100, Encoding: audio.S16LE, Channels: 2}
//	f.FrameSize() // 4
//
// Supported encodings are U8, S8, S16LE, S16BE and F32LE. Silence is 0x80
// for U8 and zero for everything else.
//
// # Samples and Streams
//
// A Sample owns its bytes. Streams point at a Sample and never copy it:
//
//	s, _ := audio.NewSample(f, pcm)
//	st := audio.NewSampleStream(s)
//	chunk := st.GetSome(0, 4096) // view into s, no allocation
//
// GetSome clips the returned range to the end of the stream and returns an
// empty slice once offset reaches Length.
//
// Convert changes a Sample to another format once, at load time:
//
//	changed, err := s.Convert(audio.AudioFormat{Rate: 48000, Encoding: audio.S16LE, Channels: 2})
//
// Sample rate changes go through github.com/tphakala/go-audio-resampler.
//
// # Resampling
//
// The Resampler pulls source frames from a FrameReader and interpolates
// them with a Catmull-Rom spline. Its ratio can change between calls and
// its phase carries over, so a channel can be resampled one callback at a
// time without discontinuities:
//
//	r := audio.NewResampler(2)
//	r.SetRatio(1.5) // consume 1.5 source frames per output frame
//	n, _ := r.Resample(reader, dst)
//
// # Format Registry
//
// The registry allows dynamic decoder registration:
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{})
//	decoder, _ := registry.ForPath("music/theme.wav")
//
// ReadSample drains any decoder Source into a Sample.
//
// # Sample Format
//
// Decoded samples are represented as float32 in the range [-1.0, 1.0].
// Integer PCM is scaled by a power of two, so 16-bit data survives a
// decode/encode round trip unchanged.
package audio

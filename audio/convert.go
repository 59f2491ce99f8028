// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"

	resampler "github.com/tphakala/go-audio-resampler"
)

// ConvertQuality is the resampling preset used for load-time conversions.
var ConvertQuality = resampler.QualityMedium

// Convert rewrites the sample in target format. It reports false with a nil
// error when the sample already matches target. On failure the sample is left
// unchanged. Conversion allocates and is meant for load time, not mixing.
func (s *Sample) Convert(target AudioFormat) (bool, error) {
	if s.format == target {
		return false, nil
	}
	if s.data == nil {
		return false, ErrSampleReleased
	}
	if err := s.format.Validate(); err != nil {
		return false, fmt.Errorf("%w: from %s: %w", ErrUnsupportedConversion, s.format, err)
	}
	if err := target.Validate(); err != nil {
		return false, fmt.Errorf("%w: to %s: %w", ErrUnsupportedConversion, target, err)
	}

	frames := s.Frames()
	decoded := make([]float32, frames*s.format.Channels)
	DecodeSamples(s.format.Encoding, s.data, decoded)

	remixed := decoded
	if s.format.Channels != target.Channels {
		remixed = make([]float32, frames*target.Channels)
		Remix(remixed, target.Channels, decoded, s.format.Channels)
	}

	if s.format.Rate != target.Rate {
		var err error
		remixed, err = resampleInterleaved(remixed, target.Channels, s.format.Rate, target.Rate)
		if err != nil {
			return false, fmt.Errorf("%w: %s to %s: %w", ErrUnsupportedConversion, s.format, target, err)
		}
	}

	out := make([]byte, len(remixed)*target.Encoding.BytesPerSample())
	EncodeSamples(target.Encoding, remixed, out)

	s.data = out
	s.format = target
	return true, nil
}

// resampleInterleaved runs every channel through a one-shot resampler and
// interleaves the results, trimmed to the shortest channel.
func resampleInterleaved(in []float32, channels, fromRate, toRate int) ([]float32, error) {
	frames := len(in) / channels
	outs := make([][]float64, channels)
	plane := make([]float64, frames)

	for c := range channels {
		for f := range frames {
			plane[f] = float64(in[f*channels+c])
		}
		out, err := resampler.ResampleMono(plane, float64(fromRate), float64(toRate), ConvertQuality)
		if err != nil {
			return nil, err
		}
		outs[c] = out
	}

	outFrames := len(outs[0])
	for _, o := range outs[1:] {
		outFrames = min(outFrames, len(o))
	}

	res := make([]float32, outFrames*channels)
	for f := range outFrames {
		for c := range channels {
			res[f*channels+c] = float32(outs[c][f])
		}
	}
	return res, nil
}

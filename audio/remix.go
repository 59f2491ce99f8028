// SPDX-License-Identifier: EPL-2.0

package audio

// Remix converts interleaved frames between channel layouts.
// Down-mixing averages the source channels; up-mixing from mono copies the
// sample into every output channel. It returns the number of frames written.
func Remix(dst []float32, dstChannels int, src []float32, srcChannels int) int {
	if dstChannels <= 0 || srcChannels <= 0 {
		return 0
	}
	frames := min(len(src)/srcChannels, len(dst)/dstChannels)

	if srcChannels == dstChannels {
		copy(dst, src[:frames*srcChannels])
		return frames
	}

	switch {
	case srcChannels == 1:
		for f := range frames {
			v := src[f]
			base := f * dstChannels
			for c := range dstChannels {
				dst[base+c] = v
			}
		}
	case dstChannels == 1 && srcChannels == 2:
		// Stereo (most common)
		for f := range frames {
			idx := f << 1
			dst[f] = (src[idx] + src[idx+1]) * 0.5
		}
	case dstChannels == 1:
		inv := float32(1.0) / float32(srcChannels)
		for f := range frames {
			sum := float32(0)
			base := f * srcChannels
			for c := range srcChannels {
				sum += src[base+c]
			}
			dst[f] = sum * inv
		}
	default:
		// Keep the channels both layouts share, silence the rest.
		shared := min(srcChannels, dstChannels)
		for f := range frames {
			sb, db := f*srcChannels, f*dstChannels
			for c := range dstChannels {
				if c < shared {
					dst[db+c] = src[sb+c]
				} else {
					dst[db+c] = 0
				}
			}
		}
	}

	return frames
}

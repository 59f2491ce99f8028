// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 scales x from [-1, 1] to the int16 range.
// Scaling by 32768 keeps decode/encode of int16 PCM lossless.
func Float32ToInt16(x float32) int16 {
	v := x * 32768.0
	if v >= 32767 {
		return 32767
	}
	if v <= -32768 {
		return -32768
	}

	return int16(v)
}

// Float32ToInt8 scales x from [-1, 1] to the int8 range.
func Float32ToInt8(x float32) int8 {
	v := x * 128.0
	if v >= 127 {
		return 127
	}
	if v <= -128 {
		return -128
	}

	return int8(v)
}

// ClampUnit clamps x into [-1, 1].
func ClampUnit(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}

	return x
}

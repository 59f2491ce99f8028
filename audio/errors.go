// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize        = errors.New("dst size must be multiple of channels")
	ErrUnsupportedFormat     = errors.New("unsupported audio format")
	ErrUnsupportedConversion = errors.New("unsupported audio conversion")
	ErrEmptySource           = errors.New("source produced no samples")
	ErrSampleReleased        = errors.New("sample was released")
)

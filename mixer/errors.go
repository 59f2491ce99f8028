// SPDX-License-Identifier: EPL-2.0

package mixer

import "errors"

var (
	ErrDeviceOpen         = errors.New("opening audio device")
	ErrNotInitialized     = errors.New("mixer not initialized")
	ErrAlreadyInitialized = errors.New("mixer already initialized")
	ErrInvalidConfig      = errors.New("invalid mixer config")
)

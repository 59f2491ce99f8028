// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrAlreadyOpen = errors.New("device already open")
	ErrNotOpen     = errors.New("device not open")
	ErrUnavailable = errors.New("audio output not available in this build")
)

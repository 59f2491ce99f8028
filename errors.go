// SPDX-License-Identifier: EPL-2.0

package audmix

import "errors"

var (
	// ErrUnknownFormat is returned for files whose extension has no
	// registered decoder.
	ErrUnknownFormat = errors.New("unknown audio file format")
	// ErrUnknownID is returned by FileBank and FileMusic for ids without a
	// path.
	ErrUnknownID = errors.New("unknown sound id")
)

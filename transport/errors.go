// SPDX-License-Identifier: EPL-2.0

package transport

import "errors"

var (
	ErrInvalidRate     = errors.New("playback rate index out of range")
	ErrInvalidDuration = errors.New("duration must be positive")
)

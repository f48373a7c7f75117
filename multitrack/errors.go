// SPDX-License-Identifier: EPL-2.0

package multitrack

import "errors"

var (
	ErrNoTrack     = errors.New("no such track")
	ErrNoSource    = errors.New("track has no audio source")
	ErrNoTracks    = errors.New("nothing to mix")
	ErrInvalidRate = errors.New("sample rate must be positive")
)

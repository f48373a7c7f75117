// SPDX-License-Identifier: EPL-2.0

package audmix

import "errors"

var (
	ErrUnknownDuration = errors.New("source length is unknown")
	ErrInvalidLayout   = errors.New("invalid render layout")
)

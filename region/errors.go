// SPDX-License-Identifier: EPL-2.0

package region

import "errors"

var (
	// ErrInvalidRegion is returned by Validate when start is negative or end does not follow start.
	ErrInvalidRegion = errors.New("region end must be greater than a non-negative start")
)

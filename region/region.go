// SPDX-License-Identifier: EPL-2.0

package region

import (
	"fmt"

	"github.com/google/uuid"
)

// Region is an immutable snapshot of a playable time interval, in seconds.
type Region struct {
	ID    string
	Start float64
	End   float64
}

// New creates a region with a random id.
func New(start, end float64) Region {
	return Region{
		ID:    uuid.New().String(),
		Start: start,
		End:   end,
	}
}

func (r Region) Validate() error {
	if !(r.Start >= 0) || !(r.End > r.Start) {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRegion, r.Start, r.End)
	}
	return nil
}

func (r Region) Duration() float64 { return r.End - r.Start }

// Contains reports whether t falls in [Start, End).
func (r Region) Contains(t float64) bool {
	return t >= r.Start && t < r.End
}

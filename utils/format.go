// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// FormatTime renders seconds as HH:MM:SS. Each field is floored and zero
// padded to two digits; past 99 hours only the last two digits of the hour
// are kept. Negative, NaN and infinite input render as 00:00:00.
func FormatTime(seconds float64) string {
	// 100 hours wrap to zero, which keeps the conversion in int64 range
	seconds = math.Mod(math.Floor(seconds), 100*3600)
	if !(seconds > 0) {
		seconds = 0
	}
	s := int64(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", s/3600, (s/60)%60, s%60)
}

// VolumeLevel is the icon class of a volume percentage.
type VolumeLevel int

const (
	VolumeMuted VolumeLevel = iota
	VolumeLow
	VolumeHigh
)

func (l VolumeLevel) String() string {
	switch l {
	case VolumeMuted:
		return "muted"
	case VolumeLow:
		return "low"
	default:
		return "high"
	}
}

// VolumeIcon classifies percent (0..100): 0 or less is muted, up to and
// including 50 is low, anything above is high.
func VolumeIcon(percent float64) VolumeLevel {
	switch {
	case percent <= 0 || percent != percent:
		return VolumeMuted
	case percent <= 50:
		return VolumeLow
	default:
		return VolumeHigh
	}
}

// RandomColor returns a half transparent CSS color, e.g. "rgba(12, 200, 87, 0.5)".
func RandomColor() string {
	return randomColor(rand.IntN)
}

func randomColor(intN func(int) int) string {
	return fmt.Sprintf("rgba(%d, %d, %d, 0.5)", intN(256), intN(256), intN(256))
}

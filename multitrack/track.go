// SPDX-License-Identifier: EPL-2.0

package multitrack

import (
	"github.com/google/uuid"

	"github.com/ik5/audmix/audio"
)

// Track is one lane of a multi-track session. Times are in seconds.
type Track struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
	Volume   float64 `json:"volume" yaml:"volume"`
	Muted    bool    `json:"muted" yaml:"muted"`

	Source audio.Source `json:"-" yaml:"-"`
}

// NewTrack creates a full-volume track at position start. When src reports
// its length the track duration is taken from it.
func NewTrack(label string, start float64, src audio.Source) Track {
	t := Track{
		ID:     uuid.New().String(),
		Label:  label,
		Start:  start,
		Volume: 1,
		Source: src,
	}
	if d, ok := src.(audio.Durationer); ok {
		t.Duration = d.Duration().Seconds()
	}
	return t
}

// End is the timeline position where the track stops.
func (t Track) End() float64 { return t.Start + t.Duration }

// Level is the gain applied while mixing.
func (t Track) Level() float64 {
	if t.Muted {
		return 0
	}
	return t.Volume
}

func clampVolume(v float64) float64 {
	if v != v {
		return 0
	}
	return min(max(v, 0), 1)
}

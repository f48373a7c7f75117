// SPDX-License-Identifier: EPL-2.0

package multitrack

import (
	"fmt"
	"sync"

	"github.com/ik5/audmix/audio"
)

// Mixer owns the tracks of a session and their volume and mute state.
// Volume changes also reach a running Mix.
type Mixer struct {
	mtx    sync.RWMutex
	tracks []Track
	live   []*audio.Gain
}

func NewMixer(tracks ...Track) *Mixer {
	m := &Mixer{}
	for _, t := range tracks {
		m.Add(t)
	}
	return m
}

// Add appends t and returns its index. Start is clamped to 0 and volume to [0, 1].
func (m *Mixer) Add(t Track) int {
	t.Start = max(t.Start, 0)
	t.Volume = clampVolume(t.Volume)

	m.mtx.Lock()
	defer m.mtx.Unlock()

	m.tracks = append(m.tracks, t)
	m.live = append(m.live, nil)
	return len(m.tracks) - 1
}

func (m *Mixer) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return len(m.tracks)
}

func (m *Mixer) Track(i int) (Track, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if i < 0 || i >= len(m.tracks) {
		return Track{}, fmt.Errorf("%w: %d", ErrNoTrack, i)
	}
	return m.tracks[i], nil
}

// Tracks returns a copy of every track.
func (m *Mixer) Tracks() []Track {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	out := make([]Track, len(m.tracks))
	copy(out, m.tracks)
	return out
}

// Duration is the end of the last track on the timeline.
func (m *Mixer) Duration() float64 {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	var d float64
	for _, t := range m.tracks {
		d = max(d, t.End())
	}
	return d
}

func (m *Mixer) SetTrackVolume(i int, v float64) error {
	return m.update(i, func(t *Track) { t.Volume = clampVolume(v) })
}

func (m *Mixer) SetAllVolumes(v float64) {
	m.updateAll(func(t *Track) { t.Volume = clampVolume(v) })
}

func (m *Mixer) Mute(i int) error {
	return m.update(i, func(t *Track) { t.Muted = true })
}

func (m *Mixer) MuteAll() {
	m.updateAll(func(t *Track) { t.Muted = true })
}

// Unmute restores track i at volume v.
func (m *Mixer) Unmute(i int, v float64) error {
	return m.update(i, func(t *Track) {
		t.Muted = false
		t.Volume = clampVolume(v)
	})
}

func (m *Mixer) UnmuteAll(v float64) {
	m.updateAll(func(t *Track) {
		t.Muted = false
		t.Volume = clampVolume(v)
	})
}

func (m *Mixer) update(i int, fn func(*Track)) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if i < 0 || i >= len(m.tracks) {
		return fmt.Errorf("%w: %d", ErrNoTrack, i)
	}
	fn(&m.tracks[i])
	m.sync(i)
	return nil
}

func (m *Mixer) updateAll(fn func(*Track)) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	for i := range m.tracks {
		fn(&m.tracks[i])
		m.sync(i)
	}
}

// sync pushes the level of track i into the running mix.
func (m *Mixer) sync(i int) {
	if g := m.live[i]; g != nil {
		g.SetLevel(float32(m.tracks[i].Level()))
	}
}

// Mix builds a stereo Source at sampleRate that plays every track from its
// start position. Each track source is resampled, up-mixed to stereo, scaled
// by its level, summed and clipped to [-1, 1]. Closing the mix closes every
// track source.
//
// A Mixer drives one mix at a time; calling Mix again detaches the previous
// mix from volume changes.
func (m *Mixer) Mix(sampleRate int) (audio.Source, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, sampleRate)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if len(m.tracks) == 0 {
		return nil, ErrNoTracks
	}
	for i, t := range m.tracks {
		if t.Source == nil {
			return nil, fmt.Errorf("%w: track %d (%s)", ErrNoSource, i, t.Label)
		}
	}

	inputs := make([]*input, len(m.tracks))
	for i, t := range m.tracks {
		gain := audio.NewGain(
			audio.NewStereoMixer(audio.NewResampler(t.Source, sampleRate)),
			float32(t.Level()),
		)
		m.live[i] = gain
		inputs[i] = &input{
			src:    gain,
			offset: int(t.Start*float64(sampleRate) + 0.5),
		}
	}

	return newMix(sampleRate, inputs), nil
}

// SPDX-License-Identifier: EPL-2.0

package transport

import (
	"fmt"
	"sync"
)

// PlaybackRates are the selectable playback speeds, slowest first.
var PlaybackRates = []float64{0.25, 0.50, 0.55, 0.65, 0.75, 0.85, 1, 1.30, 1.50, 1.70, 2}

const (
	// DefaultRateIndex selects normal speed.
	DefaultRateIndex = 6

	MinZoom     = 10.0
	MaxZoom     = 100.0
	DefaultZoom = MinZoom
)

// Status is a point-in-time copy of the transport state.
type Status struct {
	Position float64 `json:"position"`
	Duration float64 `json:"duration"`
	Playing  bool    `json:"playing"`
	Rate     float64 `json:"rate"`
	Zoom     float64 `json:"zoom"`
}

// Transport is the playback cursor of one track: position, play state, speed
// and waveform zoom. Times are in seconds. It is safe for concurrent use.
type Transport struct {
	mtx      sync.RWMutex
	duration float64
	position float64
	playing  bool
	rateIdx  int
	zoom     float64
}

func New(duration float64) (*Transport, error) {
	if !(duration > 0) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, duration)
	}
	return &Transport{
		duration: duration,
		rateIdx:  DefaultRateIndex,
		zoom:     DefaultZoom,
	}, nil
}

func (t *Transport) Play() {
	t.mtx.Lock()
	t.playing = true
	t.mtx.Unlock()
}

func (t *Transport) Pause() {
	t.mtx.Lock()
	t.playing = false
	t.mtx.Unlock()
}

// PlayPause toggles playback and returns the new state.
func (t *Transport) PlayPause() bool {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.playing = !t.playing
	return t.playing
}

// Stop pauses and rewinds to the start.
func (t *Transport) Stop() {
	t.mtx.Lock()
	t.playing = false
	t.position = 0
	t.mtx.Unlock()
}

// Seek moves the cursor to pos, clamped to [0, duration].
func (t *Transport) Seek(pos float64) float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.position = t.clamp(pos)
	return t.position
}

func (t *Transport) clamp(pos float64) float64 {
	if !(pos > 0) {
		return 0
	}
	return min(pos, t.duration)
}

// Skip moves the cursor by delta seconds. Skipping before the start lands on
// 0; skipping past the end stops playback.
func (t *Transport) Skip(delta float64) float64 {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	next := t.position + delta
	switch {
	case next > t.duration:
		t.playing = false
		t.position = 0
	case next < 0:
		t.position = 0
	default:
		t.position = next
	}
	return t.position
}

// Finish handles the end of the track: rewind and keep playing.
func (t *Transport) Finish() {
	t.mtx.Lock()
	t.position = 0
	t.playing = true
	t.mtx.Unlock()
}

// Advance moves a playing cursor by dt seconds of wall time scaled by the
// playback rate. When the end is reached the track restarts from 0 and
// finished is true. A paused transport does not move.
func (t *Transport) Advance(dt float64) (pos float64, finished bool) {
	t.mtx.Lock()
	defer t.mtx.Unlock()

	if !t.playing || !(dt > 0) {
		return t.position, false
	}

	t.position += dt * PlaybackRates[t.rateIdx]
	if t.position >= t.duration {
		t.position = 0
		return 0, true
	}
	return t.position, false
}

// SetRateIndex selects one of PlaybackRates.
func (t *Transport) SetRateIndex(i int) error {
	if i < 0 || i >= len(PlaybackRates) {
		return fmt.Errorf("%w: %d", ErrInvalidRate, i)
	}

	t.mtx.Lock()
	t.rateIdx = i
	t.mtx.Unlock()
	return nil
}

func (t *Transport) RateIndex() int {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.rateIdx
}

func (t *Transport) Rate() float64 {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return PlaybackRates[t.rateIdx]
}

// SetZoom sets the waveform zoom in pixels per second, clamped to
// [MinZoom, MaxZoom], and returns the applied value.
func (t *Transport) SetZoom(z float64) float64 {
	if z != z {
		z = DefaultZoom
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.zoom = min(max(z, MinZoom), MaxZoom)
	return t.zoom
}

func (t *Transport) Zoom() float64 {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.zoom
}

// SetDuration replaces the track length, e.g. once decoding has finished. The
// cursor is clamped into the new range.
func (t *Transport) SetDuration(d float64) error {
	if !(d > 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDuration, d)
	}

	t.mtx.Lock()
	defer t.mtx.Unlock()

	t.duration = d
	t.position = t.clamp(t.position)
	return nil
}

func (t *Transport) Position() float64 {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.position
}

func (t *Transport) Duration() float64 {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.duration
}

func (t *Transport) Playing() bool {
	t.mtx.RLock()
	defer t.mtx.RUnlock()
	return t.playing
}

func (t *Transport) Status() Status {
	t.mtx.RLock()
	defer t.mtx.RUnlock()

	return Status{
		Position: t.position,
		Duration: t.duration,
		Playing:  t.playing,
		Rate:     PlaybackRates[t.rateIdx],
		Zoom:     t.zoom,
	}
}

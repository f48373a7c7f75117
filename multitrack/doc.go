// SPDX-License-Identifier: EPL-2.0

// Package multitrack lays several decoded tracks on one timeline.
//
// A Mixer holds the tracks with their start position, volume and mute state.
// Mix renders them into a single stereo audio.Source at a chosen sample rate:
//
//	m := multitrack.NewMixer(
//		multitrack.NewTrack("vocals", 0, vocals),
//		multitrack.NewTrack("drums", 1.5, drums),
//	)
//	src, err := m.Mix(44100)
//
// Volume and mute changes made after Mix are heard on the next read.
package multitrack

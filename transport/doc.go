// SPDX-License-Identifier: EPL-2.0

// Package transport keeps the playback cursor of a track.
//
// Transport holds position, play state, playback rate and zoom. It does not
// render audio: a host calls Advance with the wall time elapsed since the last
// tick and uses Position to seek its own source.
//
// Player combines a Transport with a region.Sequencer. While a region is
// active, Advance watches for the cursor leaving it and applies the sequencer's
// exit action, so regions can be looped or chained in timeline order:
//
//	tr, _ := transport.New(30)
//	pl := transport.NewPlayer(tr, region.NewSequencer())
//	_ = pl.AddRegion(region.New(1, 2))
//	...
//	step := pl.Advance(0.02)
//	if step.Exited {
//		fmt.Println(step.Action.Kind)
//	}
//
// Playback rate is chosen from PlaybackRates by index. Skipping past the end
// of the track stops it; a track that plays through restarts from the top.
package transport

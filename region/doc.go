// SPDX-License-Identifier: EPL-2.0

// Package region keeps playback regions in timeline order and decides what plays
// once a region has finished.
//
// A Region is a value snapshot. Whoever owns the authoritative region (a waveform
// editor, a session file) hands a fresh snapshot to the Sequencer on every change:
//
//	seq := region.NewSequencer()
//	seq.Insert(region.New(10, 12))
//	seq.Insert(region.New(5, 7))
//
//	// the user dragged an edge
//	r.End = 8
//	seq.Update(r)
//
//	// playback left r
//	switch act := seq.OnRegionExit(r, loop); act.Kind {
//	case region.ActionReplay, region.ActionPlay:
//	    play(act.Region)
//	case region.ActionStop:
//	    stop()
//	}
//
// # Ordering
//
// Regions are sorted by Start ascending. Regions sharing the same Start keep the
// order in which they were inserted; Update counts as a new insertion, so an
// updated region moves behind its peers.
//
// # Missing regions
//
// Removing or locating a region that is not stored is never an error: Remove
// reports false, Locate returns the insertion point and NextAfter returns the
// first region that starts strictly later.
package region

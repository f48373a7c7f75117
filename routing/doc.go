// SPDX-License-Identifier: EPL-2.0

// Package routing turns the 2x2 channel pad grid into a routing plan and applies
// that plan to an audio graph.
//
// The graph always has the same seven nodes:
//
//	source -> panner -> splitter -+-> left gain  -+-> merger -> destination
//	                              +-> right gain -+
//
// Compute is a pure function from the pad grid, the per-ear gains and the
// channel count of the loaded track to a Plan. The rules are checked in order
// and the first match wins:
//
//  1. all four pads: each gain stage feeds both ears (fold down)
//  2. top row only, multi-channel source: the right gain stage is muted
//  3. bottom row only, multi-channel source: the left gain stage is muted
//  4. left column only: pan hard left
//  5. right column only: pan hard right
//  6. top-right and bottom-left only: the splitter outputs are swapped
//  7. anything else: centered, straight through
//
// The per-ear gains are honoured only while exactly one diagonal pair is
// selected (PadState.Diagonal). Every other grid runs both gain stages at 1;
// a muted stage is 0 either way.
//
// A Router applies plans. It disconnects every node before connecting the new
// plan, so the graph is always exactly the latest plan:
//
//	g := routing.NewSampleGraph(src)
//	r := routing.NewRouter(g)
//	plan, err := r.Update(pads, gains, src.Channels() > 1)
//
// SampleGraph is an in-process Graph that renders any audio.Source. It stages
// changes and publishes them on Commit, so a reader never renders a partially
// rewired graph.
package routing

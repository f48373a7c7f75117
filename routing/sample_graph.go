// SPDX-License-Identifier: EPL-2.0

package routing

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/ik5/audmix/audio"
)

// SampleGraph renders an audio.Source through the routing graph and is itself a
// stereo audio.Source. Connect, Disconnect and SetParam stage changes; Commit
// publishes them to the renderer in one step, so a read never observes a half
// applied plan.
//
// The node semantics follow the Web Audio API: an equal-power stereo panner, a
// two-way channel splitter, two gain stages and a two-input merger. Sources with
// more than two channels contribute their first two channels.
type SampleGraph struct {
	src audio.Source

	mtx     sync.Mutex
	pending topology
	live    *topology

	in   []float32
	held int // samples of an incomplete frame kept at the head of in
}

// NewSampleGraph wraps src. Until the first Commit the graph is disconnected and
// renders silence.
func NewSampleGraph(src audio.Source) *SampleGraph {
	return &SampleGraph{
		src:     src,
		pending: newTopology(),
		live:    compile(newTopology()),
		in:      make([]float32, 4096),
	}
}

func (g *SampleGraph) SampleRate() int { return g.src.SampleRate() }
func (g *SampleGraph) Channels() int   { return 2 }
func (g *SampleGraph) BufSize() int    { return g.src.BufSize() }

func (g *SampleGraph) Close() error {
	if err := g.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (g *SampleGraph) Disconnect(n Node) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	for e := range g.pending.edges {
		if e.From == n {
			delete(g.pending.edges, e)
		}
	}
	return nil
}

func (g *SampleGraph) Connect(e Edge) error {
	if !e.valid() {
		return fmt.Errorf("%w: %s", ErrInvalidEdge, e)
	}

	g.mtx.Lock()
	defer g.mtx.Unlock()

	g.pending.edges[e] = struct{}{}
	return nil
}

func (g *SampleGraph) SetParam(n Node, value float64) error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	switch n {
	case NodePanner:
		g.pending.pan = max(-1, min(1, value))
	case NodeLeftGain:
		g.pending.gain[0] = float32(max(0, value))
	case NodeRightGain:
		g.pending.gain[1] = float32(max(0, value))
	default:
		return fmt.Errorf("%w: %s", ErrNoParam, n)
	}
	return nil
}

// Commit publishes the staged topology.
func (g *SampleGraph) Commit() error {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	g.live = compile(g.pending)
	return nil
}

// Connected reports whether e is part of the committed topology.
func (g *SampleGraph) Connected(e Edge) bool {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	_, ok := g.live.edges[e]
	return ok
}

// Edges returns the committed edges in a stable order.
func (g *SampleGraph) Edges() []Edge {
	g.mtx.Lock()
	defer g.mtx.Unlock()

	out := make([]Edge, 0, len(g.live.edges))
	for e := range g.live.edges {
		out = append(out, e)
	}
	slices.SortFunc(out, compareEdges)
	return out
}

// ReadSamples fills dst with interleaved stereo frames.
func (g *SampleGraph) ReadSamples(dst []float32) (int, error) {
	if len(dst)%2 != 0 {
		return 0, audio.ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	channels := g.src.Channels()
	need := len(dst) / 2 * channels
	if cap(g.in) < need+channels {
		in := make([]float32, need+channels)
		copy(in, g.in[:g.held])
		g.in = in
	}
	g.in = g.in[:need+channels]

	n, err := g.src.ReadSamples(g.in[g.held : g.held+need])
	total := g.held + n
	frames := total / channels

	g.mtx.Lock()
	t := g.live
	g.mtx.Unlock()

	for f := range frames {
		t.render(g.in[f*channels:(f+1)*channels], dst[f*2:f*2+2])
	}

	// a partial frame waits for the rest of its samples
	g.held = copy(g.in, g.in[frames*channels:total])

	return frames * 2, err
}

type topology struct {
	edges map[Edge]struct{}
	pan   float64
	gain  [2]float32

	// derived by compile
	sourceToPanner   bool
	pannerToSplitter bool
	mergerToDest     bool
	splits           []Edge
	merges           []Edge
	monoL, monoR     float32
	stereoL, stereoR float32
}

func newTopology() topology {
	return topology{edges: make(map[Edge]struct{})}
}

func compile(src topology) *topology {
	t := &topology{
		edges: make(map[Edge]struct{}, len(src.edges)),
		pan:   src.pan,
		gain:  src.gain,
	}

	for e := range src.edges {
		t.edges[e] = struct{}{}
		switch e.From {
		case NodeSource:
			t.sourceToPanner = true
		case NodePanner:
			t.pannerToSplitter = true
		case NodeSplitter:
			t.splits = append(t.splits, e)
		case NodeLeftGain, NodeRightGain:
			t.merges = append(t.merges, e)
		case NodeMerger:
			t.mergerToDest = true
		}
	}
	slices.SortFunc(t.splits, compareEdges)
	slices.SortFunc(t.merges, compareEdges)

	// equal-power panning, https://www.w3.org/TR/webaudio/#stereopanner-algorithm
	x := (t.pan + 1) / 2
	t.monoL = float32(math.Cos(x * math.Pi / 2))
	t.monoR = float32(math.Sin(x * math.Pi / 2))

	x = t.pan
	if t.pan <= 0 {
		x = t.pan + 1
	}
	t.stereoL = float32(math.Cos(x * math.Pi / 2))
	t.stereoR = float32(math.Sin(x * math.Pi / 2))

	return t
}

func (t *topology) render(in, out []float32) {
	var pl, pr float32
	if t.sourceToPanner {
		if len(in) == 1 {
			pl, pr = in[0]*t.monoL, in[0]*t.monoR
		} else if t.pan <= 0 {
			pl = in[0] + in[1]*t.stereoL
			pr = in[1] * t.stereoR
		} else {
			pl = in[0] * t.stereoL
			pr = in[1] + in[0]*t.stereoR
		}
	}

	var split [2]float32
	if t.pannerToSplitter {
		split = [2]float32{pl, pr}
	}

	var stage [2]float32
	for _, e := range t.splits {
		stage[stageIndex(e.To)] += split[e.Output]
	}
	stage[0] *= t.gain[0]
	stage[1] *= t.gain[1]

	var merged [2]float32
	for _, e := range t.merges {
		merged[e.Input] += stage[stageIndex(e.From)]
	}

	if !t.mergerToDest {
		merged = [2]float32{}
	}
	out[0], out[1] = merged[0], merged[1]
}

func stageIndex(n Node) int {
	if n == NodeRightGain {
		return 1
	}
	return 0
}

func compareEdges(a, b Edge) int {
	return cmp.Or(
		cmp.Compare(a.From, b.From),
		cmp.Compare(a.Output, b.Output),
		cmp.Compare(a.To, b.To),
		cmp.Compare(a.Input, b.Input),
	)
}

// SPDX-License-Identifier: EPL-2.0

package routing

import "fmt"

// Mode names the rule of the pad table that produced a plan.
type Mode int

const (
	ModeDefault Mode = iota
	ModeAll
	ModeTop
	ModeBottom
	ModeLeft
	ModeRight
	ModeDiagonal
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "all"
	case ModeTop:
		return "top"
	case ModeBottom:
		return "bottom"
	case ModeLeft:
		return "left"
	case ModeRight:
		return "right"
	case ModeDiagonal:
		return "diagonal"
	default:
		return "default"
	}
}

// SplitterMapping says which decoded channel feeds each gain stage.
type SplitterMapping struct {
	Left  int
	Right int
}

var (
	DefaultMapping = SplitterMapping{Left: 0, Right: 1}
	SwappedMapping = SplitterMapping{Left: 1, Right: 0}
)

// Plan is a complete, declarative description of the routing graph.
type Plan struct {
	Mode      Mode
	Pan       float64 // -1 full left, 0 centered, +1 full right
	LeftMute  bool
	RightMute bool
	CrossFeed bool
	// FoldDown feeds each gain stage into both merger inputs.
	FoldDown bool
	Splitter SplitterMapping

	// Effective gain stage levels, zero when the path is muted.
	LeftGain  float64
	RightGain float64
}

// Compute derives the plan for the given pads and gains. It is a pure function;
// the first matching rule wins and every pad combination has a plan.
func Compute(pads PadState, gains Gains, multiChannel bool) Plan {
	p := Plan{Mode: ModeDefault, Splitter: DefaultMapping}

	switch {
	case pads.all():
		p.Mode = ModeAll
		p.FoldDown = true
	case multiChannel && pads.topOnly():
		p.Mode = ModeTop
		p.RightMute = true
	case multiChannel && pads.bottomOnly():
		p.Mode = ModeBottom
		p.LeftMute = true
	case pads.leftOnly():
		p.Mode = ModeLeft
		p.Pan = -1
	case pads.rightOnly():
		p.Mode = ModeRight
		p.Pan = 1
	case pads.diagonal():
		p.Mode = ModeDiagonal
		p.CrossFeed = true
		p.Splitter = SwappedMapping
	}

	// per-ear gains only apply while a diagonal is selected
	g := DefaultGains()
	if pads.Diagonal() {
		g = gains.clamped()
	}
	if !p.LeftMute {
		p.LeftGain = g.Left
	}
	if !p.RightMute {
		p.RightGain = g.Right
	}

	return p
}

// Edges returns every connection of the plan, ordered source to destination.
func (p Plan) Edges() []Edge {
	edges := []Edge{
		{From: NodeSource, To: NodePanner},
		{From: NodePanner, To: NodeSplitter},
		{From: NodeSplitter, Output: p.Splitter.Left, To: NodeLeftGain},
		{From: NodeSplitter, Output: p.Splitter.Right, To: NodeRightGain},
		{From: NodeLeftGain, To: NodeMerger, Input: 0},
		{From: NodeRightGain, To: NodeMerger, Input: 1},
	}

	if p.FoldDown {
		edges = append(edges,
			Edge{From: NodeLeftGain, To: NodeMerger, Input: 1},
			Edge{From: NodeRightGain, To: NodeMerger, Input: 0},
		)
	}

	return append(edges, Edge{From: NodeMerger, To: NodeDestination})
}

// Params returns the parameter value of every node that has one.
func (p Plan) Params() []Param {
	return []Param{
		{Node: NodePanner, Value: p.Pan},
		{Node: NodeLeftGain, Value: p.LeftGain},
		{Node: NodeRightGain, Value: p.RightGain},
	}
}

// Validate checks that every edge is part of the graph vocabulary, that the
// topology is acyclic and that the destination is reachable from the source.
func (p Plan) Validate() error {
	edges := p.Edges()
	next := make(map[Node][]Node, len(Nodes))

	for _, e := range edges {
		if e.From.rank() >= e.To.rank() {
			return fmt.Errorf("%w: %s", ErrCyclicPlan, e)
		}
		if !e.valid() {
			return fmt.Errorf("%w: %s", ErrInvalidEdge, e)
		}
		next[e.From] = append(next[e.From], e.To)
	}

	seen := map[Node]bool{NodeSource: true}
	queue := []Node{NodeSource}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, to := range next[n] {
			if !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}

	for _, n := range Nodes {
		if !seen[n] {
			return fmt.Errorf("%w: %s unreachable", ErrDisconnected, n)
		}
	}

	return nil
}

// Param is a node parameter assignment.
type Param struct {
	Node  Node
	Value float64
}

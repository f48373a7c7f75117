// SPDX-License-Identifier: EPL-2.0

package routing

import "fmt"

// Node is one vertex of the routing graph.
type Node int

const (
	NodeSource Node = iota
	NodePanner
	NodeSplitter
	NodeLeftGain
	NodeRightGain
	NodeMerger
	NodeDestination
)

// Nodes lists every node in topological order.
var Nodes = []Node{
	NodeSource,
	NodePanner,
	NodeSplitter,
	NodeLeftGain,
	NodeRightGain,
	NodeMerger,
	NodeDestination,
}

func (n Node) String() string {
	switch n {
	case NodeSource:
		return "source"
	case NodePanner:
		return "panner"
	case NodeSplitter:
		return "splitter"
	case NodeLeftGain:
		return "left-gain"
	case NodeRightGain:
		return "right-gain"
	case NodeMerger:
		return "merger"
	case NodeDestination:
		return "destination"
	default:
		return fmt.Sprintf("node(%d)", int(n))
	}
}

func (n Node) rank() int {
	switch n {
	case NodeLeftGain, NodeRightGain:
		return 3
	case NodeMerger:
		return 4
	case NodeDestination:
		return 5
	default:
		return int(n)
	}
}

// Edge connects output port Output of From to input port Input of To.
type Edge struct {
	From   Node
	Output int
	To     Node
	Input  int
}

func (e Edge) String() string {
	return fmt.Sprintf("%s[%d]->%s[%d]", e.From, e.Output, e.To, e.Input)
}

func (e Edge) valid() bool {
	switch {
	case e.From == NodeSource && e.To == NodePanner:
		return e.Output == 0 && e.Input == 0
	case e.From == NodePanner && e.To == NodeSplitter:
		return e.Output == 0 && e.Input == 0
	case e.From == NodeSplitter && (e.To == NodeLeftGain || e.To == NodeRightGain):
		return (e.Output == 0 || e.Output == 1) && e.Input == 0
	case (e.From == NodeLeftGain || e.From == NodeRightGain) && e.To == NodeMerger:
		return e.Output == 0 && (e.Input == 0 || e.Input == 1)
	case e.From == NodeMerger && e.To == NodeDestination:
		return e.Output == 0 && e.Input == 0
	}
	return false
}

// Graph is an audio graph the Router can rewire.
type Graph interface {
	// Disconnect removes every outgoing connection of n.
	Disconnect(n Node) error
	Connect(e Edge) error
	SetParam(n Node, value float64) error
}

// Committer is implemented by graphs that stage changes and publish them at once.
type Committer interface {
	Commit() error
}

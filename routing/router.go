// SPDX-License-Identifier: EPL-2.0

package routing

import (
	"fmt"
	"sync"
)

// Router is the single entry point that rewires a Graph. Every Apply starts from
// a fully disconnected graph, so the topology always matches the latest plan.
type Router struct {
	graph Graph

	mtx     sync.Mutex
	plan    Plan
	applied bool
}

func NewRouter(g Graph) *Router {
	return &Router{graph: g}
}

// Apply disconnects every node, sets node parameters and connects the plan's
// edges. Concurrent calls are serialized.
func (r *Router) Apply(plan Plan) error {
	if err := plan.Validate(); err != nil {
		return err
	}

	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.applied = false

	for _, n := range Nodes {
		if err := r.graph.Disconnect(n); err != nil {
			return fmt.Errorf("disconnect %s: %w", n, err)
		}
	}

	for _, p := range plan.Params() {
		if err := r.graph.SetParam(p.Node, p.Value); err != nil {
			return fmt.Errorf("set %s: %w", p.Node, err)
		}
	}

	for _, e := range plan.Edges() {
		if err := r.graph.Connect(e); err != nil {
			return fmt.Errorf("connect %s: %w", e, err)
		}
	}

	if c, ok := r.graph.(Committer); ok {
		if err := c.Commit(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
	}

	r.plan = plan
	r.applied = true

	return nil
}

// Update computes the plan for the given inputs and applies it.
func (r *Router) Update(pads PadState, gains Gains, multiChannel bool) (Plan, error) {
	plan := Compute(pads, gains, multiChannel)
	if err := r.Apply(plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// Plan returns the last successfully applied plan.
func (r *Router) Plan() (Plan, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	return r.plan, r.applied
}

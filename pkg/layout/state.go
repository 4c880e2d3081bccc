package layout

import (
	"github.com/draftwire/crossref/pkg/graph"
)

// Vec is a 2D vector.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PositionedNode is the simulator's working entity: a graph node plus the
// mutable position and velocity the integrator owns for the duration of a
// run. A node with both FX and FY set is pinned: the integrator forces its
// position every step and zeroes its velocity.
type PositionedNode struct {
	Node     *graph.Node
	Position Vec
	Velocity Vec
	FX       *float64
	FY       *float64
}

// Pin fixes the node at the given coordinates.
func (p *PositionedNode) Pin(x, y float64) {
	p.FX = &x
	p.FY = &y
}

// Unpin releases a pinned node back to force integration.
func (p *PositionedNode) Unpin() {
	p.FX = nil
	p.FY = nil
}

// Pinned reports whether both coordinates are fixed.
func (p *PositionedNode) Pinned() bool {
	return p.FX != nil && p.FY != nil
}

// State is the explicit simulation state passed between Step calls.
// The simulator owns position and velocity while a run is in flight; the
// caller owns the graph topology and must restart the run if it changes.
type State struct {
	Iteration int

	nodes []*PositionedNode
	byID  map[string]*PositionedNode

	// Links restricted to nodes present in this run. A link whose
	// endpoint is filtered out is still valid topology, just invisible
	// this frame.
	links []*graph.Link
}

// Nodes returns the working set in stable order.
func (s *State) Nodes() []*PositionedNode {
	return s.nodes
}

// Get returns the positioned node for an id.
func (s *State) Get(id string) (*PositionedNode, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Positions snapshots the current position of every node. Each snapshot is
// independent of later steps, so callers can accumulate a per-step stream.
func (s *State) Positions() map[string]Vec {
	out := make(map[string]Vec, len(s.nodes))
	for _, p := range s.nodes {
		out[p.Node.ID] = p.Position
	}
	return out
}

// PinnedCount returns how many nodes are currently pinned.
func (s *State) PinnedCount() int {
	n := 0
	for _, p := range s.nodes {
		if p.Pinned() {
			n++
		}
	}
	return n
}

package graph

import (
	"github.com/google/uuid"
)

// Neighborhood groups the links touching a node by direction.
type Neighborhood struct {
	Incoming []*Link
	Outgoing []*Link
}

// Model is an immutable, indexed view of a cross-reference graph.
// Adjacency maps are built once in O(V+E); lookups are O(1) amortized.
// The model owns nothing mutable: callers load a new model when the
// underlying agreement changes.
type Model struct {
	version string

	nodes     map[string]*Node
	nodeOrder []string // insertion order, for deterministic iteration
	links     map[string]*Link
	linkOrder []string

	outgoing map[string][]*Link // source node id -> links
	incoming map[string][]*Link // target node id -> links
}

// NewModel builds an indexed model from node and link records.
// It rejects structurally invalid input: duplicate node ids, links whose
// endpoints are missing, strengths outside [0,1]. Use NewPartialModel to
// quarantine dangling links instead of failing.
func NewModel(nodes []*Node, links []*Link) (*Model, error) {
	m, _, err := build(nodes, links, false)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// NewPartialModel builds a model like NewModel but quarantines links that
// reference missing endpoints instead of rejecting the whole graph. The
// quarantined links are returned so the caller can decide whether an
// acknowledged partial graph is acceptable.
func NewPartialModel(nodes []*Node, links []*Link) (*Model, []*Link, error) {
	return build(nodes, links, true)
}

func build(nodes []*Node, links []*Link, quarantine bool) (*Model, []*Link, error) {
	m := &Model{
		version:  uuid.NewString(),
		nodes:    make(map[string]*Node, len(nodes)),
		links:    make(map[string]*Link, len(links)),
		outgoing: make(map[string][]*Link, len(nodes)),
		incoming: make(map[string][]*Link, len(nodes)),
	}

	for _, n := range nodes {
		if n.ID == "" {
			return nil, nil, nodeError("BuildModel", n.Name, ErrEmptyID)
		}
		if _, exists := m.nodes[n.ID]; exists {
			return nil, nil, nodeError("BuildModel", n.ID, ErrDuplicateNodeID)
		}
		clone := n.Clone()
		clone.IncomingCount = 0
		clone.OutgoingCount = 0
		m.nodes[n.ID] = clone
		m.nodeOrder = append(m.nodeOrder, n.ID)
	}

	var quarantined []*Link
	for _, l := range links {
		if l.Strength < 0 || l.Strength > 1 {
			return nil, nil, linkError("BuildModel", l.ID, ErrInvalidStrength)
		}
		_, srcOK := m.nodes[l.SourceID]
		_, dstOK := m.nodes[l.TargetID]
		if !srcOK || !dstOK {
			if quarantine {
				quarantined = append(quarantined, l)
				continue
			}
			return nil, nil, linkError("BuildModel", l.ID, ErrDanglingLink)
		}

		stored := *l
		if stored.ID == "" {
			stored.ID = uuid.NewString()
		}
		if _, exists := m.links[stored.ID]; exists {
			// Parallel links are legal but ids must stay unique.
			stored.ID = stored.ID + "-" + uuid.NewString()
		}
		m.links[stored.ID] = &stored
		m.linkOrder = append(m.linkOrder, stored.ID)
		m.outgoing[stored.SourceID] = append(m.outgoing[stored.SourceID], &stored)
		m.incoming[stored.TargetID] = append(m.incoming[stored.TargetID], &stored)
	}

	// Degree counts follow the indexed links, never the caller's values.
	for id, n := range m.nodes {
		n.OutgoingCount = len(m.outgoing[id])
		n.IncomingCount = len(m.incoming[id])
	}

	return m, quarantined, nil
}

// Version returns an opaque identifier unique to this build of the model.
// Callers caching derived results should key by (input, Version).
func (m *Model) Version() string {
	return m.version
}

// GetNode returns the node with the given id.
func (m *Model) GetNode(id string) (*Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return nil, nodeError("GetNode", id, ErrNodeNotFound)
	}
	return n, nil
}

// HasNode reports whether a node with the given id exists.
func (m *Model) HasNode(id string) bool {
	_, ok := m.nodes[id]
	return ok
}

// LinksFrom returns the outgoing links of a node. The returned slice is
// shared with the model and must not be mutated.
func (m *Model) LinksFrom(id string) []*Link {
	return m.outgoing[id]
}

// LinksTo returns the incoming links of a node.
func (m *Model) LinksTo(id string) []*Link {
	return m.incoming[id]
}

// Neighbors returns the links touching a node, grouped by direction.
func (m *Model) Neighbors(id string) Neighborhood {
	return Neighborhood{
		Incoming: m.incoming[id],
		Outgoing: m.outgoing[id],
	}
}

// Nodes returns all nodes in insertion order.
func (m *Model) Nodes() []*Node {
	out := make([]*Node, 0, len(m.nodeOrder))
	for _, id := range m.nodeOrder {
		out = append(out, m.nodes[id])
	}
	return out
}

// Links returns all links in insertion order.
func (m *Model) Links() []*Link {
	out := make([]*Link, 0, len(m.linkOrder))
	for _, id := range m.linkOrder {
		out = append(out, m.links[id])
	}
	return out
}

// NodeCount returns the number of nodes.
func (m *Model) NodeCount() int {
	return len(m.nodes)
}

// LinkCount returns the number of links.
func (m *Model) LinkCount() int {
	return len(m.links)
}

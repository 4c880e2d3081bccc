package graph

import (
	"slices"
	"strings"
)

// Filter selects the subgraph the presentation layer currently shows.
// Zero-value fields are inactive. Links survive only when their own type
// passes and both endpoints pass: a filtered-out link disappears even if
// both of its endpoints remain visible.
type Filter struct {
	NodeTypes      []NodeType
	Categories     []string
	LinkTypes      []LinkType
	MinConnections int
	Search         string
	ModifiedOnly   bool
	HighImpactOnly bool
}

// MatchNode reports whether a node passes the filter.
func (f *Filter) MatchNode(n *Node) bool {
	if len(f.NodeTypes) > 0 && !slices.Contains(f.NodeTypes, n.Type) {
		return false
	}
	if len(f.Categories) > 0 && !slices.Contains(f.Categories, n.Category) {
		return false
	}
	if f.MinConnections > 0 && n.IncomingCount+n.OutgoingCount < f.MinConnections {
		return false
	}
	if f.ModifiedOnly && !n.IsModified {
		return false
	}
	if f.HighImpactOnly && n.ImpactSeverity < SeverityHigh {
		return false
	}
	if f.Search != "" {
		q := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(n.Name), q) &&
			!strings.Contains(strings.ToLower(n.Content), q) {
			return false
		}
	}
	return true
}

// MatchLink reports whether a link's own type passes the filter.
// Endpoint visibility is checked separately in Apply.
func (f *Filter) MatchLink(l *Link) bool {
	return len(f.LinkTypes) == 0 || slices.Contains(f.LinkTypes, l.Type)
}

// Apply builds a new model holding only the matching subgraph. The result
// has its own version and recomputed degree counts.
func (f *Filter) Apply(m *Model) (*Model, error) {
	var nodes []*Node
	keep := make(map[string]bool)
	for _, n := range m.Nodes() {
		if f.MatchNode(n) {
			nodes = append(nodes, n)
			keep[n.ID] = true
		}
	}

	var links []*Link
	for _, l := range m.Links() {
		if keep[l.SourceID] && keep[l.TargetID] && f.MatchLink(l) {
			links = append(links, l)
		}
	}

	return NewModel(nodes, links)
}

package graph

// NodeType classifies a contract term in the cross-reference graph.
type NodeType int

const (
	NodeDefinition NodeType = iota
	NodeClause
	NodeCovenant
	NodePricing
	NodeRepresentation
	NodeCondition
	NodeEvent
)

var nodeTypeNames = [...]string{
	NodeDefinition:     "definition",
	NodeClause:         "clause",
	NodeCovenant:       "covenant",
	NodePricing:        "pricing",
	NodeRepresentation: "representation",
	NodeCondition:      "condition",
	NodeEvent:          "event",
}

// String returns the wire name of the node type.
func (t NodeType) String() string {
	if t < 0 || int(t) >= len(nodeTypeNames) {
		return "unknown"
	}
	return nodeTypeNames[t]
}

// ParseNodeType converts a wire name to a NodeType.
func ParseNodeType(s string) (NodeType, bool) {
	for i, name := range nodeTypeNames {
		if name == s {
			return NodeType(i), true
		}
	}
	return 0, false
}

// LinkType classifies the relationship a link expresses.
type LinkType int

const (
	LinkDefines LinkType = iota
	LinkReferences
	LinkDependsOn
	LinkTriggers
	LinkConstrains
	LinkModifies
)

var linkTypeNames = [...]string{
	LinkDefines:    "defines",
	LinkReferences: "references",
	LinkDependsOn:  "depends_on",
	LinkTriggers:   "triggers",
	LinkConstrains: "constrains",
	LinkModifies:   "modifies",
}

// String returns the wire name of the link type.
func (t LinkType) String() string {
	if t < 0 || int(t) >= len(linkTypeNames) {
		return "unknown"
	}
	return linkTypeNames[t]
}

// ParseLinkType converts a wire name to a LinkType.
func ParseLinkType(s string) (LinkType, bool) {
	for i, name := range linkTypeNames {
		if name == s {
			return LinkType(i), true
		}
	}
	return 0, false
}

// Severity grades how badly a change to a node hurts its dependents.
type Severity int

const (
	SeverityNone Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// severityInfo is the static per-severity table: wire name, impact points
// used by the analyzer's scoring, and the display color used by renderers.
type severityInfo struct {
	name   string
	points float64
	color  string
}

var severityTable = [...]severityInfo{
	SeverityNone:     {"none", 0, "#6b7280"},
	SeverityLow:      {"low", 10, "#22c55e"},
	SeverityMedium:   {"medium", 25, "#eab308"},
	SeverityHigh:     {"high", 50, "#f97316"},
	SeverityCritical: {"critical", 100, "#ef4444"},
}

// String returns the wire name of the severity.
func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityTable) {
		return "unknown"
	}
	return severityTable[s].name
}

// Points returns the impact score contribution of the severity.
func (s Severity) Points() float64 {
	if s < 0 || int(s) >= len(severityTable) {
		return 0
	}
	return severityTable[s].points
}

// Color returns the display color of the severity.
func (s Severity) Color() string {
	if s < 0 || int(s) >= len(severityTable) {
		return severityTable[SeverityNone].color
	}
	return severityTable[s].color
}

// ParseSeverity converts a wire name to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	for i := range severityTable {
		if severityTable[i].name == s {
			return Severity(i), true
		}
	}
	return 0, false
}

// Node is a contract term in the cross-reference graph.
type Node struct {
	ID            string
	Name          string
	Type          NodeType
	Category      string
	Content       string
	Location      string
	CurrentValue  string
	PreviousValue string
	IsModified    bool

	// Degree counts maintained by the model at build time. They always
	// equal the number of links with this node as target/source.
	IncomingCount int
	OutgoingCount int

	ImpactSeverity Severity

	// ImpactedNodeIDs is a precomputed first-degree hint carried from the
	// extraction layer. Traversal always recomputes from links.
	ImpactedNodeIDs []string
}

// Clone creates a deep copy of a node.
func (n *Node) Clone() *Node {
	clone := *n
	clone.ImpactedNodeIDs = make([]string, len(n.ImpactedNodeIDs))
	copy(clone.ImpactedNodeIDs, n.ImpactedNodeIDs)
	return &clone
}

// Link is a typed, directed, weighted relationship between two nodes.
// Parallel links between the same pair with different types are distinct
// edges and are preserved as such.
type Link struct {
	ID          string
	SourceID    string
	TargetID    string
	Type        LinkType
	Strength    float64 // [0,1]
	Description string
	IsModified  bool
}

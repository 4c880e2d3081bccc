package graph

// Statistics summarizes a loaded graph for dashboards. Computed once per
// load with a single pass over nodes and links.
type Statistics struct {
	NodeCount int
	LinkCount int

	NodesByType map[NodeType]int
	LinksByType map[LinkType]int

	ModifiedNodes   int
	HighImpactNodes int // severity high or critical

	AvgConnections    float64
	MostConnectedID   string
	MostConnectedName string
}

// ComputeStatistics reduces the model to aggregate counts.
func ComputeStatistics(m *Model) Statistics {
	stats := Statistics{
		NodeCount:   m.NodeCount(),
		LinkCount:   m.LinkCount(),
		NodesByType: make(map[NodeType]int),
		LinksByType: make(map[LinkType]int),
	}

	totalConnections := 0
	maxConnections := -1
	for _, n := range m.Nodes() {
		stats.NodesByType[n.Type]++
		if n.IsModified {
			stats.ModifiedNodes++
		}
		if n.ImpactSeverity >= SeverityHigh {
			stats.HighImpactNodes++
		}
		connections := n.IncomingCount + n.OutgoingCount
		totalConnections += connections
		if connections > maxConnections {
			maxConnections = connections
			stats.MostConnectedID = n.ID
			stats.MostConnectedName = n.Name
		}
	}

	for _, l := range m.Links() {
		stats.LinksByType[l.Type]++
	}

	if stats.NodeCount > 0 {
		stats.AvgConnections = float64(totalConnections) / float64(stats.NodeCount)
	}

	return stats
}

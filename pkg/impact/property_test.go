package impact

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/draftwire/crossref/pkg/graph"
)

// randomModel builds a dense directed graph, cycles included, from a seed.
func randomModel(nodeCount int, edges []int, severities []int) *graph.Model {
	var nodes []*graph.Node
	for i := 0; i < nodeCount; i++ {
		sev := graph.Severity(severities[i%len(severities)] % 5)
		nodes = append(nodes, &graph.Node{
			ID:             fmt.Sprintf("n%d", i),
			Name:           fmt.Sprintf("n%d", i),
			Type:           graph.NodeClause,
			Category:       "general",
			ImpactSeverity: sev,
		})
	}
	var links []*graph.Link
	for i, e := range edges {
		src := fmt.Sprintf("n%d", e%nodeCount)
		dst := fmt.Sprintf("n%d", (e/nodeCount)%nodeCount)
		links = append(links, &graph.Link{
			ID:       fmt.Sprintf("l%d", i),
			SourceID: src,
			TargetID: dst,
			Type:     graph.LinkDependsOn,
			Strength: 0.5,
		})
	}
	m, err := graph.NewModel(nodes, links)
	if err != nil {
		panic(err)
	}
	return m
}

// TestImpactInvariants checks the analyzer's correctness properties over
// arbitrary graphs: bounded scores, disjoint direct/cascading sets, and
// depth bounds. Cycles are included, which also exercises termination.
func TestImpactInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	analyzer, err := NewAnalyzer(DefaultOptions())
	if err != nil {
		t.Fatalf("NewAnalyzer failed: %v", err)
	}

	arbitrary := func(check func(*Analysis) bool) func(int, []int, []int) bool {
		return func(nodeCount int, edges []int, severities []int) bool {
			if len(severities) == 0 {
				severities = []int{0}
			}
			m := randomModel(nodeCount, edges, severities)
			return check(analyzer.Analyze(m, "n0"))
		}
	}

	nodeGen := gen.IntRange(1, 15)
	edgeGen := gen.SliceOfN(40, gen.IntRange(0, 15*15))
	sevGen := gen.SliceOfN(8, gen.IntRange(0, 4))

	properties.Property("total score stays within [0, 100]", prop.ForAll(
		arbitrary(func(a *Analysis) bool {
			return a.TotalImpactScore >= 0 && a.TotalImpactScore <= 100
		}),
		nodeGen, edgeGen, sevGen,
	))

	properties.Property("direct and cascading sets never intersect", prop.ForAll(
		arbitrary(func(a *Analysis) bool {
			direct := make(map[string]bool)
			for _, d := range a.DirectImpacts {
				direct[d.NodeID] = true
			}
			for _, c := range a.CascadingImpacts {
				if direct[c.NodeID] {
					return false
				}
			}
			return true
		}),
		nodeGen, edgeGen, sevGen,
	))

	properties.Property("every node reported at most once across both lists", prop.ForAll(
		arbitrary(func(a *Analysis) bool {
			seen := make(map[string]int)
			for _, c := range a.CascadingImpacts {
				seen[c.NodeID]++
			}
			for _, n := range seen {
				if n > 1 {
					return false
				}
			}
			return true
		}),
		nodeGen, edgeGen, sevGen,
	))

	properties.Property("cascading depth is at least 2 and within the cap", prop.ForAll(
		arbitrary(func(a *Analysis) bool {
			for _, c := range a.CascadingImpacts {
				if c.Depth < 2 || c.Depth > DefaultOptions().MaxDepth {
					return false
				}
			}
			return true
		}),
		nodeGen, edgeGen, sevGen,
	))

	properties.TestingRun(t)
}

// TestAnalyze_ManyCriticalDependents pins the saturation bound with a
// graph far past the scoring knee.
func TestAnalyze_ManyCriticalDependents(t *testing.T) {
	nodes := []*graph.Node{{
		ID: "src", Name: "src", Type: graph.NodeClause, Category: "general",
	}}
	var links []*graph.Link
	for i := 0; i < 300; i++ {
		id := fmt.Sprintf("dep%d", i)
		nodes = append(nodes, &graph.Node{
			ID: id, Name: id, Type: graph.NodeClause, Category: "general",
			ImpactSeverity: graph.SeverityCritical,
		})
		links = append(links, &graph.Link{
			ID: fmt.Sprintf("l%d", i), SourceID: "src", TargetID: id,
			Type: graph.LinkDependsOn, Strength: 1,
		})
	}
	m, err := graph.NewModel(nodes, links)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}

	a, _ := NewAnalyzer(DefaultOptions())
	analysis := a.Analyze(m, "src")
	if analysis.TotalImpactScore != 100 {
		t.Errorf("Expected score clamped at 100, got %f", analysis.TotalImpactScore)
	}
}

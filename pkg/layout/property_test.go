package layout

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/draftwire/crossref/pkg/graph"
)

// TestSimulationInvariants verifies properties that must hold after any
// number of steps over any small graph: bounds containment for free nodes
// and exact position for pinned ones.
func TestSimulationInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 30

	properties := gopter.NewProperties(parameters)

	properties.Property("free nodes stay within margins after any step count", prop.ForAll(
		func(nodeCount, steps int, seed int64) bool {
			cfg := DefaultConfig(800, 600)
			cfg.Seed = seed
			sim, err := NewSimulator(cfg)
			if err != nil {
				return false
			}

			st := sim.NewState(chainModel(nodeCount))
			for i := 0; i < steps; i++ {
				sim.Step(st)
			}

			for _, p := range st.Nodes() {
				if p.Position.X < cfg.Margin || p.Position.X > cfg.Width-cfg.Margin {
					return false
				}
				if p.Position.Y < cfg.Margin || p.Position.Y > cfg.Height-cfg.Margin {
					return false
				}
			}
			return true
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 60),
		gen.Int64Range(1, 1<<20),
	))

	properties.Property("pinned node position is exact after any step count", prop.ForAll(
		func(nodeCount, steps int, seed int64) bool {
			cfg := DefaultConfig(800, 600)
			cfg.Seed = seed
			sim, err := NewSimulator(cfg)
			if err != nil {
				return false
			}

			st := sim.NewState(chainModel(nodeCount))
			pinned := st.Nodes()[0]
			pinned.Pin(250, 275)

			for i := 0; i < steps; i++ {
				sim.Step(st)
			}
			if steps == 0 {
				return true // pin is enforced per step
			}
			return pinned.Position.X == 250 && pinned.Position.Y == 275 &&
				pinned.Velocity.X == 0 && pinned.Velocity.Y == 0
		},
		gen.IntRange(1, 12),
		gen.IntRange(0, 60),
		gen.Int64Range(1, 1<<20),
	))

	properties.TestingRun(t)
}

// chainModel builds a simple linked chain of n nodes across two categories.
func chainModel(n int) *graph.Model {
	var nodes []*graph.Node
	var links []*graph.Link
	for i := 0; i < n; i++ {
		category := "left"
		if i%2 == 1 {
			category = "right"
		}
		id := fmt.Sprintf("n%d", i)
		nodes = append(nodes, &graph.Node{
			ID:       id,
			Name:     id,
			Type:     graph.NodeClause,
			Category: category,
		})
		if i > 0 {
			links = append(links, &graph.Link{
				ID:       fmt.Sprintf("l%d", i),
				SourceID: fmt.Sprintf("n%d", i-1),
				TargetID: id,
				Type:     graph.LinkReferences,
				Strength: 0.5,
			})
		}
	}
	m, err := graph.NewModel(nodes, links)
	if err != nil {
		panic(err)
	}
	return m
}

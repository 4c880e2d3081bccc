package layout

import (
	"context"
	"math"
	"testing"

	"github.com/draftwire/crossref/pkg/graph"
)

func simTestModel(t *testing.T, nodes []*graph.Node, links []*graph.Link) *graph.Model {
	t.Helper()
	m, err := graph.NewModel(nodes, links)
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m
}

func simTestConfig() Config {
	cfg := DefaultConfig(800, 600)
	cfg.Seed = 42
	return cfg
}

func node(id, category string) *graph.Node {
	return &graph.Node{
		ID:       id,
		Name:     id,
		Type:     graph.NodeClause,
		Category: category,
	}
}

func link(source, target string, strength float64) *graph.Link {
	return &graph.Link{
		ID:       source + "-" + target,
		SourceID: source,
		TargetID: target,
		Type:     graph.LinkReferences,
		Strength: strength,
	}
}

func TestNewSimulator_RejectsBadConfig(t *testing.T) {
	cfg := simTestConfig()
	cfg.MaxIterations = 0
	if _, err := NewSimulator(cfg); err == nil {
		t.Fatal("Expected configuration error for zero iteration cap")
	}

	cfg = simTestConfig()
	cfg.Damping = 1.5
	if _, err := NewSimulator(cfg); err == nil {
		t.Fatal("Expected configuration error for damping > 1")
	}

	cfg = simTestConfig()
	cfg.Width = -1
	if _, err := NewSimulator(cfg); err == nil {
		t.Fatal("Expected configuration error for negative width")
	}
}

func TestRun_EmptyGraph(t *testing.T) {
	sim, err := NewSimulator(simTestConfig())
	if err != nil {
		t.Fatalf("NewSimulator failed: %v", err)
	}

	st := sim.NewState(simTestModel(t, nil, nil))
	if err := sim.Run(context.Background(), st, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if st.Iteration != 0 {
		t.Errorf("Empty layout must execute zero steps, got %d", st.Iteration)
	}
}

func TestStep_StopsAtIterationBudget(t *testing.T) {
	cfg := simTestConfig()
	cfg.MaxIterations = 5
	sim, _ := NewSimulator(cfg)

	st := sim.NewState(simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x")},
		[]*graph.Link{link("a", "b", 1)},
	))

	steps := 0
	for sim.Step(st) {
		steps++
	}
	if steps != 5 {
		t.Errorf("Expected exactly 5 steps, got %d", steps)
	}
	if sim.Step(st) {
		t.Error("Step past the budget must refuse")
	}
}

func TestRun_BoundaryContainment(t *testing.T) {
	cfg := simTestConfig()
	cfg.Repulsion = 50000 // violent repulsion to push nodes outward
	sim, _ := NewSimulator(cfg)

	nodes := []*graph.Node{
		node("a", "x"), node("b", "x"), node("c", "y"),
		node("d", "y"), node("e", "z"), node("f", "z"),
	}
	st := sim.NewState(simTestModel(t, nodes, nil))

	onStep := func(s *State) {
		for _, p := range s.Nodes() {
			if p.Position.X < cfg.Margin || p.Position.X > cfg.Width-cfg.Margin {
				t.Fatalf("Node %s X=%f escaped bounds at iteration %d", p.Node.ID, p.Position.X, s.Iteration)
			}
			if p.Position.Y < cfg.Margin || p.Position.Y > cfg.Height-cfg.Margin {
				t.Fatalf("Node %s Y=%f escaped bounds at iteration %d", p.Node.ID, p.Position.Y, s.Iteration)
			}
		}
	}
	if err := sim.Run(context.Background(), st, onStep); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestStep_PinnedNodeExactPosition(t *testing.T) {
	sim, _ := NewSimulator(simTestConfig())
	st := sim.NewState(simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x")},
		[]*graph.Link{link("a", "b", 1)},
	))

	pinned, _ := st.Get("a")
	pinned.Pin(123, 456)

	for i := 0; i < 80; i++ {
		sim.Step(st)
	}

	if pinned.Position.X != 123 || pinned.Position.Y != 456 {
		t.Errorf("Pinned node drifted to (%f, %f)", pinned.Position.X, pinned.Position.Y)
	}
	if pinned.Velocity.X != 0 || pinned.Velocity.Y != 0 {
		t.Errorf("Pinned node kept velocity (%f, %f)", pinned.Velocity.X, pinned.Velocity.Y)
	}
}

func TestRun_FreeNodeSettlesBetweenPins(t *testing.T) {
	cfg := simTestConfig()
	cfg.Repulsion = 0.001 // near-zero so springs dominate
	sim, _ := NewSimulator(cfg)

	st := sim.NewState(simTestModel(t,
		[]*graph.Node{node("left", "x"), node("right", "x"), node("free", "x")},
		[]*graph.Link{link("left", "free", 1), link("right", "free", 1)},
	))

	left, _ := st.Get("left")
	left.Pin(300, 300)
	right, _ := st.Get("right")
	right.Pin(500, 300)

	for i := 0; i < 50; i++ {
		sim.Step(st)
	}

	free, _ := st.Get("free")
	if math.Abs(free.Position.X-400) > 20 {
		t.Errorf("Free node X=%f, expected near 400", free.Position.X)
	}
	if math.Abs(free.Position.Y-300) > 20 {
		t.Errorf("Free node Y=%f, expected near 300", free.Position.Y)
	}
}

func TestNewState_SeedsWithinCanvas(t *testing.T) {
	cfg := simTestConfig()
	sim, _ := NewSimulator(cfg)

	nodes := []*graph.Node{
		node("a", "financial"), node("b", "financial"),
		node("c", "covenants"), node("d", "administrative"),
	}
	st := sim.NewState(simTestModel(t, nodes, nil))

	if len(st.Nodes()) != 4 {
		t.Fatalf("Expected 4 positioned nodes, got %d", len(st.Nodes()))
	}
	for _, p := range st.Nodes() {
		if p.Position.X < cfg.Margin || p.Position.X > cfg.Width-cfg.Margin ||
			p.Position.Y < cfg.Margin || p.Position.Y > cfg.Height-cfg.Margin {
			t.Errorf("Seed placed %s outside canvas: (%f, %f)", p.Node.ID, p.Position.X, p.Position.Y)
		}
	}
}

func TestReseed_WarmStartKeepsPositions(t *testing.T) {
	sim, _ := NewSimulator(simTestConfig())
	m := simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x")},
		[]*graph.Link{link("a", "b", 1)},
	)

	st := sim.NewState(m)
	for i := 0; i < 20; i++ {
		sim.Step(st)
	}
	before, _ := st.Get("a")
	pos := before.Position

	// A filter change arrives: same model here, but the counter resets
	// and positions carry over to avoid visual jumps.
	warm := sim.Reseed(st, m)
	if warm.Iteration != 0 {
		t.Errorf("Reseed must reset the iteration counter, got %d", warm.Iteration)
	}
	after, _ := warm.Get("a")
	if after.Position != pos {
		t.Errorf("Warm start lost position: %v vs %v", after.Position, pos)
	}
}

func TestNewState_ExcludesLinksWithHiddenEndpoints(t *testing.T) {
	sim, _ := NewSimulator(simTestConfig())

	full := simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x"), node("c", "x")},
		[]*graph.Link{link("a", "b", 1), link("b", "c", 1)},
	)
	sub, err := (&graph.Filter{Search: ""}).Apply(full)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	st := sim.NewState(sub)
	if len(st.links) != 2 {
		t.Fatalf("Expected both links visible, got %d", len(st.links))
	}

	// Drop node c; the b->c link must leave the force computation.
	partial := simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x")},
		[]*graph.Link{link("a", "b", 1)},
	)
	st = sim.Reseed(st, partial)
	if len(st.links) != 1 {
		t.Errorf("Expected 1 visible link after filter, got %d", len(st.links))
	}
}

func TestRun_Cancellation(t *testing.T) {
	sim, _ := NewSimulator(simTestConfig())
	st := sim.NewState(simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x")},
		[]*graph.Link{link("a", "b", 1)},
	))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := sim.Run(ctx, st, nil); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if st.Iteration >= simTestConfig().MaxIterations {
		t.Error("Cancelled run should stop before exhausting the budget")
	}
}

func TestState_PositionsSnapshot(t *testing.T) {
	sim, _ := NewSimulator(simTestConfig())
	st := sim.NewState(simTestModel(t,
		[]*graph.Node{node("a", "x"), node("b", "x")},
		[]*graph.Link{link("a", "b", 1)},
	))

	snap := st.Positions()
	orig := snap["a"]
	for i := 0; i < 10; i++ {
		sim.Step(st)
	}
	// The snapshot must be unaffected by later steps.
	if snap["a"] != orig {
		t.Error("Positions snapshot mutated by later steps")
	}
	if len(snap) != 2 {
		t.Errorf("Expected 2 entries in snapshot, got %d", len(snap))
	}
}

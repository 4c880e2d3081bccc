// Package layout computes 2D positions for a cross-reference graph with an
// iterative force simulation: inverse-square repulsion, spring attraction
// along links, centering gravity, and damped velocity integration.
//
// The simulator is a discrete-step integrator meant to be driven once per
// display tick. It runs for a bounded number of steps and does not detect
// energy convergence; for graphs in the tens of nodes the budget converges
// well before it is exhausted.
package layout

import (
	"context"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/draftwire/crossref/pkg/graph"
	"github.com/draftwire/crossref/pkg/logging"
	"github.com/draftwire/crossref/pkg/metrics"
)

// Simulator runs force-directed layout over explicit State objects.
// A single Simulator can serve many states; it holds no per-run state
// beyond its RNG.
type Simulator struct {
	cfg     Config
	logger  logging.Logger
	metrics *metrics.Registry
	rng     *rand.Rand
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger attaches a structured logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Simulator) { s.logger = l }
}

// WithMetrics attaches a metrics registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(s *Simulator) { s.metrics = r }
}

// NewSimulator validates the configuration and creates a simulator.
func NewSimulator(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulator{
		cfg:    cfg,
		logger: logging.NewNopLogger(),
		rng:    rand.New(rand.NewSource(seed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// NewState seeds a fresh simulation state from the model. Nodes are grouped
// by category; each category claims an angular sector of a circle around
// the canvas center and its nodes are scattered inside the sector with
// bounded jitter, which starts the simulation close to a legible layout.
func (s *Simulator) NewState(m *graph.Model) *State {
	nodes := m.Nodes()
	st := &State{
		byID: make(map[string]*PositionedNode, len(nodes)),
	}

	centerX := s.cfg.Width / 2
	centerY := s.cfg.Height / 2
	radius := 0.35 * math.Min(s.cfg.Width, s.cfg.Height)

	categories := make([]string, 0)
	seen := make(map[string]bool)
	for _, n := range nodes {
		if !seen[n.Category] {
			seen[n.Category] = true
			categories = append(categories, n.Category)
		}
	}
	sort.Strings(categories)

	sectorOf := make(map[string]int, len(categories))
	for i, c := range categories {
		sectorOf[c] = i
	}
	sectorWidth := 2 * math.Pi
	if len(categories) > 0 {
		sectorWidth = 2 * math.Pi / float64(len(categories))
	}

	for _, n := range nodes {
		sector := float64(sectorOf[n.Category])
		angle := sector*sectorWidth + s.rng.Float64()*sectorWidth
		r := radius * (0.7 + 0.5*s.rng.Float64())

		p := &PositionedNode{
			Node: n,
			Position: Vec{
				X: s.clampX(centerX + r*math.Cos(angle)),
				Y: s.clampY(centerY + r*math.Sin(angle)),
			},
		}
		st.nodes = append(st.nodes, p)
		st.byID[n.ID] = p
	}

	st.links = visibleLinks(m, st.byID)
	return st
}

// Reseed builds a state for a changed filter set, warm-starting from the
// previous state: surviving nodes keep their last known positions, new
// nodes get a circular seed, and the iteration counter resets. This avoids
// visual jumps when filters change.
func (s *Simulator) Reseed(prev *State, m *graph.Model) *State {
	st := s.NewState(m)
	if prev == nil {
		return st
	}
	for _, p := range st.nodes {
		if old, ok := prev.byID[p.Node.ID]; ok {
			p.Position = old.Position
			p.Velocity = old.Velocity
			p.FX = old.FX
			p.FY = old.FY
		}
	}
	return st
}

// Step advances the simulation by exactly one force-accumulation pass.
// It returns false once the iteration budget is exhausted or the state is
// empty, without touching positions.
func (s *Simulator) Step(st *State) bool {
	if len(st.nodes) == 0 || st.Iteration >= s.cfg.MaxIterations {
		return false
	}

	start := time.Now()
	s.step(st)
	st.Iteration++

	if s.metrics != nil {
		s.metrics.RecordLayoutStep(time.Since(start))
	}
	return true
}

// Run drives Step until the budget is exhausted or ctx is cancelled,
// standing in for an external animation-frame driver. observe, when
// non-nil, is called after every step with the state, giving callers the
// per-step position stream.
func (s *Simulator) Run(ctx context.Context, st *State, observe func(*State)) error {
	if len(st.nodes) == 0 {
		if s.metrics != nil {
			s.metrics.RecordLayoutRun("empty", 0, 0)
		}
		return nil
	}

	for s.Step(st) {
		if observe != nil {
			observe(st)
		}
		select {
		case <-ctx.Done():
			if s.metrics != nil {
				s.metrics.RecordLayoutRun("cancelled", len(st.nodes), st.PinnedCount())
			}
			return ctx.Err()
		default:
		}
	}

	s.logger.Debug("layout run complete",
		logging.Component("layout"),
		logging.Iteration(st.Iteration),
		logging.Count(len(st.nodes)),
	)
	if s.metrics != nil {
		s.metrics.RecordLayoutRun("completed", len(st.nodes), st.PinnedCount())
	}
	return nil
}

func (s *Simulator) step(st *State) {
	centerX := s.cfg.Width / 2
	centerY := s.cfg.Height / 2
	cutoff := 3 * s.cfg.MinDistance

	forces := make([]Vec, len(st.nodes))

	// Repulsion between nearby pairs
	for i := range st.nodes {
		for j := i + 1; j < len(st.nodes); j++ {
			dx := st.nodes[i].Position.X - st.nodes[j].Position.X
			dy := st.nodes[i].Position.Y - st.nodes[j].Position.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist > cutoff {
				continue
			}
			if dist < 1 {
				dist = 1
			}

			force := s.cfg.Repulsion / (dist * dist)
			fx := (dx / dist) * force
			fy := (dy / dist) * force

			forces[i].X += fx
			forces[i].Y += fy
			forces[j].X -= fx
			forces[j].Y -= fy
		}
	}

	// Spring attraction along links; parallel links compound linearly
	index := make(map[string]int, len(st.nodes))
	for i, p := range st.nodes {
		index[p.Node.ID] = i
	}
	for _, l := range st.links {
		i := index[l.SourceID]
		j := index[l.TargetID]

		dx := st.nodes[j].Position.X - st.nodes[i].Position.X
		dy := st.nodes[j].Position.Y - st.nodes[i].Position.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < 1 {
			continue
		}

		force := dist * s.cfg.Attraction * l.Strength
		fx := (dx / dist) * force
		fy := (dy / dist) * force

		forces[i].X += fx
		forces[i].Y += fy
		forces[j].X -= fx
		forces[j].Y -= fy
	}

	// Gravity toward center, integration, bounds
	decay := s.cfg.Damping * s.cfg.VelocityDecay
	for i, p := range st.nodes {
		if p.Pinned() {
			p.Position = Vec{X: *p.FX, Y: *p.FY}
			p.Velocity = Vec{}
			continue
		}

		forces[i].X += s.cfg.Gravity * (centerX - p.Position.X)
		forces[i].Y += s.cfg.Gravity * (centerY - p.Position.Y)

		p.Velocity.X = (p.Velocity.X + forces[i].X) * decay
		p.Velocity.Y = (p.Velocity.Y + forces[i].Y) * decay

		p.Position.X = s.clampX(p.Position.X + p.Velocity.X)
		p.Position.Y = s.clampY(p.Position.Y + p.Velocity.Y)
	}
}

func (s *Simulator) clampX(x float64) float64 {
	return math.Max(s.cfg.Margin, math.Min(s.cfg.Width-s.cfg.Margin, x))
}

func (s *Simulator) clampY(y float64) float64 {
	return math.Max(s.cfg.Margin, math.Min(s.cfg.Height-s.cfg.Margin, y))
}

// visibleLinks keeps only links whose both endpoints are in the working set.
func visibleLinks(m *graph.Model, byID map[string]*PositionedNode) []*graph.Link {
	var out []*graph.Link
	for _, l := range m.Links() {
		if _, ok := byID[l.SourceID]; !ok {
			continue
		}
		if _, ok := byID[l.TargetID]; !ok {
			continue
		}
		out = append(out, l)
	}
	return out
}

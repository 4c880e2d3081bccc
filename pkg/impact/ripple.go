package impact

import (
	"time"

	"github.com/draftwire/crossref/pkg/metrics"
)

// Ripple replay: pure presentation timing layered over an already-computed
// Analysis. No clock lives here; the caller feeds elapsed time (or frame
// ticks) in and gets the active (node, progress) pairs back. Membership is
// taken verbatim from the analysis, never re-derived from the graph.

// RippleConfig tunes the replay timing.
type RippleConfig struct {
	// HopDelay staggers cascading impacts: a node at depth d starts at
	// d * HopDelay. Direct impacts start immediately.
	HopDelay time.Duration

	// ProgressStep is the per-tick progress increment of each started
	// node's 0..1 animation.
	ProgressStep float64
}

// DefaultRippleConfig returns the standard replay timing.
func DefaultRippleConfig() RippleConfig {
	return RippleConfig{
		HopDelay:     200 * time.Millisecond,
		ProgressStep: 0.05,
	}
}

// RippleTick is one node's animation progress at a point in the replay.
type RippleTick struct {
	NodeID   string
	Progress float64 // (0,1]
}

type rippleEntry struct {
	nodeID   string
	startAt  time.Duration
	progress float64
	done     bool
}

// RippleTimeline replays an Analysis as a timed cascade. Advance it once
// per animation frame with the elapsed replay time.
type RippleTimeline struct {
	cfg     RippleConfig
	entries []rippleEntry
	metrics *metrics.Registry
}

// RippleOption configures a timeline.
type RippleOption func(*RippleTimeline)

// WithRippleMetrics records timeline builds to the registry.
func WithRippleMetrics(r *metrics.Registry) RippleOption {
	return func(t *RippleTimeline) { t.metrics = r }
}

// NewRippleTimeline schedules a replay of the analysis: every direct
// impact at delay zero, every cascading impact at depth * HopDelay.
func NewRippleTimeline(analysis *Analysis, cfg RippleConfig, opts ...RippleOption) *RippleTimeline {
	if cfg.HopDelay <= 0 {
		cfg.HopDelay = DefaultRippleConfig().HopDelay
	}
	if cfg.ProgressStep <= 0 {
		cfg.ProgressStep = DefaultRippleConfig().ProgressStep
	}

	t := &RippleTimeline{cfg: cfg}
	for _, opt := range opts {
		opt(t)
	}
	for _, d := range analysis.DirectImpacts {
		t.entries = append(t.entries, rippleEntry{nodeID: d.NodeID})
	}
	for _, c := range analysis.CascadingImpacts {
		t.entries = append(t.entries, rippleEntry{
			nodeID:  c.NodeID,
			startAt: time.Duration(c.Depth) * cfg.HopDelay,
		})
	}
	if t.metrics != nil {
		t.metrics.RecordRippleSchedule(len(t.entries))
	}
	return t
}

// Tick advances every started node's animation by one ProgressStep and
// returns the nodes still animating at the given elapsed time. Nodes that
// reach full progress are cleared and never reported again.
func (t *RippleTimeline) Tick(elapsed time.Duration) []RippleTick {
	var active []RippleTick
	for i := range t.entries {
		e := &t.entries[i]
		if e.done || elapsed < e.startAt {
			continue
		}
		e.progress += t.cfg.ProgressStep
		if e.progress >= 1 {
			e.done = true
			continue
		}
		active = append(active, RippleTick{NodeID: e.nodeID, Progress: e.progress})
	}
	return active
}

// Done reports whether every scheduled node has finished animating.
func (t *RippleTimeline) Done() bool {
	for i := range t.entries {
		if !t.entries[i].done {
			return false
		}
	}
	return true
}

// Scheduled returns how many nodes the timeline will animate.
func (t *RippleTimeline) Scheduled() int {
	return len(t.entries)
}

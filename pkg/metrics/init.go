package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crossref_graph_nodes_total",
			Help: "Number of nodes in the currently loaded graph",
		},
	)

	r.GraphLinksTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crossref_graph_links_total",
			Help: "Number of links in the currently loaded graph",
		},
	)

	r.GraphLoadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossref_graph_loads_total",
			Help: "Total number of graph load attempts",
		},
		[]string{"status"}, // ok, rejected
	)
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutStepsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crossref_layout_steps_total",
			Help: "Total number of simulation steps executed",
		},
	)

	r.LayoutStepDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossref_layout_step_duration_seconds",
			Help:    "Duration of a single force-accumulation pass",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)

	r.LayoutRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossref_layout_runs_total",
			Help: "Total number of layout runs",
		},
		[]string{"status"}, // completed, cancelled, empty
	)

	r.LayoutActiveNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crossref_layout_active_nodes",
			Help: "Nodes positioned by the most recent layout run",
		},
	)

	r.LayoutPinnedNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "crossref_layout_pinned_nodes",
			Help: "Pinned nodes in the most recent layout run",
		},
	)
}

func (r *Registry) initImpactMetrics() {
	r.ImpactQueriesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "crossref_impact_queries_total",
			Help: "Total number of impact analysis queries",
		},
		[]string{"status"}, // ok, not_found
	)

	r.ImpactQueryDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossref_impact_query_duration_seconds",
			Help:    "Duration of impact analysis queries",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
		},
	)

	r.ImpactScore = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossref_impact_score",
			Help:    "Distribution of total impact scores",
			Buckets: []float64{10, 25, 50, 75, 90, 100},
		},
	)

	r.ImpactNodesReported = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossref_impact_nodes_reported",
			Help:    "Direct plus cascading nodes per impact report",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)

	r.RippleSchedulesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "crossref_ripple_schedules_total",
			Help: "Total number of ripple timelines built",
		},
	)

	r.RippleNodesScheduled = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "crossref_ripple_nodes_scheduled",
			Help:    "Nodes scheduled per ripple timeline",
			Buckets: []float64{1, 5, 10, 25, 50, 100},
		},
	)
}

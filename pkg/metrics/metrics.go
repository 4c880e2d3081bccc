// Package metrics exposes Prometheus metrics for the layout and impact
// engines. The registry is optional everywhere it is accepted; engines run
// unchanged without one.
package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the engine
type Registry struct {
	// Graph metrics
	GraphNodesTotal prometheus.Gauge
	GraphLinksTotal prometheus.Gauge
	GraphLoadsTotal *prometheus.CounterVec

	// Layout metrics
	LayoutStepsTotal   prometheus.Counter
	LayoutStepDuration prometheus.Histogram
	LayoutRunsTotal    *prometheus.CounterVec
	LayoutActiveNodes  prometheus.Gauge
	LayoutPinnedNodes  prometheus.Gauge

	// Impact metrics
	ImpactQueriesTotal  *prometheus.CounterVec
	ImpactQueryDuration prometheus.Histogram
	ImpactScore         prometheus.Histogram
	ImpactNodesReported prometheus.Histogram

	// Ripple metrics
	RippleSchedulesTotal prometheus.Counter
	RippleNodesScheduled prometheus.Histogram

	registry *prometheus.Registry
}

var (
	defaultRegistry *Registry
	defaultOnce     sync.Once
)

// NewRegistry creates a new metrics registry with all metrics registered
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}
	r.initGraphMetrics()
	r.initLayoutMetrics()
	r.initImpactMetrics()
	return r
}

// DefaultRegistry returns the process-wide default registry
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// PrometheusRegistry returns the underlying prometheus registry for
// exposition handlers.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordGraphLoad records a graph load with its outcome
func (r *Registry) RecordGraphLoad(status string, nodes, links int) {
	r.GraphLoadsTotal.WithLabelValues(status).Inc()
	if status == "ok" {
		r.GraphNodesTotal.Set(float64(nodes))
		r.GraphLinksTotal.Set(float64(links))
	}
}

// RecordLayoutStep records one force-accumulation pass
func (r *Registry) RecordLayoutStep(duration time.Duration) {
	r.LayoutStepsTotal.Inc()
	r.LayoutStepDuration.Observe(duration.Seconds())
}

// RecordLayoutRun records a completed or cancelled layout run
func (r *Registry) RecordLayoutRun(status string, activeNodes, pinnedNodes int) {
	r.LayoutRunsTotal.WithLabelValues(status).Inc()
	r.LayoutActiveNodes.Set(float64(activeNodes))
	r.LayoutPinnedNodes.Set(float64(pinnedNodes))
}

// RecordImpactQuery records an impact analysis call
func (r *Registry) RecordImpactQuery(status string, duration time.Duration, score float64, reported int) {
	r.ImpactQueriesTotal.WithLabelValues(status).Inc()
	r.ImpactQueryDuration.Observe(duration.Seconds())
	if status == "ok" {
		r.ImpactScore.Observe(score)
		r.ImpactNodesReported.Observe(float64(reported))
	}
}

// RecordRippleSchedule records a ripple timeline build
func (r *Registry) RecordRippleSchedule(nodes int) {
	r.RippleSchedulesTotal.Inc()
	r.RippleNodesScheduled.Observe(float64(nodes))
}

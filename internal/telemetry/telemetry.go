// SPDX-License-Identifier: MIT

// Package telemetry exposes Prometheus metrics for matching runs on a
// private registry and dumps them in the text exposition format.
package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/katalvlaran/lvmatch/matching"
)

// Namespace prefixes every metric name.
const Namespace = "lvmatch"

// Solve outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Metrics is the set of collectors fed by one or more solves.
type Metrics struct {
	registry *prometheus.Registry

	Phases          prometheus.Counter
	Relaxations     prometheus.Counter
	Augmentations   prometheus.Counter
	RelaxationDelta prometheus.Histogram
	SolvesTotal     *prometheus.CounterVec
	SolveDuration   prometheus.Histogram
	MatchingWeight  prometheus.Gauge
	InstanceSize    *prometheus.GaugeVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		Phases: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "phases_total",
			Help:      "Total number of BFS/DFS/relax phases run",
		}),
		Relaxations: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "relaxations_total",
			Help:      "Total number of phases that shifted potentials",
		}),
		Augmentations: f.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "augmentations_total",
			Help:      "Total number of augmenting paths committed",
		}),
		RelaxationDelta: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "relaxation_delta",
			Help:      "Potential shift applied per relaxation",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		SolvesTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "solves_total",
			Help:      "Total number of solves by outcome",
		}, []string{"status"}),
		SolveDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "solve_duration_seconds",
			Help:      "Wall time of a solve",
			Buckets:   []float64{.0001, .001, .01, .05, .1, .5, 1, 5, 10, 60},
		}),
		MatchingWeight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "matching_weight",
			Help:      "Weight of the last matching found",
		}),
		InstanceSize: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "instance_vertices",
			Help:      "Vertex count of the last instance per side",
		}, []string{"side"}),
	}
}

// Registry returns the private registry, e.g. for testutil or an HTTP handler.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Hooks returns engine options that feed the phase, relaxation and
// augmentation collectors.
func (m *Metrics) Hooks() []matching.Option {
	return []matching.Option{
		matching.WithOnPhase(func(matching.PhaseInfo) { m.Phases.Inc() }),
		matching.WithOnRelax(func(r matching.RelaxInfo) {
			m.Relaxations.Inc()
			m.RelaxationDelta.Observe(float64(r.Delta))
		}),
		matching.WithOnAugment(func(int, int) { m.Augmentations.Inc() }),
	}
}

// ObserveInstance records the shape of the instance about to be solved.
func (m *Metrics) ObserveInstance(rows, cols int) {
	m.InstanceSize.WithLabelValues("left").Set(float64(rows))
	m.InstanceSize.WithLabelValues("right").Set(float64(cols))
}

// ObserveSolve records the outcome of one solve. weight is ignored on error.
func (m *Metrics) ObserveSolve(elapsed time.Duration, weight int64, err error) {
	m.SolveDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.SolvesTotal.WithLabelValues(StatusError).Inc()
		return
	}
	m.SolvesTotal.WithLabelValues(StatusOK).Inc()
	m.MatchingWeight.Set(float64(weight))
}

// WriteText gathers the registry and writes every family in the Prometheus
// text format.
func (m *Metrics) WriteText(w io.Writer) error {
	families, err := m.registry.Gather()
	if err != nil {
		return fmt.Errorf("telemetry: gather: %w", err)
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("telemetry: encode %s: %w", mf.GetName(), err)
		}
	}

	return nil
}

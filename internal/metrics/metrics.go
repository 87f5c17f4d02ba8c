// Package metrics instruments parsing and reasoning runs with Prometheus
// collectors on a private registry.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/geoknoesis/rdfs-go/rdf"
)

const namespace = "rdfq"

// Recorder collects run metrics. It implements rdf.ReasonObserver.
type Recorder struct {
	registry   *prometheus.Registry
	levels     prometheus.Counter
	produced   prometheus.Counter
	fired      *prometheus.CounterVec
	workingSet prometheus.Gauge
	facts      *prometheus.GaugeVec
	duration   *prometheus.HistogramVec
}

// NewRecorder registers a fresh set of collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		levels: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reasoner",
			Name:      "levels_total",
			Help:      "Inference levels evaluated.",
		}),
		produced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reasoner",
			Name:      "produced_triples_total",
			Help:      "Triples emitted by rules, duplicates included.",
		}),
		fired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "reasoner",
			Name:      "rule_firings_total",
			Help:      "Guard matches per rule.",
		}, []string{"rule"}),
		workingSet: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "reasoner",
			Name:      "working_set_triples",
			Help:      "Facts the last level drew its inputs from.",
		}),
		facts: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "triples",
			Help:      "Facts per origin in the last run.",
		}, []string{"origin"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Wall time per pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"stage"}),
	}
	r.registry.MustRegister(r.levels, r.produced, r.fired, r.workingSet, r.facts, r.duration)
	return r
}

// ObserveLevel records one completed inference level.
func (r *Recorder) ObserveLevel(stats rdf.LevelStats) {
	r.levels.Inc()
	r.produced.Add(float64(stats.Produced))
	r.workingSet.Set(float64(stats.WorkingSet))
	for rule, n := range stats.Fired {
		r.fired.WithLabelValues(rule).Add(float64(n))
	}
}

// SetFacts records how many facts were loaded and inferred.
func (r *Recorder) SetFacts(loaded, inferred int) {
	r.facts.WithLabelValues("loaded").Set(float64(loaded))
	r.facts.WithLabelValues("inferred").Set(float64(inferred))
}

// ObserveStage records the duration of a named stage such as "parse".
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	r.duration.WithLabelValues(stage).Observe(d.Seconds())
}

// Time runs fn and records its duration under stage.
func (r *Recorder) Time(stage string, fn func() error) error {
	start := time.Now()
	err := fn()
	r.ObserveStage(stage, time.Since(start))
	return err
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// WriteText writes every metric in the Prometheus text exposition format.
func (r *Recorder) WriteText(w io.Writer) error {
	families, err := r.registry.Gather()
	if err != nil {
		return fmt.Errorf("metrics: gather: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metrics: write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}

var _ rdf.ReasonObserver = (*Recorder)(nil)

// Package metrics exposes Prometheus instrumentation for planning runs.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the planning metrics. A nil *Recorder records nothing.
type Recorder struct {
	runs                 *prometheus.CounterVec
	itemsScored          prometheus.Counter
	contributorsAssigned *prometheus.CounterVec
	itemsUnstaffed       *prometheus.CounterVec
	poolExhausted        prometheus.Counter
	urgency              prometheus.Histogram
	planDuration         prometheus.Histogram
}

type options struct {
	namespace string
	registry  prometheus.Registerer
}

// Option configures a Recorder.
type Option func(*options)

// WithNamespace sets the metric namespace. Defaults to "roadmap".
func WithNamespace(namespace string) Option {
	return func(o *options) {
		if namespace != "" {
			o.namespace = namespace
		}
	}
}

// WithRegistry registers metrics somewhere other than the default registry.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(o *options) {
		if reg != nil {
			o.registry = reg
		}
	}
}

// UrgencyBuckets split [0, 1] into tenths.
var UrgencyBuckets = prometheus.LinearBuckets(0.1, 0.1, 10)

func NewRecorder(opts ...Option) *Recorder {
	o := options{namespace: "roadmap", registry: prometheus.DefaultRegisterer}
	for _, opt := range opts {
		opt(&o)
	}
	factory := promauto.With(o.registry)

	return &Recorder{
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "runs_total",
			Help:      "Planning runs completed, by source.",
		}, []string{"source"}),
		itemsScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "items_scored_total",
			Help:      "Roadmap items scored for urgency.",
		}),
		contributorsAssigned: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "contributors_assigned_total",
			Help:      "Contributors assigned to roadmap items, by urgency tier.",
		}, []string{"tier"}),
		itemsUnstaffed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "items_unstaffed_total",
			Help:      "Roadmap items left without contributors, by urgency tier.",
		}, []string{"tier"}),
		poolExhausted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: o.namespace,
			Name:      "pool_exhausted_total",
			Help:      "Runs whose contributor pool ran out before every item was staffed.",
		}),
		urgency: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "item_urgency",
			Help:      "Distribution of computed item urgency.",
			Buckets:   UrgencyBuckets,
		}),
		planDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: o.namespace,
			Name:      "plan_duration_seconds",
			Help:      "Time spent scoring and allocating a run.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

func (r *Recorder) ItemScored(urgency float64) {
	if r == nil {
		return
	}
	r.itemsScored.Inc()
	r.urgency.Observe(urgency)
}

func (r *Recorder) ItemStaffed(tier string, contributors int) {
	if r == nil {
		return
	}
	if contributors == 0 {
		r.itemsUnstaffed.WithLabelValues(tier).Inc()
		return
	}
	r.contributorsAssigned.WithLabelValues(tier).Add(float64(contributors))
}

func (r *Recorder) PoolExhausted() {
	if r == nil {
		return
	}
	r.poolExhausted.Inc()
}

func (r *Recorder) RunCompleted(source string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.runs.WithLabelValues(source).Inc()
	r.planDuration.Observe(elapsed.Seconds())
}

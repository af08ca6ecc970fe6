package interpreter

import "github.com/prometheus/client_golang/prometheus"

// metrics holds the interpreter's prometheus instrumentation, grounded on
// the teacher's convention of registering a handful of domain gauges and
// counters per plugin instance rather than reaching for a framework.
type metrics struct {
	regionCount    prometheus.Gauge
	pruneCount     prometheus.Counter
	conflictCount  prometheus.Counter
	batchSize      prometheus.Histogram
	stableValueAge prometheus.GaugeFunc
}

// newMetrics builds the interpreter's instrumentation. ageSeconds is
// sampled at scrape time by stableValueAge rather than Set from the
// processing loop, since "seconds since the last publish" is a function of
// wall-clock time passing, not an event to push on.
func newMetrics(reg prometheus.Registerer, sourceID string, ageSeconds func() float64) *metrics {
	labels := prometheus.Labels{"source_id": sourceID}

	m := &metrics{
		regionCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "synchro",
			Name:        "history_region_count",
			Help:        "Number of live regions currently held in history.",
			ConstLabels: labels,
		}),
		pruneCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "synchro",
			Name:        "history_pruned_regions_total",
			Help:        "Total number of regions dropped by the prune policy.",
			ConstLabels: labels,
		}),
		conflictCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "synchro",
			Name:        "evaluator_conflicts_total",
			Help:        "Total number of evaluation cycles that ended in a ConflictError.",
			ConstLabels: labels,
		}),
		batchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "synchro",
			Name:        "interpreter_batch_size",
			Help:        "Number of observations drained per processing cycle.",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(1, 2, 8),
		}),
		stableValueAge: prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace:   "synchro",
			Name:        "stable_value_age_seconds",
			Help:        "Seconds since the stable value was last published.",
			ConstLabels: labels,
		}, ageSeconds),
	}

	if reg != nil {
		reg.MustRegister(m.regionCount, m.pruneCount, m.conflictCount, m.batchSize, m.stableValueAge)
	}
	return m
}

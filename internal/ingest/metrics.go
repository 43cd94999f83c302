package ingest

import (
	"time"

	"github.com/AldoHdz97/Portfolio-02/internal/models"
	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics exports ingestion run counters to Prometheus. Register one
// instance per process; tests use their own registry.
type RunMetrics struct {
	runsTotal          prometheus.Counter
	runErrors          prometheus.Counter
	runDuration        prometheus.Histogram
	recordsRead        *prometheus.CounterVec
	recordsKept        *prometheus.CounterVec
	recordsDropped     *prometheus.CounterVec
	completeCampuses   prometheus.Gauge
	incompleteCampuses prometheus.Gauge
}

// NewRunMetrics creates and registers the ingestion metrics.
func NewRunMetrics(reg prometheus.Registerer) *RunMetrics {
	m := &RunMetrics{
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "runs_total",
			Help:      "Total number of ingestion runs.",
		}),
		runErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "run_errors_total",
			Help:      "Total number of failed ingestion runs.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "run_duration_seconds",
			Help:      "Duration of ingestion runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		recordsRead: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "records_read_total",
			Help:      "Records read from the source exports, per pipeline.",
		}, []string{"pipeline"}),
		recordsKept: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "records_kept_total",
			Help:      "Records kept in the output artifacts, per pipeline.",
		}, []string{"pipeline"}),
		recordsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "records_dropped_total",
			Help:      "Records dropped during selection, per pipeline.",
		}, []string{"pipeline"}),
		completeCampuses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "complete_campuses",
			Help:      "Campuses with complete data in the last run.",
		}),
		incompleteCampuses: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "campus",
			Subsystem: "ingest",
			Name:      "incomplete_campuses",
			Help:      "Campuses with incomplete data in the last run.",
		}),
	}

	reg.MustRegister(
		m.runsTotal,
		m.runErrors,
		m.runDuration,
		m.recordsRead,
		m.recordsKept,
		m.recordsDropped,
		m.completeCampuses,
		m.incompleteCampuses,
	)

	return m
}

func (m *RunMetrics) observeCounts(pipeline string, counts models.PipelineCounts) {
	m.recordsRead.WithLabelValues(pipeline).Add(float64(counts.Read))
	m.recordsKept.WithLabelValues(pipeline).Add(float64(counts.Kept))
	m.recordsDropped.WithLabelValues(pipeline).Add(float64(counts.Dropped))
}

func (m *RunMetrics) observeRun(duration time.Duration, failed bool) {
	m.runsTotal.Inc()
	m.runDuration.Observe(duration.Seconds())
	if failed {
		m.runErrors.Inc()
	}
}

func (m *RunMetrics) observeValidation(complete, incomplete int) {
	m.completeCampuses.Set(float64(complete))
	m.incompleteCampuses.Set(float64(incomplete))
}

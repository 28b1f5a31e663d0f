package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the policyholder module.
// Tracks record lifecycle counts and settlement outcomes.
type Metrics struct {
	RecordsCreated       prometheus.Counter
	RecordsDeleted       prometheus.Counter
	ObligationViolations prometheus.Counter
	IncidentsReported    prometheus.Counter
	IncidentsResolved    prometheus.Counter
	InvokeDuration       *prometheus.HistogramVec
}

// New creates a Metrics instance with all policyholder metrics registered.
func New() *Metrics {
	return &Metrics{
		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cyberins_policyholders_created_total",
			Help: "Total number of policyholder records created",
		}),
		RecordsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cyberins_policyholders_deleted_total",
			Help: "Total number of policyholder records deleted",
		}),
		ObligationViolations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cyberins_obligation_violations_total",
			Help: "Total number of detected obligation violations",
		}),
		IncidentsReported: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cyberins_incidents_reported_total",
			Help: "Total number of incidents reported",
		}),
		IncidentsResolved: promauto.NewCounter(prometheus.CounterOpts{
			Name: "cyberins_incidents_resolved_total",
			Help: "Total number of incidents resolved",
		}),
		InvokeDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "cyberins_invoke_duration_seconds",
			Help:    "Duration of named ledger operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// ObserveInvoke records the duration of one named operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveInvoke(operation string, start time.Time) {
	m.InvokeDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

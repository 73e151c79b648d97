package factcheck

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RAraghavarora/lisdf/metric"
)

// checkMetrics holds Prometheus metrics for the fact validation processor.
type checkMetrics struct {
	factsTotal *prometheus.CounterVec // By component and status (accepted/rejected/error)
	accepted   *prometheus.CounterVec // By component
	rejected   *prometheus.CounterVec // By component
	errors     *prometheus.CounterVec // By component and error_type

	checkDuration *prometheus.HistogramVec // By component

	acceptRate prometheus.Gauge // accepted / total
}

// newCheckMetrics creates and registers factcheck metrics with the registry.
func newCheckMetrics(registry *metric.MetricsRegistry, componentName string) (*checkMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &checkMetrics{
		factsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "factcheck",
			Name:      "facts_total",
			Help:      "Total number of facts checked",
		}, []string{"component", "status"}), // status: accepted, rejected, error

		accepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "factcheck",
			Name:      "accepted_total",
			Help:      "Total number of facts that passed validation",
		}, []string{"component"}),

		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "factcheck",
			Name:      "rejected_total",
			Help:      "Total number of facts that failed validation",
		}, []string{"component"}),

		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "factcheck",
			Name:      "errors_total",
			Help:      "Total number of processing errors",
		}, []string{"component", "error_type"}), // error_type: parse, payload, marshal, publish

		checkDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lisdf",
			Subsystem: "factcheck",
			Name:      "check_duration_seconds",
			Help:      "Fact validation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}, []string{"component"}),

		acceptRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lisdf",
			Subsystem: "factcheck",
			Name:      "accept_rate",
			Help:      "Current accept rate (accepted / total facts)",
		}),
	}

	if err := registry.Register("factcheck", "facts_total", m.factsTotal); err != nil {
		return nil, err
	}
	if err := registry.Register("factcheck", "accepted", m.accepted); err != nil {
		return nil, err
	}
	if err := registry.Register("factcheck", "rejected", m.rejected); err != nil {
		return nil, err
	}
	if err := registry.Register("factcheck", "errors", m.errors); err != nil {
		return nil, err
	}
	if err := registry.Register("factcheck", "check_duration", m.checkDuration); err != nil {
		return nil, err
	}
	if err := registry.Register("factcheck", "accept_rate", m.acceptRate); err != nil {
		return nil, err
	}

	return m, nil
}

// recordValidation records one validation outcome.
func (m *checkMetrics) recordValidation(componentName string, accepted bool, duration time.Duration) {
	if m == nil {
		return
	}

	status := "rejected"
	if accepted {
		status = "accepted"
		m.accepted.WithLabelValues(componentName).Inc()
	} else {
		m.rejected.WithLabelValues(componentName).Inc()
	}

	m.factsTotal.WithLabelValues(componentName, status).Inc()
	m.checkDuration.WithLabelValues(componentName).Observe(duration.Seconds())
}

// recordError records a processing error.
func (m *checkMetrics) recordError(componentName, errorType string) {
	if m == nil {
		return
	}

	m.errors.WithLabelValues(componentName, errorType).Inc()
	m.factsTotal.WithLabelValues(componentName, "error").Inc()
}

// updateAcceptRate updates the accept rate gauge.
func (m *checkMetrics) updateAcceptRate(accepted, total int64) {
	if m == nil || total == 0 {
		return
	}

	m.acceptRate.Set(float64(accepted) / float64(total))
}

package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains the platform-level metrics for the fact pipeline.
type Metrics struct {
	// Pipeline metrics
	ServiceStatus      *prometheus.GaugeVec
	FactsReceived      *prometheus.CounterVec
	FactsValidated     *prometheus.CounterVec
	ResultsPublished   *prometheus.CounterVec
	ValidationDuration *prometheus.HistogramVec
	ErrorsTotal        *prometheus.CounterVec
	HealthCheckStatus  *prometheus.GaugeVec

	// Schema metrics
	SchemaTypes      prometheus.Gauge
	SchemaPredicates prometheus.Gauge

	// NATS metrics
	NATSConnected      prometheus.Gauge
	NATSRTT            prometheus.Gauge
	NATSReconnects     prometheus.Counter
	NATSCircuitBreaker prometheus.Gauge
}

// NewMetrics creates a new Metrics instance with all platform metrics
func NewMetrics() *Metrics {
	return &Metrics{
		ServiceStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "service",
				Name:      "status",
				Help:      "Service status (0=stopped, 1=starting, 2=running, 3=stopping, 4=failed)",
			},
			[]string{"service"},
		),

		FactsReceived: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lisdf",
				Subsystem: "facts",
				Name:      "received_total",
				Help:      "Total number of facts received for validation",
			},
			[]string{"service", "predicate"},
		),

		FactsValidated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lisdf",
				Subsystem: "facts",
				Name:      "validated_total",
				Help:      "Total number of facts validated, by outcome",
			},
			[]string{"service", "status", "variant"},
		),

		ResultsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lisdf",
				Subsystem: "results",
				Name:      "published_total",
				Help:      "Total number of validation results published",
			},
			[]string{"service", "subject"},
		),

		ValidationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "lisdf",
				Subsystem: "validation",
				Name:      "duration_seconds",
				Help:      "Fact validation duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"service", "operation"},
		),

		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "lisdf",
				Subsystem: "errors",
				Name:      "total",
				Help:      "Total number of errors",
			},
			[]string{"service", "type"},
		),

		HealthCheckStatus: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "health",
				Name:      "status",
				Help:      "Health check status (0=unhealthy, 1=healthy)",
			},
			[]string{"service"},
		),

		SchemaTypes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "schema",
				Name:      "types",
				Help:      "Number of types in the loaded schema",
			},
		),

		SchemaPredicates: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "schema",
				Name:      "predicates",
				Help:      "Number of predicate signatures in the loaded schema",
			},
		),

		NATSConnected: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "nats",
				Name:      "connected",
				Help:      "NATS connection status (0=disconnected, 1=connected)",
			},
		),

		NATSRTT: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "nats",
				Name:      "rtt_milliseconds",
				Help:      "NATS round-trip time in milliseconds",
			},
		),

		NATSReconnects: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "lisdf",
				Subsystem: "nats",
				Name:      "reconnects_total",
				Help:      "Total number of NATS reconnections",
			},
		),

		NATSCircuitBreaker: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "lisdf",
				Subsystem: "nats",
				Name:      "circuit_breaker",
				Help:      "NATS circuit breaker status (0=closed, 1=open)",
			},
		),
	}
}

// RecordServiceStatus updates service status metric
func (c *Metrics) RecordServiceStatus(service string, status int) {
	c.ServiceStatus.WithLabelValues(service).Set(float64(status))
}

// RecordFactReceived increments the received fact counter
func (c *Metrics) RecordFactReceived(service, predicate string) {
	c.FactsReceived.WithLabelValues(service, predicate).Inc()
}

// RecordFactValidated increments the validated fact counter. Variant is
// empty for accepted facts and names the rejection class otherwise.
func (c *Metrics) RecordFactValidated(service, status, variant string) {
	c.FactsValidated.WithLabelValues(service, status, variant).Inc()
}

// RecordResultPublished increments the published result counter
func (c *Metrics) RecordResultPublished(service, subject string) {
	c.ResultsPublished.WithLabelValues(service, subject).Inc()
}

// RecordValidationDuration records validation time
func (c *Metrics) RecordValidationDuration(service, operation string, duration time.Duration) {
	c.ValidationDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
}

// RecordError increments error counter
func (c *Metrics) RecordError(service, errorType string) {
	c.ErrorsTotal.WithLabelValues(service, errorType).Inc()
}

// RecordHealthStatus updates health check status
func (c *Metrics) RecordHealthStatus(service string, healthy bool) {
	value := 0.0
	if healthy {
		value = 1.0
	}
	c.HealthCheckStatus.WithLabelValues(service).Set(value)
}

// RecordSchemaSize updates the loaded schema gauges
func (c *Metrics) RecordSchemaSize(types, predicates int) {
	c.SchemaTypes.Set(float64(types))
	c.SchemaPredicates.Set(float64(predicates))
}

// RecordNATSStatus updates NATS connection status
func (c *Metrics) RecordNATSStatus(connected bool) {
	value := 0.0
	if connected {
		value = 1.0
	}
	c.NATSConnected.Set(value)
}

// RecordNATSRTT updates NATS round-trip time
func (c *Metrics) RecordNATSRTT(rtt time.Duration) {
	c.NATSRTT.Set(float64(rtt.Milliseconds()))
}

// RecordNATSReconnect increments reconnection counter
func (c *Metrics) RecordNATSReconnect() {
	c.NATSReconnects.Inc()
}

// RecordCircuitBreakerState updates circuit breaker status
func (c *Metrics) RecordCircuitBreakerState(state int) {
	c.NATSCircuitBreaker.Set(float64(state))
}

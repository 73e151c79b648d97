// Package metric provides Prometheus instrumentation for the fact
// pipeline under the "lisdf" namespace.
//
// Metrics holds the core collectors: fact throughput by predicate,
// validation outcomes by status and rejection variant, validation
// latency, schema size, and NATS connection health. MetricsRegistry
// wraps a dedicated Prometheus registry so components can register
// their own collectors without colliding, and Server exposes the
// registry over HTTP for scraping.
//
// Typical wiring:
//
//	registry := metric.NewMetricsRegistry()
//	registry.CoreMetrics().RecordFactValidated("factcheck", "accepted", "")
//
//	srv := metric.NewServer(":9090", "/metrics", registry)
//	go srv.Start()
package metric

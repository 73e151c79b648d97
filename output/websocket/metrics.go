package websocket

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/RAraghavarora/lisdf/metric"
)

// wsMetrics holds Prometheus metrics for the WebSocket output.
type wsMetrics struct {
	messagesReceived  *prometheus.CounterVec // By subject
	messagesSent      *prometheus.CounterVec // By subject
	bytesSent         prometheus.Counter
	clientsConnected  prometheus.Gauge
	connectionsTotal  prometheus.Counter
	disconnectsTotal  prometheus.Counter
	broadcastDuration *prometheus.HistogramVec // By subject
	errorsTotal       *prometheus.CounterVec   // By error_type
}

// newWSMetrics creates and registers WebSocket output metrics.
func newWSMetrics(registry *metric.MetricsRegistry) (*wsMetrics, error) {
	if registry == nil {
		return nil, nil // Metrics disabled
	}

	m := &wsMetrics{
		messagesReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "messages_received_total",
			Help:      "Total validation results received from NATS",
		}, []string{"subject"}),

		messagesSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "messages_sent_total",
			Help:      "Total frames sent to WebSocket clients",
		}, []string{"subject"}),

		bytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "bytes_sent_total",
			Help:      "Total bytes sent to WebSocket clients",
		}),

		clientsConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "clients_connected",
			Help:      "Number of currently connected clients",
		}),

		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "client_connections_total",
			Help:      "Total client connections accepted",
		}),

		disconnectsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "client_disconnections_total",
			Help:      "Total client disconnections",
		}),

		broadcastDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "broadcast_duration_seconds",
			Help:      "Time to broadcast one result to all clients",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
		}, []string{"subject"}),

		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "lisdf",
			Subsystem: "websocket",
			Name:      "errors_total",
			Help:      "WebSocket server errors",
		}, []string{"error_type"}), // error_type: listen, upgrade, marshal, client_send
	}

	if err := registry.Register("websocket", "messages_received", m.messagesReceived); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "messages_sent", m.messagesSent); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "bytes_sent", m.bytesSent); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "clients_connected", m.clientsConnected); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "connections_total", m.connectionsTotal); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "disconnections_total", m.disconnectsTotal); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "broadcast_duration", m.broadcastDuration); err != nil {
		return nil, err
	}
	if err := registry.Register("websocket", "errors", m.errorsTotal); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *wsMetrics) recordReceived(subject string) {
	if m == nil {
		return
	}
	m.messagesReceived.WithLabelValues(subject).Inc()
}

func (m *wsMetrics) recordSent(subject string, bytes int) {
	if m == nil {
		return
	}
	m.messagesSent.WithLabelValues(subject).Inc()
	m.bytesSent.Add(float64(bytes))
}

func (m *wsMetrics) recordConnect(connected int) {
	if m == nil {
		return
	}
	m.connectionsTotal.Inc()
	m.clientsConnected.Set(float64(connected))
}

func (m *wsMetrics) recordDisconnect(connected int) {
	if m == nil {
		return
	}
	m.disconnectsTotal.Inc()
	m.clientsConnected.Set(float64(connected))
}

func (m *wsMetrics) recordBroadcast(subject string, duration time.Duration) {
	if m == nil {
		return
	}
	m.broadcastDuration.WithLabelValues(subject).Observe(duration.Seconds())
}

func (m *wsMetrics) recordError(errorType string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(errorType).Inc()
}

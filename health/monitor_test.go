package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/component"
)

// stubComponent is a Discoverable with scripted health and flow numbers.
type stubComponent struct {
	health component.HealthStatus
	flow   component.FlowMetrics
}

func (s *stubComponent) Meta() component.Metadata {
	return component.Metadata{Name: "stub", Type: "processor"}
}
func (s *stubComponent) InputPorts() []component.Port         { return nil }
func (s *stubComponent) OutputPorts() []component.Port        { return nil }
func (s *stubComponent) ConfigSchema() component.ConfigSchema { return component.ConfigSchema{} }
func (s *stubComponent) Health() component.HealthStatus       { return s.health }
func (s *stubComponent) DataFlow() component.FlowMetrics      { return s.flow }

func runningStub() *stubComponent {
	return &stubComponent{
		health: component.HealthStatus{Healthy: true, Uptime: time.Hour},
		flow: component.FlowMetrics{
			MessagesPerSecond: 12.5,
			ErrorRate:         0.01,
			LastActivity:      time.Now(),
		},
	}
}

func TestMonitor_ObserveHealthy(t *testing.T) {
	m := NewMonitor()
	m.Watch("factcheck", runningStub())

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsHealthy())

	status, exists := m.Get("factcheck")
	require.True(t, exists)
	assert.True(t, status.IsHealthy())
	assert.Equal(t, "factcheck", status.Component)
	require.NotNil(t, status.Metrics)
	assert.Equal(t, time.Hour, status.Metrics.Uptime)
	assert.Equal(t, 12.5, status.Metrics.FactRate)
	assert.Equal(t, 0.01, status.Metrics.ErrorRate)
}

func TestMonitor_ObserveStopped(t *testing.T) {
	stub := runningStub()
	stub.health.Healthy = false
	stub.health.ErrorCount = 3
	stub.health.LastError = "connect to nats://10.0.0.5:4222 failed"

	m := NewMonitor()
	m.Watch("factcheck", stub)

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsUnhealthy())

	status, exists := m.Get("factcheck")
	require.True(t, exists)
	assert.True(t, status.IsUnhealthy())
	require.NotNil(t, status.Metrics)
	assert.Equal(t, 3, status.Metrics.ErrorCount)

	// URL and address details are sanitized out of the message.
	assert.NotContains(t, status.Message, "10.0.0.5")
	assert.NotContains(t, status.Message, "nats://")
}

func TestMonitor_ObserveErrorRate(t *testing.T) {
	stub := runningStub()
	stub.flow.ErrorRate = 0.75

	m := NewMonitor()
	m.Watch("factcheck", stub)

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsDegraded())

	status, _ := m.Get("factcheck")
	assert.True(t, status.IsDegraded())
	assert.Contains(t, status.Message, "error rate")
}

func TestMonitor_ObserveStaleActivity(t *testing.T) {
	stub := runningStub()
	stub.flow.LastActivity = time.Now().Add(-time.Hour)

	m := NewMonitor(WithStaleThreshold(time.Minute))
	m.Watch("factcheck", stub)

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsDegraded())
}

// A component that never saw traffic is idle, not stale.
func TestMonitor_NoActivityIsNotStale(t *testing.T) {
	stub := runningStub()
	stub.flow.LastActivity = time.Time{}

	m := NewMonitor(WithStaleThreshold(time.Minute))
	m.Watch("factcheck", stub)

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsHealthy())
}

func TestMonitor_ErrorRateThresholdOption(t *testing.T) {
	stub := runningStub()
	stub.flow.ErrorRate = 0.2

	m := NewMonitor(WithErrorRateThreshold(0.1))
	m.Watch("factcheck", stub)

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsDegraded())
}

func TestMonitor_UpdateAndGet(t *testing.T) {
	m := NewMonitor()

	m.Update("nats", NewHealthy("nats", "connected"))

	status, exists := m.Get("nats")
	require.True(t, exists)
	assert.True(t, status.IsHealthy())
	assert.Equal(t, "nats", status.Component)
	assert.False(t, status.Timestamp.IsZero())

	_, exists = m.Get("nope")
	assert.False(t, exists)
}

func TestMonitor_UpdateOverridesComponentName(t *testing.T) {
	m := NewMonitor()

	// The name passed to Update wins over the one inside the status.
	m.Update("gateway", NewHealthy("something-else", "ok"))

	status, exists := m.Get("gateway")
	require.True(t, exists)
	assert.Equal(t, "gateway", status.Component)
}

// Statuses set with Update survive alongside observed ones and feed into
// the same aggregate.
func TestMonitor_ObserveMergesWithUpdated(t *testing.T) {
	m := NewMonitor()
	m.Watch("factcheck", runningStub())
	m.Update("nats", NewUnhealthy("nats", "connection lost"))

	agg := m.ObserveAll("lisdf")
	assert.True(t, agg.IsUnhealthy())
	assert.Len(t, agg.SubStatuses, 2)
}

func TestMonitor_Aggregate(t *testing.T) {
	tests := []struct {
		name     string
		statuses map[string]Status
		expected string
	}{
		{
			name:     "empty is healthy",
			statuses: nil,
			expected: "healthy",
		},
		{
			name: "all healthy",
			statuses: map[string]Status{
				"factcheck": NewHealthy("factcheck", "ok"),
				"websocket": NewHealthy("websocket", "ok"),
			},
			expected: "healthy",
		},
		{
			name: "one degraded",
			statuses: map[string]Status{
				"factcheck": NewHealthy("factcheck", "ok"),
				"websocket": NewDegraded("websocket", "slow clients"),
			},
			expected: "degraded",
		},
		{
			name: "unhealthy wins over degraded",
			statuses: map[string]Status{
				"factcheck": NewUnhealthy("factcheck", "NATS down"),
				"websocket": NewDegraded("websocket", "slow clients"),
			},
			expected: "unhealthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMonitor()
			for name, status := range tt.statuses {
				m.Update(name, status)
			}

			agg := m.AggregateHealth("lisdf")
			assert.Equal(t, tt.expected, agg.Status)
			assert.Len(t, agg.SubStatuses, len(tt.statuses))
		})
	}
}

func TestMonitor_GetAllIsACopy(t *testing.T) {
	m := NewMonitor()
	m.Update("a", NewHealthy("a", "ok"))

	all := m.GetAll()
	delete(all, "a")

	_, exists := m.Get("a")
	assert.True(t, exists)
}

func TestSanitizeErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		excludes []string
	}{
		{"http url", "GET https://internal.example.com/v1 failed", []string{"internal.example.com"}},
		{"unix path", "open /etc/lisdf/config.json failed", []string{"/etc/lisdf"}},
		{"ip and port", "dial 192.168.1.100:4222 refused", []string{"192.168.1.100", ":4222"}},
		{"credential", "auth failed: password=hunter2", []string{"hunter2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := sanitizeErrorMessage(tt.input)
			for _, excluded := range tt.excludes {
				assert.NotContains(t, out, excluded)
			}
		})
	}
}

func TestStatus_WithSubStatus(t *testing.T) {
	base := NewHealthy("system", "ok")
	withSub := base.WithSubStatus(NewDegraded("child", "lagging"))

	assert.Empty(t, base.SubStatuses)
	require.Len(t, withSub.SubStatuses, 1)
	assert.Equal(t, "child", withSub.SubStatuses[0].Component)
}

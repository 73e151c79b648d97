package health

import (
	"fmt"
	"sync"
	"time"

	"github.com/RAraghavarora/lisdf/component"
)

// Default thresholds for derived health states.
const (
	// DefaultStaleThreshold marks a component degraded when it has seen
	// traffic before but none for this long.
	DefaultStaleThreshold = 5 * time.Minute
	// DefaultErrorRateThreshold marks a component degraded when more than
	// this fraction of its processed facts errored.
	DefaultErrorRateThreshold = 0.5
)

// Monitor watches pipeline components and derives health statuses from
// their lifecycle state and fact flow. A component that stopped running is
// unhealthy; one that runs but errors too often, or has gone silent after
// processing facts, is degraded. Thread-safe.
type Monitor struct {
	mu       sync.RWMutex
	statuses map[string]Status
	watched  []watchedComponent

	staleAfter   time.Duration
	maxErrorRate float64
}

type watchedComponent struct {
	name string
	comp component.Discoverable
}

// MonitorOption configures a Monitor.
type MonitorOption func(*Monitor)

// WithStaleThreshold sets how long a previously active component may stay
// silent before it is reported degraded.
func WithStaleThreshold(d time.Duration) MonitorOption {
	return func(m *Monitor) {
		if d > 0 {
			m.staleAfter = d
		}
	}
}

// WithErrorRateThreshold sets the error fraction above which a running
// component is reported degraded.
func WithErrorRateThreshold(rate float64) MonitorOption {
	return func(m *Monitor) {
		if rate > 0 {
			m.maxErrorRate = rate
		}
	}
}

// NewMonitor creates a health monitor with default thresholds.
func NewMonitor(opts ...MonitorOption) *Monitor {
	m := &Monitor{
		statuses:     make(map[string]Status),
		staleAfter:   DefaultStaleThreshold,
		maxErrorRate: DefaultErrorRateThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Watch adds a component to the observation set. Its status is refreshed
// on every ObserveAll call.
func (m *Monitor) Watch(name string, comp component.Discoverable) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.watched = append(m.watched, watchedComponent{name: name, comp: comp})
}

// ObserveAll polls every watched component, derives and stores its status,
// and returns the system aggregate.
func (m *Monitor) ObserveAll(systemName string) Status {
	m.mu.RLock()
	watched := make([]watchedComponent, len(m.watched))
	copy(watched, m.watched)
	m.mu.RUnlock()

	for _, w := range watched {
		m.Update(w.name, m.observe(w.name, w.comp))
	}

	return m.AggregateHealth(systemName)
}

// observe derives one component's status from its reported health and
// fact flow.
func (m *Monitor) observe(name string, comp component.Discoverable) Status {
	hs := comp.Health()
	flow := comp.DataFlow()

	metrics := &Metrics{
		Uptime:       hs.Uptime,
		ErrorCount:   hs.ErrorCount,
		FactRate:     flow.MessagesPerSecond,
		ErrorRate:    flow.ErrorRate,
		LastActivity: flow.LastActivity,
	}

	switch {
	case !hs.Healthy:
		message := "component not running"
		if hs.LastError != "" {
			message = sanitizeErrorMessage(hs.LastError)
		}
		return NewUnhealthy(name, message).WithMetrics(metrics)

	case flow.ErrorRate > m.maxErrorRate:
		return NewDegraded(name,
			fmt.Sprintf("error rate %.2f exceeds threshold %.2f", flow.ErrorRate, m.maxErrorRate)).
			WithMetrics(metrics)

	case !flow.LastActivity.IsZero() && time.Since(flow.LastActivity) > m.staleAfter:
		return NewDegraded(name,
			fmt.Sprintf("no facts processed for %s", time.Since(flow.LastActivity).Round(time.Second))).
			WithMetrics(metrics)

	default:
		return NewHealthy(name, "component running").WithMetrics(metrics)
	}
}

// Update stores the health status for a named component. Used for
// statuses derived outside the watch set, such as the NATS connection.
func (m *Monitor) Update(name string, status Status) {
	m.mu.Lock()
	defer m.mu.Unlock()

	status.Component = name
	if status.Timestamp.IsZero() {
		status.Timestamp = time.Now()
	}

	m.statuses[name] = status
}

// Get retrieves the last derived status for a named component.
func (m *Monitor) Get(name string) (Status, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	status, exists := m.statuses[name]
	return status, exists
}

// GetAll returns a copy of all current health statuses.
func (m *Monitor) GetAll() map[string]Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]Status, len(m.statuses))
	for name, status := range m.statuses {
		result[name] = status
	}
	return result
}

// AggregateHealth folds the stored statuses into one system status.
func (m *Monitor) AggregateHealth(systemName string) Status {
	m.mu.RLock()
	defer m.mu.RUnlock()

	subStatuses := make([]Status, 0, len(m.statuses))
	for _, status := range m.statuses {
		subStatuses = append(subStatuses, status)
	}

	return Aggregate(systemName, subStatuses)
}

package component

import (
	"log/slog"

	"github.com/RAraghavarora/lisdf/metric"
	"github.com/RAraghavarora/lisdf/natsclient"
	"github.com/RAraghavarora/lisdf/schema"
)

// Dependencies provides all external dependencies needed by components.
// Components receive one structured bundle at construction time rather
// than individual fields.
type Dependencies struct {
	NATSClient      *natsclient.Client      // NATS client for messaging
	MetricsRegistry *metric.MetricsRegistry // Metrics registry for Prometheus (can be nil)
	Logger          *slog.Logger            // Structured logger (can be nil, defaults to slog.Default())
	Schema          *schema.Schema          // Frozen deployment schema facts validate against
}

// GetLogger returns the configured logger or a default logger if none is provided
func (d *Dependencies) GetLogger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// GetLoggerWithComponent returns a logger configured with component context
func (d *Dependencies) GetLoggerWithComponent(componentName string) *slog.Logger {
	return d.GetLogger().With("component", componentName)
}

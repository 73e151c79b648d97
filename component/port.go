package component

import "fmt"

// Direction for data flow
type Direction string

// Direction constants for port data flow
const (
	DirectionInput  Direction = "input"
	DirectionOutput Direction = "output"
)

// Port describes any I/O interface
type Port struct {
	Name        string    `json:"name"`
	Direction   Direction `json:"direction"`
	Required    bool      `json:"required"`
	Description string    `json:"description"`
	Config      Portable  `json:"config"`
}

// Portable is the minimal contract a port configuration satisfies
type Portable interface {
	ResourceID() string // Unique identifier for conflict detection
	IsExclusive() bool  // Whether multiple components can share
	Type() string       // Port type identifier
}

// InterfaceContract defines the expected message interface on a port
type InterfaceContract struct {
	Type    string `json:"type"`              // e.g., "message.FactPayload"
	Version string `json:"version,omitempty"` // e.g., "v1"
}

// NATSPort - NATS pub/sub
type NATSPort struct {
	Subject   string             `json:"subject"`
	Queue     string             `json:"queue,omitempty"`
	Interface *InterfaceContract `json:"interface,omitempty"`
}

// ResourceID returns unique identifier for NATS ports
func (n NATSPort) ResourceID() string {
	return fmt.Sprintf("nats:%s", n.Subject)
}

// IsExclusive returns false as multiple components can subscribe
func (n NATSPort) IsExclusive() bool {
	return false
}

// Type returns the port type identifier
func (n NATSPort) Type() string {
	return "nats"
}

// JetStreamPort - NATS JetStream for durable, at-least-once messaging
type JetStreamPort struct {
	StreamName string   `json:"stream_name"`
	Subjects   []string `json:"subjects"`

	// Consumer configuration (for inputs)
	ConsumerName string `json:"consumer_name,omitempty"`

	Interface *InterfaceContract `json:"interface,omitempty"`
}

// ResourceID returns unique identifier for JetStream ports
func (j JetStreamPort) ResourceID() string {
	if j.StreamName != "" {
		return fmt.Sprintf("jetstream:%s", j.StreamName)
	}
	if len(j.Subjects) > 0 {
		return fmt.Sprintf("jetstream:%s", j.Subjects[0])
	}
	return "jetstream:unknown"
}

// IsExclusive returns false as JetStream manages consumer coordination
func (j JetStreamPort) IsExclusive() bool {
	return false
}

// Type returns the port type identifier
func (j JetStreamPort) Type() string {
	return "jetstream"
}

// WebSocketPort - websocket endpoint for streaming results to clients
type WebSocketPort struct {
	Addr string `json:"addr"`
	Path string `json:"path"`
}

// ResourceID returns unique identifier for websocket ports
func (w WebSocketPort) ResourceID() string {
	return fmt.Sprintf("websocket:%s%s", w.Addr, w.Path)
}

// IsExclusive returns true as only one component can bind an address
func (w WebSocketPort) IsExclusive() bool {
	return true
}

// Type returns the port type identifier
func (w WebSocketPort) Type() string {
	return "websocket"
}

// HTTPPort - HTTP endpoint for request/response APIs
type HTTPPort struct {
	Addr string `json:"addr"`
	Path string `json:"path,omitempty"`
}

// ResourceID returns unique identifier for HTTP ports
func (h HTTPPort) ResourceID() string {
	return fmt.Sprintf("http:%s", h.Addr)
}

// IsExclusive returns true as only one component can bind an address
func (h HTTPPort) IsExclusive() bool {
	return true
}

// Type returns the port type identifier
func (h HTTPPort) Type() string {
	return "http"
}

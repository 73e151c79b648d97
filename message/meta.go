package message

import "time"

// Meta provides metadata about a message's lifecycle and origin.
//
// Using an interface rather than a concrete type allows for:
//   - Custom metadata implementations for specific domains
//   - Extended metadata with additional fields when needed
//   - Easier testing with mock implementations
type Meta interface {
	// CreatedAt returns when the original event or observation occurred.
	CreatedAt() time.Time

	// ReceivedAt returns when the message entered the processing system.
	// This helps track ingestion latency and message age.
	ReceivedAt() time.Time

	// Source returns the identifier of the message originator.
	// Examples: "fact-gateway", "factcheck-processor"
	Source() string
}

// DefaultMeta provides the standard implementation of the Meta interface.
// Timestamps are stored as Unix milliseconds so wire representations stay
// stable across platforms.
type DefaultMeta struct {
	createdAt  int64
	receivedAt int64
	source     string
}

// NewDefaultMeta creates a new DefaultMeta instance with the given
// creation time and source. The received time is automatically set
// to the current time.
func NewDefaultMeta(createdAt time.Time, source string) *DefaultMeta {
	return &DefaultMeta{
		createdAt:  createdAt.UnixMilli(),
		receivedAt: time.Now().UnixMilli(),
		source:     source,
	}
}

// NewDefaultMetaWithReceivedAt creates a new DefaultMeta instance with
// explicit creation and received times. This is useful for testing
// or when importing historical data.
func NewDefaultMetaWithReceivedAt(createdAt, receivedAt time.Time, source string) *DefaultMeta {
	return &DefaultMeta{
		createdAt:  createdAt.UnixMilli(),
		receivedAt: receivedAt.UnixMilli(),
		source:     source,
	}
}

// CreatedAt returns when the original event occurred.
func (m *DefaultMeta) CreatedAt() time.Time {
	return time.UnixMilli(m.createdAt)
}

// ReceivedAt returns when the system received the message.
func (m *DefaultMeta) ReceivedAt() time.Time {
	return time.UnixMilli(m.receivedAt)
}

// Source returns the origin of the message.
func (m *DefaultMeta) Source() string {
	return m.source
}

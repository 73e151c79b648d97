package message

import (
	"encoding/json"
	"sync"
)

// Payload represents the data carried by a message.
// All message payloads must implement this interface to provide
// schema information, validation, and serialization capabilities.
//
// Example implementation:
//
//	type FactPayload struct {
//	    Fact fact.Fact `json:"fact"`
//	}
//
//	func (p *FactPayload) Schema() Type {
//	    return Type{Domain: "lisdf", Category: "fact", Version: "v1"}
//	}
type Payload interface {
	// Schema returns the Type that defines this payload's structure.
	// This enables type-safe routing and processing throughout the system.
	Schema() Type

	// Validate checks the payload data for correctness.
	// Returns nil if valid, or an error describing the validation failure.
	Validate() error

	// JSON serialization using standard Go interfaces.
	// Payloads must implement json.Marshaler and json.Unmarshaler
	// for deterministic serialization. The same payload must always
	// produce the same JSON output.
	json.Marshaler
	json.Unmarshaler
}

// PayloadFactory creates a fresh, empty payload ready for unmarshalling.
type PayloadFactory func() Payload

var (
	payloadMu        sync.RWMutex
	payloadfactories = make(map[string]PayloadFactory)
)

// RegisterPayload registers a factory for the given message type so
// BaseMessage.UnmarshalJSON can reconstruct typed payloads from the wire.
// Registration typically happens in an init function next to the payload
// definition. Re-registering a type replaces the previous factory.
func RegisterPayload(msgType Type, factory PayloadFactory) {
	payloadMu.Lock()
	defer payloadMu.Unlock()
	payloadfactories[msgType.Key()] = factory
}

// createPayload returns a fresh payload for the given type, or nil if the
// type has no registered factory.
func createPayload(msgType Type) Payload {
	payloadMu.RLock()
	factory, ok := payloadfactories[msgType.Key()]
	payloadMu.RUnlock()
	if !ok {
		return nil
	}
	return factory()
}

// Package message defines the typed message envelope the service moves
// over NATS: a structured Type (domain.category.version keys that double
// as subjects), the Payload contract, and the immutable BaseMessage
// wrapper with metadata.
//
// Payload implementations register a factory with RegisterPayload so
// envelopes can be decoded back into typed payloads on the consuming
// side. The two payloads this module ships are FactPayload (submitted
// facts) and ResultPayload (validation outcomes).
package message

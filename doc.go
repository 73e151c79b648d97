// Package lisdf provides a strongly typed schema and fact-validation engine
// for declarative robot scene descriptions, exposed as a NATS-backed
// validation service.
//
// # Philosophy: Schema First, Facts Second
//
// LISDF separates WHAT can be said from WHAT is said:
//
// Schema (frozen at startup):
//   - Type hierarchy: object types (bodies, joints, links) and value types
//     (poses, colors, magnitudes) arranged in a single-inheritance lattice
//   - Value shapes: every value type carries a payload shape (scalar, fixed
//     tuple, or homogeneous sequence) that literals must conform to
//   - Predicate signatures: every predicate declares its parameter roles
//     and types, fixing arity and typing for all facts that use it
//
// Facts (validated at runtime):
//   - A fact applies a predicate to arguments: object references asserting
//     a type, or literal values carrying a payload
//   - Validation is a pure function of (schema, fact) with four specific
//     failure modes: unknown predicate, arity, type mismatch, shape mismatch
//
// # Architecture
//
// Facts flow through a small NATS pipeline:
//
//	┌─────────────┐   lisdf.fact.submitted   ┌─────────────┐
//	│  Producers  ├─────────────────────────→│  factcheck  │
//	└─────────────┘                          │  processor  │
//	┌─────────────┐  POST /v1/validate       └──────┬──────┘
//	│HTTP gateway ├───────────────┐                 │
//	└─────────────┘               ↓                 ↓
//	                    lisdf.fact.accepted / lisdf.fact.rejected
//	                              │
//	                              ↓
//	                     ┌─────────────────┐
//	                     │ WebSocket output│ → streaming clients
//	                     └─────────────────┘
//
// The gateway validates synchronously and mirrors its results onto the same
// result subjects, so streaming consumers see one unified stream regardless
// of how facts enter the system.
//
// # Packages
//
// Core engine:
//   - schema: type registry, value shape catalog, predicate signatures
//   - fact: fact representation and the validator
//   - vocabulary: the built-in robot-scene vocabulary
//
// Service surface:
//   - processor/factcheck: NATS fact validation processor
//   - gateway/http: synchronous HTTP validation API and schema browsing
//   - output/websocket: result broadcasting to WebSocket clients
//
// Infrastructure:
//   - component: component lifecycle, registry, port definitions
//   - natsclient: NATS connection management with circuit breaking
//   - message: versioned message envelope and payload registry
//   - config: layered configuration loading and validation
//   - metric: Prometheus metrics
//   - errors: classified error handling
//   - health: health check system
//
// # Usage
//
// Validate facts in-process:
//
//	s, _ := vocabulary.Builtin()
//	v := fact.NewValidator(s)
//
//	err := v.Validate(fact.New("qrgeom::body-pose",
//	    fact.ObjectRef("base", "qr::body"),
//	    fact.Literal([]any{0.0, 0.0, 0.5, 0.0, 0.0, 1.57})))
//
// Run the service:
//
//	# Built-in vocabulary, default endpoints
//	./bin/lisdf
//
//	# Layer deployment-specific types and predicates on top
//	./bin/lisdf --config configs/cell-3.json
//
// Deployment schemas extend the built-in vocabulary through a declarations
// file; the schema is frozen once loaded, so validation needs no locks.
package lisdf

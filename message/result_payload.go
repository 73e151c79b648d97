package message

import (
	"encoding/json"

	"github.com/RAraghavarora/lisdf/errors"
	"github.com/RAraghavarora/lisdf/fact"
)

// ValidationResult is the message type for validation outcomes leaving the
// factcheck processor. Accepted and rejected facts share the type; the
// Status field and the publish subject distinguish them.
var ValidationResult = Type{
	Domain:   "lisdf",
	Category: "result",
	Version:  "v1",
}

// Validation outcome statuses.
const (
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// Rejection variants, mirroring the validator's error types.
const (
	VariantUnknownPredicate = "unknown-predicate"
	VariantArity            = "arity"
	VariantTypeMismatch     = "type-mismatch"
	VariantShapeMismatch    = "shape-mismatch"
)

// ResultPayload reports the outcome of validating one submitted fact.
// FactID refers to the envelope ID of the submission so callers can
// correlate results with their requests.
type ResultPayload struct {
	FactID    string    `json:"fact_id"`
	Fact      fact.Fact `json:"fact"`
	Status    string    `json:"status"`
	Variant   string    `json:"variant,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Validated int64     `json:"validated_at"`
}

func init() {
	RegisterPayload(ValidationResult, func() Payload { return &ResultPayload{} })
}

// Schema returns the message type for result payloads.
func (p *ResultPayload) Schema() Type {
	return ValidationResult
}

// Validate checks the payload for internal consistency.
func (p *ResultPayload) Validate() error {
	switch p.Status {
	case StatusAccepted:
		if p.Variant != "" {
			return errors.WrapInvalid(errors.ErrInvalidData, "ResultPayload", "Validate",
				"accepted result cannot carry a rejection variant")
		}
	case StatusRejected:
		if p.Variant == "" {
			return errors.WrapInvalid(errors.ErrInvalidData, "ResultPayload", "Validate",
				"rejected result needs a rejection variant")
		}
	default:
		return errors.WrapInvalid(errors.ErrInvalidData, "ResultPayload", "Validate",
			"status must be accepted or rejected")
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *ResultPayload) MarshalJSON() ([]byte, error) {
	type Alias ResultPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *ResultPayload) UnmarshalJSON(data []byte) error {
	type Alias ResultPayload
	return json.Unmarshal(data, (*Alias)(p))
}

package message

import (
	"encoding/json"
	"fmt"

	"github.com/RAraghavarora/lisdf/errors"
	"github.com/RAraghavarora/lisdf/fact"
)

// FactSubmitted is the message type for facts entering the validation
// pipeline. Its key "lisdf.fact.v1" is the NATS subject facts are
// submitted on.
var FactSubmitted = Type{
	Domain:   "lisdf",
	Category: "fact",
	Version:  "v1",
}

// FactPayload carries a single fact submitted for validation against the
// loaded schema.
type FactPayload struct {
	Fact fact.Fact `json:"fact"`
}

func init() {
	RegisterPayload(FactSubmitted, func() Payload { return &FactPayload{} })
}

// NewFactPayload wraps a fact for transmission.
func NewFactPayload(f fact.Fact) *FactPayload {
	return &FactPayload{Fact: f}
}

// Schema returns the message type for fact payloads.
func (p *FactPayload) Schema() Type {
	return FactSubmitted
}

// Validate checks the payload is structurally sound. Schema conformance is
// the validator's job downstream; this only rejects payloads that could
// never be validated.
func (p *FactPayload) Validate() error {
	if p.Fact.Predicate == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "FactPayload", "Validate",
			"fact predicate cannot be empty")
	}
	for i, arg := range p.Fact.Arguments {
		switch arg.Kind {
		case fact.KindObject:
			if arg.Name == "" || arg.Type == "" {
				return errors.WrapInvalid(errors.ErrInvalidData, "FactPayload", "Validate",
					"object argument needs a name and an asserted type")
			}
		case fact.KindLiteral:
			// Any JSON value is acceptable here, including null.
		default:
			return errors.WrapInvalid(errors.ErrInvalidData, "FactPayload", "Validate",
				fmt.Sprintf("argument %d has unknown kind %q", i, arg.Kind))
		}
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *FactPayload) MarshalJSON() ([]byte, error) {
	type Alias FactPayload
	return json.Marshal((*Alias)(p))
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *FactPayload) UnmarshalJSON(data []byte) error {
	type Alias FactPayload
	return json.Unmarshal(data, (*Alias)(p))
}

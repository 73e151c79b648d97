package fact

import (
	"fmt"

	"github.com/RAraghavarora/lisdf/errors"
	"github.com/RAraghavarora/lisdf/schema"
)

// Validator checks facts against a frozen schema. Validation is a pure
// function of (schema, fact): it performs no I/O, never mutates either
// input, and always terminates with success or a specific validation
// error, so a single Validator may serve any number of goroutines.
type Validator struct {
	schema *schema.Schema
}

// NewValidator creates a validator over a loaded schema.
func NewValidator(s *schema.Schema) *Validator {
	return &Validator{schema: s}
}

// Schema returns the schema this validator checks against.
func (v *Validator) Schema() *schema.Schema {
	return v.schema
}

// Validate checks a fact for well-typedness: the predicate must be
// declared, the argument count must match the signature arity, object
// references must assert the declared parameter type or a subtype of it,
// and literals must conform to the declared value type's shape. The
// first failure is returned; nil means the fact is well-typed.
func (v *Validator) Validate(f Fact) error {
	sig, ok := v.schema.SignatureOf(f.Predicate)
	if !ok {
		return &UnknownPredicateError{Predicate: f.Predicate}
	}

	if len(f.Arguments) != sig.Arity() {
		return &ArityError{
			Predicate: f.Predicate,
			Expected:  sig.Arity(),
			Actual:    len(f.Arguments),
		}
	}

	for i, arg := range f.Arguments {
		param := sig.Parameters[i]

		switch arg.Kind {
		case KindObject:
			if !v.schema.IsSubtype(arg.Type, param.Type) {
				return &TypeMismatchError{
					Predicate: f.Predicate,
					Position:  i,
					Role:      param.Role,
					Declared:  param.Type,
					Asserted:  arg.Type,
				}
			}
		case KindLiteral:
			// Resolve in the value category directly: a schema may reuse a
			// name across categories, and the object entry must not shadow
			// the value type a literal is checked against.
			_, ok := v.schema.ResolveTypeIn(param.Type, schema.CategoryValue)
			if !ok {
				return &ShapeMismatchError{
					Predicate: f.Predicate,
					Position:  i,
					Role:      param.Role,
					Declared:  param.Type,
					Detail:    "literal supplied for object-typed parameter",
				}
			}
			if !v.schema.Conforms(param.Type, arg.Value) {
				return &ShapeMismatchError{
					Predicate: f.Predicate,
					Position:  i,
					Role:      param.Role,
					Declared:  param.Type,
					Detail:    v.schema.DescribePayload(param.Type, arg.Value),
				}
			}
		default:
			return errors.WrapInvalid(
				fmt.Errorf("%w: argument kind %q at position %d",
					errors.ErrInvalidData, arg.Kind, i),
				"Validator", "Validate", "argument kind check")
		}
	}

	return nil
}

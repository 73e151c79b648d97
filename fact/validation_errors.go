package fact

import (
	"fmt"

	"github.com/RAraghavarora/lisdf/errors"
)

// Validation failures are structured error values. Each unwraps to its
// sentinel in the errors package so callers can branch with errors.Is
// while still reading position and type detail from the concrete value.

// UnknownPredicateError reports a fact naming a predicate the schema does
// not declare.
type UnknownPredicateError struct {
	Predicate string
}

func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("%v: %s", errors.ErrUnknownPredicate, e.Predicate)
}

// Unwrap returns the sentinel for errors.Is matching.
func (e *UnknownPredicateError) Unwrap() error {
	return errors.ErrUnknownPredicate
}

// ArityError reports an argument count that does not match the predicate
// signature.
type ArityError struct {
	Predicate string
	Expected  int
	Actual    int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("%v: %s expects %d arguments, got %d",
		errors.ErrArityMismatch, e.Predicate, e.Expected, e.Actual)
}

// Unwrap returns the sentinel for errors.Is matching.
func (e *ArityError) Unwrap() error {
	return errors.ErrArityMismatch
}

// TypeMismatchError reports an object reference whose asserted type is
// not the declared parameter type or one of its subtypes.
type TypeMismatchError struct {
	Predicate string
	Position  int
	Role      string
	Declared  string
	Asserted  string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%v: %s position %d (%s): %s is not a subtype of %s",
		errors.ErrArgumentTypeMismatch, e.Predicate, e.Position, e.Role, e.Asserted, e.Declared)
}

// Unwrap returns the sentinel for errors.Is matching.
func (e *TypeMismatchError) Unwrap() error {
	return errors.ErrArgumentTypeMismatch
}

// ShapeMismatchError reports a literal that does not conform to the
// declared value type's shape, or a literal supplied where an object type
// is declared. Detail is a short structural description of the payload,
// e.g. "length 2, expected 6".
type ShapeMismatchError struct {
	Predicate string
	Position  int
	Role      string
	Declared  string
	Detail    string
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%v: %s position %d (%s): declared %s: %s",
		errors.ErrArgumentShapeMismatch, e.Predicate, e.Position, e.Role, e.Declared, e.Detail)
}

// Unwrap returns the sentinel for errors.Is matching.
func (e *ShapeMismatchError) Unwrap() error {
	return errors.ErrArgumentShapeMismatch
}

// Package fact defines the transient fact model and the validator that
// checks facts against a frozen schema.
//
// A fact is one concrete instantiation of a predicate: a qualified
// predicate name plus an ordered argument list. Arguments are either
// object references (a name with an asserted type) or literal values
// (scalars, fixed-arity tuples, variable-length sequences).
//
// Validation is pure and total: for any well-formed schema it terminates
// with nil or one of the structured errors in this package
// (UnknownPredicateError, ArityError, TypeMismatchError,
// ShapeMismatchError), each of which unwraps to its sentinel in the
// errors package. A failed validation affects nothing: the schema is
// read-only and the fact belongs to the caller.
package fact

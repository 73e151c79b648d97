package fact

import "fmt"

// ArgumentKind discriminates the two argument forms a fact can carry.
type ArgumentKind string

const (
	// KindObject is a reference to a named object with an asserted type.
	KindObject ArgumentKind = "object"
	// KindLiteral is an inline structured value.
	KindLiteral ArgumentKind = "literal"
)

// Argument is one positional argument of a fact: either an object
// reference (a name plus the type the caller asserts for it) or a literal
// payload that must conform to some declared value shape.
type Argument struct {
	Kind ArgumentKind `json:"kind"`
	// Name and Type are set for object references.
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
	// Value is set for literals. Atomic values, []any tuples, and
	// sequences are all carried here.
	Value any `json:"value,omitempty"`
}

// ObjectRef builds an object-reference argument.
func ObjectRef(name, assertedType string) Argument {
	return Argument{Kind: KindObject, Name: name, Type: assertedType}
}

// Literal builds a literal argument.
func Literal(value any) Argument {
	return Argument{Kind: KindLiteral, Value: value}
}

// String renders a compact description for logs and error messages.
func (a Argument) String() string {
	switch a.Kind {
	case KindObject:
		return fmt.Sprintf("%s: %s", a.Name, a.Type)
	case KindLiteral:
		return fmt.Sprintf("%v", a.Value)
	default:
		return fmt.Sprintf("invalid argument kind %q", a.Kind)
	}
}

// Fact is one concrete instantiation of a predicate with ordered
// argument values, submitted for validation. Facts are owned by the
// caller; the validator never retains or mutates them.
type Fact struct {
	Predicate string     `json:"predicate"`
	Arguments []Argument `json:"arguments"`
}

// New builds a fact from a predicate name and arguments.
func New(predicate string, args ...Argument) Fact {
	return Fact{Predicate: predicate, Arguments: args}
}

package schema

import (
	"encoding/json"
	"fmt"

	"github.com/RAraghavarora/lisdf/errors"
)

// ShapeKind tags the closed set of structural layouts a value type can
// declare. The set is closed on purpose: conformance checking stays
// exhaustive instead of degenerating into a dynamic union.
type ShapeKind int

const (
	// ShapeScalar is an atomic value with no substructure (strings,
	// booleans, plain numbers).
	ShapeScalar ShapeKind = iota
	// ShapeTuple is a fixed-arity ordered sequence of named fields.
	ShapeTuple
	// ShapeSequence is a variable-length homogeneous sequence; the length
	// is determined only at fact-validation time.
	ShapeSequence
)

// String returns the string representation of the shape kind
func (k ShapeKind) String() string {
	switch k {
	case ShapeScalar:
		return "scalar"
	case ShapeTuple:
		return "tuple"
	case ShapeSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind as its string form so declaration files
// stay human-readable.
func (k ShapeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes "scalar", "tuple", or "sequence".
func (k *ShapeKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "scalar":
		*k = ShapeScalar
	case "tuple":
		*k = ShapeTuple
	case "sequence":
		*k = ShapeSequence
	default:
		return fmt.Errorf("unknown shape kind %q", s)
	}
	return nil
}

// Field is one named position of a tuple shape. Type names a registered
// value type.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// ValueShape describes the structural layout of a value type: scalar,
// fixed-arity tuple, or unbounded sequence.
type ValueShape struct {
	Kind ShapeKind `json:"kind"`
	// Fields is the ordered field list for tuple shapes; its length fixes
	// the tuple arity.
	Fields []Field `json:"fields,omitempty"`
	// Element names the element value type for sequence shapes.
	Element string `json:"element,omitempty"`
}

// Scalar returns the scalar shape.
func Scalar() ValueShape {
	return ValueShape{Kind: ShapeScalar}
}

// Tuple returns a fixed-arity tuple shape over the given fields.
func Tuple(fields ...Field) ValueShape {
	return ValueShape{Kind: ShapeTuple, Fields: fields}
}

// Sequence returns an unbounded homogeneous sequence shape.
func Sequence(element string) ValueShape {
	return ValueShape{Kind: ShapeSequence, Element: element}
}

// Arity returns the fixed field count for tuples, or -1 for shapes whose
// length is not schema-determined.
func (s ValueShape) Arity() int {
	if s.Kind == ShapeTuple {
		return len(s.Fields)
	}
	return -1
}

// ShapeCatalog stores, for each value type, its declared structural
// shape, and answers conformance queries for candidate literal payloads.
// Element type references are checked against the type registry at
// definition time, so conformance never encounters a dangling reference.
type ShapeCatalog struct {
	types  *TypeRegistry
	shapes map[string]ValueShape
}

// NewShapeCatalog creates an empty catalog backed by the given registry.
func NewShapeCatalog(types *TypeRegistry) *ShapeCatalog {
	return &ShapeCatalog{
		types:  types,
		shapes: make(map[string]ValueShape),
	}
}

// Define attaches a shape to a registered value type. Every element type
// referenced by the shape must itself be a registered value type.
func (c *ShapeCatalog) Define(typeName string, shape ValueShape) error {
	if _, ok := c.types.ResolveIn(typeName, CategoryValue); !ok {
		return errors.WrapFatal(
			fmt.Errorf("%w: %s", errors.ErrUnknownValueType, typeName),
			"ShapeCatalog", "Define", "value type lookup")
	}
	if _, exists := c.shapes[typeName]; exists {
		return errors.WrapFatal(
			fmt.Errorf("%w: %s", errors.ErrDuplicateShape, typeName),
			"ShapeCatalog", "Define", "duplicate check")
	}

	switch shape.Kind {
	case ShapeTuple:
		for _, f := range shape.Fields {
			if _, ok := c.types.ResolveIn(f.Type, CategoryValue); !ok {
				return errors.WrapFatal(
					fmt.Errorf("%w: %s (field %s of %s)",
						errors.ErrUnknownValueType, f.Type, f.Name, typeName),
					"ShapeCatalog", "Define", "field type lookup")
			}
		}
	case ShapeSequence:
		if _, ok := c.types.ResolveIn(shape.Element, CategoryValue); !ok {
			return errors.WrapFatal(
				fmt.Errorf("%w: %s (element of %s)",
					errors.ErrUnknownValueType, shape.Element, typeName),
				"ShapeCatalog", "Define", "element type lookup")
		}
	}

	c.shapes[typeName] = shape
	return nil
}

// ShapeOf returns the declared shape for a value type.
func (c *ShapeCatalog) ShapeOf(typeName string) (ValueShape, bool) {
	shape, ok := c.shapes[typeName]
	return shape, ok
}

// Conforms reports whether a literal payload matches the declared shape
// of a value type. Scalars accept any atomic payload; tuples require an
// ordered sequence of exactly the declared field count with each element
// conforming to its field type; sequences require every element to
// conform to the element type, with no length constraint (the empty
// sequence conforms).
func (c *ShapeCatalog) Conforms(typeName string, payload any) bool {
	shape, ok := c.shapes[typeName]
	if !ok {
		return false
	}

	switch shape.Kind {
	case ShapeScalar:
		return isAtomic(payload)
	case ShapeTuple:
		elements, ok := asSequence(payload)
		if !ok || len(elements) != len(shape.Fields) {
			return false
		}
		for i, f := range shape.Fields {
			if !c.Conforms(f.Type, elements[i]) {
				return false
			}
		}
		return true
	case ShapeSequence:
		elements, ok := asSequence(payload)
		if !ok {
			return false
		}
		for _, el := range elements {
			if !c.Conforms(shape.Element, el) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// DescribePayload renders a short structural description of a payload for
// error messages, e.g. "length 2, expected 6" for an undersized tuple.
func (c *ShapeCatalog) DescribePayload(typeName string, payload any) string {
	shape, declared := c.shapes[typeName]

	if elements, ok := asSequence(payload); ok {
		if declared && shape.Kind == ShapeTuple {
			return fmt.Sprintf("length %d, expected %d", len(elements), len(shape.Fields))
		}
		return fmt.Sprintf("sequence of length %d", len(elements))
	}
	if isAtomic(payload) {
		return fmt.Sprintf("scalar %v", payload)
	}
	return fmt.Sprintf("unsupported payload type %T", payload)
}

// isAtomic reports whether a payload is an atomic scalar. Numeric widths
// cover what JSON decoding and literal Go construction produce.
func isAtomic(payload any) bool {
	switch payload.(type) {
	case string, bool,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		json.Number:
		return true
	default:
		return false
	}
}

// asSequence normalizes the supported ordered-sequence payload forms to
// []any. JSON decoding produces []any; callers constructing literals in
// Go commonly use []float64 or []string.
func asSequence(payload any) ([]any, bool) {
	switch v := payload.(type) {
	case []any:
		return v, true
	case []float64:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = el
		}
		return out, true
	case []int:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = el
		}
		return out, true
	case []string:
		out := make([]any, len(v))
		for i, el := range v {
			out[i] = el
		}
		return out, true
	default:
		return nil, false
	}
}

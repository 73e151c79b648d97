package schema

import (
	"fmt"

	"github.com/RAraghavarora/lisdf/errors"
)

// TypeDecl declares one type in dependency order: base types before the
// subtypes that name them. A value type may carry its structural shape in
// the same declaration; a value type declared without a shape is scalar.
type TypeDecl struct {
	Name     string      `json:"name"`
	Category Category    `json:"category"`
	Parent   string      `json:"parent,omitempty"`
	Shape    *ValueShape `json:"shape,omitempty"`
}

// ConstructorDecl declares a named way to instantiate a typed object,
// e.g. the world frame or a geometric box. The label may be empty.
type ConstructorDecl struct {
	Type  string `json:"type"`
	Label string `json:"label,omitempty"`
}

// PredicateDecl declares a predicate signature.
type PredicateDecl struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

// Declarations is the already-parsed declaration list an external reader
// produces from the source text. The core never sees s-expression syntax.
type Declarations struct {
	Types        []TypeDecl        `json:"types"`
	Constructors []ConstructorDecl `json:"constructors,omitempty"`
	Predicates   []PredicateDecl   `json:"predicates"`
}

// Merge appends another declaration list after this one, preserving
// order. Used to layer deployment-specific declarations over the built-in
// vocabulary.
func (d Declarations) Merge(other Declarations) Declarations {
	merged := Declarations{
		Types:        append(append([]TypeDecl{}, d.Types...), other.Types...),
		Constructors: append(append([]ConstructorDecl{}, d.Constructors...), other.Constructors...),
		Predicates:   append(append([]PredicateDecl{}, d.Predicates...), other.Predicates...),
	}
	return merged
}

// Constructor is a resolved object-type constructor.
type Constructor struct {
	Type  *TypeNode
	Label string
}

// Schema is the frozen combination of the type registry, value shape
// catalog, and predicate signature registry, plus the object-type
// constructor catalog. It is built once by Load, then shared read-only by
// any number of concurrent validators; no method mutates state after
// load.
type Schema struct {
	types        *TypeRegistry
	shapes       *ShapeCatalog
	predicates   *PredicateRegistry
	constructors []Constructor
}

// Load builds a Schema from a declaration list in one pass. Any error
// aborts construction entirely: a partially-usable schema is never
// exposed.
func Load(decls Declarations) (*Schema, error) {
	types := NewTypeRegistry()
	shapes := NewShapeCatalog(types)

	for _, td := range decls.Types {
		if err := types.Register(td.Name, td.Category, td.Parent); err != nil {
			return nil, err
		}
		if td.Category == CategoryValue {
			shape := Scalar()
			if td.Shape != nil {
				shape = *td.Shape
			}
			if err := shapes.Define(td.Name, shape); err != nil {
				return nil, err
			}
		} else if td.Shape != nil {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: shape declared for object type %s",
					errors.ErrInvalidData, td.Name),
				"Schema", "Load", "shape placement check")
		}
	}

	if err := types.Verify(); err != nil {
		return nil, err
	}

	constructors := make([]Constructor, 0, len(decls.Constructors))
	for _, cd := range decls.Constructors {
		node, ok := types.ResolveIn(cd.Type, CategoryObject)
		if !ok {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: %s (constructor)", errors.ErrUnknownParent, cd.Type),
				"Schema", "Load", "constructor type lookup")
		}
		constructors = append(constructors, Constructor{Type: node, Label: cd.Label})
	}

	predicates := NewPredicateRegistry(types)
	for _, pd := range decls.Predicates {
		if err := predicates.Define(pd.Name, pd.Parameters); err != nil {
			return nil, err
		}
	}

	return &Schema{
		types:        types,
		shapes:       shapes,
		predicates:   predicates,
		constructors: constructors,
	}, nil
}

// ResolveType looks up a type by qualified name.
func (s *Schema) ResolveType(name string) (*TypeNode, bool) {
	return s.types.Resolve(name)
}

// ResolveTypeIn looks up a type by qualified name within one category.
// Callers that know which half of the hierarchy a name must live in use
// this so a name reused across categories never shadows the expected one.
func (s *Schema) ResolveTypeIn(name string, category Category) (*TypeNode, bool) {
	return s.types.ResolveIn(name, category)
}

// IsSubtype reports whether candidate is ancestor or a descendant of it.
func (s *Schema) IsSubtype(candidate, ancestor string) bool {
	return s.types.IsSubtype(candidate, ancestor)
}

// TypeNames returns the sorted type names in a category.
func (s *Schema) TypeNames(category Category) []string {
	return s.types.Names(category)
}

// ShapeOf returns the declared shape of a value type.
func (s *Schema) ShapeOf(typeName string) (ValueShape, bool) {
	return s.shapes.ShapeOf(typeName)
}

// Conforms reports whether a literal payload matches a value type's
// declared shape.
func (s *Schema) Conforms(typeName string, payload any) bool {
	return s.shapes.Conforms(typeName, payload)
}

// DescribePayload renders a payload description for error reporting.
func (s *Schema) DescribePayload(typeName string, payload any) string {
	return s.shapes.DescribePayload(typeName, payload)
}

// SignatureOf returns the signature for a predicate name.
func (s *Schema) SignatureOf(name string) (PredicateSignature, bool) {
	return s.predicates.SignatureOf(name)
}

// PredicateNames returns the sorted names of all predicates.
func (s *Schema) PredicateNames() []string {
	return s.predicates.Names()
}

// Constructors returns the object-type constructor catalog in declaration
// order. Callers must not modify the returned slice.
func (s *Schema) Constructors() []Constructor {
	return s.constructors
}

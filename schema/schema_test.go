package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/errors"
)

func testDeclarations() Declarations {
	poseShape := Tuple(
		Field{Name: "x", Type: "qr::scalar"},
		Field{Name: "y", Type: "qr::scalar"},
		Field{Name: "z", Type: "qr::scalar"},
		Field{Name: "roll", Type: "qr::scalar"},
		Field{Name: "pitch", Type: "qr::scalar"},
		Field{Name: "yaw", Type: "qr::scalar"},
	)
	confShape := Sequence("qr::scalar")

	return Declarations{
		Types: []TypeDecl{
			{Name: "qr::body", Category: CategoryObject},
			{Name: "qr::frame", Category: CategoryObject, Parent: "qr::body"},
			{Name: "qr::scalar", Category: CategoryValue},
			{Name: "qr::pose", Category: CategoryValue, Shape: &poseShape},
			{Name: "qr::chain-conf", Category: CategoryValue, Shape: &confShape},
		},
		Constructors: []ConstructorDecl{
			{Type: "qr::frame", Label: "world"},
			{Type: "qr::body"},
		},
		Predicates: []PredicateDecl{
			{Name: "qrgeom::body-pose", Parameters: []Parameter{
				{Role: "body", Type: "qr::body"},
				{Role: "pose", Type: "qr::pose"},
			}},
		},
	}
}

func TestLoad(t *testing.T) {
	s, err := Load(testDeclarations())
	require.NoError(t, err)

	node, ok := s.ResolveType("qr::frame")
	require.True(t, ok)
	assert.Equal(t, "qr::body", node.Parent.Name)

	assert.True(t, s.IsSubtype("qr::frame", "qr::body"))
	assert.True(t, s.IsSubtype("qr::frame", RootObject))

	shape, ok := s.ShapeOf("qr::pose")
	require.True(t, ok)
	assert.Equal(t, ShapeTuple, shape.Kind)
	assert.Equal(t, 6, shape.Arity())

	// Value type declared without a shape defaults to scalar.
	shape, ok = s.ShapeOf("qr::scalar")
	require.True(t, ok)
	assert.Equal(t, ShapeScalar, shape.Kind)

	sig, ok := s.SignatureOf("qrgeom::body-pose")
	require.True(t, ok)
	assert.Equal(t, 2, sig.Arity())

	ctors := s.Constructors()
	require.Len(t, ctors, 2)
	assert.Equal(t, "qr::frame", ctors[0].Type.Name)
	assert.Equal(t, "world", ctors[0].Label)
	assert.Empty(t, ctors[1].Label)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Declarations)
		sentinel error
	}{
		{
			name: "duplicate type",
			mutate: func(d *Declarations) {
				d.Types = append(d.Types, TypeDecl{Name: "qr::body", Category: CategoryObject})
			},
			sentinel: errors.ErrDuplicateType,
		},
		{
			name: "unknown parent",
			mutate: func(d *Declarations) {
				d.Types = append(d.Types, TypeDecl{
					Name: "qr::wheel", Category: CategoryObject, Parent: "qr::vehicle"})
			},
			sentinel: errors.ErrUnknownParent,
		},
		{
			name: "child declared before parent",
			mutate: func(d *Declarations) {
				d.Types = append([]TypeDecl{
					{Name: "qr::gripper", Category: CategoryObject, Parent: "qr::arm"},
					{Name: "qr::arm", Category: CategoryObject},
				}, d.Types...)
			},
			sentinel: errors.ErrUnknownParent,
		},
		{
			name: "tuple field references unknown value type",
			mutate: func(d *Declarations) {
				bad := Tuple(Field{Name: "r", Type: "qr::missing"})
				d.Types = append(d.Types, TypeDecl{
					Name: "qr::color", Category: CategoryValue, Shape: &bad})
			},
			sentinel: errors.ErrUnknownValueType,
		},
		{
			name: "duplicate predicate",
			mutate: func(d *Declarations) {
				d.Predicates = append(d.Predicates, d.Predicates[0])
			},
			sentinel: errors.ErrDuplicatePredicate,
		},
		{
			name: "unknown parameter type",
			mutate: func(d *Declarations) {
				d.Predicates = append(d.Predicates, PredicateDecl{
					Name: "qrgeom::body-twist",
					Parameters: []Parameter{{Role: "twist", Type: "qr::twist"}},
				})
			},
			sentinel: errors.ErrUnknownParameterType,
		},
		{
			name: "constructor for unregistered object type",
			mutate: func(d *Declarations) {
				d.Constructors = append(d.Constructors, ConstructorDecl{Type: "qr::ghost"})
			},
			sentinel: errors.ErrUnknownParent,
		},
		{
			name: "shape on object type",
			mutate: func(d *Declarations) {
				bad := Scalar()
				d.Types = append(d.Types, TypeDecl{
					Name: "qr::hand", Category: CategoryObject, Shape: &bad})
			},
			sentinel: errors.ErrInvalidData,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decls := testDeclarations()
			tt.mutate(&decls)

			s, err := Load(decls)
			require.Error(t, err)
			assert.Nil(t, s, "no partially-usable schema on load failure")
			assert.ErrorIs(t, err, tt.sentinel)
			assert.True(t, errors.IsFatal(err), "load errors classify fatal")
		})
	}
}

func TestDeclarations_Merge(t *testing.T) {
	base := testDeclarations()
	extra := Declarations{
		Types: []TypeDecl{
			{Name: "lab::workbench", Category: CategoryObject, Parent: "qr::body"},
		},
		Predicates: []PredicateDecl{
			{Name: "lab::on-bench", Parameters: []Parameter{
				{Role: "body", Type: "qr::body"},
				{Role: "bench", Type: "lab::workbench"},
			}},
		},
	}

	s, err := Load(base.Merge(extra))
	require.NoError(t, err)

	assert.True(t, s.IsSubtype("lab::workbench", "qr::body"))
	_, ok := s.SignatureOf("lab::on-bench")
	assert.True(t, ok)

	// Merge copies; the base list is untouched.
	assert.Len(t, base.Types, 5)
}

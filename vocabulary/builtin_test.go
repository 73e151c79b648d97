package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/fact"
	"github.com/RAraghavarora/lisdf/schema"
)

func TestBuiltin_Loads(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)
	require.NotNil(t, s)

	// Loaded once; repeated calls return the same frozen schema.
	again, err := Builtin()
	require.NoError(t, err)
	assert.Same(t, s, again)
}

func TestBuiltin_TypeHierarchy(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
		ancestor  string
		expected  bool
	}{
		{"frame is a body", TypeFrame, TypeBody, true},
		{"box is a body", TypeBox, TypeBody, true},
		{"every object descends from the root", TypeMesh, schema.RootObject, true},
		{"every value descends from the root", TypeChainConf, schema.RootValue, true},
		{"chain is not a body", TypeChain, TypeBody, false},
		{"categories do not mix", TypePose, schema.RootObject, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.IsSubtype(tt.candidate, tt.ancestor))
		})
	}
}

func TestBuiltin_Shapes(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)

	tests := []struct {
		typeName string
		kind     schema.ShapeKind
		arity    int
	}{
		{TypePose, schema.ShapeTuple, 6},
		{TypePose2D, schema.ShapeTuple, 2},
		{TypeColor, schema.ShapeTuple, 4},
		{TypeInertia, schema.ShapeTuple, 3},
		{TypeJointConf, schema.ShapeScalar, -1},
		{TypeChainConf, schema.ShapeSequence, -1},
		{TypeString, schema.ShapeScalar, -1},
	}

	for _, tt := range tests {
		t.Run(tt.typeName, func(t *testing.T) {
			shape, ok := s.ShapeOf(tt.typeName)
			require.True(t, ok)
			assert.Equal(t, tt.kind, shape.Kind)
			assert.Equal(t, tt.arity, shape.Arity())
		})
	}
}

func TestBuiltin_Constructors(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)

	ctors := s.Constructors()
	require.NotEmpty(t, ctors)

	assert.Equal(t, TypeFrame, ctors[0].Type.Name)
	assert.Equal(t, "world", ctors[0].Label)

	for _, c := range ctors {
		assert.True(t, s.IsSubtype(c.Type.Name, schema.RootObject),
			"constructor %s must be an object type", c.Type.Name)
	}
}

func TestBuiltin_ValidatesDomainFacts(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)
	v := fact.NewValidator(s)

	tests := []struct {
		name string
		fact fact.Fact
		ok   bool
	}{
		{
			name: "weld world to box",
			fact: fact.New(GeomWeld,
				fact.ObjectRef("world", TypeFrame),
				fact.ObjectRef("shelf", TypeFrame),
				fact.Literal([]float64{0.4, 0, 0.9, 0, 0, 0})),
			ok: true,
		},
		{
			name: "box color",
			fact: fact.New(GeomBodyColor,
				fact.ObjectRef("crate", TypeBox),
				fact.Literal([]float64{0.8, 0.2, 0.2, 1})),
			ok: true,
		},
		{
			name: "chain configuration of any length",
			fact: fact.New(ConfChain,
				fact.ObjectRef("left-arm", TypeChain),
				fact.Literal([]float64{0.1, -0.4, 1.2, 0, 0.7, 0, 0.3})),
			ok: true,
		},
		{
			name: "contact model is an unconstrained string",
			fact: fact.New(GeomBoxContactModel,
				fact.ObjectRef("crate", TypeBox),
				fact.Literal("hydroelastic")),
			ok: true,
		},
		{
			name: "gravity scalar",
			fact: fact.New(SimGravity, fact.Literal(9.81)),
			ok:   true,
		},
		{
			name: "inertia needs three fields",
			fact: fact.New(GeomBodyInertia,
				fact.ObjectRef("crate", TypeBox),
				fact.Literal([]float64{0.1, 0.1})),
			ok: false,
		},
		{
			name: "weld refuses a bare body for a frame parameter",
			fact: fact.New(GeomWeld,
				fact.ObjectRef("crate", TypeBody),
				fact.ObjectRef("shelf", TypeFrame),
				fact.Literal([]float64{0, 0, 0, 0, 0, 0})),
			ok: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.fact)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBuiltin_EveryPredicateHasMetadata(t *testing.T) {
	s, err := Builtin()
	require.NoError(t, err)

	for _, name := range s.PredicateNames() {
		meta := Metadata(name)
		require.NotNil(t, meta, "predicate %s has no metadata", name)
		assert.NotEmpty(t, meta.Description, "predicate %s has an empty description", name)
	}
}

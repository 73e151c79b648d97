package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/errors"
)

// newShapeFixture builds a registry with the value types the shape tests
// need: a scalar, a 6-field pose tuple, and an unbounded configuration
// sequence.
func newShapeFixture(t *testing.T) (*TypeRegistry, *ShapeCatalog) {
	t.Helper()

	r := NewTypeRegistry()
	require.NoError(t, r.Register("qr::scalar", CategoryValue, ""))
	require.NoError(t, r.Register("qr::string", CategoryValue, ""))
	require.NoError(t, r.Register("qr::pose", CategoryValue, ""))
	require.NoError(t, r.Register("qr::chain-conf", CategoryValue, ""))

	c := NewShapeCatalog(r)
	require.NoError(t, c.Define("qr::scalar", Scalar()))
	require.NoError(t, c.Define("qr::string", Scalar()))
	require.NoError(t, c.Define("qr::pose", Tuple(
		Field{Name: "x", Type: "qr::scalar"},
		Field{Name: "y", Type: "qr::scalar"},
		Field{Name: "z", Type: "qr::scalar"},
		Field{Name: "roll", Type: "qr::scalar"},
		Field{Name: "pitch", Type: "qr::scalar"},
		Field{Name: "yaw", Type: "qr::scalar"},
	)))
	require.NoError(t, c.Define("qr::chain-conf", Sequence("qr::scalar")))

	return r, c
}

func TestShapeCatalog_Define(t *testing.T) {
	r, c := newShapeFixture(t)

	t.Run("unknown value type", func(t *testing.T) {
		err := c.Define("qr::color", Scalar())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownValueType)
	})

	t.Run("duplicate shape", func(t *testing.T) {
		err := c.Define("qr::pose", Scalar())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrDuplicateShape)
	})

	t.Run("tuple field type must be registered", func(t *testing.T) {
		require.NoError(t, r.Register("qr::pose2d", CategoryValue, ""))
		err := c.Define("qr::pose2d", Tuple(
			Field{Name: "x", Type: "qr::missing"},
			Field{Name: "y", Type: "qr::scalar"},
		))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownValueType)
	})

	t.Run("sequence element type must be registered", func(t *testing.T) {
		require.NoError(t, r.Register("qr::path", CategoryValue, ""))
		err := c.Define("qr::path", Sequence("qr::missing"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownValueType)
	})

	t.Run("object types cannot carry shapes", func(t *testing.T) {
		require.NoError(t, r.Register("qr::body", CategoryObject, ""))
		err := c.Define("qr::body", Scalar())
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownValueType)
	})
}

func TestShapeCatalog_Conforms(t *testing.T) {
	_, c := newShapeFixture(t)

	tests := []struct {
		name     string
		typeName string
		payload  any
		expected bool
	}{
		{"scalar accepts string", "qr::string", "hydroelastic", true},
		{"scalar accepts float", "qr::scalar", 1.57, true},
		{"scalar accepts int", "qr::scalar", 3, true},
		{"scalar accepts bool", "qr::scalar", true, true},
		{"scalar rejects sequence", "qr::scalar", []any{1.0}, false},
		{"tuple accepts exact arity", "qr::pose", []any{1.0, 2.0, 0.5, 0.0, 0.0, 1.57}, true},
		{"tuple accepts float64 slice", "qr::pose", []float64{1, 2, 0.5, 0, 0, 1.57}, true},
		{"tuple rejects short payload", "qr::pose", []any{1.0, 2.0}, false},
		{"tuple rejects long payload", "qr::pose", []float64{1, 2, 3, 4, 5, 6, 7}, false},
		{"tuple rejects scalar payload", "qr::pose", 1.0, false},
		{"tuple rejects non-scalar element", "qr::pose", []any{1.0, 2.0, []any{}, 0.0, 0.0, 0.0}, false},
		{"sequence accepts any length", "qr::chain-conf", []float64{0.1, 0.2, 0.3, 0.4}, true},
		{"sequence accepts empty", "qr::chain-conf", []any{}, true},
		{"sequence rejects scalar payload", "qr::chain-conf", "not-a-sequence", false},
		{"sequence rejects bad element", "qr::chain-conf", []any{0.1, []any{0.2}}, false},
		{"undeclared type never conforms", "qr::ghost", 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Conforms(tt.typeName, tt.payload))
		})
	}
}

func TestShapeCatalog_DescribePayload(t *testing.T) {
	_, c := newShapeFixture(t)

	assert.Equal(t, "length 2, expected 6",
		c.DescribePayload("qr::pose", []any{1.0, 2.0}))
	assert.Equal(t, "sequence of length 3",
		c.DescribePayload("qr::chain-conf", []float64{1, 2, 3}))
	assert.Equal(t, "scalar not-a-sequence",
		c.DescribePayload("qr::chain-conf", "not-a-sequence"))
}

func TestValueShape_Arity(t *testing.T) {
	assert.Equal(t, -1, Scalar().Arity())
	assert.Equal(t, -1, Sequence("qr::scalar").Arity())
	assert.Equal(t, 2, Tuple(
		Field{Name: "x", Type: "qr::scalar"},
		Field{Name: "y", Type: "qr::scalar"},
	).Arity())
}

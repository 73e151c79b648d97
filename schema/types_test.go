package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/errors"
)

func TestTypeRegistry_Roots(t *testing.T) {
	r := NewTypeRegistry()

	obj, ok := r.Resolve(RootObject)
	require.True(t, ok)
	assert.True(t, obj.IsRoot())
	assert.Equal(t, CategoryObject, obj.Category)

	val, ok := r.Resolve(RootValue)
	require.True(t, ok)
	assert.True(t, val.IsRoot())
	assert.Equal(t, CategoryValue, val.Category)

	assert.Equal(t, 2, r.Len())
}

func TestTypeRegistry_Register(t *testing.T) {
	r := NewTypeRegistry()

	require.NoError(t, r.Register("qr::body", CategoryObject, ""))
	require.NoError(t, r.Register("qr::frame", CategoryObject, "qr::body"))

	node, ok := r.Resolve("qr::frame")
	require.True(t, ok)
	assert.Equal(t, "qr::body", node.Parent.Name)

	t.Run("duplicate name in category", func(t *testing.T) {
		err := r.Register("qr::body", CategoryObject, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrDuplicateType)
	})

	t.Run("unknown parent", func(t *testing.T) {
		err := r.Register("qr::wheel", CategoryObject, "qr::vehicle")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownParent)
	})

	t.Run("parent must be in same category", func(t *testing.T) {
		err := r.Register("qr::pose", CategoryValue, "qr::body")
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownParent)
	})
}

func TestTypeRegistry_IsSubtype(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register("qr::body", CategoryObject, ""))
	require.NoError(t, r.Register("qrgeom::box", CategoryObject, "qr::body"))
	require.NoError(t, r.Register("qr::scalar", CategoryValue, ""))

	tests := []struct {
		name      string
		candidate string
		ancestor  string
		expected  bool
	}{
		{"reflexive", "qr::body", "qr::body", true},
		{"direct parent", "qrgeom::box", "qr::body", true},
		{"transitive to root", "qrgeom::box", RootObject, true},
		{"root is ancestor of all objects", "qr::body", RootObject, true},
		{"root is ancestor of all values", "qr::scalar", RootValue, true},
		{"not an ancestor", "qr::body", "qrgeom::box", false},
		{"cross category", "qr::scalar", RootObject, false},
		{"unregistered candidate", "qr::ghost", RootObject, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.IsSubtype(tt.candidate, tt.ancestor))
		})
	}
}

// Transitivity over a deeper chain: if A <= B and B <= C then A <= C.
func TestTypeRegistry_SubtypeTransitivity(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register("a", CategoryObject, ""))
	require.NoError(t, r.Register("b", CategoryObject, "a"))
	require.NoError(t, r.Register("c", CategoryObject, "b"))
	require.NoError(t, r.Register("d", CategoryObject, "c"))

	names := []string{"a", "b", "c", "d"}
	for _, x := range names {
		assert.True(t, r.IsSubtype(x, x), "reflexivity for %s", x)
	}
	for i, ancestor := range names {
		for _, candidate := range names[i:] {
			assert.True(t, r.IsSubtype(candidate, ancestor),
				"%s should be subtype of %s", candidate, ancestor)
		}
	}
}

func TestTypeRegistry_Verify(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register("qr::body", CategoryObject, ""))
	require.NoError(t, r.Verify())

	// Force a cycle directly; Register cannot create one because parents
	// must pre-exist, but Verify still has to catch a malformed table.
	a, _ := r.ResolveIn("qr::body", CategoryObject)
	root, _ := r.ResolveIn(RootObject, CategoryObject)
	root.Parent = a
	defer func() { root.Parent = nil }()

	err := r.Verify()
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrCyclicHierarchy)
}

func TestTypeRegistry_Names(t *testing.T) {
	r := NewTypeRegistry()
	require.NoError(t, r.Register("qr::frame", CategoryObject, ""))
	require.NoError(t, r.Register("qr::body", CategoryObject, ""))

	assert.Equal(t, []string{"qr::body", "qr::frame", RootObject}, r.Names(CategoryObject))
	assert.Equal(t, []string{RootValue}, r.Names(CategoryValue))
}

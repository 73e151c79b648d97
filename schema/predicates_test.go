package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/errors"
)

func newPredicateFixture(t *testing.T) (*TypeRegistry, *PredicateRegistry) {
	t.Helper()

	r := NewTypeRegistry()
	require.NoError(t, r.Register("qr::body", CategoryObject, ""))
	require.NoError(t, r.Register("qr::pose", CategoryValue, ""))

	return r, NewPredicateRegistry(r)
}

func TestPredicateRegistry_Define(t *testing.T) {
	_, p := newPredicateFixture(t)

	params := []Parameter{
		{Role: "body", Type: "qr::body"},
		{Role: "pose", Type: "qr::pose"},
	}
	require.NoError(t, p.Define("qrgeom::body-pose", params))

	sig, ok := p.SignatureOf("qrgeom::body-pose")
	require.True(t, ok)
	assert.Equal(t, 2, sig.Arity())
	assert.Equal(t, "body", sig.Parameters[0].Role)
	assert.Equal(t, "qr::pose", sig.Parameters[1].Type)

	t.Run("duplicate predicate", func(t *testing.T) {
		err := p.Define("qrgeom::body-pose", params)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrDuplicatePredicate)
	})

	t.Run("unknown parameter type", func(t *testing.T) {
		err := p.Define("qrgeom::body-twist", []Parameter{
			{Role: "body", Type: "qr::body"},
			{Role: "twist", Type: "qr::twist"},
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrUnknownParameterType)
	})

	t.Run("namespaces are distinct identifiers", func(t *testing.T) {
		require.NoError(t, p.Define("sim::body-pose", params))
		_, ok := p.SignatureOf("sim::body-pose")
		assert.True(t, ok)
		// The qrgeom:: signature is untouched.
		_, ok = p.SignatureOf("qrgeom::body-pose")
		assert.True(t, ok)
	})
}

func TestPredicateRegistry_SignatureImmutability(t *testing.T) {
	_, p := newPredicateFixture(t)

	params := []Parameter{{Role: "body", Type: "qr::body"}}
	require.NoError(t, p.Define("urdf::prop", params))

	// Mutating the caller's slice must not reach the stored signature.
	params[0].Type = "qr::pose"

	sig, ok := p.SignatureOf("urdf::prop")
	require.True(t, ok)
	assert.Equal(t, "qr::body", sig.Parameters[0].Type)
}

func TestPredicateRegistry_Names(t *testing.T) {
	_, p := newPredicateFixture(t)

	require.NoError(t, p.Define("urdf::prop", []Parameter{{Role: "body", Type: "qr::body"}}))
	require.NoError(t, p.Define("qrgeom::weld", []Parameter{{Role: "parent", Type: "qr::body"}}))

	assert.Equal(t, []string{"qrgeom::weld", "urdf::prop"}, p.Names())
	assert.Equal(t, 2, p.Len())
}

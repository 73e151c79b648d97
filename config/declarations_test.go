package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RAraghavarora/lisdf/fact"
	"github.com/RAraghavarora/lisdf/schema"
	"github.com/RAraghavarora/lisdf/vocabulary"
)

const extraDecls = `{
	"types": [
		{"name": "lab::gripper", "category": "object", "parent": "qr::body"},
		{"name": "lab::grip-width", "category": "value"}
	],
	"constructors": [
		{"type": "lab::gripper", "label": "gripper"}
	],
	"predicates": [
		{"name": "lab::grip", "parameters": [
			{"role": "gripper", "type": "lab::gripper"},
			{"role": "width", "type": "lab::grip-width"}
		]}
	]
}`

func writeDecls(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "decls.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDeclarations(t *testing.T) {
	decls, err := LoadDeclarations(writeDecls(t, extraDecls))
	require.NoError(t, err)

	require.Len(t, decls.Types, 2)
	assert.Equal(t, "lab::gripper", decls.Types[0].Name)
	assert.Equal(t, schema.CategoryObject, decls.Types[0].Category)
	assert.Equal(t, schema.CategoryValue, decls.Types[1].Category)
	require.Len(t, decls.Predicates, 1)
	assert.Equal(t, 2, len(decls.Predicates[0].Parameters))
}

func TestLoadDeclarations_BadCategory(t *testing.T) {
	_, err := LoadDeclarations(writeDecls(t, `{"types": [{"name": "x", "category": "thing"}]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown type category")
}

func TestBuildSchema_BuiltinOnly(t *testing.T) {
	cfg := NewLoader().getDefaults()
	s, err := cfg.BuildSchema()
	require.NoError(t, err)

	builtin, err := vocabulary.Builtin()
	require.NoError(t, err)
	assert.Same(t, builtin, s)
}

func TestBuildSchema_WithDeclarationsFile(t *testing.T) {
	cfg := NewLoader().getDefaults()
	cfg.Schema.DeclarationsFile = writeDecls(t, extraDecls)

	s, err := cfg.BuildSchema()
	require.NoError(t, err)

	// Extra types join the builtin hierarchy.
	assert.True(t, s.IsSubtype("lab::gripper", vocabulary.TypeBody))

	sig, ok := s.SignatureOf("lab::grip")
	require.True(t, ok)
	assert.Equal(t, 2, sig.Arity())

	// A fact against the extension validates end to end.
	v := fact.NewValidator(s)
	err = v.Validate(fact.New("lab::grip",
		fact.ObjectRef("left-gripper", "lab::gripper"),
		fact.Literal(0.05)))
	assert.NoError(t, err)
}

package schema

import (
	"fmt"
	"sort"

	"github.com/RAraghavarora/lisdf/errors"
)

// Parameter is one position of a predicate signature: a role name and the
// declared type for arguments at that position. The declared type may be
// an object type or a value type.
type Parameter struct {
	Role string `json:"role"`
	Type string `json:"type"`
}

// PredicateSignature is a named relation with an ordered, typed parameter
// list. Signatures are created at schema-load time and immutable
// thereafter.
type PredicateSignature struct {
	Name       string      `json:"name"`
	Parameters []Parameter `json:"parameters"`
}

// Arity returns the number of parameters.
func (s PredicateSignature) Arity() int {
	return len(s.Parameters)
}

// PredicateRegistry stores predicate signatures keyed by qualified name.
// Namespace prefixes (qrgeom::, urdf::, sim::) are part of the flat
// identifier; there is no cross-namespace resolution.
type PredicateRegistry struct {
	types *TypeRegistry
	sigs  map[string]PredicateSignature
}

// NewPredicateRegistry creates an empty registry backed by the given type
// registry.
func NewPredicateRegistry(types *TypeRegistry) *PredicateRegistry {
	return &PredicateRegistry{
		types: types,
		sigs:  make(map[string]PredicateSignature),
	}
}

// Define registers a predicate signature. Every parameter's declared type
// must already be registered in either category.
func (r *PredicateRegistry) Define(name string, parameters []Parameter) error {
	if _, exists := r.sigs[name]; exists {
		return errors.WrapFatal(
			fmt.Errorf("%w: %s", errors.ErrDuplicatePredicate, name),
			"PredicateRegistry", "Define", "duplicate check")
	}

	for _, p := range parameters {
		if _, ok := r.types.Resolve(p.Type); !ok {
			return errors.WrapFatal(
				fmt.Errorf("%w: %s (parameter %s of %s)",
					errors.ErrUnknownParameterType, p.Type, p.Role, name),
				"PredicateRegistry", "Define", "parameter type lookup")
		}
	}

	sig := PredicateSignature{Name: name, Parameters: make([]Parameter, len(parameters))}
	copy(sig.Parameters, parameters)
	r.sigs[name] = sig
	return nil
}

// SignatureOf returns the signature for a predicate name.
func (r *PredicateRegistry) SignatureOf(name string) (PredicateSignature, bool) {
	sig, ok := r.sigs[name]
	return sig, ok
}

// Names returns the sorted names of all registered predicates.
func (r *PredicateRegistry) Names() []string {
	names := make([]string, 0, len(r.sigs))
	for name := range r.sigs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered predicates.
func (r *PredicateRegistry) Len() int {
	return len(r.sigs)
}

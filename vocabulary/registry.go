package vocabulary

import (
	"sort"
	"strings"
	"sync"
)

// PredicateMetadata carries the human-facing description of a predicate:
// what it means, its units and valid ranges where applicable. Metadata is
// advisory documentation for tooling; it never affects validation.
type PredicateMetadata struct {
	// Name is the qualified predicate name, e.g. "qrgeom::body-mass".
	Name string
	// Namespace is the prefix before "::", e.g. "qrgeom".
	Namespace string
	// Description is a human-readable summary.
	Description string
	// Units names the measurement units, if applicable ("meters", "kg").
	Units string
	// Range describes valid values, if applicable ("0-1", "positive").
	Range string
	// StandardIRI is the W3C/RDF equivalent IRI, if one exists. Enables
	// RDF/JSON-LD export for tooling that speaks semantic web vocabularies.
	StandardIRI string
}

// Global predicate metadata registry
var (
	registryMu        sync.RWMutex
	predicateRegistry = make(map[string]PredicateMetadata)
)

// Option is a functional option for configuring predicate registration.
type Option func(*PredicateMetadata)

// WithDescription sets the human-readable description of the predicate.
func WithDescription(desc string) Option {
	return func(m *PredicateMetadata) {
		m.Description = desc
	}
}

// WithUnits specifies the measurement units (if applicable).
// Examples: "meters", "kg", "m/s²", "seconds"
func WithUnits(units string) Option {
	return func(m *PredicateMetadata) {
		m.Units = units
	}
}

// WithRange describes valid value ranges (if applicable).
// Examples: "0-1", "positive", "point|hydroelastic (advisory)"
func WithRange(valueRange string) Option {
	return func(m *PredicateMetadata) {
		m.Range = valueRange
	}
}

// WithIRI sets the W3C/RDF equivalent IRI for standards compliance.
//
// Examples:
//   - WithIRI("http://schema.org/color")
//   - WithIRI("http://qudt.org/vocab/quantitykind/Mass")
func WithIRI(iri string) Option {
	return func(m *PredicateMetadata) {
		m.StandardIRI = iri
	}
}

// Register records metadata for a predicate in the global registry.
// Called during package initialization by vocabulary files. Registering
// the same name again overwrites, which lets deployments refine the
// built-in descriptions.
//
// Example:
//
//	Register(GeomBodyMass,
//	    WithDescription("Mass of a rigid body"),
//	    WithUnits("kg"),
//	    WithRange("positive"))
func Register(name string, opts ...Option) {
	meta := PredicateMetadata{
		Name:      name,
		Namespace: parseNamespace(name),
	}
	for _, opt := range opts {
		opt(&meta)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	predicateRegistry[name] = meta
}

// parseNamespace extracts the namespace prefix from a qualified name.
// For "qrgeom::body-pose" it returns "qrgeom"; for an unqualified name
// it returns "".
func parseNamespace(name string) string {
	idx := strings.Index(name, "::")
	if idx < 0 {
		return ""
	}
	return name[:idx]
}

// Metadata retrieves metadata for a predicate. Returns nil if none is
// registered. Thread-safe; returns a copy to keep the registry internal.
func Metadata(predicate string) *PredicateMetadata {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if meta, exists := predicateRegistry[predicate]; exists {
		metaCopy := meta
		return &metaCopy
	}
	return nil
}

// RegisteredNames returns the sorted names of all predicates with
// metadata.
func RegisteredNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(predicateRegistry))
	for name := range predicateRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NamespaceOf returns the namespace prefix of a qualified name.
func NamespaceOf(name string) string {
	return parseNamespace(name)
}

package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/RAraghavarora/lisdf/errors"
)

// Category separates the two disjoint halves of the type hierarchy.
// Object types describe instantiable things (bodies, frames, chains);
// value types describe the structured values facts carry (poses, colors,
// configurations). Subtyping never crosses categories.
type Category int

const (
	// CategoryObject is the category of instantiable object types.
	CategoryObject Category = iota
	// CategoryValue is the category of structured value types.
	CategoryValue
)

// String returns the string representation of the category
func (c Category) String() string {
	switch c {
	case CategoryObject:
		return "object"
	case CategoryValue:
		return "value"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the category as its string form so declaration
// files stay human-readable.
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes "object" or "value".
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "object":
		*c = CategoryObject
	case "value":
		*c = CategoryValue
	default:
		return fmt.Errorf("unknown type category %q", s)
	}
	return nil
}

// Built-in category roots. Every registered type is a descendant of the
// root of its category.
const (
	// RootObject is the root of the object type hierarchy.
	RootObject = "qr::object"
	// RootValue is the root of the value type hierarchy.
	RootValue = "qr::value"
)

// TypeNode is one entry in the nominal type hierarchy. Nodes are created
// once at schema-load time and immutable thereafter; the parent chain is
// acyclic and ends at the category root.
//
// Names are fully qualified identifiers. Namespace prefixes such as
// "qrgeom::" or "urdf::" are opaque parts of the name, not a module
// system: two names differing only in prefix are unrelated.
type TypeNode struct {
	// Name is the fully qualified type name, e.g. "qr::pose".
	Name string
	// Category is the hierarchy half this node belongs to.
	Category Category
	// Parent is the supertype, or nil for a category root.
	Parent *TypeNode
}

// IsRoot reports whether this node is a category root.
func (n *TypeNode) IsRoot() bool {
	return n.Parent == nil
}

// TypeRegistry stores the nominal type hierarchy and answers subtype and
// membership queries. The registry is populated by the schema loader in a
// single parent-before-child pass and is read-only afterwards.
type TypeRegistry struct {
	nodes map[Category]map[string]*TypeNode
}

// NewTypeRegistry creates a registry pre-populated with the two built-in
// category roots, qr::object and qr::value.
func NewTypeRegistry() *TypeRegistry {
	r := &TypeRegistry{
		nodes: map[Category]map[string]*TypeNode{
			CategoryObject: make(map[string]*TypeNode),
			CategoryValue:  make(map[string]*TypeNode),
		},
	}
	r.nodes[CategoryObject][RootObject] = &TypeNode{Name: RootObject, Category: CategoryObject}
	r.nodes[CategoryValue][RootValue] = &TypeNode{Name: RootValue, Category: CategoryValue}
	return r
}

// Register adds a type to the hierarchy. An empty parent name registers
// the type directly under its category root, matching the source
// convention where base types carry no explicit supertype.
//
// Registration order must respect parent-before-child; a forward
// reference surfaces as ErrUnknownParent.
func (r *TypeRegistry) Register(name string, category Category, parent string) error {
	byName, ok := r.nodes[category]
	if !ok {
		return errors.WrapInvalid(
			fmt.Errorf("category %d", category),
			"TypeRegistry", "Register", "unknown category")
	}

	if _, exists := byName[name]; exists {
		return errors.WrapFatal(
			fmt.Errorf("%w: %s (%s)", errors.ErrDuplicateType, name, category),
			"TypeRegistry", "Register", "duplicate check")
	}

	if parent == "" {
		parent = rootOf(category)
	}
	parentNode, exists := byName[parent]
	if !exists {
		return errors.WrapFatal(
			fmt.Errorf("%w: %s (parent of %s)", errors.ErrUnknownParent, parent, name),
			"TypeRegistry", "Register", "parent lookup")
	}

	byName[name] = &TypeNode{Name: name, Category: category, Parent: parentNode}
	return nil
}

// Resolve looks up a type by name, searching the object category first.
// Name uniqueness is per category, so a schema may legally reuse a name
// across categories; callers that know the expected category must use
// ResolveIn so the object entry cannot shadow the value one.
func (r *TypeRegistry) Resolve(name string) (*TypeNode, bool) {
	if node, ok := r.nodes[CategoryObject][name]; ok {
		return node, true
	}
	if node, ok := r.nodes[CategoryValue][name]; ok {
		return node, true
	}
	return nil, false
}

// ResolveIn looks up a type by name within a single category.
func (r *TypeRegistry) ResolveIn(name string, category Category) (*TypeNode, bool) {
	node, ok := r.nodes[category][name]
	return node, ok
}

// IsSubtype reports whether candidate equals ancestor or ancestor appears
// in candidate's parent chain. The walk is bounded by the registry size;
// exceeding the bound means the hierarchy is malformed and the candidate
// is treated as unrelated.
func (r *TypeRegistry) IsSubtype(candidate, ancestor string) bool {
	node, ok := r.Resolve(candidate)
	if !ok {
		return false
	}

	limit := r.Len()
	for steps := 0; node != nil && steps <= limit; steps++ {
		if node.Name == ancestor {
			return true
		}
		node = node.Parent
	}
	return false
}

// Len returns the number of registered types, including the two roots.
func (r *TypeRegistry) Len() int {
	return len(r.nodes[CategoryObject]) + len(r.nodes[CategoryValue])
}

// Names returns the sorted names of all types in a category.
func (r *TypeRegistry) Names(category Category) []string {
	byName := r.nodes[category]
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Verify walks every parent chain and confirms it reaches a category root
// within the registry size bound. A chain that does not terminate means a
// cycle was introduced by a malformed declaration list; this is fatal and
// reported as ErrCyclicHierarchy.
func (r *TypeRegistry) Verify() error {
	limit := r.Len()
	for _, byName := range r.nodes {
		for name, node := range byName {
			steps := 0
			for n := node; n != nil; n = n.Parent {
				if steps > limit {
					return errors.WrapFatal(
						fmt.Errorf("%w: detected at %s", errors.ErrCyclicHierarchy, name),
						"TypeRegistry", "Verify", "parent chain walk")
				}
				steps++
			}
		}
	}
	return nil
}

func rootOf(category Category) string {
	if category == CategoryObject {
		return RootObject
	}
	return RootValue
}

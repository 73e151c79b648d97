package component

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/RAraghavarora/lisdf/errors"
)

// Factory creates a component instance from configuration. The factory
// receives raw JSON configuration and dependencies, parses its own config,
// and returns an initialized component. All I/O happens in the component's
// Start method, never in the factory.
type Factory func(rawConfig json.RawMessage, deps Dependencies) (Discoverable, error)

// Registration holds factory and metadata for a component type
type Registration struct {
	Name        string       `json:"name"`        // Factory name (e.g., "factcheck")
	Type        string       `json:"type"`        // Component type (processor/output/gateway)
	Description string       `json:"description"` // Human-readable description
	Version     string       `json:"version"`     // Component version
	Schema      ConfigSchema `json:"schema"`      // Schema as static metadata
	Factory     Factory      `json:"-"`           // Factory function (not serializable)
}

// Registry manages component factories and instances with thread-safe
// registration and lookup. Exclusive port resources are tracked so two
// instances cannot bind the same address.
type Registry struct {
	factories       map[string]*Registration
	instances       map[string]Discoverable
	resourceTracker map[string]string // resource ID -> instance name
	mu              sync.RWMutex
}

// NewRegistry creates a new empty component registry
func NewRegistry() *Registry {
	return &Registry{
		factories:       make(map[string]*Registration),
		instances:       make(map[string]Discoverable),
		resourceTracker: make(map[string]string),
	}
}

// RegisterFactory registers a component factory with the given name.
// Returns an error if a factory with the same name is already registered.
func (r *Registry) RegisterFactory(name string, registration *Registration) error {
	if name == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "factory name validation")
	}
	if registration == nil || registration.Factory == nil {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "registration validation")
	}
	if registration.Type == "" {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "Registry", "RegisterFactory", "component type validation")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[name]; exists {
		msg := fmt.Errorf("factory '%s' is already registered", name)
		return errors.WrapInvalid(msg, "Registry", "RegisterFactory", "duplicate factory check")
	}

	r.factories[name] = registration
	return nil
}

// CreateComponent creates and registers a component instance using the
// named factory. instanceName must be unique among live instances.
func (r *Registry) CreateComponent(
	factoryName, instanceName string, rawConfig json.RawMessage, deps Dependencies,
) (Discoverable, error) {
	r.mu.RLock()
	registration, exists := r.factories[factoryName]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.WrapInvalid(
			fmt.Errorf("no factory registered with name '%s'", factoryName),
			"Registry", "CreateComponent", "factory lookup")
	}

	comp, err := registration.Factory(rawConfig, deps)
	if err != nil {
		return nil, errors.Wrap(err, "Registry", "CreateComponent",
			fmt.Sprintf("factory '%s' failed", factoryName))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[instanceName]; exists {
		return nil, errors.WrapInvalid(
			fmt.Errorf("instance '%s' already exists", instanceName),
			"Registry", "CreateComponent", "duplicate instance check")
	}

	// Claim exclusive port resources before registering.
	for _, port := range append(comp.InputPorts(), comp.OutputPorts()...) {
		if port.Config == nil || !port.Config.IsExclusive() {
			continue
		}
		resourceID := port.Config.ResourceID()
		if owner, claimed := r.resourceTracker[resourceID]; claimed {
			return nil, errors.WrapInvalid(
				fmt.Errorf("resource %s already claimed by instance '%s'", resourceID, owner),
				"Registry", "CreateComponent", "resource conflict check")
		}
		r.resourceTracker[resourceID] = instanceName
	}

	r.instances[instanceName] = comp
	return comp, nil
}

// GetInstance returns a registered component instance by name
func (r *Registry) GetInstance(name string) (Discoverable, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	comp, exists := r.instances[name]
	return comp, exists
}

// RemoveInstance removes an instance and releases its exclusive resources
func (r *Registry) RemoveInstance(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.instances[name]; !exists {
		return false
	}

	delete(r.instances, name)
	for resourceID, owner := range r.resourceTracker {
		if owner == name {
			delete(r.resourceTracker, resourceID)
		}
	}
	return true
}

// ListFactories returns the names of all registered factories, sorted
func (r *Registry) ListFactories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListInstances returns the names of all live instances, sorted
func (r *Registry) ListInstances() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.instances))
	for name := range r.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

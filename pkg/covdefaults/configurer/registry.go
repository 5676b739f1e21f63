package configurer

import (
	"fmt"
	"sort"
	"sync"
)

// Name is the registry name the default configurer is registered
// under; the host discovers it by this name during its configuration
// phase.
const Name = "covdefaults"

// Factory creates a configurer from construction options.
type Factory func(Options) *Configurer

// Registry manages configurer registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates a new configurer registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a configurer factory to the registry.
// It replaces any existing factory with the same name.
func (r *Registry) Register(name string, factory Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns the factory registered under name.
// It returns an error if no configurer is registered under name.
func (r *Registry) Get(name string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown configurer: %s", name)
	}
	return factory, nil
}

// Available returns a sorted list of all registered configurer names.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultRegistry is the global configurer registry.
var DefaultRegistry = NewRegistry()

// Register adds a configurer factory to the default registry.
func Register(name string, factory Factory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a factory from the default registry.
func Get(name string) (Factory, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all configurer names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

func init() {
	Register(Name, New)
}

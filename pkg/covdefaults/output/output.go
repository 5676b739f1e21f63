// Package output provides formatters for reporting what the
// configurer applied to a host config (pretty, plain, json, yaml,
// paths).
//
// The package uses a registry pattern so formatter implementations
// can be selected by name at runtime:
//
//	formatter, err := output.Get("pretty")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	var buf bytes.Buffer
//	if err := formatter.Format(&buf, result); err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(buf.String())
package output

import (
	"bytes"
	"fmt"
	"sort"
	"sync"
)

// Change records a single settings-store mutation.
type Change struct {
	// Key is the namespaced option key (e.g. "run:branch").
	Key string `json:"key" yaml:"key"`

	// Old is the value before configuring; nil when the option was
	// unset.
	Old any `json:"old" yaml:"old"`

	// New is the value after configuring.
	New any `json:"new" yaml:"new"`
}

// Result contains the outcome of applying defaults to a host config.
type Result struct {
	// ConfigPath is the host config file that was configured. Empty
	// for a preview against an in-memory store.
	ConfigPath string `json:"config_path,omitempty" yaml:"config_path,omitempty"`

	// DryRun indicates the result was not written back.
	DryRun bool `json:"dry_run" yaml:"dry_run"`

	// Changes lists every option the configurer touched, in key order.
	Changes []Change `json:"changes" yaml:"changes"`

	// Source is the final source-root list.
	Source []string `json:"source" yaml:"source"`

	// Omit is the final omit pattern list.
	Omit []string `json:"omit" yaml:"omit"`

	// ExcludeLines is the final line-exclusion pattern list.
	ExcludeLines []string `json:"exclude_lines" yaml:"exclude_lines"`

	// PartialBranches is the final partial-branch pattern list.
	PartialBranches []string `json:"partial_branches" yaml:"partial_branches"`

	// Paths is the path-equivalence table after configuring.
	Paths map[string][]string `json:"paths,omitempty" yaml:"paths,omitempty"`
}

// Formatter is the interface that all output formatters must implement.
type Formatter interface {
	// Format writes the formatted output to the buffer.
	// It returns an error if formatting fails.
	Format(w *bytes.Buffer, r *Result) error
}

// FormatterFactory is a function that creates a new Formatter instance.
type FormatterFactory func() Formatter

// Registry manages formatter registration and lookup.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]FormatterFactory
}

// NewRegistry creates a new formatter registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]FormatterFactory),
	}
}

// Register adds a formatter factory to the registry.
// It will replace any existing formatter with the same name.
func (r *Registry) Register(name string, factory FormatterFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get returns a new formatter instance by name.
// It returns an error if the formatter is not found.
func (r *Registry) Get(name string) (Formatter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown formatter: %s", name)
	}
	return factory(), nil
}

// Available returns a sorted list of all registered formatter names.
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

// DefaultRegistry is the global formatter registry.
var DefaultRegistry = NewRegistry()

// Register adds a formatter factory to the default registry.
func Register(name string, factory FormatterFactory) {
	DefaultRegistry.Register(name, factory)
}

// Get returns a new formatter instance from the default registry.
func Get(name string) (Formatter, error) {
	return DefaultRegistry.Get(name)
}

// Available returns all formatter names from the default registry.
func Available() []string {
	return DefaultRegistry.Available()
}

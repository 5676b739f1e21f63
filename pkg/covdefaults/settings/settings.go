// Package settings defines the mutable settings store the configurer
// operates on. The store holds the host coverage tool's options under
// namespaced keys ("run:branch", "report:exclude_lines") plus the
// path-equivalence table used to map installed packages back to their
// source trees.
//
// The configurer never owns a store; it receives one, mutates it in
// place, and returns nothing. Two implementations are provided: an
// in-memory store for embedding and tests, and a TOML file-backed
// store for the CLI.
package settings

import (
	"sort"
)

// Store is the settings-store contract consumed by the configurer.
// Implementations are single-owner during configuration; no locking
// is required.
type Store interface {
	// GetOption returns the value for a namespaced key.
	// The second result is false when the option has never been set.
	GetOption(key string) (any, bool)

	// SetOption sets the value for a namespaced key, replacing any
	// existing value.
	SetOption(key string, value any)

	// Paths returns the mutable path-equivalence table mapping an
	// alias name to a list of equivalent paths. Entries added here
	// are persisted alongside the options.
	Paths() map[string][]string
}

// MemStore is an in-memory Store implementation.
type MemStore struct {
	options map[string]any
	paths   map[string][]string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		options: make(map[string]any),
		paths:   make(map[string][]string),
	}
}

// GetOption returns the value for key, if set.
func (s *MemStore) GetOption(key string) (any, bool) {
	v, ok := s.options[key]
	return v, ok
}

// SetOption sets the value for key.
func (s *MemStore) SetOption(key string, value any) {
	s.options[key] = value
}

// Paths returns the mutable path-equivalence table.
func (s *MemStore) Paths() map[string][]string {
	return s.paths
}

// Keys returns the set option keys in sorted order.
func (s *MemStore) Keys() []string {
	keys := make([]string, 0, len(s.options))
	for k := range s.options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Strings returns the option as a string slice. Absent options and
// options of other shapes return nil. Both []string and []any (the
// shape produced by TOML decoding) are accepted.
func Strings(s Store, key string) []string {
	v, ok := s.GetOption(key)
	if !ok {
		return nil
	}
	switch vv := v.(type) {
	case []string:
		return vv
	case []any:
		out := make([]string, 0, len(vv))
		for _, e := range vv {
			if str, ok := e.(string); ok {
				out = append(out, str)
			}
		}
		return out
	default:
		return nil
	}
}

// Int returns the option as an int, or zero when absent or not a
// number. TOML decodes integers as int64 and some front ends hand
// back float64; both are accepted.
func Int(s Store, key string) int {
	v, ok := s.GetOption(key)
	if !ok {
		return 0
	}
	switch vv := v.(type) {
	case int:
		return vv
	case int64:
		return int(vv)
	case float64:
		return int(vv)
	default:
		return 0
	}
}

// Bool returns the option as a bool, or false when absent or not a
// bool.
func Bool(s Store, key string) bool {
	v, ok := s.GetOption(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

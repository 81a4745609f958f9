package internal

import (
	"fmt"
	"slices"
	"sort"
)

// Backend persists a whole expense collection at one location
type Backend interface {
	// Load returns the stored expenses, or an empty slice if nothing has
	// been stored at the location yet.
	Load() ([]Expense, error)
	// Save replaces everything at the location with expenses.
	Save(expenses []Expense) error
	Location() string
}

// BackendFactory opens a backend for a storage path
type BackendFactory func(path string) (Backend, error)

// backends is the registry of available storage backends
var backends = map[string]BackendFactory{}

// RegisterBackend registers a backend with the given name
func RegisterBackend(name string, f BackendFactory) {
	backends[name] = f
}

// OpenBackend opens the named backend at path
func OpenBackend(name, path string) (Backend, error) {
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownBackend, name, AvailableBackends())
	}
	return f(path)
}

// AvailableBackends returns the registered backend names, sorted
func AvailableBackends() []string {
	var names []string
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsKnownBackend returns true if the name is a registered backend
func IsKnownBackend(name string) bool {
	return slices.Contains(AvailableBackends(), name)
}

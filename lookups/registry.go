// Package lookups defines the named API lookups shared by the CLI and the gateway
package lookups

import (
	"context"
	"sort"
)

// Lookup is a single named query against the API
type Lookup interface {
	// Name returns the command name of the lookup (e.g., "clan", "player")
	Name() string

	// Description is a one-line summary for help output
	Description() string

	// Run executes the lookup for arg, usually a tag or a search term
	Run(ctx context.Context, arg string) (any, error)
}

// Registry manages available lookups
type Registry struct {
	lookups map[string]Lookup
}

// NewRegistry creates a new lookup registry
func NewRegistry() *Registry {
	return &Registry{
		lookups: make(map[string]Lookup),
	}
}

// Register adds a lookup, replacing any with the same name
func (r *Registry) Register(l Lookup) {
	r.lookups[l.Name()] = l
}

// Get retrieves a lookup by name
func (r *Registry) Get(name string) (Lookup, bool) {
	l, exists := r.lookups[name]
	return l, exists
}

// List returns all registered lookup names in sorted order
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.lookups))
	for name := range r.lookups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

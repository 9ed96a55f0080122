// Package clouds defines the cost rule contract and the dispatch registry.
// One handler per resource category, registered at startup.
package clouds

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"terrafin/core/types"
)

// Handler calculates the monthly cost for one resource category.
// A nil cost with a nil error means the cost could not be determined from
// the plan; a non-nil error is a rule failure the caller must recover from.
type Handler interface {
	CalculateCost(res types.ResourceChange) (*decimal.Decimal, error)
}

// Registry maps resource-type strings to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler for a resource type
func (r *Registry) Register(resourceType string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[resourceType] = handler
}

// HandlerFor returns the handler for a resource type, if one is registered
func (r *Registry) HandlerFor(resourceType string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.handlers[resourceType]
	return handler, ok
}

// Types returns all registered resource types, sorted
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

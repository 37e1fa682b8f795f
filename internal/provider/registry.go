package provider

import (
	"fmt"
	"sort"
	"sync"
)

// Registry looks adapters up by vendor
type Registry struct {
	mu       sync.RWMutex
	adapters map[Vendor]Adapter
}

// NewRegistry creates a registry holding the given adapters
func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[Vendor]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

// Register adds or replaces the adapter for its vendor
func (r *Registry) Register(a Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[a.Vendor()] = a
}

// Get returns the adapter for a vendor
func (r *Registry) Get(v Vendor) (Adapter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.adapters[v]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownVendor, v)
	}
	return a, nil
}

// Vendors lists registered vendors in alphabetical order
func (r *Registry) Vendors() []Vendor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Vendor, 0, len(r.adapters))
	for v := range r.adapters {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

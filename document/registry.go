package document

import (
	"slices"
	"sync"
)

// Registry tracks the live documents of a process, and
// which one is current. It is safe for concurrent use.
//
// Documents are compared by reference.
type Registry struct {
	mu        sync.RWMutex
	documents []*Document
	current   *Document
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Register appends `d` to the documents, if not already present.
func (r *Registry) Register(d *Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.documents, d) {
		r.documents = append(r.documents, d)
	}
}

// Unregister removes `d`, returning false if it was not registered.
// If `d` is current, the current slot is cleared.
func (r *Registry) Unregister(d *Document) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := slices.Index(r.documents, d)
	if i == -1 {
		return false
	}
	r.documents = slices.Delete(r.documents, i, i+1)
	if r.current == d {
		r.current = nil
	}
	return true
}

// SetCurrent makes `d` the current document. It returns false,
// leaving the current document unchanged, if `d` is not registered.
func (r *Registry) SetCurrent(d *Document) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !slices.Contains(r.documents, d) {
		return false
	}
	r.current = d
	return true
}

// Current returns the current document, or nil.
func (r *Registry) Current() *Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// Documents returns a copy of the registered documents,
// in registration order.
func (r *Registry) Documents() []*Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.documents)
}

// Index returns the position of `d`, or -1.
func (r *Registry) Index(d *Document) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Index(r.documents, d)
}

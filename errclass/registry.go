package errclass

import (
	"fmt"
	"sync"
)

// Registry is an explicitly constructed, ordered collection of custom
// Extractor strategies plus the fixed built-in HTTP-shaped extractor.
//
// Custom extractors are consulted before the built-in one, in registration
// order; the first whose CanHandle returns true wins. Names are unique:
// Register on a name that already exists returns an error.
//
// The package-level DefaultRegistry and Register/Unregister/Clear/
// ListExtractors wrappers exist for call-site convenience; constructing
// your own Registry avoids sharing mutable state across unrelated callers
// and tests.
type Registry struct {
	mu         sync.Mutex
	extractors []Extractor
	builtin    Extractor
}

// NewRegistry returns an empty Registry backed by the built-in
// HTTP-shaped extractor.
func NewRegistry() *Registry {
	return &Registry{builtin: httpExtractor{}}
}

// DefaultRegistry is the registry package-level Extract/DetectClientType
// and the Register/Unregister/Clear/ListExtractors wrappers operate on.
var DefaultRegistry = NewRegistry()

// Register adds e to the registry. It fails if an extractor with the same
// name is already registered.
func Register(e Extractor) error { return DefaultRegistry.Register(e) }

// Unregister removes the extractor named name. It reports whether one was
// found.
func Unregister(name string) bool { return DefaultRegistry.Unregister(name) }

// Clear removes every registered custom extractor.
func Clear() { DefaultRegistry.Clear() }

// ListExtractors returns the names of every registered custom extractor,
// in registration order.
func ListExtractors() []string { return DefaultRegistry.List() }

// Register adds e to the registry. It fails if an extractor with the same
// name is already registered.
func (r *Registry) Register(e Extractor) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.extractors {
		if existing.Name() == e.Name() {
			return fmt.Errorf("errclass: extractor %q already registered", e.Name())
		}
	}
	r.extractors = append(r.extractors, e)
	return nil
}

// Unregister removes the extractor named name. It reports whether one was
// found.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, e := range r.extractors {
		if e.Name() == name {
			r.extractors = append(r.extractors[:i:i], r.extractors[i+1:]...)
			return true
		}
	}
	return false
}

// Clear removes every registered custom extractor.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.extractors = nil
}

// List returns the names of every registered custom extractor, in
// registration order.
func (r *Registry) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, len(r.extractors))
	for i, e := range r.extractors {
		names[i] = e.Name()
	}
	return names
}

// find returns the first extractor (custom, in order, then the built-in
// one) whose CanHandle returns true for err.
func (r *Registry) find(err error) Extractor {
	r.mu.Lock()
	custom := make([]Extractor, len(r.extractors))
	copy(custom, r.extractors)
	r.mu.Unlock()

	for _, e := range custom {
		if e.CanHandle(err) {
			return e
		}
	}
	if r.builtin.CanHandle(err) {
		return r.builtin
	}
	return nil
}

// Extract converts err into a StandardizedError via the first matching
// extractor.
func (r *Registry) Extract(err error) StandardizedError {
	if err == nil {
		return StandardizedError{ClientType: Generic}
	}
	if e := r.find(err); e != nil {
		return e.Extract(err)
	}
	return genericFallback(err)
}

// DetectClientType reports which extractor would handle err, as its
// ClientType, without the caller needing the full StandardizedError.
func (r *Registry) DetectClientType(err error) ClientType {
	if err == nil {
		return Generic
	}
	if e := r.find(err); e != nil {
		return e.Extract(err).ClientType
	}
	return Generic
}

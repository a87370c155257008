// Package registry manages many named circuit breakers behind one bounded,
// TTL-evicting cache, for processes that guard a fleet of downstream
// dependencies rather than a single one.
package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/maypok86/otter/v2"

	"github.com/bjaus/resilient/breaker"
)

const (
	// DefaultCapacity bounds how many distinct circuits the registry will
	// hold before the cache's size-based eviction starts dropping entries.
	DefaultCapacity = 1024

	// DefaultTTL is how long a circuit survives in the registry, counted
	// from when it was created, before eviction.
	DefaultTTL = time.Hour
)

// Option configures a Registry at construction.
type Option func(*config)

type config struct {
	capacity int
	ttl      time.Duration
	circuit  []breaker.Option
}

// WithCapacity bounds the number of circuits the registry keeps before the
// cache's size-based eviction starts dropping entries.
func WithCapacity(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// WithTTL sets how long a circuit survives in the registry before
// eviction, counted from when it was created.
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.ttl = d
		}
	}
}

// WithCircuitOptions supplies the breaker.Option values applied to every
// circuit the registry creates.
func WithCircuitOptions(opts ...breaker.Option) Option {
	return func(c *config) {
		c.circuit = opts
	}
}

// Registry looks up or lazily creates a named *breaker.Circuit. All
// circuits in a Registry share the same construction options; callers
// needing different policies per circuit should use separate registries
// or construct breaker.Circuit values directly.
type Registry struct {
	mu    sync.Mutex
	cache *otter.Cache[string, *breaker.Circuit]
	opts  []breaker.Option
}

// New builds a Registry. With no options it bounds itself to
// DefaultCapacity circuits with a DefaultTTL eviction window.
func New(opts ...Option) *Registry {
	cfg := config{
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	cache, err := otter.New(&otter.Options[string, *breaker.Circuit]{
		MaximumSize:      cfg.capacity,
		ExpiryCalculator: otter.ExpiryWriting[string, *breaker.Circuit](cfg.ttl),
	})
	if err != nil {
		// cfg's fields are always well-formed (clamped to positive
		// values above), so this only fires on a programmer error in
		// the otter.Options literal itself.
		panic(fmt.Sprintf("registry: building circuit cache: %v", err))
	}

	return &Registry{cache: cache, opts: cfg.circuit}
}

// Get returns the named circuit, creating it on first access. Concurrent
// Get calls for the same name never create more than one circuit.
func (r *Registry) Get(name string) *breaker.Circuit {
	if c, ok := r.cache.GetIfPresent(name); ok {
		return c
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c, ok := r.cache.GetIfPresent(name); ok {
		return c
	}

	c := breaker.New(name, r.opts...)
	r.cache.Set(name, c)
	return c
}

// Anonymous creates a new circuit under a generated name and registers
// it, for callers that don't have a stable name to key on (e.g. one
// circuit per outbound connection rather than per logical dependency).
func (r *Registry) Anonymous() *breaker.Circuit {
	id, err := uuid.NewV7()
	if err != nil {
		// NewV7 only fails if the system clock/entropy source is
		// broken; fall back to a random v4 rather than panic.
		id = uuid.New()
	}
	name := id.String()

	c := breaker.New(name, r.opts...)

	r.mu.Lock()
	r.cache.Set(name, c)
	r.mu.Unlock()

	return c
}

// Remove evicts the named circuit, if present.
func (r *Registry) Remove(name string) {
	r.cache.Invalidate(name)
}

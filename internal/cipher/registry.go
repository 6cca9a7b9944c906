package cipher

import (
	"fmt"
	"strings"
	"sync"
)

type registry struct {
	mu      sync.RWMutex
	engines map[string]*Engine
	order   []string
}

func newRegistry() *registry {
	return &registry{
		engines: make(map[string]*Engine),
	}
}

func (r *registry) register(e *Engine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	name := e.Name()
	if _, exists := r.engines[name]; exists {
		return fmt.Errorf("duplicate cipher variant: %s", name)
	}
	r.engines[name] = e
	r.order = append(r.order, name)
	return nil
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

func (r *registry) byName(name string) (*Engine, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.engines[name]
	return e, ok
}

var defaultVariants = newRegistry()

// Register validates v and makes it available through Lookup.
func Register(v Variant) (*Engine, error) {
	e, err := New(v)
	if err != nil {
		return nil, err
	}
	if err := defaultVariants.register(e); err != nil {
		return nil, err
	}
	return e, nil
}

func mustRegister(v Variant) {
	if err := defaultVariants.register(MustNew(v)); err != nil {
		panic(err)
	}
}

// Names returns the registered variant names in registration order.
func Names() []string {
	return defaultVariants.names()
}

// Lookup returns the engine registered under name.
func Lookup(name string) (*Engine, error) {
	e, ok := defaultVariants.byName(name)
	if !ok {
		return nil, fmt.Errorf("unknown cipher variant %q (known: %s)", name, strings.Join(Names(), ", "))
	}
	return e, nil
}

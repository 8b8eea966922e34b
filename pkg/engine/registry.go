package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps backend names to the factories that build their engines.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
// An empty registry is uninitialized: CreateEngine fails until a backend registers.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a backend. Registering the same name twice is an error.
func (r *Registry) Register(name string, factory Factory) error {
	if name == "" {
		return fmt.Errorf("backend name is required")
	}
	if factory == nil {
		return fmt.Errorf("backend %q: factory is required", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.factories[name]; found {
		return fmt.Errorf("backend %q already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateEngine builds an engine with the factory registered for state.BackendName.
// It never falls back to a different backend.
func (r *Registry) CreateEngine(state *EngineState) (Engine, error) {
	if state == nil {
		return nil, BackendResolutionError("create engine", fmt.Errorf("engine state is required"))
	}

	r.mu.RLock()
	empty := len(r.factories) == 0
	factory, found := r.factories[state.BackendName]
	r.mu.RUnlock()

	if empty {
		return nil, BackendResolutionError("create engine", ErrRegistryNotInitialized)
	}
	if !found {
		return nil, BackendResolutionError("create engine", fmt.Errorf("%w: %q", ErrBackendNotFound, state.BackendName))
	}

	engine, err := factory(state)
	if err != nil {
		return nil, BackendResolutionError("create engine", fmt.Errorf("backend %q: %w", state.BackendName, err))
	}
	if engine == nil {
		return nil, BackendResolutionError("create engine", fmt.Errorf("backend %q returned no engine", state.BackendName))
	}
	return engine, nil
}

var defaultRegistry = NewRegistry()

// DefaultRegistry is the process-wide registry that backends' Init functions populate.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds a backend to the default registry.
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// CreateEngine builds an engine using the default registry.
func CreateEngine(state *EngineState) (Engine, error) {
	return defaultRegistry.CreateEngine(state)
}

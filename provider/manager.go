package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/skillsenselab/callscore/logger"
)

// Manager owns the initialized backends of one family and picks among
// them through a Selector. Register factories first, Initialize the
// configured backends, then resolve one with Get or GetByName.
type Manager[T Provider] struct {
	mu        sync.RWMutex
	registry  *Registry[T]
	selector  Selector[T]
	providers map[string]T
	log       *logger.Logger
}

// NewManager creates a Manager backed by the given registry and selector.
func NewManager[T Provider](registry *Registry[T], selector Selector[T]) *Manager[T] {
	return &Manager[T]{
		registry:  registry,
		selector:  selector,
		providers: make(map[string]T),
		log:       logger.Get("provider"),
	}
}

// Register adds a factory to the underlying registry.
func (m *Manager[T]) Register(name string, factory Factory[T]) {
	m.registry.RegisterFactory(name, factory)
	m.log.Debug("factory registered", map[string]interface{}{"provider": name})
}

// Registered returns the sorted names of all registered factories.
func (m *Manager[T]) Registered() []string {
	return m.registry.List()
}

// Initialize creates a backend from its factory and stores it for use.
func (m *Manager[T]) Initialize(name string, cfg map[string]any) error {
	instance, err := m.registry.Create(name, cfg)
	if err != nil {
		return fmt.Errorf("initialize provider %q: %w", name, err)
	}
	m.mu.Lock()
	m.providers[name] = instance
	m.mu.Unlock()
	m.log.Info("provider initialized", map[string]interface{}{"provider": name})
	return nil
}

// Get resolves one backend among the initialized ones through the
// selector, typically by availability or configured priority.
func (m *Manager[T]) Get(ctx context.Context) (T, error) {
	m.mu.RLock()
	providers := m.snapshotLocked()
	m.mu.RUnlock()
	return m.selector.Select(ctx, providers)
}

// GetByName returns a specific initialized backend by name.
func (m *Manager[T]) GetByName(name string) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.providers[name]; ok {
		return p, nil
	}
	var zero T
	return zero, fmt.Errorf("provider %q not found", name)
}

// Available returns the names of all initialized backends.
func (m *Manager[T]) Available() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.providers))
	for name := range m.providers {
		names = append(names, name)
	}
	return names
}

// snapshotLocked returns a shallow copy of the providers map.
// Must be called while holding at least a read lock.
func (m *Manager[T]) snapshotLocked() map[string]T {
	cp := make(map[string]T, len(m.providers))
	for k, v := range m.providers {
		cp[k] = v
	}
	return cp
}

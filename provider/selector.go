package provider

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Selector picks one backend out of the initialized set.
type Selector[T Provider] interface {
	Select(ctx context.Context, providers map[string]T) (T, error)
}

// PrioritySelector walks a configured name order and picks the first
// backend that reports itself available. Names without an initialized
// backend are skipped. This is how the ASR chain falls back from a
// remote sidecar to the scripted offline backend.
type PrioritySelector[T Provider] struct {
	// Priority is the ordered list of backend names to try.
	Priority []string
}

// Select returns the first available backend in priority order.
func (s *PrioritySelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	for _, name := range s.Priority {
		if p, ok := providers[name]; ok && p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no available provider among [%s]", strings.Join(s.Priority, ", "))
}

// HealthCheckSelector picks the first backend, in name order, that
// reports itself available.
type HealthCheckSelector[T Provider] struct{}

// Select returns the first backend that reports as available.
func (s *HealthCheckSelector[T]) Select(ctx context.Context, providers map[string]T) (T, error) {
	names := make([]string, 0, len(providers))
	for name := range providers {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if p := providers[name]; p.IsAvailable(ctx) {
			return p, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("no available provider found")
}

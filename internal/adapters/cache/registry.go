package cache

import (
	"sync"

	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
)

// OperationStats pairs an operation type with its cache statistics.
type OperationStats struct {
	Operation domain.OperationType
	Stats     domain.CacheStatistics
}

// Registry aggregates the per-operation caches for introspection and
// cross-cache invalidation. It owns no invariants of its own; every
// counter it reports belongs to the underlying cache.
type Registry struct {
	mu      sync.RWMutex
	sources []ports.StatSource
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds a cache to the registry. Caches are reported in
// registration order.
func (r *Registry) Register(s ports.StatSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append(r.sources, s)
}

// Snapshot returns the statistics of every registered cache.
func (r *Registry) Snapshot() []OperationStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]OperationStats, 0, len(r.sources))
	for _, s := range r.sources {
		out = append(out, OperationStats{
			Operation: s.Operation(),
			Stats:     s.Stats(),
		})
	}
	return out
}

// InvalidateByPath discards entries for path across every registered cache
// and returns the total number of entries removed.
func (r *Registry) InvalidateByPath(path string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	removed := 0
	for _, s := range r.sources {
		removed += s.InvalidateByPath(path)
	}
	return removed
}

// ClearAll clears every registered cache and resets every counter.
func (r *Registry) ClearAll() {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sources {
		s.Clear()
	}
}

package ports

import "github.com/vestigehq/vestige/internal/core/domain"

// Invalidator is the narrow view of a cache that the invalidation watcher
// needs: it discards entries for a path without caring about value types.
type Invalidator interface {
	// InvalidateByPath removes every entry whose key's path matches.
	// It returns the number of entries removed.
	InvalidateByPath(path string) int
}

// StatSource exposes a cache's statistics snapshot and reset, keyed by the
// operation type it serves. The statistics registry aggregates over these.
type StatSource interface {
	Invalidator
	// Operation identifies which analysis operation this cache serves.
	Operation() domain.OperationType
	// Stats returns a read-only snapshot of the cache counters.
	Stats() domain.CacheStatistics
	// Clear removes all entries and resets statistics to zero.
	Clear()
}

package ports

import "github.com/vestigehq/vestige/internal/core/domain"

// ReportCache stores analysis reports keyed by CacheKey. Lookups carry the
// file's current fingerprint so the cache can reject results computed
// against earlier file content.
type ReportCache interface {
	// Operation identifies which analysis operation this cache serves.
	Operation() domain.OperationType
	// Get returns the cached report for key, or false on a miss. Every Get
	// counts as one probe in the cache statistics.
	Get(key domain.CacheKey, current domain.Fingerprint) (*domain.Report, bool)
	// Peek is Get without the bookkeeping: no counters, no recency update.
	// For internal re-checks that must not be visible as a second probe.
	Peek(key domain.CacheKey, current domain.Fingerprint) (*domain.Report, bool)
	// Put stores a report together with the fingerprint it was computed
	// against.
	Put(key domain.CacheKey, report *domain.Report, fingerprint domain.Fingerprint)
}

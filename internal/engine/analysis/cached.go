// Package analysis provides the caching facade in front of the analyzer.
// It decides per call whether a cached report can be served or the
// underlying analysis must run, and keeps duplicate concurrent requests
// for the same work down to a single execution.
package analysis

import (
	"context"
	"strings"

	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// CachedAnalyzer wraps an Analyzer with per-operation result caches.
//
// The cache lock discipline lives here: fingerprints are computed and
// cache lookups finish before the analyzer runs, and the Put happens in
// a separate critical section afterwards. No cache mutex is ever held
// while an analysis executes, so a 60-second pslist run never blocks a
// netscan cache hit.
type CachedAnalyzer struct {
	analyzer ports.Analyzer
	logger   ports.Logger
	caches   map[domain.OperationType]ports.ReportCache
	group    singleflight.Group
}

// NewCachedAnalyzer creates the facade over the given analyzer and caches.
// Each cache serves the operation it reports via Operation().
func NewCachedAnalyzer(analyzer ports.Analyzer, logger ports.Logger, caches ...ports.ReportCache) *CachedAnalyzer {
	byOp := make(map[domain.OperationType]ports.ReportCache, len(caches))
	for _, c := range caches {
		byOp[c.Operation()] = c
	}
	return &CachedAnalyzer{
		analyzer: analyzer,
		logger:   logger,
		caches:   byOp,
	}
}

// Analyze returns the report for (path, op, filter), from cache when a
// fresh entry exists and by running the analyzer otherwise. Results are
// cached only on success together with the fingerprint taken before the
// analysis started; failures are returned to the caller and never stored.
//
// Concurrent calls for the same key are collapsed: one analysis runs and
// every waiter receives its report.
func (c *CachedAnalyzer) Analyze(ctx context.Context, path string, op domain.OperationType, filter domain.Filter) (*domain.Report, error) {
	store, ok := c.caches[op]
	if !ok {
		return nil, zerr.With(domain.ErrUnknownOperation, "operation", op.String())
	}

	// The fingerprint is taken before the analysis starts. If the file
	// changes mid-run the stored entry carries the pre-change fingerprint
	// and the next lookup rejects it.
	fingerprint, err := domain.ComputeFingerprint(path)
	if err != nil {
		return nil, err
	}

	key := domain.NewCacheKey(path, op, filter)

	if report, ok := store.Get(key, fingerprint); ok {
		c.logger.Info("cache hit", "operation", op.String(), "dump", path)
		return report, nil
	}

	v, err, shared := c.group.Do(flightKey(key), func() (any, error) {
		// A duplicate caller that lost the race re-checks the cache so the
		// flight winner's Put is not recomputed after the group forgets
		// the key. Peek, not Get: this caller's probe was already counted
		// as a miss above.
		if report, ok := store.Peek(key, fingerprint); ok {
			return report, nil
		}

		report, err := c.analyzer.Analyze(ctx, path, op, filter)
		if err != nil {
			return nil, err
		}

		store.Put(key, report, fingerprint)
		return report, nil
	})
	if err != nil {
		return nil, err
	}

	if shared {
		c.logger.Info("joined in-flight analysis", "operation", op.String(), "dump", path)
	}
	return v.(*domain.Report), nil
}

// flightKey serializes a cache key for the singleflight group.
func flightKey(key domain.CacheKey) string {
	return strings.Join([]string{key.Path, key.Operation.String(), key.FilterSig}, "\x00")
}

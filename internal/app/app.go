// Package app implements the application layer for vestige.
package app

import (
	"context"
	"errors"
	"runtime"

	"github.com/vestigehq/vestige/internal/adapters/cache"
	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

// App wires the cached analyzer, the statistics registry and the
// invalidation watcher behind the command surface. One App exists per
// session; all cache state lives on it and dies with the process.
type App struct {
	logger   ports.Logger
	analyzer ports.Analyzer
	registry *cache.Registry
	watcher  ports.Watcher
}

// New creates a new App instance.
func New(
	logger ports.Logger,
	analyzer ports.Analyzer,
	registry *cache.Registry,
	watcher ports.Watcher,
) *App {
	return &App{
		logger:   logger,
		analyzer: analyzer,
		registry: registry,
		watcher:  watcher,
	}
}

// AnalyzeOptions configuration for the Analyze method.
type AnalyzeOptions struct {
	// Operations to run against the dump, in the order results are wanted.
	Operations []domain.OperationType
	// PID restricts the operations to a single process when non-nil.
	PID *uint32
	// Watch registers an invalidation watch on the dump after a
	// successful analysis.
	Watch bool
}

// Analyze runs the requested operations against one dump. Operations run
// concurrently, each going through its own cache. The returned reports
// are ordered like opts.Operations. One failed operation fails the whole
// call; results already cached by sibling operations stay cached.
func (a *App) Analyze(ctx context.Context, path string, opts AnalyzeOptions) ([]*domain.Report, error) {
	if len(opts.Operations) == 0 {
		return nil, domain.ErrNoOperations
	}

	filter := domain.Filter{PID: opts.PID}
	reports := make([]*domain.Report, len(opts.Operations))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, op := range opts.Operations {
		g.Go(func() error {
			report, err := a.analyzer.Analyze(ctx, path, op, filter)
			if err != nil {
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Join(domain.ErrAnalysisFailed, err)
	}

	if opts.Watch {
		if err := a.watcher.Watch(path); err != nil {
			// The results are already computed and cached; a failed watch
			// registration only costs freshness tracking.
			a.logger.Warn("could not register invalidation watch", "path", path, "error", err.Error())
		}
	}

	return reports, nil
}

// WatchDump registers an invalidation watch on path.
func (a *App) WatchDump(path string) error {
	return a.watcher.Watch(path)
}

// UnwatchDump drops one watch subscription for path.
func (a *App) UnwatchDump(path string) {
	a.watcher.Unwatch(path)
}

// WatchedDumps returns the watched paths in sorted order.
func (a *App) WatchedDumps() []string {
	return a.watcher.ListWatched()
}

// ValidateWatched recomputes every watched fingerprint now and invalidates
// stale cache entries. It returns true when everything was already fresh.
func (a *App) ValidateWatched() bool {
	return a.watcher.ValidateAll()
}

// CacheStats returns the statistics of every per-operation cache.
func (a *App) CacheStats() []cache.OperationStats {
	return a.registry.Snapshot()
}

// ClearCaches empties every cache and resets all statistics.
func (a *App) ClearCaches() {
	a.registry.ClearAll()
	a.logger.Info("cleared all analysis caches")
}

// Shutdown stops the invalidation watcher, flushing any invalidations
// still sitting in the debounce window.
func (a *App) Shutdown() error {
	return a.watcher.Stop()
}

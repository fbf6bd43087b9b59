package ports

import "context"

// Watcher maintains file system watches on dump files and invalidates
// cached results when a watched file's content changes.
type Watcher interface {
	// Start begins processing file system events until ctx is cancelled.
	Start(ctx context.Context)
	// Stop flushes pending work and releases the OS watch.
	Stop() error
	// Watch begins monitoring path. Watching an already-watched path bumps
	// a reference count instead of adding a second OS watch.
	Watch(path string) error
	// Unwatch drops one subscription for path. Unknown paths are a no-op.
	Unwatch(path string)
	// ListWatched returns the currently watched paths in sorted order.
	ListWatched() []string
	// ValidateAll recomputes every watched fingerprint now, invalidating
	// stale entries. It returns true when no invalidation was triggered.
	ValidateAll() bool
}

package watcher

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
)

// Watcher monitors a set of dump files for changes and triggers
// invalidation across all caches when a watched file's fingerprint
// diverges from the last known one.
//
// Bursty writes are debounced: the fingerprint is only recomputed after a
// quiet period, and only a real fingerprint change invalidates. A path
// that becomes inaccessible is dropped from the watch set without
// invalidating anything: inaccessibility is not evidence of modified
// content, and the next analysis call will surface the IO error itself.
type Watcher struct {
	fsWatcher   *fsnotify.Watcher
	logger      ports.Logger
	invalidator ports.Invalidator
	debouncer   *Debouncer

	mu      sync.Mutex
	watched map[string]*watchedFile
}

// watchedFile tracks one subscription. Multiple logical subscribers share
// one OS-level watch through the reference count, so one caller's Unwatch
// cannot break another's subscription.
type watchedFile struct {
	fingerprint domain.Fingerprint
	refs        int
}

// New creates a watcher that invalidates through the given invalidator.
func New(logger ports.Logger, invalidator ports.Invalidator, debounceWindow time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		fsWatcher:   fsw,
		logger:      logger,
		invalidator: invalidator,
		watched:     make(map[string]*watchedFile),
	}
	w.debouncer = NewDebouncer(debounceWindow, w.revalidate)
	return w, nil
}

// Start begins processing file system events until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) {
	go w.processEvents(ctx)
}

// Stop flushes pending debounce timers and releases the OS watch.
func (w *Watcher) Stop() error {
	w.debouncer.Flush()
	return w.fsWatcher.Close()
}

// Watch begins monitoring path. Watching an already-watched path is
// idempotent with respect to the OS subscription and bumps a reference
// count instead of adding a second watch.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if wf, ok := w.watched[path]; ok {
		wf.refs++
		return nil
	}

	fp, err := domain.ComputeFingerprint(path)
	if err != nil {
		return errors.Join(domain.ErrWatchFailed, err)
	}
	if err := w.fsWatcher.Add(path); err != nil {
		return errors.Join(domain.ErrWatchFailed, err)
	}

	w.watched[path] = &watchedFile{fingerprint: fp, refs: 1}
	w.logger.Info("watching dump file", "path", path)
	return nil
}

// Unwatch drops one subscription for path. The OS watch is released only
// when the last subscriber unwatches. Unwatching an unknown path is a no-op.
func (w *Watcher) Unwatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	wf, ok := w.watched[path]
	if !ok {
		return
	}
	wf.refs--
	if wf.refs > 0 {
		return
	}

	delete(w.watched, path)
	w.debouncer.Cancel(path)
	_ = w.fsWatcher.Remove(path)
	w.logger.Info("stopped watching dump file", "path", path)
}

// ListWatched returns the currently watched paths in sorted order.
func (w *Watcher) ListWatched() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	paths := make([]string, 0, len(w.watched))
	for path := range w.watched {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// ValidateAll proactively recomputes fingerprints for every watched path
// and invalidates caches whose stored state is stale. It returns true only
// if every watched file was found unchanged, i.e. no invalidation was
// triggered as a side effect of this call.
func (w *Watcher) ValidateAll() bool {
	valid := true
	for _, path := range w.ListWatched() {
		if !w.revalidatePath(path) {
			valid = false
		}
	}
	return valid
}

// processEvents feeds fsnotify events into the debouncer.
func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isWatched(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Chmod) != 0 {
				w.debouncer.Add(event.Name)
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "error", err.Error())
		}
	}
}

func (w *Watcher) isWatched(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.watched[path]
	return ok
}

// revalidate is the debouncer callback: the quiet period for path elapsed.
func (w *Watcher) revalidate(path string) {
	w.revalidatePath(path)
}

// revalidatePath recomputes the fingerprint for path and invalidates the
// caches if it changed. It returns false when an invalidation fired.
func (w *Watcher) revalidatePath(path string) bool {
	w.mu.Lock()
	wf, ok := w.watched[path]
	if !ok {
		w.mu.Unlock()
		return true
	}
	known := wf.fingerprint
	w.mu.Unlock()

	// Stat outside the lock; dumps can live on slow network mounts.
	current, err := domain.ComputeFingerprint(path)
	if err != nil {
		// The file went away or permissions changed. Drop the watch and
		// leave cached results alone.
		w.logger.Warn("watched file inaccessible, dropping watch", "path", path, "error", err.Error())
		w.dropWatch(path)
		return true
	}

	if known.Matches(current) {
		return true
	}

	removed := w.invalidator.InvalidateByPath(path)
	w.logger.Info("dump file changed, invalidated cached results",
		"path", path, "entries", removed)

	w.mu.Lock()
	if wf, ok := w.watched[path]; ok {
		wf.fingerprint = current
	}
	w.mu.Unlock()
	return false
}

// dropWatch force-removes a path regardless of reference count.
func (w *Watcher) dropWatch(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.watched[path]; !ok {
		return
	}
	delete(w.watched, path)
	w.debouncer.Cancel(path)
	_ = w.fsWatcher.Remove(path)
}

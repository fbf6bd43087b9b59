package watcher_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vestigehq/vestige/internal/adapters/logger"
	"github.com/vestigehq/vestige/internal/adapters/watcher"
	"github.com/vestigehq/vestige/internal/core/domain"
	"github.com/vestigehq/vestige/internal/core/ports"
)

// countingInvalidator records InvalidateByPath calls per path.
type countingInvalidator struct {
	mu    sync.Mutex
	calls map[string]int
}

func newCountingInvalidator() *countingInvalidator {
	return &countingInvalidator{calls: make(map[string]int)}
}

func (c *countingInvalidator) InvalidateByPath(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[path]++
	return 1
}

func (c *countingInvalidator) count(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[path]
}

func quietLogger() ports.Logger {
	l := logger.New()
	l.SetOutput(io.Discard)
	return l
}

func writeDump(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWatcher_WatchUnwatch(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, "mem.raw", "MDMP....")

	w, err := watcher.New(quietLogger(), newCountingInvalidator(), watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.NoError(t, w.Watch(dump))
	assert.Equal(t, []string{dump}, w.ListWatched())

	w.Unwatch(dump)
	assert.Empty(t, w.ListWatched())

	// Unwatching an unknown path is a no-op.
	w.Unwatch(dump)
	assert.Empty(t, w.ListWatched())
}

func TestWatcher_WatchRefCounting(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, "mem.raw", "MDMP....")

	w, err := watcher.New(quietLogger(), newCountingInvalidator(), watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	// Two logical subscribers share one OS-level watch.
	require.NoError(t, w.Watch(dump))
	require.NoError(t, w.Watch(dump))

	w.Unwatch(dump)
	assert.Equal(t, []string{dump}, w.ListWatched(),
		"first unwatch must not break the remaining subscription")

	w.Unwatch(dump)
	assert.Empty(t, w.ListWatched())
}

func TestWatcher_WatchMissingFile(t *testing.T) {
	w, err := watcher.New(quietLogger(), newCountingInvalidator(), watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	err = w.Watch(filepath.Join(t.TempDir(), "nope.raw"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrWatchFailed)
	assert.Empty(t, w.ListWatched())
}

func TestWatcher_ValidateAll_Unchanged(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, "mem.raw", "MDMP....")
	inv := newCountingInvalidator()

	w, err := watcher.New(quietLogger(), inv, watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.NoError(t, w.Watch(dump))
	assert.True(t, w.ValidateAll())
	assert.Equal(t, 0, inv.count(dump))
}

func TestWatcher_ValidateAll_Changed(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, "mem.raw", "MDMP....")
	inv := newCountingInvalidator()

	w, err := watcher.New(quietLogger(), inv, watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.NoError(t, w.Watch(dump))

	// Grow the file so the size component of the fingerprint changes
	// regardless of mtime granularity.
	require.NoError(t, os.WriteFile(dump, []byte("MDMP....more pages"), 0o644))

	assert.False(t, w.ValidateAll(), "a change must be reported as invalid state")
	assert.Equal(t, 1, inv.count(dump))

	// The last-known fingerprint was updated; the next call is clean.
	assert.True(t, w.ValidateAll())
	assert.Equal(t, 1, inv.count(dump))
}

func TestWatcher_ValidateAll_InaccessibleDropsWatch(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, "mem.raw", "MDMP....")
	inv := newCountingInvalidator()

	w, err := watcher.New(quietLogger(), inv, watcher.DefaultDebounceWindow)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	require.NoError(t, w.Watch(dump))
	require.NoError(t, os.Remove(dump))

	// Deletion is not evidence of modified content: no invalidation, the
	// watch is silently dropped.
	assert.True(t, w.ValidateAll())
	assert.Equal(t, 0, inv.count(dump))
	assert.Empty(t, w.ListWatched())
}

func TestWatcher_DebouncedInvalidationOnWrite(t *testing.T) {
	dir := t.TempDir()
	dump := writeDump(t, dir, "mem.raw", "MDMP....")
	inv := newCountingInvalidator()

	w, err := watcher.New(quietLogger(), inv, 50*time.Millisecond)
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, w.Watch(dump))

	// A burst of writes within the debounce window.
	for i := range 5 {
		content := make([]byte, 8+i+1)
		require.NoError(t, os.WriteFile(dump, content, 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	// Exactly one invalidation once the burst settles.
	require.Eventually(t, func() bool {
		return inv.count(dump) >= 1
	}, 5*time.Second, 10*time.Millisecond)

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, 1, inv.count(dump), "burst must coalesce into one invalidation")
}

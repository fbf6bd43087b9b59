package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vestigehq/vestige/internal/adapters/watcher"
)

// recorder collects debounce callbacks in a goroutine-safe way.
type recorder struct {
	mu    sync.Mutex
	fired []string
}

func (r *recorder) record(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, path)
}

func (r *recorder) paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.fired...)
}

func TestDebouncer_CoalescesBurst(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		// N rapid events within the window fire exactly once.
		for range 10 {
			d.Add("/dumps/mem.raw")
			time.Sleep(10 * time.Millisecond)
		}

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.paths(), 1)
		assert.Equal(t, "/dumps/mem.raw", rec.paths()[0])
	})
}

func TestDebouncer_EventRestartsWindow(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/dumps/mem.raw")
		time.Sleep(80 * time.Millisecond)
		assert.Empty(t, rec.paths(), "window must restart, not fire mid-burst")

		d.Add("/dumps/mem.raw")
		time.Sleep(80 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.paths())

		time.Sleep(30 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.paths(), 1)
	})
}

func TestDebouncer_PathsAreIndependent(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/dumps/a.raw")
		time.Sleep(60 * time.Millisecond)
		// Keep b busy; a's window must still elapse on schedule.
		d.Add("/dumps/b.raw")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()

		require.Len(t, rec.paths(), 1)
		assert.Equal(t, "/dumps/a.raw", rec.paths()[0])

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, rec.paths(), 2)
	})
}

func TestDebouncer_Cancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(100*time.Millisecond, rec.record)

		d.Add("/dumps/mem.raw")
		d.Cancel("/dumps/mem.raw")

		time.Sleep(200 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, rec.paths())
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		rec := &recorder{}
		d := watcher.NewDebouncer(time.Hour, rec.record)

		d.Add("/dumps/a.raw")
		d.Add("/dumps/b.raw")
		d.Flush()

		assert.ElementsMatch(t, []string{"/dumps/a.raw", "/dumps/b.raw"}, rec.paths())

		// Flushed timers must not fire again.
		time.Sleep(2 * time.Hour)
		synctest.Wait()
		assert.Len(t, rec.paths(), 2)
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/dumps/mem.raw")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}

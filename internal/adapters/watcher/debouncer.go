// Package watcher implements file-change driven cache invalidation.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the default quiet period before a change burst
// triggers revalidation.
const DefaultDebounceWindow = 100 * time.Millisecond

// Debouncer coalesces rapid file system events per path: N writes landing
// within the window produce exactly one callback. Each path gets its own
// timer so a noisy dump cannot delay revalidation of an unrelated one.
type Debouncer struct {
	mu       sync.Mutex
	window   time.Duration
	timers   map[string]*time.Timer
	callback func(path string)
}

// NewDebouncer creates a debouncer with the given quiet window and callback.
func NewDebouncer(window time.Duration, callback func(path string)) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceWindow
	}
	return &Debouncer{
		window:   window,
		timers:   make(map[string]*time.Timer),
		callback: callback,
	}
}

// Add records an event for path, restarting its debounce timer.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(d.window, func() {
		d.fire(path, t)
	})
	d.timers[path] = t
}

// Cancel drops any pending timer for path without firing the callback.
func (d *Debouncer) Cancel(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[path]; ok {
		t.Stop()
		delete(d.timers, path)
	}
}

// Flush fires the callback immediately for every pending path. It blocks
// until the callbacks complete, for graceful shutdown.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	pending := make([]string, 0, len(d.timers))
	for path, t := range d.timers {
		if t.Stop() {
			pending = append(pending, path)
		}
		delete(d.timers, path)
	}
	d.mu.Unlock()

	if d.callback == nil {
		return
	}
	for _, path := range pending {
		d.callback(path)
	}
}

// fire is called when a path's debounce window expires.
func (d *Debouncer) fire(path string, t *time.Timer) {
	d.mu.Lock()
	// A stopped timer may still fire if it was already in flight when Add
	// restarted the window. Only the timer currently on record may call back.
	if d.timers[path] != t {
		d.mu.Unlock()
		return
	}
	delete(d.timers, path)
	d.mu.Unlock()

	if d.callback != nil {
		d.callback(path)
	}
}

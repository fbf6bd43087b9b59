// Package cache implements the bounded, TTL-aware, LRU-evicting result
// cache that sits between callers and the expensive analysis operations.
package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/vestigehq/vestige/internal/core/domain"
)

const (
	// DefaultMaxEntries bounds each per-operation cache.
	DefaultMaxEntries = 20
	// DefaultTTL is the maximum age after which an entry is treated as absent.
	DefaultTTL = 2 * time.Hour
)

// Cache is a thread-safe store mapping CacheKey to a value of type V, with
// LRU eviction at capacity and lazy TTL expiry. One instance exists per
// operation type for the lifetime of a session.
//
// The internal mutex guards only the map, the access-order list and the
// counters. It is never held while an analysis runs; see engine/analysis.
type Cache[V any] struct {
	mu         sync.Mutex
	op         domain.OperationType
	maxEntries int
	ttl        time.Duration
	entries    map[domain.CacheKey]*list.Element
	order      *list.List // front is most recently used

	accesses      uint64
	hits          uint64
	misses        uint64
	evictions     uint64
	expirations   uint64
	invalidations uint64
}

// entry is the stored value plus bookkeeping. Owned exclusively by its
// cache and mutated only under the cache mutex.
type entry[V any] struct {
	key         domain.CacheKey
	value       V
	fingerprint domain.Fingerprint
	insertedAt  time.Time
	lastAccess  time.Time
}

// New creates a cache for the given operation type. maxEntries and ttl
// fall back to the defaults when non-positive.
func New[V any](op domain.OperationType, maxEntries int, ttl time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		op:         op,
		maxEntries: maxEntries,
		ttl:        ttl,
		entries:    make(map[domain.CacheKey]*list.Element),
		order:      list.New(),
	}
}

// Operation identifies which analysis operation this cache serves.
func (c *Cache[V]) Operation() domain.OperationType {
	return c.op
}

// Get returns the cached value for key if it is present, not past its TTL,
// and was computed against the given file fingerprint. Anything else is a
// miss: absent keys, expired entries, and entries whose stored fingerprint
// diverges from the file's current one. Expired and stale entries are
// removed opportunistically since they can never become valid again.
func (c *Cache[V]) Get(key domain.CacheKey, current domain.Fingerprint) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	c.accesses++

	elem, ok := c.entries[key]
	if !ok {
		c.misses++
		return zero, false
	}

	ent := elem.Value.(*entry[V])

	if time.Since(ent.insertedAt) > c.ttl {
		c.removeElement(elem)
		c.misses++
		c.expirations++
		return zero, false
	}

	if !ent.fingerprint.Matches(current) {
		c.removeElement(elem)
		c.misses++
		c.invalidations++
		return zero, false
	}

	ent.lastAccess = time.Now()
	c.order.MoveToFront(elem)
	c.hits++
	return ent.value, true
}

// Peek returns the cached value for key under the same freshness rules as
// Get, but without touching the statistics counters, the recency order, or
// the stored entries. The analysis facade uses it to re-check the cache
// inside a collapsed flight, where the caller's probe was already counted.
func (c *Cache[V]) Peek(key domain.CacheKey, current domain.Fingerprint) (V, bool) {
	var zero V

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.entries[key]
	if !ok {
		return zero, false
	}

	ent := elem.Value.(*entry[V])
	if time.Since(ent.insertedAt) > c.ttl || !ent.fingerprint.Matches(current) {
		return zero, false
	}
	return ent.value, true
}

// Put inserts or replaces the entry for key. When the cache is full and the
// key is new, the least-recently-used entry is evicted first.
func (c *Cache[V]) Put(key domain.CacheKey, value V, fingerprint domain.Fingerprint) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.fingerprint = fingerprint
		ent.insertedAt = now
		ent.lastAccess = now
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.maxEntries {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
			c.evictions++
		}
	}

	elem := c.order.PushFront(&entry[V]{
		key:         key,
		value:       value,
		fingerprint: fingerprint,
		insertedAt:  now,
		lastAccess:  now,
	})
	c.entries[key] = elem
}

// InvalidateByPath removes every entry whose key's path matches and returns
// the number of entries removed. Called by the invalidation watcher.
func (c *Cache[V]) InvalidateByPath(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for elem := c.order.Front(); elem != nil; {
		next := elem.Next()
		if elem.Value.(*entry[V]).key.Path == path {
			c.removeElement(elem)
			removed++
		}
		elem = next
	}
	c.invalidations += uint64(removed)
	return removed
}

// Clear removes all entries and resets statistics to zero.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[domain.CacheKey]*list.Element)
	c.order.Init()
	c.accesses = 0
	c.hits = 0
	c.misses = 0
	c.evictions = 0
	c.expirations = 0
	c.invalidations = 0
}

// Stats returns a read-only snapshot of the cache counters.
func (c *Cache[V]) Stats() domain.CacheStatistics {
	c.mu.Lock()
	defer c.mu.Unlock()

	return domain.CacheStatistics{
		Entries:       c.order.Len(),
		MaxEntries:    c.maxEntries,
		TotalAccesses: c.accesses,
		Hits:          c.hits,
		Misses:        c.misses,
		Evictions:     c.evictions,
		Expirations:   c.expirations,
		Invalidations: c.invalidations,
	}
}

// removeElement drops an entry from both the map and the order list.
// Callers must hold the mutex.
func (c *Cache[V]) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.entries, elem.Value.(*entry[V]).key)
}

package domain

// CacheStatistics is a point-in-time snapshot of one cache's counters.
// Invariant: Hits + Misses == TotalAccesses.
type CacheStatistics struct {
	Entries       int
	MaxEntries    int
	TotalAccesses uint64
	Hits          uint64
	Misses        uint64
	Evictions     uint64
	Expirations   uint64
	Invalidations uint64
}

// HitRate returns the fraction of accesses that were hits, or 0 when the
// cache has not been accessed yet.
func (s CacheStatistics) HitRate() float64 {
	if s.TotalAccesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalAccesses)
}

package cache_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vestigehq/vestige/internal/adapters/cache"
	"github.com/vestigehq/vestige/internal/core/domain"
)

func TestRegistry_Snapshot(t *testing.T) {
	procs := cache.New[string](domain.OpProcessList, 20, time.Hour)
	nets := cache.New[string](domain.OpNetworkScan, 20, time.Hour)

	r := cache.NewRegistry()
	r.Register(procs)
	r.Register(nets)

	procs.Put(domain.NewCacheKey("/dumps/a.raw", domain.OpProcessList, domain.Filter{}), "x", fp(1))
	_, _ = procs.Get(domain.NewCacheKey("/dumps/a.raw", domain.OpProcessList, domain.Filter{}), fp(1))

	snap := r.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, domain.OpProcessList, snap[0].Operation)
	assert.Equal(t, uint64(1), snap[0].Stats.Hits)
	assert.Equal(t, domain.OpNetworkScan, snap[1].Operation)
	assert.Equal(t, uint64(0), snap[1].Stats.TotalAccesses)
}

func TestRegistry_InvalidateByPath(t *testing.T) {
	procs := cache.New[string](domain.OpProcessList, 20, time.Hour)
	mods := cache.New[string](domain.OpModuleList, 20, time.Hour)

	r := cache.NewRegistry()
	r.Register(procs)
	r.Register(mods)

	procs.Put(domain.NewCacheKey("/dumps/a.raw", domain.OpProcessList, domain.Filter{}), "p", fp(1))
	mods.Put(domain.NewCacheKey("/dumps/a.raw", domain.OpModuleList, domain.Filter{}), "m", fp(1))
	mods.Put(domain.NewCacheKey("/dumps/b.raw", domain.OpModuleList, domain.Filter{}), "keep", fp(2))

	removed := r.InvalidateByPath("/dumps/a.raw")
	assert.Equal(t, 2, removed)

	_, ok := mods.Get(domain.NewCacheKey("/dumps/b.raw", domain.OpModuleList, domain.Filter{}), fp(2))
	assert.True(t, ok, "entries for other paths must survive")
}

func TestRegistry_ClearAll(t *testing.T) {
	procs := cache.New[string](domain.OpProcessList, 20, time.Hour)
	r := cache.NewRegistry()
	r.Register(procs)

	procs.Put(domain.NewCacheKey("/dumps/a.raw", domain.OpProcessList, domain.Filter{}), "p", fp(1))
	_, _ = procs.Get(domain.NewCacheKey("/dumps/a.raw", domain.OpProcessList, domain.Filter{}), fp(1))

	r.ClearAll()

	stats := procs.Stats()
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, uint64(0), stats.TotalAccesses)
}

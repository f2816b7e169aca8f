package cache

import (
	"time"

	"github.com/mentorportal/mentor-portal-api/pkg/logger"
	"github.com/mentorportal/mentor-portal-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

const cleanupInterval = time.Minute

// LookupCache is the shared read-through memo table for table-service
// lookups, keyed by (operation, argument). Entries are immutable once stored
// and expire on read after the TTL; Flush drops every entry wholesale so a
// manual refresh can never leave a partially-stale view.
type LookupCache struct {
	cache *gocache.Cache
	ttl   time.Duration
}

// NewLookupCache creates a lookup cache with the given TTL in seconds
func NewLookupCache(ttlSeconds int) *LookupCache {
	ttl := time.Duration(ttlSeconds) * time.Second
	return &LookupCache{
		cache: gocache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get returns the cached value for (operation, argument) if present and fresh
func (lc *LookupCache) Get(operation, argument string) (interface{}, bool) {
	value, found := lc.cache.Get(key(operation, argument))
	if found {
		metrics.CacheHits.WithLabelValues(operation).Inc()
	} else {
		metrics.CacheMisses.WithLabelValues(operation).Inc()
	}
	return value, found
}

// Set stores a value for (operation, argument) with the default TTL
func (lc *LookupCache) Set(operation, argument string, value interface{}) {
	lc.cache.Set(key(operation, argument), value, gocache.DefaultExpiration)
}

// Flush discards all cached lookups at once
func (lc *LookupCache) Flush() {
	lc.cache.Flush()
	metrics.CacheFlushes.Inc()
	logger.Info("Lookup cache flushed")
}

// TTL returns the configured entry lifetime
func (lc *LookupCache) TTL() time.Duration {
	return lc.ttl
}

func key(operation, argument string) string {
	return operation + ":" + argument
}

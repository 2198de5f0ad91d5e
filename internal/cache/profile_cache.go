// Package cache holds the in-process, time-expiring profile cache.
// The cache is advisory only: a miss is always resolvable by falling
// through to the document store, and it is never treated as the source
// of truth.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/metrics"
)

// DefaultTTL is how long a cached profile stays servable.
const DefaultTTL = 5 * time.Minute

// ProfileCache caches profiles by handle with a fixed TTL. It is safe
// for concurrent use; callers never need external locking.
type ProfileCache struct {
	entries *gocache.Cache
}

// NewProfileCache creates a cache with the given TTL. Expired entries
// are dropped lazily on Get and eagerly by Cleanup; no background
// janitor runs.
func NewProfileCache(ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ProfileCache{entries: gocache.New(ttl, 0)}
}

// Put stores a profile under the given handle.
func (c *ProfileCache) Put(id string, profile domain.Profile) {
	c.entries.SetDefault(id, profile)
}

// Get returns the cached profile if present and fresh. A stale entry
// is treated as absent and evicted as a side effect.
func (c *ProfileCache) Get(id string) (domain.Profile, bool) {
	v, ok := c.entries.Get(id)
	if !ok {
		// Drops the entry if it is present but expired.
		c.entries.Delete(id)
		metrics.CacheMiss()
		return domain.Profile{}, false
	}
	metrics.CacheHit()
	return v.(domain.Profile), true
}

// Remove drops the entry for the given handle.
func (c *ProfileCache) Remove(id string) {
	c.entries.Delete(id)
}

// Clear drops every entry.
func (c *ProfileCache) Clear() {
	c.entries.Flush()
}

// PutAll stores each profile under its own handle.
func (c *ProfileCache) PutAll(profiles []domain.Profile) {
	for _, p := range profiles {
		c.Put(p.Username, p)
	}
}

// GetAll returns the fresh hits among the given handles. Misses are
// simply skipped; the caller resolves them against the store.
func (c *ProfileCache) GetAll(ids []string) []domain.Profile {
	profiles := make([]domain.Profile, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.Get(id); ok {
			profiles = append(profiles, p)
		}
	}
	return profiles
}

// Has reports whether a fresh entry exists for the handle.
func (c *ProfileCache) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// Size returns the number of stored entries, expired ones included
// until they are evicted.
func (c *ProfileCache) Size() int {
	return c.entries.ItemCount()
}

// Cleanup eagerly evicts all expired entries. Intended for periodic
// invocation.
func (c *ProfileCache) Cleanup() {
	c.entries.DeleteExpired()
}

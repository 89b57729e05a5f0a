package memory

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	KeyAllUniversities = "universities:all"
)

// CoursesKey is the cache key for a university's course list.
func CoursesKey(universityId uuid.UUID) string {
	return fmt.Sprintf("courses:%s", universityId)
}

// ReferenceCache is a TTL'd read-through cache for list-style reference
// data (universities, courses). It is never the source of truth: every
// write path that touches a cached collection must call Invalidate.
type ReferenceCache struct {
	cache *cache.Cache
}

func NewReferenceCache(ttl time.Duration) *ReferenceCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	// Purge expired items at twice the TTL.
	return &ReferenceCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *ReferenceCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *ReferenceCache) Set(key string, value interface{}) {
	c.cache.Set(key, value, cache.DefaultExpiration)
}

func (c *ReferenceCache) Invalidate(keys ...string) {
	for _, key := range keys {
		c.cache.Delete(key)
	}
}

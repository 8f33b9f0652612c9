// Package settings caches tunable scheduling values so playlist builds do not
// hit the database for every screen poll.
package settings

import (
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Keys recognized by the scheduler.
const (
	KeyInternalContentPriority = "internal_content_priority"
	KeyAdSalesPriority         = "ad_sales_priority"
	KeyFillerPriority          = "filler_priority"
	KeySecurityBufferMinutes   = "security_buffer_minutes"
)

// FetchFunc loads a raw setting value. An empty string means the key is unset.
type FetchFunc func(key string) (string, error)

type entry struct {
	value   string
	expires time.Time
}

// Cache is a read-through cache over FetchFunc with a fixed TTL per key.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	fetch   FetchFunc
	now     func() time.Time
	entries map[string]entry
}

func NewCache(ttl time.Duration, fetch FetchFunc) *Cache {
	return &Cache{
		ttl:     ttl,
		fetch:   fetch,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// SetNowFunc overrides the clock. Tests only.
func (c *Cache) SetNowFunc(f func() time.Time) {
	c.mu.Lock()
	c.now = f
	c.mu.Unlock()
}

// Get returns the cached value for key, refreshing it when the TTL has
// passed. Fetch failures and unset keys fall back to def; a failed refresh
// does not evict a previously cached value.
func (c *Cache) Get(key, def string) string {
	c.mu.RLock()
	e, ok := c.entries[key]
	now := c.now()
	c.mu.RUnlock()

	if ok && now.Before(e.expires) {
		return e.value
	}

	value, err := c.fetch(key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("settings fetch failed, using stale or default value")
		if ok {
			return e.value
		}
		return def
	}
	if value == "" {
		value = def
	}

	c.mu.Lock()
	c.entries[key] = entry{value: value, expires: now.Add(c.ttl)}
	c.mu.Unlock()

	return value
}

// GetInt is Get with integer parsing; unparseable values fall back to def.
func (c *Cache) GetInt(key string, def int) int {
	raw := c.Get(key, strconv.Itoa(def))
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("setting is not an integer, using default")
		return def
	}
	return n
}

// Invalidate drops a key so the next Get refetches it. Called after writes.
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

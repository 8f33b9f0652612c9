package settings

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheReadThrough(t *testing.T) {
	calls := 0
	c := NewCache(time.Minute, func(key string) (string, error) {
		calls++
		return "80", nil
	})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.SetNowFunc(func() time.Time { return now })

	assert.Equal(t, 80, c.GetInt(KeyInternalContentPriority, 50))
	assert.Equal(t, 80, c.GetInt(KeyInternalContentPriority, 50))
	require.Equal(t, 1, calls, "second read inside TTL must not refetch")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 80, c.GetInt(KeyInternalContentPriority, 50))
	assert.Equal(t, 2, calls, "read past TTL refetches")
}

func TestCacheUnsetKeyUsesDefault(t *testing.T) {
	c := NewCache(time.Minute, func(key string) (string, error) { return "", nil })
	assert.Equal(t, "fallback", c.Get("missing", "fallback"))
	assert.Equal(t, 42, c.GetInt("missing_int", 42))
}

func TestCacheFetchErrorKeepsStaleValue(t *testing.T) {
	healthy := true
	c := NewCache(time.Minute, func(key string) (string, error) {
		if !healthy {
			return "", errors.New("db down")
		}
		return "100", nil
	})

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c.SetNowFunc(func() time.Time { return now })

	require.Equal(t, "100", c.Get(KeyAdSalesPriority, "50"))

	healthy = false
	now = now.Add(2 * time.Minute)
	assert.Equal(t, "100", c.Get(KeyAdSalesPriority, "50"), "stale value survives a failed refresh")
	assert.Equal(t, "50", c.Get("never_seen", "50"), "unknown key falls back to default on error")
}

func TestCacheInvalidateForcesRefetch(t *testing.T) {
	value := "20"
	c := NewCache(time.Hour, func(key string) (string, error) { return value, nil })

	require.Equal(t, "20", c.Get(KeyFillerPriority, "0"))

	value = "25"
	assert.Equal(t, "20", c.Get(KeyFillerPriority, "0"), "cached until invalidated")

	c.Invalidate(KeyFillerPriority)
	assert.Equal(t, "25", c.Get(KeyFillerPriority, "0"))
}

func TestCacheBadIntegerFallsBack(t *testing.T) {
	c := NewCache(time.Minute, func(key string) (string, error) { return "not-a-number", nil })
	assert.Equal(t, 15, c.GetInt(KeySecurityBufferMinutes, 15))
}

package settings

import (
	"context"
	"time"

	"github.com/Nixie-Tech-LLC/argus/internal/redis"
)

const redisKeyPrefix = "settings:"

// RedisBacked layers shared redis storage over a fetch so multiple server
// instances see setting writes before their local TTL expires. Any redis
// failure falls through to the underlying fetch.
func RedisBacked(fetch FetchFunc, ttl time.Duration) FetchFunc {
	return func(key string) (string, error) {
		ctx := context.Background()
		if v, err := redis.Get(ctx, redisKeyPrefix+key); err == nil && v != "" {
			return v, nil
		}
		v, err := fetch(key)
		if err != nil {
			return "", err
		}
		if v != "" {
			redis.Set(ctx, redisKeyPrefix+key, v, ttl)
		}
		return v, nil
	}
}

// DropShared evicts a setting from the shared redis layer after a write.
func DropShared(key string) {
	redis.Del(context.Background(), redisKeyPrefix+key)
}

// File: utils/cache.go
package utils

import (
	"context"
	"time"

	"homecollect/config"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the generic cache client (team lookups).
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. A failed ping is logged and the
// client is dropped so callers fall back to the database.
func InitCache() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		GetLogger().Warn("Redis cache unavailable, continuing without cache", zap.Error(err))
		_ = client.Close()
		return
	}
	CacheClient = client
}

// GetCacheClient returns the cache client, or nil when Redis is not reachable.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

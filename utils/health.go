package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     *bool     `json:"mongo,omitempty"`
	Redis     []bool    `json:"redis,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks until ctx is done.
// A nil mongo client is skipped (memory backend).
func StartHealthMonitor(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client, every time.Duration) {
	check := func() {
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()

		var redisHealth []bool
		for _, client := range redisClients {
			if client == nil {
				continue
			}
			redisHealth = append(redisHealth, client.Ping(pingCtx).Err() == nil)
		}

		status := HealthStatus{Redis: redisHealth, CheckedAt: time.Now()}
		if mongoClient != nil {
			ok := mongoClient.Ping(pingCtx, nil) == nil
			status.Mongo = &ok
		}

		mu.Lock()
		currentHealth = status
		mu.Unlock()
	}

	go func() {
		check()
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				check()
			}
		}
	}()
}

package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus is the last observed state of the backing stores.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Healthy reports whether every store answered the last probe.
func (h HealthStatus) Healthy() bool {
	return h.Mongo && h.Redis
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

// StartHealthMonitor probes Redis and MongoDB every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, redisClient *redis.Client, mongoClient *mongo.Client, interval time.Duration) {
	probe := func() {
		pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		status := HealthStatus{
			Redis:     redisClient.Ping(pctx).Err() == nil,
			Mongo:     mongoClient.Ping(pctx, nil) == nil,
			CheckedAt: time.Now(),
		}
		healthMu.Lock()
		currentHealth = status
		healthMu.Unlock()
	}

	probe()
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				probe()
			case <-ctx.Done():
				return
			}
		}
	}()
}

package utils

import (
	"context"
	"log"
	"time"

	"eventify/config"

	"github.com/go-redis/redis/v8"
)

// DraftCacheClient holds listing drafts between editing requests.
var DraftCacheClient *redis.Client

// InitDraftCache initializes the Redis client used for draft sessions.
func InitDraftCache() {
	DraftCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDraftDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := DraftCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Drafts): %v", err)
	}
}

// GetDraftCacheClient returns the draft Redis client.
func GetDraftCacheClient() *redis.Client {
	if DraftCacheClient == nil {
		InitDraftCache()
	}
	return DraftCacheClient
}

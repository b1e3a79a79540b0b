package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"kursly/internal/shared/config"
	appLogger "kursly/internal/shared/logger"
)

var (
	client   *redis.Client
	clientMu sync.RWMutex
)

// Init initializes the Redis client and verifies connectivity.
func Init(cfg *config.RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.GetAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	clientMu.Lock()
	client = rdb
	clientMu.Unlock()

	appLogger.Info("redis connection established", "addr", cfg.GetAddr())

	return nil
}

// Get returns the Redis client
func Get() *redis.Client {
	clientMu.RLock()
	defer clientMu.RUnlock()
	return client
}

// Close closes the Redis client
func Close() error {
	clientMu.RLock()
	currentClient := client
	clientMu.RUnlock()

	if currentClient == nil {
		return nil
	}

	return currentClient.Close()
}

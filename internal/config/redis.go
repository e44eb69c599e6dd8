package config

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis opens the session store connection.
// Returns nil, nil when redis is disabled so callers fall back to memory sessions.
func ConnectRedis(cfg RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		log.Println("⚠️ Redis disabled, sessions are kept in memory")
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.Addr, err)
	}

	log.Printf("✅ Redis connected successfully [%s/%d]", cfg.Addr, cfg.DB)
	return client, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"wallet-import/internal/config"

	"github.com/redis/go-redis/v9"
)

// NewRedis connects the client that holds import review sessions.
func NewRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.GetRedisAddr(), err)
	}

	return client, nil
}

package database

import (
	"context"
	"fmt"
	"time"

	"booking-service/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to redis. Returns nil when caching is disabled.
func InitRedis(config utils.RedisConfig) (*redis.Client, error) {
	if !config.Enabled {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return client, nil
}

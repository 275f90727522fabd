package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrMiss is returned by a Store when the key is absent.
var ErrMiss = errors.New("cache miss")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Cache is a read-through JSON cache. A nil store disables caching.
type Cache struct {
	store Store
	ttl   time.Duration
	Log   *zap.Logger
}

func New(store Store, ttl time.Duration, log *zap.Logger) *Cache {
	return &Cache{
		store: store,
		ttl:   ttl,
		Log:   log.With(zap.String("component", "cache")),
	}
}

// GetOrFetch returns the cached value for key, or calls fetch and stores its result.
// Store failures are logged and never fail the lookup.
func GetOrFetch[T any](ctx context.Context, c *Cache, key string, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil || c.store == nil {
		return fetch(ctx)
	}

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.Log.Debug("Cache hit", zap.String("key", key))
			return cached, nil
		}
		c.Log.Warn("Drop undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, ErrMiss):
		c.Log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := fetch(ctx)
	if err != nil {
		return value, err
	}

	encoded, err := json.Marshal(value)
	if err != nil {
		c.Log.Warn("Cache encode failed", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
		c.Log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}

	return value, nil
}

package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errors.New("connection refused")
	}
	v, ok := m.data[key]
	if !ok {
		return nil, ErrMiss
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type item struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetOrFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("populates then hits", func(t *testing.T) {
		store := newMemStore()
		c := New(store, time.Minute, zap.NewNop())
		calls := 0
		fetch := func(context.Context) (item, error) {
			calls++
			return item{Name: "a", Count: 2}, nil
		}

		got, err := GetOrFetch(ctx, c, "item:1", fetch)
		require.NoError(t, err)
		assert.Equal(t, item{Name: "a", Count: 2}, got)

		got, err = GetOrFetch(ctx, c, "item:1", fetch)
		require.NoError(t, err)
		assert.Equal(t, item{Name: "a", Count: 2}, got)
		assert.Equal(t, 1, calls)
		assert.Equal(t, time.Minute, store.ttls["item:1"])
	})

	t.Run("fetch error is not cached", func(t *testing.T) {
		store := newMemStore()
		c := New(store, time.Minute, zap.NewNop())
		boom := errors.New("boom")

		_, err := GetOrFetch(ctx, c, "item:2", func(context.Context) (item, error) {
			return item{}, boom
		})
		assert.ErrorIs(t, err, boom)
		assert.Empty(t, store.data)
	})

	t.Run("store failure falls through", func(t *testing.T) {
		store := newMemStore()
		store.failGet = true
		c := New(store, time.Minute, zap.NewNop())

		got, err := GetOrFetch(ctx, c, "item:3", func(context.Context) (item, error) {
			return item{Name: "b"}, nil
		})
		require.NoError(t, err)
		assert.Equal(t, "b", got.Name)
	})

	t.Run("nil store passes through", func(t *testing.T) {
		c := New(nil, time.Minute, zap.NewNop())
		calls := 0
		for range 2 {
			_, err := GetOrFetch(ctx, c, "item:4", func(context.Context) (item, error) {
				calls++
				return item{}, nil
			})
			require.NoError(t, err)
		}
		assert.Equal(t, 2, calls)
	})
}

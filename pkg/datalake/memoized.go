package datalake

import (
	"context"
	"time"

	"leaguelake/pkg/redis"
)

// existsMemoTTL bounds the Redis footprint; a miss just falls back to
// the lake itself.
const existsMemoTTL = 24 * time.Hour

const existsMemoPrefix = "lake:exists:"

// MemoizedStore fronts a Store with a Redis existence memo, so the hot
// path of an incremental re-run (exists checks on immutable keys) skips
// the object storage round trip.
type MemoizedStore struct {
	store Store
	redis *redis.RedisClient
}

// NewMemoizedStore wraps the given store.
func NewMemoizedStore(store Store, client *redis.RedisClient) *MemoizedStore {
	return &MemoizedStore{
		store: store,
		redis: client,
	}
}

// Exists checks the memo first and backfills it on a lake hit.
// Redis failures degrade to the underlying store, never to an error.
func (m *MemoizedStore) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := m.redis.Get(ctx, existsMemoPrefix+key); err == nil {
		return true, nil
	}

	exists, err := m.store.Exists(ctx, key)
	if err != nil {
		return false, err
	}

	if exists {
		m.redis.Set(ctx, existsMemoPrefix+key, "1", existsMemoTTL)
	}

	return exists, nil
}

// Get reads through to the lake.
func (m *MemoizedStore) Get(ctx context.Context, key string) ([]byte, error) {
	return m.store.Get(ctx, key)
}

// Put writes through and marks the key as existing.
func (m *MemoizedStore) Put(ctx context.Context, key string, blob []byte) error {
	if err := m.store.Put(ctx, key, blob); err != nil {
		return err
	}

	m.redis.Set(ctx, existsMemoPrefix+key, "1", existsMemoTTL)
	return nil
}

package datalake

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store for local runs and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-memory lake.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		blobs: make(map[string][]byte),
	}
}

// Exists checks whether the key was already written.
func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.blobs[key]
	return exists, nil
}

// Get returns a copy of the stored blob.
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, exists := m.blobs[key]
	if !exists {
		return nil, ErrKeyNotFound
	}

	copied := make([]byte, len(blob))
	copy(copied, blob)
	return copied, nil
}

// Put stores a copy of the blob under the key.
func (m *MemoryStore) Put(ctx context.Context, key string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(blob))
	copy(copied, blob)
	m.blobs[key] = copied
	return nil
}

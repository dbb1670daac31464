// Package memory implements the durable KV on an in-process map. It backs
// tests and the degraded mode used when Redis is unreachable at boot.
package memory

import (
	"context"
	"sync"

	"github.com/NaumanGems/Nauman-gems/internal/storage"
)

// KV is a mutex-guarded in-memory key-value store.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory KV.
func New() *KV {
	return &KV{data: make(map[string][]byte)}
}

// Get fetches the value for key, or storage.ErrNotFound.
func (k *KV) Get(_ context.Context, key string) ([]byte, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	value, ok := k.data[key]
	if !ok {
		return nil, storage.ErrNotFound
	}

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Set stores a copy of value under key.
func (k *KV) Set(_ context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	k.data[key] = stored
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (k *KV) Delete(_ context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.data, key)
	return nil
}

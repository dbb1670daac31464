// Package redis implements the durable KV on a Redis client.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/NaumanGems/Nauman-gems/internal/storage"
)

const keyPrefix = "storefront:"

// KV is a Redis-backed key-value store. Keys get a namespace prefix so the
// storefront can share a Redis with other tenants.
type KV struct {
	client *goredis.Client
	ttl    time.Duration
}

// New creates a Redis KV. A zero ttl means records never expire.
func New(client *goredis.Client, ttl time.Duration) *KV {
	return &KV{client: client, ttl: ttl}
}

func (k *KV) key(key string) string {
	return keyPrefix + key
}

// Get fetches the value for key, or storage.ErrNotFound.
func (k *KV) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := k.client.Get(ctx, k.key(key)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Set stores the value under key with the configured TTL.
func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	if err := k.client.Set(ctx, k.key(key), value, k.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting an absent key is not an error.
func (k *KV) Delete(ctx context.Context, key string) error {
	if err := k.client.Del(ctx, k.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping verifies the connection, for readiness checks.
func (k *KV) Ping(ctx context.Context) error {
	return k.client.Ping(ctx).Err()
}

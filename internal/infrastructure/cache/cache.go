// Package cache provides the key-value cache used by the application
// services for cache-aside reads and write-through updates. Two backends
// are available: Redis for deployments and an in-memory store for tests
// and single-instance runs.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// NoExpiry marks an entry that never expires. Reference data and
// per-entity records keep this; derived listings must not.
const NoExpiry time.Duration = 0

// Store is a minimal string cache. Get returns ("", false, nil) on a miss.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// GetJSON reads key and unmarshals the cached JSON into a value of type T.
// A miss returns (zero, false, nil).
func GetJSON[T any](ctx context.Context, store Store, key string) (T, bool, error) {
	var value T

	raw, ok, err := store.Get(ctx, key)
	if err != nil || !ok {
		return value, false, err
	}

	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return value, false, fmt.Errorf("failed to decode cached value for %s: %w", key, err)
	}
	return value, true, nil
}

// SetJSON marshals value as JSON and stores it under key.
func SetJSON[T any](ctx context.Context, store Store, key string, value T, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for %s: %w", key, err)
	}
	return store.Set(ctx, key, string(raw), ttl)
}

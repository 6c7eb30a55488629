package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

const defaultCleanupInterval = 30 * time.Second

// MemoryStore implements Store on a process-local map. Suitable for
// single-instance runs and tests; no state is shared across processes.
type MemoryStore struct {
	entries sync.Map // map[string]*memoryEntry
	stopCh  chan struct{}
	stopped int32
}

// memoryEntry wraps a cached value with its expiration time.
// A zero expiresAt means the entry never expires.
type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e *memoryEntry) isExpired() bool {
	return !e.expiresAt.IsZero() && time.Now().After(e.expiresAt)
}

// NewMemoryStore creates an in-memory store with a background goroutine
// that evicts expired entries.
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{stopCh: make(chan struct{})}
	go store.cleanupExpired()
	return store
}

// Get returns the value for key, or ok=false on a miss.
func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	value, ok := s.entries.Load(key)
	if !ok {
		return "", false, nil
	}

	entry := value.(*memoryEntry)
	if entry.isExpired() {
		s.entries.Delete(key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key. A ttl of NoExpiry persists the entry until
// it is explicitly deleted or overwritten.
func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	entry := &memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}
	s.entries.Store(key, entry)
	return nil
}

// Delete removes the given keys. Missing keys are not an error.
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		s.entries.Delete(key)
	}
	return nil
}

// Close stops the cleanup goroutine. Safe to call more than once.
func (s *MemoryStore) Close() error {
	if atomic.CompareAndSwapInt32(&s.stopped, 0, 1) {
		close(s.stopCh)
	}
	return nil
}

// Count returns the number of live entries, for tests and monitoring.
func (s *MemoryStore) Count() int {
	var n int
	s.entries.Range(func(_, value any) bool {
		if !value.(*memoryEntry).isExpired() {
			n++
		}
		return true
	})
	return n
}

func (s *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.entries.Range(func(key, value any) bool {
				if value.(*memoryEntry).isExpired() {
					s.entries.Delete(key)
				}
				return true
			})
		}
	}
}

// Ensure MemoryStore implements Store
var _ Store = (*MemoryStore)(nil)

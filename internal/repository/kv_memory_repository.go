package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

// MemoryKVRepository is a process-local store used for tests and the
// memory driver. Values are copied on the way in and out.
type MemoryKVRepository struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryKVRepository constructs an empty store.
func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{entries: make(map[string][]byte)}
}

// Get returns the value stored under key.
func (r *MemoryKVRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.entries[key]
	if !ok {
		return nil, appErrors.ErrKeyNotFound
	}
	return append([]byte(nil), value...), nil
}

// Set stores value under key.
func (r *MemoryKVRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[key] = append([]byte(nil), value...)
	return nil
}

// Exists reports whether key holds a value.
func (r *MemoryKVRepository) Exists(_ context.Context, key string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok, nil
}

// Keys lists keys starting with prefix in ascending order.
func (r *MemoryKVRepository) Keys(_ context.Context, prefix string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.entries))
	for key := range r.entries {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

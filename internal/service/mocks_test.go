package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/noah-isme/gradebook-api/internal/events"
	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

type mockKVStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	sets    int

	getErr    error
	setErr    error
	existsErr error
	keysErr   error
}

func newMockKVStore() *mockKVStore {
	return &mockKVStore{entries: make(map[string][]byte)}
}

func (m *mockKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.entries[key]
	if !ok {
		return nil, appErrors.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *mockKVStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.sets++
	m.entries[key] = append([]byte(nil), value...)
	return nil
}

func (m *mockKVStore) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, ok := m.entries[key]
	return ok, nil
}

func (m *mockKVStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keysErr != nil {
		return nil, m.keysErr
	}
	var keys []string
	for k := range m.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *mockKVStore) raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return string(m.entries[key])
}

func (m *mockKVStore) setCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

type publishedEvent struct {
	eventType events.EventType
	payload   interface{}
}

type mockPublisher struct {
	mu        sync.Mutex
	published []publishedEvent
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, eventType events.EventType, payload interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, publishedEvent{eventType: eventType, payload: payload})
	return nil
}

func (m *mockPublisher) count(eventType events.EventType) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.published {
		if e.eventType == eventType {
			n++
		}
	}
	return n
}

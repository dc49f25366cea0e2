package service

import (
	"context"
	"errors"
	"time"

	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

// KVStore is the string key-value collaborator holding the grading policy
// and grade records. Get returns appErrors.ErrKeyNotFound for missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// InstrumentedStore reports the latency and failures of every call on the
// wrapped store.
type InstrumentedStore struct {
	next    KVStore
	backend string
	metrics *MetricsService
}

// NewInstrumentedStore wraps next. A nil metrics service makes it a passthrough.
func NewInstrumentedStore(next KVStore, backend string, metrics *MetricsService) *InstrumentedStore {
	return &InstrumentedStore{next: next, backend: backend, metrics: metrics}
}

func (s *InstrumentedStore) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.next.Get(ctx, key)
	s.observe("get", start, err)
	return value, err
}

func (s *InstrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.next.Set(ctx, key, value)
	s.observe("set", start, err)
	return err
}

func (s *InstrumentedStore) Exists(ctx context.Context, key string) (bool, error) {
	start := time.Now()
	ok, err := s.next.Exists(ctx, key)
	s.observe("exists", start, err)
	return ok, err
}

func (s *InstrumentedStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.next.Keys(ctx, prefix)
	s.observe("keys", start, err)
	return keys, err
}

func (s *InstrumentedStore) observe(op string, start time.Time, err error) {
	if errors.Is(err, appErrors.ErrKeyNotFound) {
		err = nil
	}
	s.metrics.ObserveStoreOperation(s.backend, op, time.Since(start), err)
}

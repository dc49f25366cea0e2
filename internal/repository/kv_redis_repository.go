package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/gradebook-api/pkg/errors"
)

// RedisKVRepository keeps values as plain Redis strings without expiry.
type RedisKVRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisKVRepository constructs a Redis-backed store.
func NewRedisKVRepository(client *redis.Client, logger *zap.Logger) *RedisKVRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisKVRepository{client: client, logger: logger}
}

// Get returns the value stored under key.
func (r *RedisKVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if r.client == nil {
		return nil, appErrors.ErrStoreClosed
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, appErrors.ErrKeyNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return raw, nil
}

// Set stores value under key.
func (r *RedisKVRepository) Set(ctx context.Context, key string, value []byte) error {
	if r.client == nil {
		return appErrors.ErrStoreClosed
	}
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key holds a value.
func (r *RedisKVRepository) Exists(ctx context.Context, key string) (bool, error) {
	if r.client == nil {
		return false, appErrors.ErrStoreClosed
	}
	n, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

// Keys lists keys starting with prefix in ascending order.
func (r *RedisKVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	if r.client == nil {
		return nil, appErrors.ErrStoreClosed
	}

	var keys []string
	iter := r.client.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan prefix %s: %w", prefix, err)
	}
	sort.Strings(keys)
	r.logger.Debug("redis keys scanned", zap.String("prefix", prefix), zap.Int("count", len(keys)))
	return keys, nil
}

// Close releases the underlying Redis connection if present.
func (r *RedisKVRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

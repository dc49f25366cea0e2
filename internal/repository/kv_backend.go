package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/gradebook-api/pkg/cache"
	"github.com/noah-isme/gradebook-api/pkg/config"
	"github.com/noah-isme/gradebook-api/pkg/database"
)

// KV is the contract shared by every key-value repository.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// KVBackend is an opened store with its lifecycle hooks.
type KVBackend struct {
	Driver string
	Store  KV
	Ping   func(ctx context.Context) error
	Close  func() error
}

func noopPing(context.Context) error { return nil }

func noopClose() error { return nil }

// OpenKVBackend connects the store selected by cfg.Store.Driver.
func OpenKVBackend(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*KVBackend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		return &KVBackend{Driver: cfg.Store.Driver, Store: NewMemoryKVRepository(), Ping: noopPing, Close: noopClose}, nil

	case config.StoreDriverSQLite, "":
		db, err := database.NewSQLite(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		repo := NewSQLKVRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &KVBackend{Driver: config.StoreDriverSQLite, Store: repo, Ping: db.PingContext, Close: db.Close}, nil

	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		repo := NewSQLKVRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &KVBackend{Driver: cfg.Store.Driver, Store: repo, Ping: db.PingContext, Close: db.Close}, nil

	case config.StoreDriverRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		repo := NewRedisKVRepository(client, logger)
		return &KVBackend{
			Driver: cfg.Store.Driver,
			Store:  repo,
			Ping:   func(ctx context.Context) error { return client.Ping(ctx).Err() },
			Close:  repo.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Store.Driver)
	}
}

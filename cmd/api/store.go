package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/geocoder89/opay/internal/config"
	"github.com/geocoder89/opay/internal/storage"
	"github.com/geocoder89/opay/internal/storage/memory"
	"github.com/geocoder89/opay/internal/storage/postgres"
	"github.com/geocoder89/opay/internal/storage/redisstore"
)

// openStore connects the backend named by STORE_DRIVER.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (storage.Store, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreMemory:
		log.Warn("using in-memory device storage; data is lost on restart")
		return memory.New(), func() {}, nil

	case config.StoreRedis:
		s := redisstore.New(redisstore.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})

		if err := s.Ping(ctx); err != nil {
			_ = s.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}

		return s, func() { _ = s.Close() }, nil

	case config.StorePostgres:
		pool, err := postgres.NewPool(cfg.DBURL)
		if err != nil {
			return nil, nil, fmt.Errorf("db connect: %w", err)
		}

		s := postgres.New(pool)
		if err := s.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ensure schema: %w", err)
		}

		return s, pool.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

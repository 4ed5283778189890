package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"shoresquad/config"
	"shoresquad/internal/domain"
	"shoresquad/internal/repository/badger"
	"shoresquad/internal/repository/memory"
	"shoresquad/internal/repository/postgres"
	"shoresquad/internal/repository/redis"
)

// openStore returns the configured state store and a func releasing it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (domain.StateStore, func() error, error) {
	noop := func() error { return nil }
	switch cfg.StoreDriver {
	case config.StoreMemory:
		logger.Warn("using in-memory store, data is lost on exit")
		return memory.NewStateStore(), noop, nil

	case config.StoreRedis:
		client := redis.NewClient(redis.Config{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		store := redis.NewStateStore(client)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("connect redis %s: %w", cfg.RedisAddr, err)
		}
		logger.Info("store ready", "driver", cfg.StoreDriver, "addr", cfg.RedisAddr)
		return store, client.Close, nil

	case config.StorePostgres:
		db, err := postgres.Open(ctx, cfg.DBUrl)
		if err != nil {
			return nil, nil, err
		}
		store := postgres.NewStateStore(db)
		if err := store.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info("store ready", "driver", cfg.StoreDriver)
		return store, db.Close, nil

	default:
		store, err := badger.Open(badger.Options{Dir: cfg.BadgerDir})
		if err != nil {
			return nil, nil, fmt.Errorf("open badger %s: %w", cfg.BadgerDir, err)
		}
		logger.Info("store ready", "driver", cfg.StoreDriver, "dir", cfg.BadgerDir)
		return store, store.Close, nil
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Strum355/log"
	"github.com/redis/go-redis/v9"

	"github.com/ewilliams-labs/moodtune/internal/adapters/fscatalog"
	"github.com/ewilliams-labs/moodtune/internal/adapters/memory"
	"github.com/ewilliams-labs/moodtune/internal/adapters/postgres"
	"github.com/ewilliams-labs/moodtune/internal/adapters/redisstore"
	"github.com/ewilliams-labs/moodtune/internal/adapters/remotecatalog"
	"github.com/ewilliams-labs/moodtune/internal/adapters/sqlite"
	"github.com/ewilliams-labs/moodtune/internal/config"
	"github.com/ewilliams-labs/moodtune/internal/core/ports"
)

const sessionSweepInterval = time.Minute

func openStore(ctx context.Context, cfg config.StorageConfig) (ports.Store, error) {
	switch cfg.Driver {
	case "sqlite":
		log.Info("using sqlite storage at " + cfg.SQLitePath)
		store, err := sqlite.NewAdapter(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case "postgres":
		log.Info("using postgres storage")
		store, err := postgres.NewAdapter(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	return nil, fmt.Errorf("unknown storage driver: %s", cfg.Driver)
}

// openCatalog returns the configured catalog. files is non-nil only for
// the filesystem catalog, whose songs this server also hosts.
func openCatalog(ctx context.Context, cfg config.CatalogConfig) (catalog ports.SongCatalog, files *fscatalog.Catalog, err error) {
	switch cfg.Driver {
	case "fs":
		fs := fscatalog.New(cfg.Root, cfg.PublicBaseURL)
		return fs, fs, nil
	case "remote":
		httpClient := remotecatalog.HTTPClient(ctx, &http.Client{Timeout: 15 * time.Second}, remotecatalog.Credentials{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		})
		return remotecatalog.NewClient(httpClient, cfg.RemoteURL), nil, nil
	}
	return nil, nil, fmt.Errorf("unknown catalog driver: %s", cfg.Driver)
}

// sessionBackends picks Redis for sessions and the listing cache when an
// address is configured, and an in-memory session store otherwise. The
// returned cleanup must be called on shutdown.
func sessionBackends(ctx context.Context, cfg config.RedisConfig) (ports.SessionStore, ports.CatalogCache, func(), error) {
	if cfg.Address == "" {
		sessions := memory.NewSessionStore()
		sweepCtx, cancel := context.WithCancel(ctx)
		go sessions.RunSweeper(sweepCtx, sessionSweepInterval)
		log.Info("redis not configured, using in-memory sessions without a catalog cache")
		return sessions, nil, cancel, nil
	}

	rdb, err := redisstore.NewClient(ctx, cfg.Address)
	if err != nil {
		return nil, nil, nil, err
	}
	log.Info("using redis at " + cfg.Address)
	return redisstore.NewSessionStore(rdb), redisstore.NewCache(rdb), closeRedis(rdb), nil
}

func closeRedis(rdb *redis.Client) func() {
	return func() {
		if err := rdb.Close(); err != nil {
			log.WithError(err).Warn("failed to close redis client")
		}
	}
}

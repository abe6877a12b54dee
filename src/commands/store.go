package commands

import (
	"context"
	"fmt"
	"time"

	"bankweb/src/config"
	"bankweb/src/db"
	"bankweb/src/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	connectAttempts = 5
	connectDelay    = 2 * time.Second
)

// openStore picks Postgres when DATABASE_URL is set and otherwise the
// in-memory store loaded with the seed fixture. The returned func releases
// whatever was opened.
func openStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (store.Store, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		mem := store.NewMemory()
		seed, err := store.LoadSeed(cfg.SeedFile)
		if err != nil {
			return nil, nil, err
		}
		if err := store.Apply(ctx, mem, seed, bcrypt.DefaultCost, logger.With(zap.String("component", "seed"))); err != nil {
			return nil, nil, fmt.Errorf("seeding in-memory store: %w", err)
		}
		return mem, func() {}, nil
	}

	pool, err := db.ConnectWithRetry(ctx, cfg.DatabaseURL, connectAttempts, connectDelay, logger)
	if err != nil {
		return nil, nil, err
	}
	cache, err := db.NewCache(cfg.CacheTTL)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("creating cache: %w", err)
	}
	st := store.NewPostgres(pool, cache, logger.With(zap.String("component", "store")))
	return st, func() {
		cache.Close()
		pool.Close()
	}, nil
}

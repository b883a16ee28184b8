package persistence

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/mood-journal/internal/config"
)

// ErrCorruptDocument marks a backing document that exists but cannot be
// decoded.
var ErrCorruptDocument = errors.New("corrupt storage document")

// Substrate is a string-keyed blob store. It plays the role browser local
// storage plays for a client-side app: whole values in, whole values out.
type Substrate interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key; removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// Open builds the substrate selected by cfg.Storage.Backend.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (Substrate, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		logger.Warn("using in-memory storage; data is lost on exit")
		return NewMemory(), nil
	case config.StorageFile:
		return NewFileStore(cfg.Storage.FilePath, logger)
	case config.StorageSQLite:
		return NewSQLite(ctx, cfg.Storage.SQLitePath, logger)
	case config.StorageRedis:
		return NewRedis(cfg.Redis, logger), nil
	case config.StoragePostgres:
		pg, err := NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		if cfg.Postgres.RunMigrations {
			if err := RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
				pg.Close()
				return nil, fmt.Errorf("run migrations: %w", err)
			}
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

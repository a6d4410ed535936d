package app

import (
	"context"
	"fmt"

	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/db"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/data/repos/gormstore"
	"github.com/yungbote/studynotes-backend/internal/data/repos/memstore"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

func dbConfig(cfg Config) db.Config {
	return db.Config{
		Driver:          cfg.StoreDriver,
		DSN:             cfg.DatabaseURL,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		ConnMaxLifetime: cfg.DBConnLifetime,
	}
}

// openStore picks the backend once for the life of the process. A durable
// store that cannot be reached falls back to memory outside production.
func openStore(ctx context.Context, log *logger.Logger, cfg Config) (repos.Store, error) {
	opts := repos.Options{Hasher: auth.NewHasher(cfg.BcryptCost)}
	if cfg.StoreDriver == StoreMemory {
		log.Info("using in-memory store; data is lost on restart")
		return memstore.New(log, opts), nil
	}

	gdb, err := db.Open(ctx, dbConfig(cfg), log)
	if err == nil && cfg.AutoMigrate {
		if err = db.AutoMigrateAll(ctx, gdb); err != nil {
			if sqlDB, dbErr := gdb.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
	}
	if err != nil {
		if cfg.Production() {
			return nil, fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
		}
		log.Warn("durable store unavailable, falling back to in-memory store", "driver", cfg.StoreDriver, "error", err)
		return memstore.New(log, opts), nil
	}
	return gormstore.New(gdb, log, opts), nil
}

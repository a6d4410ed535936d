package app

import (
	"context"
	"fmt"

	"github.com/yungbote/studynotes-backend/internal/data/db"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

// Migrate creates or updates the durable store's tables and exits. It has
// nothing to do for the memory store.
func Migrate(ctx context.Context, cfg Config) error {
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	if cfg.StoreDriver == StoreMemory {
		log.Info("memory store selected; nothing to migrate")
		return nil
	}
	gdb, err := db.Open(ctx, dbConfig(cfg), log)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := db.AutoMigrateAll(ctx, gdb); err != nil {
		return err
	}
	log.Info("migration complete", "driver", cfg.StoreDriver)
	return nil
}

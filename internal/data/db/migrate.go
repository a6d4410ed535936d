package db

import (
	"context"

	"gorm.io/gorm"

	"github.com/yungbote/studynotes-backend/internal/data/repos/gormstore"
)

func AutoMigrateAll(ctx context.Context, db *gorm.DB) error {
	return gormstore.Migrate(ctx, db)
}

package testutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/studynotes-backend/internal/auth"
	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/data/repos/gormstore"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

var errMissingDSN = errors.New("missing TEST_POSTGRES_DSN")

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	pgOnce sync.Once
	pgDB   *gorm.DB
	pgErr  error

	sqliteSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// Options uses the cheapest bcrypt cost the hasher allows and a fake clock
// that starts at a fixed instant and advances one millisecond per read.
func Options() repos.Options {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	var ticks atomic.Int64
	return repos.Options{
		Clock: repos.NewClock(func() time.Time {
			return start.Add(time.Duration(ticks.Add(1)) * time.Millisecond)
		}),
		Hasher: auth.NewHasher(auth.MinCost),
	}
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_]+`)

// SQLite returns a fresh, migrated in-memory database private to tb.
func SQLite(tb testing.TB) *gorm.DB {
	tb.Helper()
	name := fmt.Sprintf("%s_%d", unsafeName.ReplaceAllString(tb.Name(), "_"), sqliteSeq.Add(1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })

	if err := gormstore.Migrate(context.Background(), db); err != nil {
		tb.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

// Postgres returns the shared database named by TEST_POSTGRES_DSN, or skips.
// Every table is truncated before it is handed out.
func Postgres(tb testing.TB) *gorm.DB {
	tb.Helper()

	pgOnce.Do(func() {
		dsn := os.Getenv("TEST_POSTGRES_DSN")
		if dsn == "" {
			pgErr = errMissingDSN
			return
		}
		pgDB, pgErr = gorm.Open(postgres.Open(dsn), &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if pgErr != nil {
			return
		}
		pgErr = gormstore.Migrate(context.Background(), pgDB)
	})

	if errors.Is(pgErr, errMissingDSN) {
		tb.Skip("set TEST_POSTGRES_DSN to run postgres store tests")
	}
	if pgErr != nil {
		tb.Fatalf("failed to init test db: %v", pgErr)
	}
	if err := pgDB.Exec("TRUNCATE users, notes, quizzes, quiz_attempts, chat_histories, study_sessions").Error; err != nil {
		tb.Fatalf("truncate: %v", err)
	}
	return pgDB
}

// Package gormstore is the durable backend: gorm over Postgres in production
// and SQLite for local runs and tests. Nested attributes live in JSON
// document columns.
package gormstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

var errSkip = errors.New("gormstore: skip")

type Store struct {
	db       *gorm.DB
	users    *userRepo
	notes    *noteRepo
	quizzes  *quizRepo
	attempts *attemptRepo
	chats    *chatRepo
	sessions *sessionRepo
}

var _ repos.Store = (*Store)(nil)

func New(db *gorm.DB, baseLog *logger.Logger, opts repos.Options) *Store {
	opts = opts.WithDefaults()
	base := repoBase{db: db, opts: opts}
	return &Store{
		db:       db,
		users:    &userRepo{repoBase: base.named(baseLog, "UserRepo")},
		notes:    &noteRepo{repoBase: base.named(baseLog, "NoteRepo")},
		quizzes:  &quizRepo{repoBase: base.named(baseLog, "QuizRepo")},
		attempts: &attemptRepo{repoBase: base.named(baseLog, "QuizAttemptRepo")},
		chats:    &chatRepo{repoBase: base.named(baseLog, "ChatRepo")},
		sessions: &sessionRepo{repoBase: base.named(baseLog, "StudySessionRepo")},
	}
}

func (s *Store) Users() repos.UserRepo { return s.users }
func (s *Store) Notes() repos.NoteRepo { return s.notes }
func (s *Store) Quizzes() repos.QuizRepo { return s.quizzes }
func (s *Store) QuizAttempts() repos.QuizAttemptRepo { return s.attempts }
func (s *Store) Chats() repos.ChatRepo { return s.chats }
func (s *Store) StudySessions() repos.StudySessionRepo { return s.sessions }

// Backend is the dialect name: "postgres" or "sqlite".
func (s *Store) Backend() string { return s.db.Dialector.Name() }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Migrate creates or updates every table the store uses.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type repoBase struct {
	db   *gorm.DB
	opts repos.Options
	log  *logger.Logger
}

func (b repoBase) named(baseLog *logger.Logger, repo string) repoBase {
	b.log = baseLog.With("repo", repo, "backend", b.db.Dialector.Name())
	return b
}

// forUpdate takes a row lock where the dialect has one. SQLite serializes
// writers on its own.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// rewrite loads row id under a lock, lets fn replace it in place and saves it
// in the same transaction. found is false when the row is missing or fn
// returned errSkip; any other fn error rolls back.
func rewrite[R any](ctx context.Context, db *gorm.DB, id string, fn func(*R) error) (row *R, found bool, err error) {
	row = new(R)
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).Take(row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		if err := fn(row); err != nil {
			if errors.Is(err, errSkip) {
				return nil
			}
			found = true
			return err
		}
		found = true
		return tx.Save(row).Error
	})
	if err != nil {
		return nil, found, err
	}
	if !found {
		return nil, false, nil
	}
	return row, true, nil
}

// take loads row id; found is false when it does not exist.
func take[R any](ctx context.Context, db *gorm.DB, id string) (*R, bool, error) {
	row := new(R)
	if err := db.WithContext(ctx).Where("id = ?", id).Take(row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return row, true, nil
}

// removeOwned deletes id when ownerID owns it.
func removeOwned[R any](ctx context.Context, db *gorm.DB, id, ownerID string) (bool, error) {
	if ownerID == "" {
		return false, nil
	}
	res := db.WithContext(ctx).Where("id = ? AND owner_id = ?", id, ownerID).Delete(new(R))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate key")
}

// wrapWrite passes typed errors through and annotates driver errors.
func wrapWrite(op string, err error) error {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}

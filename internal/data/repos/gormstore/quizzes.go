package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type quizRepo struct {
	repoBase
}

func (r *quizRepo) Create(ctx context.Context, ownerID string, in domain.NewQuiz) (*domain.Quiz, error) {
	q := domain.NewQuizRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := q.Prepare(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(newQuizRow(q)).Error; err != nil {
		return nil, fmt.Errorf("create quiz: %w", err)
	}
	return q, nil
}

func (r *quizRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.Quiz, error) {
	row, found, err := take[quizRow](ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("find quiz: %w", err)
	}
	if !found || !repos.CanRead(ownerID, row.OwnerID) {
		return nil, apierr.NotFound("quiz")
	}
	return row.toDomain(), nil
}

func (r *quizRepo) List(ctx context.Context, ownerID string, f repos.QuizFilter) ([]*domain.Quiz, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	quizzes, err := r.find(quizExact(q, f))
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return repos.ApplyQuizFilter(quizzes, f), nil
}

func (r *quizRepo) ListPublic(ctx context.Context, f repos.QuizFilter) ([]*domain.Quiz, error) {
	q := r.db.WithContext(ctx).Where("is_public = ?", true)
	quizzes, err := r.find(quizExact(q, f))
	if err != nil {
		return nil, fmt.Errorf("list public quizzes: %w", err)
	}
	return repos.ApplyPublicQuizFilter(quizzes, f), nil
}

func quizExact(q *gorm.DB, f repos.QuizFilter) *gorm.DB {
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", string(f.Difficulty))
	}
	return q
}

func (r *quizRepo) find(q *gorm.DB) ([]*domain.Quiz, error) {
	var rows []quizRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *quizRepo) Update(ctx context.Context, id, ownerID string, patch domain.QuizPatch) (*domain.Quiz, error) {
	row, found, err := rewrite(ctx, r.db, id, func(row *quizRow) error {
		if !repos.CanWrite(ownerID, row.OwnerID) {
			return errSkip
		}
		q := row.toDomain()
		q.Apply(patch)
		q.UpdatedAt = r.opts.Clock.Now()
		if err := q.Prepare(); err != nil {
			return err
		}
		*row = *newQuizRow(q)
		return nil
	})
	if err != nil {
		return nil, wrapWrite("update quiz", err)
	}
	if !found {
		return nil, apierr.NotFound("quiz")
	}
	return row.toDomain(), nil
}

func (r *quizRepo) RecordAttempt(ctx context.Context, id string) (*domain.Quiz, error) {
	res := r.db.WithContext(ctx).
		Model(&quizRow{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"attempts":   gorm.Expr("attempts + 1"),
			"updated_at": r.opts.Clock.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("record quiz attempt: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apierr.NotFound("quiz")
	}
	return r.FindByID(ctx, id, "")
}

func (r *quizRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ok, err := removeOwned[quizRow](ctx, r.db, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete quiz: %w", err)
	}
	return ok, nil
}

package gormstore

import (
	"context"
	"fmt"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type attemptRepo struct {
	repoBase
}

func (r *attemptRepo) Create(ctx context.Context, ownerID string, in domain.NewQuizAttempt) (*domain.QuizAttempt, error) {
	a := domain.NewQuizAttemptRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := a.Prepare(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(newAttemptRow(a)).Error; err != nil {
		return nil, fmt.Errorf("create quiz attempt: %w", err)
	}
	return a, nil
}

func (r *attemptRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.QuizAttempt, error) {
	row, found, err := take[attemptRow](ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("find quiz attempt: %w", err)
	}
	if !found || !repos.CanRead(ownerID, row.OwnerID) {
		return nil, apierr.NotFound("quiz attempt")
	}
	return row.toDomain(), nil
}

func (r *attemptRepo) List(ctx context.Context, ownerID string, f repos.AttemptFilter) ([]*domain.QuizAttempt, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if f.QuizID != "" {
		q = q.Where("quiz_id = ?", f.QuizID)
	}
	var rows []attemptRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	out := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return repos.ApplyAttemptFilter(out, f), nil
}

func (r *attemptRepo) Update(ctx context.Context, id, ownerID string, patch domain.QuizAttemptPatch) (*domain.QuizAttempt, error) {
	row, found, err := rewrite(ctx, r.db, id, func(row *attemptRow) error {
		if !repos.CanWrite(ownerID, row.OwnerID) {
			return errSkip
		}
		a := row.toDomain()
		a.Apply(patch)
		if err := a.Prepare(); err != nil {
			return err
		}
		*row = *newAttemptRow(a)
		return nil
	})
	if err != nil {
		return nil, wrapWrite("update quiz attempt", err)
	}
	if !found {
		return nil, apierr.NotFound("quiz attempt")
	}
	return row.toDomain(), nil
}

func (r *attemptRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ok, err := removeOwned[attemptRow](ctx, r.db, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete quiz attempt: %w", err)
	}
	return ok, nil
}

package memstore

import (
	"context"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type quizRepo struct {
	c    *collection[domain.Quiz, *domain.Quiz]
	opts repos.Options
	log  *logger.Logger
}

func newQuizRepo(baseLog *logger.Logger, opts repos.Options) *quizRepo {
	return &quizRepo{
		c:    newCollection[domain.Quiz](),
		opts: opts,
		log:  baseLog.With("repo", "QuizRepo", "backend", Backend),
	}
}

func (r *quizRepo) Create(ctx context.Context, ownerID string, in domain.NewQuiz) (*domain.Quiz, error) {
	q := domain.NewQuizRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := q.Prepare(); err != nil {
		return nil, err
	}
	r.c.put(q.ID, q)
	return q, nil
}

func (r *quizRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.Quiz, error) {
	q, ok := r.c.get(id)
	if !ok || !repos.CanRead(ownerID, q.OwnerID) {
		return nil, apierr.NotFound("quiz")
	}
	return q, nil
}

func (r *quizRepo) List(ctx context.Context, ownerID string, f repos.QuizFilter) ([]*domain.Quiz, error) {
	owned := r.c.snapshot(func(q *domain.Quiz) bool { return q.OwnerID == ownerID })
	return repos.ApplyQuizFilter(owned, f), nil
}

func (r *quizRepo) ListPublic(ctx context.Context, f repos.QuizFilter) ([]*domain.Quiz, error) {
	public := r.c.snapshot(func(q *domain.Quiz) bool { return q.IsPublic })
	return repos.ApplyPublicQuizFilter(public, f), nil
}

func (r *quizRepo) Update(ctx context.Context, id, ownerID string, patch domain.QuizPatch) (*domain.Quiz, error) {
	q, ok, err := r.c.mutate(id, func(q *domain.Quiz) error {
		if !repos.CanWrite(ownerID, q.OwnerID) {
			return errSkip
		}
		q.Apply(patch)
		q.UpdatedAt = r.opts.Clock.Now()
		return q.Prepare()
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("quiz")
	}
	return q, nil
}

func (r *quizRepo) RecordAttempt(ctx context.Context, id string) (*domain.Quiz, error) {
	now := r.opts.Clock.Now()
	q, ok, err := r.c.mutate(id, func(q *domain.Quiz) error {
		q.Marketplace.Attempts++
		q.UpdatedAt = now
		return q.Prepare()
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("quiz")
	}
	return q, nil
}

func (r *quizRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	return r.c.remove(id, func(q *domain.Quiz) bool { return repos.CanWrite(ownerID, q.OwnerID) }), nil
}

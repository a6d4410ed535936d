package memstore

import (
	"context"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type attemptRepo struct {
	c    *collection[domain.QuizAttempt, *domain.QuizAttempt]
	opts repos.Options
	log  *logger.Logger
}

func newAttemptRepo(baseLog *logger.Logger, opts repos.Options) *attemptRepo {
	return &attemptRepo{
		c:    newCollection[domain.QuizAttempt](),
		opts: opts,
		log:  baseLog.With("repo", "QuizAttemptRepo", "backend", Backend),
	}
}

func (r *attemptRepo) Create(ctx context.Context, ownerID string, in domain.NewQuizAttempt) (*domain.QuizAttempt, error) {
	a := domain.NewQuizAttemptRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := a.Prepare(); err != nil {
		return nil, err
	}
	r.c.put(a.ID, a)
	return a, nil
}

func (r *attemptRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.QuizAttempt, error) {
	a, ok := r.c.get(id)
	if !ok || !repos.CanRead(ownerID, a.OwnerID) {
		return nil, apierr.NotFound("quiz attempt")
	}
	return a, nil
}

func (r *attemptRepo) List(ctx context.Context, ownerID string, f repos.AttemptFilter) ([]*domain.QuizAttempt, error) {
	owned := r.c.snapshot(func(a *domain.QuizAttempt) bool { return a.OwnerID == ownerID })
	return repos.ApplyAttemptFilter(owned, f), nil
}

func (r *attemptRepo) Update(ctx context.Context, id, ownerID string, patch domain.QuizAttemptPatch) (*domain.QuizAttempt, error) {
	a, ok, err := r.c.mutate(id, func(a *domain.QuizAttempt) error {
		if !repos.CanWrite(ownerID, a.OwnerID) {
			return errSkip
		}
		a.Apply(patch)
		return a.Prepare()
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("quiz attempt")
	}
	return a, nil
}

func (r *attemptRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	return r.c.remove(id, func(a *domain.QuizAttempt) bool { return repos.CanWrite(ownerID, a.OwnerID) }), nil
}

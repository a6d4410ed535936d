package memstore

import (
	"context"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type sessionRepo struct {
	c    *collection[domain.StudySession, *domain.StudySession]
	opts repos.Options
	log  *logger.Logger
}

func newSessionRepo(baseLog *logger.Logger, opts repos.Options) *sessionRepo {
	return &sessionRepo{
		c:    newCollection[domain.StudySession](),
		opts: opts,
		log:  baseLog.With("repo", "StudySessionRepo", "backend", Backend),
	}
}

func (r *sessionRepo) Create(ctx context.Context, ownerID string, in domain.NewStudySession) (*domain.StudySession, error) {
	s := domain.NewStudySessionRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	r.c.put(s.ID, s)
	return s, nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.StudySession, error) {
	s, ok := r.c.get(id)
	if !ok || !repos.CanRead(ownerID, s.OwnerID) {
		return nil, apierr.NotFound("study session")
	}
	return s, nil
}

func (r *sessionRepo) List(ctx context.Context, ownerID string, f repos.SessionFilter) ([]*domain.StudySession, error) {
	owned := r.c.snapshot(func(s *domain.StudySession) bool { return s.OwnerID == ownerID })
	return repos.ApplySessionFilter(owned, f), nil
}

func (r *sessionRepo) Update(ctx context.Context, id, ownerID string, patch domain.StudySessionPatch) (*domain.StudySession, error) {
	s, ok, err := r.c.mutate(id, func(s *domain.StudySession) error {
		if !repos.CanWrite(ownerID, s.OwnerID) {
			return errSkip
		}
		s.Apply(patch)
		return s.Prepare()
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("study session")
	}
	return s, nil
}

func (r *sessionRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	return r.c.remove(id, func(s *domain.StudySession) bool { return repos.CanWrite(ownerID, s.OwnerID) }), nil
}

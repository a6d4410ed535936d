package gormstore

import (
	"context"
	"fmt"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type sessionRepo struct {
	repoBase
}

func (r *sessionRepo) Create(ctx context.Context, ownerID string, in domain.NewStudySession) (*domain.StudySession, error) {
	s := domain.NewStudySessionRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := s.Prepare(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(newSessionRow(s)).Error; err != nil {
		return nil, fmt.Errorf("create study session: %w", err)
	}
	return s, nil
}

func (r *sessionRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.StudySession, error) {
	row, found, err := take[sessionRow](ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("find study session: %w", err)
	}
	if !found || !repos.CanRead(ownerID, row.OwnerID) {
		return nil, apierr.NotFound("study session")
	}
	return row.toDomain(), nil
}

func (r *sessionRepo) List(ctx context.Context, ownerID string, f repos.SessionFilter) ([]*domain.StudySession, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	var rows []sessionRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list study sessions: %w", err)
	}
	out := make([]*domain.StudySession, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return repos.ApplySessionFilter(out, f), nil
}

func (r *sessionRepo) Update(ctx context.Context, id, ownerID string, patch domain.StudySessionPatch) (*domain.StudySession, error) {
	row, found, err := rewrite(ctx, r.db, id, func(row *sessionRow) error {
		if !repos.CanWrite(ownerID, row.OwnerID) {
			return errSkip
		}
		s := row.toDomain()
		s.Apply(patch)
		if err := s.Prepare(); err != nil {
			return err
		}
		*row = *newSessionRow(s)
		return nil
	})
	if err != nil {
		return nil, wrapWrite("update study session", err)
	}
	if !found {
		return nil, apierr.NotFound("study session")
	}
	return row.toDomain(), nil
}

func (r *sessionRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ok, err := removeOwned[sessionRow](ctx, r.db, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete study session: %w", err)
	}
	return ok, nil
}

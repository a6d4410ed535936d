package memstore

import (
	"context"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type noteRepo struct {
	c    *collection[domain.Note, *domain.Note]
	opts repos.Options
	log  *logger.Logger
}

func newNoteRepo(baseLog *logger.Logger, opts repos.Options) *noteRepo {
	return &noteRepo{
		c:    newCollection[domain.Note](),
		opts: opts,
		log:  baseLog.With("repo", "NoteRepo", "backend", Backend),
	}
}

func (r *noteRepo) Create(ctx context.Context, ownerID string, in domain.NewNote) (*domain.Note, error) {
	n := domain.NewNoteRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := n.Prepare(); err != nil {
		return nil, err
	}
	r.c.put(n.ID, n)
	return n, nil
}

func (r *noteRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	n, ok := r.c.get(id)
	if !ok || !repos.CanRead(ownerID, n.OwnerID) {
		return nil, apierr.NotFound("note")
	}
	return n, nil
}

func (r *noteRepo) List(ctx context.Context, ownerID string, f repos.NoteFilter) ([]*domain.Note, error) {
	owned := r.c.snapshot(func(n *domain.Note) bool { return n.OwnerID == ownerID })
	return repos.ApplyNoteFilter(owned, f), nil
}

func (r *noteRepo) ListPublic(ctx context.Context, f repos.NoteFilter) ([]*domain.Note, error) {
	public := r.c.snapshot(func(n *domain.Note) bool { return n.Marketplace.IsPublic })
	return repos.ApplyPublicNoteFilter(public, f), nil
}

func (r *noteRepo) Update(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error) {
	n, ok, err := r.c.mutate(id, func(n *domain.Note) error {
		if !repos.CanWrite(ownerID, n.OwnerID) {
			return errSkip
		}
		n.Apply(patch)
		n.UpdatedAt = r.opts.Clock.Now()
		return n.Prepare()
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("note")
	}
	return n, nil
}

// Rate touches only the rating fields, like the single UPDATE in gormstore.
func (r *noteRepo) Rate(ctx context.Context, id string, rating int) (*domain.Note, error) {
	if rating < 1 || rating > 5 {
		return nil, apierr.Validation("rating must be between 1 and 5")
	}
	now := r.opts.Clock.Now()
	n, ok, err := r.c.mutate(id, func(n *domain.Note) error {
		if !n.Marketplace.IsPublic {
			return errSkip
		}
		n.Marketplace = n.Marketplace.AddRating(rating)
		n.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("note")
	}
	return n, nil
}

func (r *noteRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	return r.c.remove(id, func(n *domain.Note) bool { return repos.CanWrite(ownerID, n.OwnerID) }), nil
}

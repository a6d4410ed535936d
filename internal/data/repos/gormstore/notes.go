package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type noteRepo struct {
	repoBase
}

func (r *noteRepo) Create(ctx context.Context, ownerID string, in domain.NewNote) (*domain.Note, error) {
	n := domain.NewNoteRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := n.Prepare(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(newNoteRow(n)).Error; err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (r *noteRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.Note, error) {
	row, found, err := take[noteRow](ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	if !found || !repos.CanRead(ownerID, row.OwnerID) {
		return nil, apierr.NotFound("note")
	}
	return row.toDomain(), nil
}

func (r *noteRepo) List(ctx context.Context, ownerID string, f repos.NoteFilter) ([]*domain.Note, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	notes, err := r.find(noteExact(q, f))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return repos.ApplyNoteFilter(notes, f), nil
}

func (r *noteRepo) ListPublic(ctx context.Context, f repos.NoteFilter) ([]*domain.Note, error) {
	q := r.db.WithContext(ctx).Where("is_public = ?", true)
	notes, err := r.find(noteExact(q, f))
	if err != nil {
		return nil, fmt.Errorf("list public notes: %w", err)
	}
	return repos.ApplyPublicNoteFilter(notes, f), nil
}

// noteExact pushes the exact-match predicates into SQL; search, ordering and
// limit are applied by the shared filter afterwards.
func noteExact(q *gorm.DB, f repos.NoteFilter) *gorm.DB {
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	return q
}

func (r *noteRepo) find(q *gorm.DB) ([]*domain.Note, error) {
	var rows []noteRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]*domain.Note, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return out, nil
}

func (r *noteRepo) Update(ctx context.Context, id, ownerID string, patch domain.NotePatch) (*domain.Note, error) {
	row, found, err := rewrite(ctx, r.db, id, func(row *noteRow) error {
		if !repos.CanWrite(ownerID, row.OwnerID) {
			return errSkip
		}
		n := row.toDomain()
		n.Apply(patch)
		n.UpdatedAt = r.opts.Clock.Now()
		if err := n.Prepare(); err != nil {
			return err
		}
		*row = *newNoteRow(n)
		return nil
	})
	if err != nil {
		return nil, wrapWrite("update note", err)
	}
	if !found {
		return nil, apierr.NotFound("note")
	}
	return row.toDomain(), nil
}

// Rate updates the running average in one statement so concurrent ratings
// cannot lose each other.
func (r *noteRepo) Rate(ctx context.Context, id string, rating int) (*domain.Note, error) {
	if rating < 1 || rating > 5 {
		return nil, apierr.Validation("rating must be between 1 and 5")
	}
	res := r.db.WithContext(ctx).
		Model(&noteRow{}).
		Where("id = ? AND is_public = ?", id, true).
		Updates(map[string]any{
			"rating":       gorm.Expr("(rating * rating_count + ?) / (rating_count + 1)", float64(rating)),
			"rating_count": gorm.Expr("rating_count + 1"),
			"updated_at":   r.opts.Clock.Now(),
		})
	if res.Error != nil {
		return nil, fmt.Errorf("rate note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apierr.NotFound("note")
	}
	return r.FindByID(ctx, id, "")
}

func (r *noteRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ok, err := removeOwned[noteRow](ctx, r.db, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete note: %w", err)
	}
	return ok, nil
}

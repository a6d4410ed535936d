package gormstore

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type chatRepo struct {
	repoBase
}

func (r *chatRepo) Create(ctx context.Context, ownerID string, in domain.NewChat) (*domain.ChatHistory, error) {
	c := domain.NewChatRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := c.Prepare(); err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(newChatRow(c)).Error; err != nil {
		return nil, fmt.Errorf("create chat session: %w", err)
	}
	return c, nil
}

func (r *chatRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.ChatHistory, error) {
	row, found, err := take[chatRow](ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("find chat session: %w", err)
	}
	if !found || !repos.CanRead(ownerID, row.OwnerID) {
		return nil, apierr.NotFound("chat session")
	}
	return row.toDomain(), nil
}

func (r *chatRepo) List(ctx context.Context, ownerID string, f repos.ChatFilter) ([]*domain.ChatHistory, error) {
	q := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if f.Subject != "" {
		q = q.Where("subject = ?", f.Subject)
	}
	var rows []chatRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list chat sessions: %w", err)
	}
	out := make([]*domain.ChatHistory, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDomain())
	}
	return repos.ApplyChatFilter(out, f), nil
}

func (r *chatRepo) Update(ctx context.Context, id, ownerID string, patch domain.ChatPatch) (*domain.ChatHistory, error) {
	return r.write(ctx, id, ownerID, "update chat session", func(c *domain.ChatHistory, now time.Time) {
		c.Apply(patch, now)
	})
}

func (r *chatRepo) AppendMessages(ctx context.Context, id, ownerID string, msgs ...domain.ChatMessage) (*domain.ChatHistory, error) {
	return r.write(ctx, id, ownerID, "append chat messages", func(c *domain.ChatHistory, now time.Time) {
		c.Messages = append(c.Messages, domain.StampMessages(msgs, now)...)
	})
}

func (r *chatRepo) write(ctx context.Context, id, ownerID, op string, fn func(*domain.ChatHistory, time.Time)) (*domain.ChatHistory, error) {
	row, found, err := rewrite(ctx, r.db, id, func(row *chatRow) error {
		if !repos.CanWrite(ownerID, row.OwnerID) {
			return errSkip
		}
		c := row.toDomain()
		now := r.opts.Clock.Now()
		fn(c, now)
		c.UpdatedAt = now
		if err := c.Prepare(); err != nil {
			return err
		}
		*row = *newChatRow(c)
		return nil
	})
	if err != nil {
		return nil, wrapWrite(op, err)
	}
	if !found {
		return nil, apierr.NotFound("chat session")
	}
	return row.toDomain(), nil
}

func (r *chatRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	ok, err := removeOwned[chatRow](ctx, r.db, id, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete chat session: %w", err)
	}
	return ok, nil
}

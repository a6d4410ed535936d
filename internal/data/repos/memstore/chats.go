package memstore

import (
	"context"
	"time"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type chatRepo struct {
	c    *collection[domain.ChatHistory, *domain.ChatHistory]
	opts repos.Options
	log  *logger.Logger
}

func newChatRepo(baseLog *logger.Logger, opts repos.Options) *chatRepo {
	return &chatRepo{
		c:    newCollection[domain.ChatHistory](),
		opts: opts,
		log:  baseLog.With("repo", "ChatRepo", "backend", Backend),
	}
}

func (r *chatRepo) Create(ctx context.Context, ownerID string, in domain.NewChat) (*domain.ChatHistory, error) {
	c := domain.NewChatRecord(r.opts.NewID(), ownerID, in, r.opts.Clock.Now())
	if err := c.Prepare(); err != nil {
		return nil, err
	}
	r.c.put(c.ID, c)
	return c, nil
}

func (r *chatRepo) FindByID(ctx context.Context, id, ownerID string) (*domain.ChatHistory, error) {
	c, ok := r.c.get(id)
	if !ok || !repos.CanRead(ownerID, c.OwnerID) {
		return nil, apierr.NotFound("chat session")
	}
	return c, nil
}

func (r *chatRepo) List(ctx context.Context, ownerID string, f repos.ChatFilter) ([]*domain.ChatHistory, error) {
	owned := r.c.snapshot(func(c *domain.ChatHistory) bool { return c.OwnerID == ownerID })
	return repos.ApplyChatFilter(owned, f), nil
}

func (r *chatRepo) Update(ctx context.Context, id, ownerID string, patch domain.ChatPatch) (*domain.ChatHistory, error) {
	return r.write(id, ownerID, func(c *domain.ChatHistory, now time.Time) {
		c.Apply(patch, now)
	})
}

func (r *chatRepo) AppendMessages(ctx context.Context, id, ownerID string, msgs ...domain.ChatMessage) (*domain.ChatHistory, error) {
	return r.write(id, ownerID, func(c *domain.ChatHistory, now time.Time) {
		c.Messages = append(c.Messages, domain.StampMessages(msgs, now)...)
	})
}

func (r *chatRepo) write(id, ownerID string, fn func(*domain.ChatHistory, time.Time)) (*domain.ChatHistory, error) {
	c, ok, err := r.c.mutate(id, func(c *domain.ChatHistory) error {
		if !repos.CanWrite(ownerID, c.OwnerID) {
			return errSkip
		}
		now := r.opts.Clock.Now()
		fn(c, now)
		c.UpdatedAt = now
		return c.Prepare()
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apierr.NotFound("chat session")
	}
	return c, nil
}

func (r *chatRepo) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	return r.c.remove(id, func(c *domain.ChatHistory) bool { return repos.CanWrite(ownerID, c.OwnerID) }), nil
}

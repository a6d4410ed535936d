package memstore

import (
	"context"
	"sync"

	"github.com/yungbote/studynotes-backend/internal/data/repos"
	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
	"github.com/yungbote/studynotes-backend/internal/platform/logger"
)

type userRecord struct {
	user *domain.User
	hash string
}

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]*userRecord
	opts repos.Options
	log  *logger.Logger
}

func newUserRepo(baseLog *logger.Logger, opts repos.Options) *userRepo {
	return &userRepo{
		byID: make(map[string]*userRecord),
		opts: opts,
		log:  baseLog.With("repo", "UserRepo", "backend", Backend),
	}
}

func (r *userRepo) Create(ctx context.Context, in domain.NewUser) (*domain.User, error) {
	if err := domain.Validate(in); err != nil {
		return nil, err
	}
	hash, err := r.opts.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := domain.NewUserRecord(r.opts.NewID(), in, r.opts.Clock.Now())
	if err := u.Prepare(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rec := range r.byID {
		if rec.user.Username == u.Username || rec.user.Email == u.Email {
			return nil, apierr.Conflict("username or email already registered")
		}
	}
	r.byID[u.ID] = &userRecord{user: u.Clone(), hash: hash}
	r.log.Debug("user created", "user_id", u.ID)
	return u, nil
}

func (r *userRepo) VerifyCredential(ctx context.Context, email, password string) (*domain.User, error) {
	r.mu.RLock()
	var found *userRecord
	for _, rec := range r.byID {
		if rec.user.Email == email {
			found = &userRecord{user: rec.user.Clone(), hash: rec.hash}
			break
		}
	}
	r.mu.RUnlock()

	if found == nil || !r.opts.Hasher.Verify(password, found.hash) {
		return nil, apierr.Auth()
	}
	return found.user, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, apierr.NotFound("user")
	}
	return rec.user.Clone(), nil
}

func (r *userRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.byID[id]
	if !ok {
		return nil, apierr.NotFound("user")
	}
	next := rec.user.Clone()
	next.Apply(patch)
	next.LastActive = r.opts.Clock.Now()
	if err := next.Prepare(); err != nil {
		return nil, err
	}
	rec.user = next
	return next.Clone(), nil
}

func (r *userRepo) Delete(ctx context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false, nil
	}
	delete(r.byID, id)
	return true, nil
}

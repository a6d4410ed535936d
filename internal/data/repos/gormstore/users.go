package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yungbote/studynotes-backend/internal/domain"
	"github.com/yungbote/studynotes-backend/internal/platform/apierr"
)

type userRepo struct {
	repoBase
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

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userRow{}).
			Where("username = ? OR email = ?", u.Username, u.Email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return apierr.Conflict("username or email already registered")
		}
		return tx.Create(newUserRow(u, hash)).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apierr.Conflict("username or email already registered")
		}
		return nil, wrapWrite("create user", err)
	}
	r.log.Debug("user created", "user_id", u.ID)
	return u, nil
}

func (r *userRepo) VerifyCredential(ctx context.Context, email, password string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).Take(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Auth()
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	if !r.opts.Hasher.Verify(password, row.PasswordHash) {
		return nil, apierr.Auth()
	}
	return row.toDomain(), nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, found, err := take[userRow](ctx, r.db, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !found {
		return nil, apierr.NotFound("user")
	}
	return row.toDomain(), nil
}

func (r *userRepo) Update(ctx context.Context, id string, patch domain.UserPatch) (*domain.User, error) {
	var out *domain.User
	_, found, err := rewrite(ctx, r.db, id, func(row *userRow) error {
		u := row.toDomain()
		u.Apply(patch)
		u.LastActive = r.opts.Clock.Now()
		if err := u.Prepare(); err != nil {
			return err
		}
		*row = *newUserRow(u, row.PasswordHash)
		out = u
		return nil
	})
	if err != nil {
		return nil, wrapWrite("update user", err)
	}
	if !found {
		return nil, apierr.NotFound("user")
	}
	return out, nil
}

func (r *userRepo) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&userRow{})
	if res.Error != nil {
		return false, fmt.Errorf("delete user: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

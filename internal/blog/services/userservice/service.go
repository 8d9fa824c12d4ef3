package userservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/userrepo"
	"github.com/Leopold1975/blog_platform/pkg/logger"
)

type UserService struct {
	userRepo Repository
	lg       logger.Logger
}

type Repository interface {
	ListUsers(context.Context) ([]models.User, error)
	GetUserByID(context.Context, string) (models.User, error)
	GetUserByUsername(context.Context, string) (models.User, error)
	UpdateUser(context.Context, string, models.UserUpdate) (models.User, error)
	DeleteUser(context.Context, string) error
}

func New(userRepo Repository, lg logger.Logger) *UserService {
	return &UserService{
		userRepo: userRepo,
		lg:       lg,
	}
}

func (us *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	users, err := us.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users error: %w", err)
	}

	return users, nil
}

func (us *UserService) FindByID(ctx context.Context, id string) (models.User, error) {
	u, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, translate(err, "get user error")
	}

	return u, nil
}

func (us *UserService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	u, err := us.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return models.User{}, translate(err, "get user error")
	}

	return u, nil
}

// Update applies the non-nil fields of upd to user id. Only the user itself
// (ownerID == id) may do that.
func (us *UserService) Update(ctx context.Context, id string, upd models.UserUpdate,
	ownerID string,
) (models.User, error) {
	u, err := us.owned(ctx, id, ownerID)
	if err != nil {
		return models.User{}, err
	}

	if upd.Empty() {
		return u, nil
	}

	u, err = us.userRepo.UpdateUser(ctx, id, upd)
	if err != nil {
		return models.User{}, translate(err, "update user error")
	}

	return u, nil
}

func (us *UserService) Remove(ctx context.Context, id, ownerID string) error {
	if _, err := us.owned(ctx, id, ownerID); err != nil {
		return err
	}

	if err := us.userRepo.DeleteUser(ctx, id); err != nil {
		return translate(err, "delete user error")
	}

	us.lg.Infof("user %s deleted", id)

	return nil
}

func (us *UserService) owned(ctx context.Context, id, ownerID string) (models.User, error) {
	u, err := us.userRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, translate(err, "get user error")
	}

	if u.ID != ownerID {
		return models.User{}, fmt.Errorf("user %s is not %s: %w", ownerID, id, apperr.ErrUnauthorized)
	}

	return u, nil
}

func translate(err error, where string) error {
	switch {
	case errors.Is(err, userrepo.ErrNotFound):
		return fmt.Errorf("%w: %w", apperr.ErrNotFound, err)
	case errors.Is(err, userrepo.ErrAlreadyExists):
		return fmt.Errorf("email or username already in use: %w", apperr.ErrConflict)
	}

	return fmt.Errorf("%s: %w", where, err)
}

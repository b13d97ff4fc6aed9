package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"biblioteca/internal/auth"
	"biblioteca/internal/cache"
	"biblioteca/internal/errors"
	"biblioteca/internal/model"
	"biblioteca/internal/policy"
	"biblioteca/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UpdateUserInput carries a partial user update. Nil fields are left
// untouched; a non-nil Password is hashed exactly once before persisting.
type UpdateUserInput struct {
	Name     *string
	Phone    *string
	Role     *model.Role
	Password *string
}

// UserService exposes user profile operations with access policy applied.
type UserService interface {
	Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.User, error)
	List(ctx context.Context, filter repository.UserFilter, page repository.PageRequest) ([]model.User, int64, error)
	Update(ctx context.Context, actor policy.Actor, id uuid.UUID, input UpdateUserInput) (*model.User, error)
	Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// Get returns the user record. A missing or deactivated user is NotFound
// before any policy check, so callers cannot probe for existence.
func (s *userService) Get(ctx context.Context, actor policy.Actor, id uuid.UUID) (*model.User, error) {
	var cached model.User
	if s.cache.GetJSON(ctx, s.cacheKey(id), &cached) {
		if !policy.CanReadUser(actor, cached.ID) {
			return nil, errors.ErrForbidden
		}
		return &cached, nil
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}
	if !policy.CanReadUser(actor, user.ID) {
		return nil, errors.ErrForbidden
	}

	s.cache.SetJSON(ctx, s.cacheKey(id), user, userCacheTTL)
	return user, nil
}

// List returns active users, optionally narrowed by role. Admin gating
// happens at the route level.
func (s *userService) List(ctx context.Context, filter repository.UserFilter, page repository.PageRequest) ([]model.User, int64, error) {
	return s.repo.List(ctx, filter, page)
}

// Update applies a partial update. Only supplied fields change; the role
// field additionally requires the role-change policy.
func (s *userService) Update(ctx context.Context, actor policy.Actor, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, err
	}

	if !policy.CanWriteUser(actor, user.ID) {
		return nil, errors.ErrForbidden
	}
	if input.Role != nil && !policy.CanChangeRole(actor) {
		return nil, errors.ErrRoleChangeForbidden
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return user, nil
}

// Delete soft-deletes a user. Only admins may delete, never themselves; an
// already-inactive user is NotFound.
func (s *userService) Delete(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrUserNotFound
		}
		return err
	}

	if !policy.CanDeleteUser(actor, user.ID) {
		if policy.IsAdmin(actor) {
			return errors.ErrSelfDelete
		}
		return errors.ErrForbidden
	}

	user.Active = false
	if err := s.repo.Update(ctx, user); err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

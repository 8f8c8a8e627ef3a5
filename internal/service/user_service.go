package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"reppi/internal/auth"
	"reppi/internal/cache"
	apperrors "reppi/internal/errors"
	"reppi/internal/model"
	"reppi/internal/repository"
)

// userCacheTTL bounds how long a deleted or renamed user can still resolve
// from redis when nothing calls Forget.
const userCacheTTL = 30 * time.Second

// OwnerResolver maps an authenticated identity to the user that owns its records.
type OwnerResolver interface {
	ResolveOwner(ctx context.Context, identity auth.Identity) (*model.User, error)
}

// UserService exposes user lookups for the rest of the domain.
type UserService interface {
	OwnerResolver
	Forget(ctx context.Context, email string)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) cacheKey(email string) string {
	return fmt.Sprintf("user:email:%s", email)
}

// ResolveOwner loads the identity's user by email, through the cache.
func (s *userService) ResolveOwner(ctx context.Context, identity auth.Identity) (*model.User, error) {
	if !identity.Authenticated || identity.Email == "" {
		return nil, apperrors.ErrNotAuthenticated
	}
	user, err := cache.GetOrLoadJSON(ctx, s.cache, s.cacheKey(identity.Email), userCacheTTL,
		func(ctx context.Context) (*model.User, error) {
			return s.repo.FindByEmail(ctx, identity.Email)
		})
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve owner: %w", err)
	}
	return user, nil
}

// Forget drops the cached user for email.
func (s *userService) Forget(ctx context.Context, email string) {
	_ = s.cache.Delete(ctx, s.cacheKey(email))
}

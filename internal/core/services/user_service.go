package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// UserServiceOption is a functional option for configuring the user service
type UserServiceOption func(*userService)

// WithUserClock sets the clock used for sign-in timestamps.
func WithUserClock(now func() time.Time) UserServiceOption {
	return func(s *userService) {
		s.Now = now
	}
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade, options ...UserServiceOption) portssvc.UserSvcFacade {
	svc := &userService{userRepo: userRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to get user by ID in service: %w", err)
	}
	return user, nil
}

// SignIn upserts the identity. The first sign-in sets CreatedAt; every
// sign-in refreshes the profile fields and LastLoginAt.
func (s *userService) SignIn(ctx context.Context, identity domain.User) (*domain.User, error) {
	if identity.UserID == "" {
		return nil, fmt.Errorf("%w: identity has no subject", apperrors.ErrValidation)
	}

	now := s.now()
	user := identity
	user.CreatedAt = now
	user.LastLoginAt = now

	existing, err := s.userRepo.FindUserByID(ctx, identity.UserID)
	switch {
	case err == nil:
		user.CreatedAt = existing.CreatedAt
	case errors.Is(err, apperrors.ErrNotFound):
		s.LogInfo(ctx, "First sign-in, creating user", slog.String("user_id", identity.UserID), slog.String("provider", string(identity.AuthProvider)))
	default:
		s.LogError(ctx, err, "Failed to look up user at sign-in", slog.String("user_id", identity.UserID))
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := s.userRepo.UpsertUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user at sign-in", slog.String("user_id", identity.UserID))
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

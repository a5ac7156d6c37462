package services

import (
	"context"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// SignIn records a sign-in of the identity verified by a provider, creating
	// the user on first sight, and returns the stored user.
	SignIn(ctx context.Context, identity domain.User) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}

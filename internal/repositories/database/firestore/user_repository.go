package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	"github.com/SscSPs/simple_invoice_app/internal/models"
	"github.com/SscSPs/simple_invoice_app/internal/utils/mapping"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const usersCollection = "users"

// UsersFirestore keeps one document per user, keyed by the provider subject.
type UsersFirestore struct {
	client *firestore.Client
}

func newUsersFirestore(client *firestore.Client) portsrepo.UserRepositoryFacade {
	return &UsersFirestore{client: client}
}

var _ portsrepo.UserRepositoryFacade = (*UsersFirestore)(nil)

func (d *UsersFirestore) UpsertUser(ctx context.Context, user domain.User) error {
	if !validDocID(user.UserID) {
		return fmt.Errorf("%w: invalid user id", apperrors.ErrValidation)
	}
	m := mapping.ToModelUser(user)
	_, err := d.client.Collection(usersCollection).Doc(m.UserID).Set(ctx, map[string]any{
		"email":        m.Email,
		"name":         m.Name,
		"authProvider": m.AuthProvider,
		"createdAt":    m.CreatedAt,
		"lastLoginAt":  m.LastLoginAt,
	})
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (d *UsersFirestore) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	if !validDocID(userID) {
		return nil, apperrors.ErrNotFound
	}
	snap, err := d.client.Collection(usersCollection).Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}

	data := snap.Data()
	m := models.User{UserID: snap.Ref.ID}
	m.Email, _ = data["email"].(string)
	m.Name, _ = data["name"].(string)
	m.AuthProvider, _ = data["authProvider"].(string)
	m.CreatedAt, _ = data["createdAt"].(time.Time)
	m.LastLoginAt, _ = data["lastLoginAt"].(time.Time)

	user := mapping.ToDomainUser(m)
	return &user, nil
}

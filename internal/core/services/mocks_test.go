package services_test

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (string, error) {
	args := m.Called(ctx, invoice)
	return args.String(0), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindInvoicesByUser(ctx context.Context, userID string, limit int, after *portsrepo.InvoiceCursor) (portsrepo.InvoicePage, error) {
	args := m.Called(ctx, userID, limit, after)
	return args.Get(0).(portsrepo.InvoicePage), args.Error(1)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedAt time.Time) error {
	args := m.Called(ctx, invoiceID, status, updatedAt)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpsertUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// --- Mock DocumentEncoder ---
type MockDocumentEncoder struct {
	mock.Mock
}

func (m *MockDocumentEncoder) Encode(ctx context.Context, doc domain.Document) ([]byte, error) {
	args := m.Called(ctx, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocumentEncoder) ContentType() string {
	return "application/pdf"
}

// --- Mock Firebase verifier ---
type MockFirebaseVerifier struct {
	mock.Mock
}

func (m *MockFirebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Token), args.Error(1)
}

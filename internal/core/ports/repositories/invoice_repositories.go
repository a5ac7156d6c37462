package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
)

// InvoiceCursor is a keyset position in a user's invoice list, which is
// ordered by CreatedAt then InvoiceID, both descending.
type InvoiceCursor struct {
	CreatedAt time.Time
	InvoiceID string
}

// InvoicePage is one slice of a user's invoices as read from the store.
type InvoicePage struct {
	// Invoices holds the records that passed validation, newest first.
	Invoices []domain.Invoice
	// Rejected holds the ids of records that failed validation and were skipped.
	Rejected []string
	// Scanned counts every record read, including rejected ones.
	Scanned int
	// Last is the position of the last record read, nil when nothing was read.
	Last *InvoiceCursor
}

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves an invoice by its ID. Returns
	// apperrors.ErrNotFound when the id is unknown and
	// apperrors.ErrMalformedRecord when the stored record fails validation.
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// FindInvoicesByUser reads up to limit invoices owned by userID, starting
	// after the given cursor (nil for the first page). A limit of zero or
	// less reads every remaining invoice.
	FindInvoicesByUser(ctx context.Context, userID string, limit int, after *InvoiceCursor) (InvoicePage, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice inserts a new invoice and returns the id assigned by the store.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) (string, error)

	// UpdateInvoiceStatus sets the status of an existing invoice.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedAt time.Time) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
// This is a facade for clients that need access to all operations
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

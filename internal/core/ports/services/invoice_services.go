package services

import (
	"context"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/SscSPs/simple_invoice_app/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data. Every call is
// scoped to the invoices owned by userID.
type InvoiceReaderSvc interface {
	// GetInvoice retrieves one invoice. Invoices owned by another user are reported as not found.
	GetInvoice(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error)

	// ListRecentInvoices returns the newest invoices, at most five.
	ListRecentInvoices(ctx context.Context, userID string) ([]domain.Invoice, error)

	// ListInvoices returns one page of invoices, newest first, and the token
	// of the next page (nil on the last page).
	ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice stores a new Pending invoice owned by userID.
	CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoiceStatus sets any of the three statuses.
	UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error)

	// CycleInvoiceStatus advances the status one step: Pending, Paid, Overdue, Pending.
	CycleInvoiceStatus(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error)
}

// InvoiceStatsSvc computes dashboard figures.
type InvoiceStatsSvc interface {
	// GetInvoiceStats aggregates every invoice of userID.
	GetInvoiceStats(ctx context.Context, userID string) (domain.InvoiceStats, error)
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
	InvoiceStatsSvc
}

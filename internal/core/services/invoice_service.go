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
	"github.com/SscSPs/simple_invoice_app/internal/dto"
	"github.com/SscSPs/simple_invoice_app/internal/utils/pagination"
)

const (
	recentInvoicesLimit  = 5
	defaultInvoicesLimit = 20
	maxInvoicesLimit     = 100
)

// invoiceService implements the InvoiceSvcFacade interface
type invoiceService struct {
	BaseService
	invoiceRepo portsrepo.InvoiceRepositoryFacade
}

// InvoiceServiceOption is a functional option for configuring the invoice service
type InvoiceServiceOption func(*invoiceService)

// WithInvoiceClock sets the clock used for createdAt/updatedAt.
func WithInvoiceClock(now func() time.Time) InvoiceServiceOption {
	return func(s *invoiceService) {
		s.Now = now
	}
}

// NewInvoiceService creates a new invoice service with the provided options
func NewInvoiceService(repo portsrepo.InvoiceRepositoryFacade, options ...InvoiceServiceOption) portssvc.InvoiceSvcFacade {
	svc := &invoiceService{
		invoiceRepo: repo,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure invoiceService implements the InvoiceSvcFacade interface
var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// CreateInvoice stores a new invoice. The status is always Pending; an empty
// due date defaults to the one derived from the payment terms.
func (s *invoiceService) CreateInvoice(ctx context.Context, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	issued, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, req.Date)
	}
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if !req.Amount.Equal(req.Amount.Truncate(domain.AmountPlaces)) {
		return nil, fmt.Errorf("%w: amount must have at most %d decimal places", apperrors.ErrValidation, domain.AmountPlaces)
	}

	terms := domain.PaymentTerms(req.PaymentTerms)
	due := domain.DueDate(issued, terms)
	if req.DueDate != "" {
		if due, err = domain.ParseDate(req.DueDate); err != nil {
			return nil, fmt.Errorf("%w: invalid dueDate %q", apperrors.ErrValidation, req.DueDate)
		}
	}

	now := s.now()
	invoice := domain.Invoice{
		InvoiceNumber: req.InvoiceNumber,
		Date:          issued,
		DueDate:       due,
		ClientName:    req.ClientName,
		ClientEmail:   req.ClientEmail,
		Description:   req.Description,
		Amount:        req.Amount,
		Currency:      domain.Currency(req.Currency),
		PaymentTerms:  terms,
		Status:        domain.StatusPending,
		UserID:        userID,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	id, err := s.invoiceRepo.SaveInvoice(ctx, invoice)
	if err != nil {
		s.LogError(ctx, err, "Failed to save invoice", slog.String("invoice_number", req.InvoiceNumber))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}
	invoice.InvoiceID = id

	s.LogInfo(ctx, "Invoice created", slog.String("invoice_id", id), slog.String("invoice_number", invoice.InvoiceNumber))
	return &invoice, nil
}

// GetInvoice retrieves an invoice owned by userID.
func (s *invoiceService) GetInvoice(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error) {
	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			return nil, err
		case errors.Is(err, apperrors.ErrMalformedRecord):
			s.LogWarn(ctx, "Stored invoice failed validation", slog.String("invoice_id", invoiceID), slog.String("error", err.Error()))
			return nil, err
		default:
			s.LogError(ctx, err, "Failed to load invoice", slog.String("invoice_id", invoiceID))
			return nil, fmt.Errorf("failed to load invoice: %w", err)
		}
	}

	// Other users' invoices are indistinguishable from missing ones.
	if invoice.UserID != userID {
		s.LogWarn(ctx, "Invoice requested by non-owner", slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, apperrors.ErrNotFound)
	}
	return invoice, nil
}

// ListRecentInvoices returns the newest invoices of userID.
func (s *invoiceService) ListRecentInvoices(ctx context.Context, userID string) ([]domain.Invoice, error) {
	page, err := s.invoiceRepo.FindInvoicesByUser(ctx, userID, recentInvoicesLimit, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent invoices")
		return nil, fmt.Errorf("failed to list recent invoices: %w", err)
	}
	s.logRejected(ctx, page.Rejected)
	return page.Invoices, nil
}

// ListInvoices returns one page of invoices of userID, newest first.
func (s *invoiceService) ListInvoices(ctx context.Context, userID string, params dto.ListInvoicesParams) ([]domain.Invoice, *string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultInvoicesLimit
	}
	if limit > maxInvoicesLimit {
		limit = maxInvoicesLimit
	}

	var after *portsrepo.InvoiceCursor
	if params.NextToken != "" {
		createdAt, invoiceID, err := pagination.DecodeToken(params.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		after = &portsrepo.InvoiceCursor{CreatedAt: createdAt, InvoiceID: invoiceID}
	}

	page, err := s.invoiceRepo.FindInvoicesByUser(ctx, userID, limit, after)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.Int("limit", limit))
		return nil, nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	s.logRejected(ctx, page.Rejected)

	// A full page may be followed by more; a short one is the last.
	var nextToken *string
	if page.Scanned >= limit && page.Last != nil {
		token := pagination.EncodeToken(page.Last.CreatedAt, page.Last.InvoiceID)
		nextToken = &token
	}
	return page.Invoices, nextToken, nil
}

// UpdateInvoiceStatus sets the status of an invoice owned by userID.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error) {
	if !status.IsKnown() {
		return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, status)
	}
	invoice, err := s.GetInvoice(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, invoice, status)
}

// CycleInvoiceStatus advances the status of an invoice owned by userID.
func (s *invoiceService) CycleInvoiceStatus(ctx context.Context, invoiceID, userID string) (*domain.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, invoice, invoice.Status.Next())
}

func (s *invoiceService) setStatus(ctx context.Context, invoice *domain.Invoice, status domain.InvoiceStatus) (*domain.Invoice, error) {
	now := s.now()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, invoice.InvoiceID, status, now); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update invoice status", slog.String("invoice_id", invoice.InvoiceID), slog.String("status", string(status)))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	s.LogInfo(ctx, "Invoice status updated",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("from", string(invoice.Status)),
		slog.String("to", string(status)))
	invoice.Status = status
	invoice.UpdatedAt = now
	return invoice, nil
}

// GetInvoiceStats aggregates every readable invoice of userID.
func (s *invoiceService) GetInvoiceStats(ctx context.Context, userID string) (domain.InvoiceStats, error) {
	page, err := s.invoiceRepo.FindInvoicesByUser(ctx, userID, 0, nil)
	if err != nil {
		s.LogError(ctx, err, "Failed to load invoices for stats")
		return domain.InvoiceStats{}, fmt.Errorf("failed to load invoices for stats: %w", err)
	}
	s.logRejected(ctx, page.Rejected)
	return domain.AggregateStats(page.Invoices), nil
}

func (s *invoiceService) logRejected(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	s.LogWarn(ctx, "Skipped stored invoices that failed validation", slog.Any("invoice_ids", ids))
}

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
)

// documentService lays out invoices and hands them to an encoder.
type documentService struct {
	BaseService
	invoices portssvc.InvoiceReaderSvc
	encoder  portssvc.DocumentEncoder
}

// NewDocumentService creates a document service. invoices may be nil when
// only RenderInvoice is used, as the CLI does.
func NewDocumentService(invoices portssvc.InvoiceReaderSvc, encoder portssvc.DocumentEncoder) portssvc.DocumentSvc {
	return &documentService{invoices: invoices, encoder: encoder}
}

var _ portssvc.DocumentSvc = (*documentService)(nil)

func (s *documentService) RenderInvoicePDF(ctx context.Context, invoiceID, userID string) (*domain.RenderedDocument, error) {
	if s.invoices == nil {
		return nil, fmt.Errorf("document service has no invoice source")
	}
	invoice, err := s.invoices.GetInvoice(ctx, invoiceID, userID)
	if err != nil {
		return nil, err
	}
	return s.RenderInvoice(ctx, *invoice)
}

func (s *documentService) RenderInvoice(ctx context.Context, invoice domain.Invoice) (*domain.RenderedDocument, error) {
	doc := domain.InvoiceDocument(invoice)

	content, err := s.encoder.Encode(ctx, doc)
	if err != nil {
		s.LogError(ctx, err, "Failed to encode invoice document", slog.String("invoice_id", invoice.InvoiceID))
		return nil, fmt.Errorf("failed to encode invoice %s: %w", invoice.InvoiceNumber, err)
	}

	s.LogInfo(ctx, "Invoice document rendered",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("filename", doc.Filename),
		slog.Int("bytes", len(content)))
	return &domain.RenderedDocument{
		Filename:    doc.Filename,
		ContentType: s.encoder.ContentType(),
		Content:     content,
	}, nil
}

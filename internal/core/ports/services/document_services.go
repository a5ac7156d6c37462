package services

import (
	"context"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
)

// DocumentEncoder turns a document description into file bytes.
type DocumentEncoder interface {
	// Encode draws doc and returns the encoded file.
	Encode(ctx context.Context, doc domain.Document) ([]byte, error)
	// ContentType is the MIME type of the bytes Encode returns.
	ContentType() string
}

// DocumentSvc produces downloadable documents for invoices.
type DocumentSvc interface {
	// RenderInvoicePDF loads an invoice owned by userID and encodes it.
	RenderInvoicePDF(ctx context.Context, invoiceID, userID string) (*domain.RenderedDocument, error)

	// RenderInvoice encodes an invoice that is already loaded.
	RenderInvoice(ctx context.Context, invoice domain.Invoice) (*domain.RenderedDocument, error)
}

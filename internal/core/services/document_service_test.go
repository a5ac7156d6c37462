package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/SscSPs/simple_invoice_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRenderInvoicePDF(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInvoiceRepository)
	encoder := new(MockDocumentEncoder)
	svc := services.NewDocumentService(services.NewInvoiceService(repo), encoder)

	repo.On("FindInvoiceByID", ctx, "inv-1").Return(storedInvoice("inv-1", "user-1", domain.StatusPending), nil)
	encoder.On("Encode", ctx, mock.MatchedBy(func(doc domain.Document) bool {
		due, _ := doc.Text(domain.RoleDueDate)
		status, _ := doc.Text(domain.RoleStatus)
		return doc.Filename == "invoice_INV-inv-1.pdf" &&
			due.Text == "Due Date: 2024-03-31" &&
			status.Text == "PENDING" && status.Color == domain.ColorUnpaid &&
			doc.Table.Rows[0][1] == "€100.50"
	})).Return([]byte("%PDF-1.3"), nil).Once()

	rendered, err := svc.RenderInvoicePDF(ctx, "inv-1", "user-1")

	require.NoError(t, err)
	assert.Equal(t, "invoice_INV-inv-1.pdf", rendered.Filename)
	assert.Equal(t, "application/pdf", rendered.ContentType)
	assert.Equal(t, []byte("%PDF-1.3"), rendered.Content)
	encoder.AssertExpectations(t)
}

func TestRenderInvoicePDF_NotOwner(t *testing.T) {
	ctx := context.Background()
	repo := new(MockInvoiceRepository)
	encoder := new(MockDocumentEncoder)
	svc := services.NewDocumentService(services.NewInvoiceService(repo), encoder)

	repo.On("FindInvoiceByID", ctx, "inv-1").Return(storedInvoice("inv-1", "owner", domain.StatusPaid), nil)

	rendered, err := svc.RenderInvoicePDF(ctx, "inv-1", "intruder")

	assert.Nil(t, rendered)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	encoder.AssertNotCalled(t, "Encode", mock.Anything, mock.Anything)
}

func TestRenderInvoice_EncoderError(t *testing.T) {
	ctx := context.Background()
	encoder := new(MockDocumentEncoder)
	svc := services.NewDocumentService(nil, encoder)

	encoder.On("Encode", ctx, mock.AnythingOfType("domain.Document")).Return(nil, assert.AnError).Once()

	rendered, err := svc.RenderInvoice(ctx, *storedInvoice("inv-1", "user-1", domain.StatusPaid))

	assert.Nil(t, rendered)
	assert.ErrorIs(t, err, assert.AnError)
}

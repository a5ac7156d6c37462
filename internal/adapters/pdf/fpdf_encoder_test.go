package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func invoiceDocument(t *testing.T, status domain.InvoiceStatus) domain.Document {
	t.Helper()
	issued, err := domain.ParseDate("2024-03-01")
	require.NoError(t, err)
	return domain.InvoiceDocument(domain.Invoice{
		InvoiceNumber: "INV-001",
		Date:          issued,
		ClientName:    "Zoë Café",
		ClientEmail:   "zoe@cafe.test",
		Description:   "Espresso machine service",
		Amount:        decimal.RequireFromString("100.5"),
		Currency:      domain.EUR,
		PaymentTerms:  domain.Net30,
		Status:        status,
	})
}

func TestEncode_ProducesPDF(t *testing.T) {
	enc := NewEncoder("SimpleInvoice")

	out, err := enc.Encode(context.Background(), invoiceDocument(t, domain.StatusPending))

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
	assert.Contains(t, string(bytes.TrimSpace(out[len(out)-16:])), "%%EOF")
	assert.Equal(t, "application/pdf", enc.ContentType())
}

func TestEncode_EveryStatus(t *testing.T) {
	enc := NewEncoder("")
	for _, status := range []domain.InvoiceStatus{domain.StatusPending, domain.StatusPaid, domain.StatusOverdue, "Unknown"} {
		out, err := enc.Encode(context.Background(), invoiceDocument(t, status))
		require.NoError(t, err, string(status))
		assert.NotEmpty(t, out)
	}
}

func TestEncode_EmptyDocument(t *testing.T) {
	out, err := NewEncoder("").Encode(context.Background(), domain.Document{Title: "blank"})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestEncode_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := NewEncoder("").Encode(ctx, invoiceDocument(t, domain.StatusPaid))

	assert.Nil(t, out)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDrawTable_ReturnsBottomEdge(t *testing.T) {
	doc := invoiceDocument(t, domain.StatusPaid)
	assert.Equal(t, 140.0, doc.Table.StartY)

	// head row plus one body row
	pdf := newTestPDF()
	end := drawTable(pdf, func(s string) string { return s }, doc.Table)
	assert.Equal(t, 160.0, end)
}

func newTestPDF() *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	return pdf
}

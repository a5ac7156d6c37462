package firestore

import (
	"testing"
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/models"
	"github.com/SscSPs/simple_invoice_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func webClientDocument() map[string]any {
	return map[string]any{
		"invoiceNumber": "INV-001",
		"date":          "2024-03-01",
		"clientName":    "Acme",
		"clientEmail":   "billing@acme.test",
		"description":   "Consulting",
		"amount":        100.5,
		"currency":      "eur",
		"paymentTerms":  "net-30",
		"status":        "Pending",
		"userId":        "user-1",
		"createdAt":     time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestInvoiceFromData_WebClientDocument(t *testing.T) {
	m, err := invoiceFromData("doc-1", webClientDocument())
	require.NoError(t, err)

	assert.Equal(t, "doc-1", m.InvoiceID)
	assert.True(t, decimal.RequireFromString("100.5").Equal(m.Amount))
	assert.Equal(t, "", m.DueDate)

	invoice, err := mapping.ToDomainInvoice(m)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", invoice.Date.Format("2006-01-02"))
	assert.Equal(t, "user-1", invoice.UserID)
}

func TestInvoiceFromData_AmountTypes(t *testing.T) {
	tests := []struct {
		name   string
		amount any
		want   string
	}{
		{"integer", int64(250), "250"},
		{"float", 99.99, "99.99"},
		{"string", "12.30", "12.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := webClientDocument()
			data["amount"] = tt.amount
			m, err := invoiceFromData("doc-1", data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Amount.String())
		})
	}
}

func TestInvoiceFromData_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing amount", func(d map[string]any) { delete(d, "amount") }},
		{"amount not a number", func(d map[string]any) { d["amount"] = true }},
		{"amount bad string", func(d map[string]any) { d["amount"] = "ten" }},
		{"client name not a string", func(d map[string]any) { d["clientName"] = int64(7) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := webClientDocument()
			tt.mutate(data)
			_, err := invoiceFromData("doc-1", data)
			assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
		})
	}
}

func TestInvoiceFromData_MissingDateFailsValidation(t *testing.T) {
	data := webClientDocument()
	delete(data, "date")

	m, err := invoiceFromData("doc-1", data)
	require.NoError(t, err)

	_, err = mapping.ToDomainInvoice(m)
	assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
}

func TestInvoiceToData_RoundTripsThroughDecode(t *testing.T) {
	created := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m := models.Invoice{
		InvoiceID:     "doc-1",
		InvoiceNumber: "INV-002",
		Date:          "2024-03-01",
		DueDate:       "2024-03-31",
		Amount:        decimal.RequireFromString("42.10"),
		Currency:      "usd",
		Status:        "Paid",
		UserID:        "user-1",
		AuditFields:   models.AuditFields{CreatedAt: created, UpdatedAt: created},
	}

	data := invoiceToData(m)
	assert.Equal(t, 42.1, data["amount"])
	assert.Equal(t, "2024-03-31", data["dueDate"])

	got, err := invoiceFromData("doc-1", data)
	require.NoError(t, err)
	assert.Equal(t, m.DueDate, got.DueDate)
	assert.True(t, m.Amount.Equal(got.Amount))
	assert.Equal(t, created, got.CreatedAt)
}

func TestInvoiceToData_OmitsEmptyDueDate(t *testing.T) {
	data := invoiceToData(models.Invoice{Date: "2024-03-01"})
	_, ok := data["dueDate"]
	assert.False(t, ok)
}

func TestValidDocID(t *testing.T) {
	assert.True(t, validDocID("abc123"))
	assert.False(t, validDocID(""))
	assert.False(t, validDocID("invoices/abc"))
}

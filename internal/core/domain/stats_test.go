package domain_test

import (
	"testing"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func invoiceWith(client string, status domain.InvoiceStatus, amount string, currency domain.Currency) domain.Invoice {
	return domain.Invoice{
		ClientName: client,
		Status:     status,
		Amount:     decimal.RequireFromString(amount),
		Currency:   currency,
	}
}

func TestAggregateStats_Empty(t *testing.T) {
	stats := domain.AggregateStats(nil)

	assert.Equal(t, 0, stats.TotalInvoices)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.Equal(t, 0, stats.PendingInvoices)
	assert.Equal(t, 0, stats.PaidInvoices)
	assert.Equal(t, 0, stats.OverdueInvoices)
	assert.Equal(t, 0, stats.TotalCustomers)
}

func TestAggregateStats_StatusCounts(t *testing.T) {
	invoices := []domain.Invoice{
		invoiceWith("a", domain.StatusPending, "1", domain.USD),
		invoiceWith("b", domain.StatusPaid, "1", domain.USD),
		invoiceWith("c", domain.StatusPaid, "1", domain.USD),
		invoiceWith("d", domain.StatusOverdue, "1", domain.USD),
		invoiceWith("e", domain.StatusPending, "1", domain.USD),
	}

	stats := domain.AggregateStats(invoices)

	assert.Equal(t, 5, stats.TotalInvoices)
	assert.Equal(t, 2, stats.PendingInvoices)
	assert.Equal(t, 2, stats.PaidInvoices)
	assert.Equal(t, 1, stats.OverdueInvoices)
}

func TestAggregateStats_UnknownStatusCountedOnlyInTotal(t *testing.T) {
	invoices := []domain.Invoice{
		invoiceWith("a", "Draft", "10", domain.USD),
		invoiceWith("a", "paid", "5", domain.USD),
	}

	stats := domain.AggregateStats(invoices)

	assert.Equal(t, 2, stats.TotalInvoices)
	assert.Equal(t, 0, stats.PendingInvoices+stats.PaidInvoices+stats.OverdueInvoices)
	assert.True(t, decimal.NewFromInt(15).Equal(stats.TotalRevenue))
}

func TestAggregateStats_RevenueIgnoresCurrency(t *testing.T) {
	invoices := []domain.Invoice{
		invoiceWith("a", domain.StatusPaid, "100.50", domain.EUR),
		invoiceWith("b", domain.StatusPending, "20.25", domain.USD),
		invoiceWith("c", domain.StatusOverdue, "0.25", domain.GBP),
		invoiceWith("d", domain.StatusOverdue, "3", "jpy"),
	}

	stats := domain.AggregateStats(invoices)

	assert.Equal(t, "124.00", stats.TotalRevenue.StringFixed(2))
}

func TestAggregateStats_DistinctClientsByExactName(t *testing.T) {
	invoices := []domain.Invoice{
		invoiceWith("Acme", domain.StatusPaid, "1", domain.USD),
		invoiceWith("Acme", domain.StatusPending, "2", domain.EUR),
		invoiceWith("acme", domain.StatusPaid, "3", domain.USD),
		invoiceWith("Acme Inc", domain.StatusPaid, "4", domain.USD),
		invoiceWith("", domain.StatusPaid, "5", domain.USD),
	}

	stats := domain.AggregateStats(invoices)

	assert.Equal(t, 4, stats.TotalCustomers)
}

func TestAggregateStats_Idempotent(t *testing.T) {
	invoices := []domain.Invoice{
		invoiceWith("Acme", domain.StatusPaid, "12.34", domain.USD),
		invoiceWith("Globex", domain.StatusOverdue, "56.78", domain.GBP),
	}
	snapshot := append([]domain.Invoice(nil), invoices...)

	first := domain.AggregateStats(invoices)
	second := domain.AggregateStats(invoices)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, invoices)
}

package domain

import "github.com/shopspring/decimal"

// InvoiceStats summarises every invoice of one user.
type InvoiceStats struct {
	TotalInvoices   int             `json:"totalInvoices"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"` // raw sum, currencies are not converted
	PendingInvoices int             `json:"pendingInvoices"`
	PaidInvoices    int             `json:"paidInvoices"`
	OverdueInvoices int             `json:"overdueInvoices"`
	TotalCustomers  int             `json:"totalCustomers"`
}

// AggregateStats folds invoices into an InvoiceStats in one pass.
// Customers are distinct by exact client name.
func AggregateStats(invoices []Invoice) InvoiceStats {
	stats := InvoiceStats{TotalRevenue: decimal.Zero}
	customers := make(map[string]struct{}, len(invoices))

	for _, inv := range invoices {
		stats.TotalInvoices++
		stats.TotalRevenue = stats.TotalRevenue.Add(inv.Amount)
		switch inv.Status {
		case StatusPending:
			stats.PendingInvoices++
		case StatusPaid:
			stats.PaidInvoices++
		case StatusOverdue:
			stats.OverdueInvoices++
		}
		customers[inv.ClientName] = struct{}{}
	}

	stats.TotalCustomers = len(customers)
	return stats
}

package dto

import (
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest defines the data needed to create a new invoice.
// Status is not accepted: new invoices always start as Pending.
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoiceNumber" binding:"required"`
	Date          string          `json:"date" binding:"required,datetime=2006-01-02"`
	DueDate       string          `json:"dueDate" binding:"omitempty,datetime=2006-01-02"` // defaults to the date derived from paymentTerms
	ClientName    string          `json:"clientName" binding:"required"`
	ClientEmail   string          `json:"clientEmail" binding:"required,email"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" swaggertype:"string" example:"100.50"`
	Currency      string          `json:"currency" binding:"required,oneof=usd eur gbp"`
	PaymentTerms  string          `json:"paymentTerms" binding:"required,oneof=due-on-receipt net-15 net-30 net-60"`
}

// UpdateInvoiceStatusRequest sets the status of an invoice.
type UpdateInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Paid Overdue"`
}

// ListInvoicesParams defines query parameters for listing invoices.
type ListInvoicesParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// InvoiceResponse defines the data returned for an invoice.
type InvoiceResponse struct {
	InvoiceID       string          `json:"id"`
	InvoiceNumber   string          `json:"invoiceNumber"`
	Date            string          `json:"date"`
	DueDate         string          `json:"dueDate"`
	DerivedDueDate  string          `json:"derivedDueDate"`
	ClientName      string          `json:"clientName"`
	ClientEmail     string          `json:"clientEmail"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount" swaggertype:"string"`
	FormattedAmount string          `json:"formattedAmount"`
	Currency        string          `json:"currency"`
	PaymentTerms    string          `json:"paymentTerms"`
	Status          string          `json:"status"`
	UserID          string          `json:"userId"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ListInvoicesResponse wraps one page of invoices.
type ListInvoicesResponse struct {
	Invoices  []InvoiceResponse `json:"invoices"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// InvoiceStatsResponse is the dashboard summary of a user's invoices.
type InvoiceStatsResponse struct {
	TotalInvoices   int             `json:"totalInvoices"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue" swaggertype:"string"`
	PendingInvoices int             `json:"pendingInvoices"`
	PaidInvoices    int             `json:"paidInvoices"`
	OverdueInvoices int             `json:"overdueInvoices"`
	TotalCustomers  int             `json:"totalCustomers"`
}

// ToInvoiceResponse converts a domain.Invoice to InvoiceResponse DTO
func ToInvoiceResponse(inv *domain.Invoice) InvoiceResponse {
	return InvoiceResponse{
		InvoiceID:       inv.InvoiceID,
		InvoiceNumber:   inv.InvoiceNumber,
		Date:            domain.FormatDate(inv.Date),
		DueDate:         domain.FormatDate(inv.DueDate),
		DerivedDueDate:  domain.FormatDate(inv.DerivedDueDate()),
		ClientName:      inv.ClientName,
		ClientEmail:     inv.ClientEmail,
		Description:     inv.Description,
		Amount:          inv.Amount,
		FormattedAmount: inv.FormattedAmount(),
		Currency:        string(inv.Currency),
		PaymentTerms:    string(inv.PaymentTerms),
		Status:          string(inv.Status),
		UserID:          inv.UserID,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// ToListInvoiceResponse converts a slice of domain.Invoice to a slice of InvoiceResponse DTOs
func ToListInvoiceResponse(invoices []domain.Invoice) []InvoiceResponse {
	res := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		res[i] = ToInvoiceResponse(&invoices[i])
	}
	return res
}

// ToInvoiceStatsResponse converts domain.InvoiceStats to its DTO.
func ToInvoiceStatsResponse(s domain.InvoiceStats) InvoiceStatsResponse {
	return InvoiceStatsResponse{
		TotalInvoices:   s.TotalInvoices,
		TotalRevenue:    s.TotalRevenue,
		PendingInvoices: s.PendingInvoices,
		PaidInvoices:    s.PaidInvoices,
		OverdueInvoices: s.OverdueInvoices,
		TotalCustomers:  s.TotalCustomers,
	}
}

package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Currency is the lower-case currency code stored on an invoice.
type Currency string

const (
	USD Currency = "usd"
	EUR Currency = "eur"
	GBP Currency = "gbp"
)

// Symbol returns the display prefix for the currency. Codes without a known
// symbol are shown upper-cased.
func (c Currency) Symbol() string {
	switch strings.ToLower(string(c)) {
	case "usd":
		return "$"
	case "eur":
		return "€"
	case "gbp":
		return "£"
	default:
		return strings.ToUpper(string(c))
	}
}

// PaymentTerms is the code that decides how long the client has to pay.
type PaymentTerms string

const (
	DueOnReceipt PaymentTerms = "due-on-receipt"
	Net15        PaymentTerms = "net-15"
	Net30        PaymentTerms = "net-30"
	Net60        PaymentTerms = "net-60"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	StatusPending InvoiceStatus = "Pending"
	StatusPaid    InvoiceStatus = "Paid"
	StatusOverdue InvoiceStatus = "Overdue"
)

// Next returns the status the dashboard moves to on click:
// Pending -> Paid -> Overdue -> Pending. Unknown values restart at Pending.
func (s InvoiceStatus) Next() InvoiceStatus {
	switch s {
	case StatusPending:
		return StatusPaid
	case StatusPaid:
		return StatusOverdue
	default:
		return StatusPending
	}
}

// IsKnown reports whether s is one of the three statuses the dashboard tracks.
func (s InvoiceStatus) IsKnown() bool {
	return s == StatusPending || s == StatusPaid || s == StatusOverdue
}

// AmountPlaces is the number of fractional digits an invoice amount may carry.
const AmountPlaces = 4

// Invoice is a single-line bill issued by a user to one client.
type Invoice struct {
	InvoiceID     string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          time.Time       `json:"date"`
	DueDate       time.Time       `json:"dueDate"` // as stored; may differ from DerivedDueDate
	ClientName    string          `json:"clientName"`
	ClientEmail   string          `json:"clientEmail"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	PaymentTerms  PaymentTerms    `json:"paymentTerms"`
	Status        InvoiceStatus   `json:"status"`
	UserID        string          `json:"userId"`
	AuditFields
}

// DerivedDueDate is the due date computed from the issue date and payment terms.
func (i Invoice) DerivedDueDate() time.Time {
	return DueDate(i.Date, i.PaymentTerms)
}

// FormattedAmount renders the amount with its currency symbol and two decimals, e.g. "€100.50".
func (i Invoice) FormattedAmount() string {
	return i.Currency.Symbol() + i.Amount.StringFixed(2)
}

// RenderedDocument is an encoded document ready for download.
type RenderedDocument struct {
	Filename    string
	ContentType string
	Content     []byte
}

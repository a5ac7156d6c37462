package models

import "github.com/shopspring/decimal"

// Invoice is the storage shape of an invoice record. Dates stay in their
// stored string form until the record passes validation.
type Invoice struct {
	InvoiceID     string          `db:"id" validate:"required"`
	InvoiceNumber string          `db:"invoice_number"`
	Date          string          `db:"date" validate:"required,datetime=2006-01-02"`
	DueDate       string          `db:"due_date" validate:"omitempty,datetime=2006-01-02"`
	ClientName    string          `db:"client_name"`
	ClientEmail   string          `db:"client_email"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Currency      string          `db:"currency" validate:"required"`
	PaymentTerms  string          `db:"payment_terms"`
	Status        string          `db:"status"`
	UserID        string          `db:"user_id" validate:"required"`
	AuditFields
}

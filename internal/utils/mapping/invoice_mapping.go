package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/SscSPs/simple_invoice_app/internal/models"
	"github.com/go-playground/validator/v10"
)

var recordValidator = validator.New()

// ToModelInvoice converts a domain Invoice to its storage shape.
func ToModelInvoice(d domain.Invoice) models.Invoice {
	m := models.Invoice{
		InvoiceID:     d.InvoiceID,
		InvoiceNumber: d.InvoiceNumber,
		Date:          domain.FormatDate(d.Date),
		ClientName:    d.ClientName,
		ClientEmail:   d.ClientEmail,
		Description:   d.Description,
		Amount:        d.Amount,
		Currency:      string(d.Currency),
		PaymentTerms:  string(d.PaymentTerms),
		Status:        string(d.Status),
		UserID:        d.UserID,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
	if !d.DueDate.IsZero() {
		m.DueDate = domain.FormatDate(d.DueDate)
	}
	return m
}

// ToDomainInvoice validates a stored record and converts it to a domain
// Invoice. Records that fail validation yield an error wrapping
// apperrors.ErrMalformedRecord.
func ToDomainInvoice(m models.Invoice) (domain.Invoice, error) {
	if err := recordValidator.Struct(m); err != nil {
		return domain.Invoice{}, malformed(m.InvoiceID, err)
	}
	if m.Amount.IsNegative() {
		return domain.Invoice{}, fmt.Errorf("%w: invoice %s: negative amount", apperrors.ErrMalformedRecord, m.InvoiceID)
	}

	date, err := domain.ParseDate(m.Date)
	if err != nil {
		return domain.Invoice{}, malformed(m.InvoiceID, err)
	}
	var dueDate = date
	if m.DueDate != "" {
		if dueDate, err = domain.ParseDate(m.DueDate); err != nil {
			return domain.Invoice{}, malformed(m.InvoiceID, err)
		}
	}

	return domain.Invoice{
		InvoiceID:     m.InvoiceID,
		InvoiceNumber: m.InvoiceNumber,
		Date:          date,
		DueDate:       dueDate,
		ClientName:    m.ClientName,
		ClientEmail:   m.ClientEmail,
		Description:   m.Description,
		Amount:        m.Amount,
		Currency:      domain.Currency(m.Currency),
		PaymentTerms:  domain.PaymentTerms(m.PaymentTerms),
		Status:        domain.InvoiceStatus(m.Status),
		UserID:        m.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}, nil
}

// ToDomainInvoiceSlice converts the valid records and returns the ids of the
// ones that failed validation.
func ToDomainInvoiceSlice(ms []models.Invoice) ([]domain.Invoice, []string) {
	ds := make([]domain.Invoice, 0, len(ms))
	var rejected []string
	for _, m := range ms {
		d, err := ToDomainInvoice(m)
		if err != nil {
			rejected = append(rejected, m.InvoiceID)
			continue
		}
		ds = append(ds, d)
	}
	return ds, rejected
}

func malformed(invoiceID string, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+"("+fe.Tag()+")")
		}
		return fmt.Errorf("%w: invoice %s: invalid fields %s", apperrors.ErrMalformedRecord, invoiceID, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: invoice %s: %v", apperrors.ErrMalformedRecord, invoiceID, err)
}

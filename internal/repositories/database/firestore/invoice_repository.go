package firestore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	"github.com/SscSPs/simple_invoice_app/internal/models"
	"github.com/SscSPs/simple_invoice_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const invoicesCollection = "invoices"

// Field names match the documents written by the web client.
const (
	fieldInvoiceNumber = "invoiceNumber"
	fieldDate          = "date"
	fieldDueDate       = "dueDate"
	fieldClientName    = "clientName"
	fieldClientEmail   = "clientEmail"
	fieldDescription   = "description"
	fieldAmount        = "amount"
	fieldCurrency      = "currency"
	fieldPaymentTerms  = "paymentTerms"
	fieldStatus        = "status"
	fieldUserID        = "userId"
	fieldCreatedAt     = "createdAt"
	fieldUpdatedAt     = "updatedAt"
)

// InvoicesFirestore stores invoices as documents of the invoices collection.
type InvoicesFirestore struct {
	client *firestore.Client
}

func newInvoicesFirestore(client *firestore.Client) portsrepo.InvoiceRepositoryFacade {
	return &InvoicesFirestore{client: client}
}

var _ portsrepo.InvoiceRepositoryFacade = (*InvoicesFirestore)(nil)

func (d *InvoicesFirestore) collection() *firestore.CollectionRef {
	return d.client.Collection(invoicesCollection)
}

func (d *InvoicesFirestore) SaveInvoice(ctx context.Context, invoice domain.Invoice) (string, error) {
	ref, _, err := d.collection().Add(ctx, invoiceToData(mapping.ToModelInvoice(invoice)))
	if err != nil {
		return "", fmt.Errorf("failed to add invoice %s: %w", invoice.InvoiceNumber, err)
	}
	return ref.ID, nil
}

func (d *InvoicesFirestore) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	if !validDocID(invoiceID) {
		return nil, apperrors.ErrNotFound
	}
	snap, err := d.collection().Doc(invoiceID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}

	m, err := invoiceFromData(snap.Ref.ID, snap.Data())
	if err != nil {
		return nil, err
	}
	invoice, err := mapping.ToDomainInvoice(m)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindInvoicesByUser needs the composite index (userId asc, createdAt desc,
// __name__ desc) on the invoices collection.
func (d *InvoicesFirestore) FindInvoicesByUser(ctx context.Context, userID string, limit int, after *portsrepo.InvoiceCursor) (portsrepo.InvoicePage, error) {
	q := d.collection().
		Where(fieldUserID, "==", userID).
		OrderBy(fieldCreatedAt, firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Desc)
	if after != nil {
		q = q.StartAfter(after.CreatedAt, after.InvoiceID)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	var (
		page     portsrepo.InvoicePage
		records  []models.Invoice
		rejected []string
	)
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return portsrepo.InvoicePage{}, fmt.Errorf("failed to query invoices for user %s: %w", userID, err)
		}

		page.Scanned++
		page.Last = &portsrepo.InvoiceCursor{InvoiceID: snap.Ref.ID}
		if ts, ok := snap.Data()[fieldCreatedAt].(time.Time); ok {
			page.Last.CreatedAt = ts
		}

		m, err := invoiceFromData(snap.Ref.ID, snap.Data())
		if err != nil {
			rejected = append(rejected, snap.Ref.ID)
			continue
		}
		records = append(records, m)
	}

	valid, invalid := mapping.ToDomainInvoiceSlice(records)
	page.Invoices = valid
	page.Rejected = append(rejected, invalid...)
	return page, nil
}

func (d *InvoicesFirestore) UpdateInvoiceStatus(ctx context.Context, invoiceID string, newStatus domain.InvoiceStatus, updatedAt time.Time) error {
	if !validDocID(invoiceID) {
		return apperrors.ErrNotFound
	}
	_, err := d.collection().Doc(invoiceID).Update(ctx, []firestore.Update{
		{Path: fieldStatus, Value: string(newStatus)},
		{Path: fieldUpdatedAt, Value: updatedAt},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	return nil
}

// validDocID reports whether id can name a document directly under a
// collection.
func validDocID(id string) bool {
	return id != "" && !strings.Contains(id, "/")
}

func invoiceToData(m models.Invoice) map[string]any {
	data := map[string]any{
		fieldInvoiceNumber: m.InvoiceNumber,
		fieldDate:          m.Date,
		fieldClientName:    m.ClientName,
		fieldClientEmail:   m.ClientEmail,
		fieldDescription:   m.Description,
		fieldAmount:        m.Amount.InexactFloat64(),
		fieldCurrency:      m.Currency,
		fieldPaymentTerms:  m.PaymentTerms,
		fieldStatus:        m.Status,
		fieldUserID:        m.UserID,
		fieldCreatedAt:     m.CreatedAt,
		fieldUpdatedAt:     m.UpdatedAt,
	}
	if m.DueDate != "" {
		data[fieldDueDate] = m.DueDate
	}
	return data
}

// invoiceFromData decodes the loosely typed document map. Fields with the
// wrong type make the record malformed; missing fields are left empty for
// the validator to reject.
func invoiceFromData(id string, data map[string]any) (models.Invoice, error) {
	m := models.Invoice{InvoiceID: id}
	strs := []struct {
		key string
		dst *string
	}{
		{fieldInvoiceNumber, &m.InvoiceNumber},
		{fieldDate, &m.Date},
		{fieldDueDate, &m.DueDate},
		{fieldClientName, &m.ClientName},
		{fieldClientEmail, &m.ClientEmail},
		{fieldDescription, &m.Description},
		{fieldCurrency, &m.Currency},
		{fieldPaymentTerms, &m.PaymentTerms},
		{fieldStatus, &m.Status},
		{fieldUserID, &m.UserID},
	}
	for _, s := range strs {
		v, ok := data[s.key]
		if !ok || v == nil {
			continue
		}
		str, ok := v.(string)
		if !ok {
			return models.Invoice{}, fmt.Errorf("%w: invoice %s: field %s is %T", apperrors.ErrMalformedRecord, id, s.key, v)
		}
		*s.dst = str
	}

	switch v := data[fieldAmount].(type) {
	case int64:
		m.Amount = decimal.NewFromInt(v)
	case float64:
		m.Amount = decimal.NewFromFloat(v)
	case string:
		amount, err := decimal.NewFromString(v)
		if err != nil {
			return models.Invoice{}, fmt.Errorf("%w: invoice %s: amount: %v", apperrors.ErrMalformedRecord, id, err)
		}
		m.Amount = amount
	default:
		return models.Invoice{}, fmt.Errorf("%w: invoice %s: amount is %T", apperrors.ErrMalformedRecord, id, v)
	}

	if ts, ok := data[fieldCreatedAt].(time.Time); ok {
		m.CreatedAt = ts
	}
	if ts, ok := data[fieldUpdatedAt].(time.Time); ok {
		m.UpdatedAt = ts
	}
	return m, nil
}

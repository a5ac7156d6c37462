package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/apperrors"
	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portsrepo "github.com/SscSPs/simple_invoice_app/internal/core/ports/repositories"
	"github.com/SscSPs/simple_invoice_app/internal/models"
	"github.com/SscSPs/simple_invoice_app/internal/utils/mapping"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dates are read back as text so they go through the same validation as
// records from any other store.
const invoiceColumns = `
	id::text, invoice_number,
	to_char(date, 'YYYY-MM-DD'), COALESCE(to_char(due_date, 'YYYY-MM-DD'), ''),
	client_name, client_email, description, amount, currency, payment_terms, status,
	user_id, created_at, updated_at`

type PgxInvoiceRepository struct {
	BaseRepository
}

func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryFacade {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryFacade
var _ portsrepo.InvoiceRepositoryFacade = (*PgxInvoiceRepository)(nil)

func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) (string, error) {
	m := mapping.ToModelInvoice(invoice)
	query := `
		INSERT INTO invoices (
			invoice_number, date, due_date, client_name, client_email, description,
			amount, currency, payment_terms, status, user_id, created_at, updated_at
		)
		VALUES ($1, $2::date, NULLIF($3, '')::date, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id::text;
	`
	var id string
	err := r.Pool.QueryRow(ctx, query,
		m.InvoiceNumber,
		m.Date,
		m.DueDate,
		m.ClientName,
		m.ClientEmail,
		m.Description,
		m.Amount,
		m.Currency,
		m.PaymentTerms,
		m.Status,
		m.UserID,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert invoice %s: %w", m.InvoiceNumber, err)
	}
	return id, nil
}

func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	// Anything that is not a UUID cannot name a stored invoice.
	if _, err := uuid.Parse(invoiceID); err != nil {
		return nil, apperrors.ErrNotFound
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1;`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	invoice, err := mapping.ToDomainInvoice(m)
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *PgxInvoiceRepository) FindInvoicesByUser(ctx context.Context, userID string, limit int, after *portsrepo.InvoiceCursor) (portsrepo.InvoicePage, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + invoiceColumns + ` FROM invoices WHERE user_id = $1`)
	args := []any{userID}

	if after != nil {
		if _, err := uuid.Parse(after.InvoiceID); err != nil {
			return portsrepo.InvoicePage{}, fmt.Errorf("%w: invalid cursor id", apperrors.ErrValidation)
		}
		sb.WriteString(` AND (created_at, id) < ($2, $3::uuid)`)
		args = append(args, after.CreatedAt, after.InvoiceID)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC`)
	if limit > 0 {
		args = append(args, limit)
		fmt.Fprintf(&sb, ` LIMIT $%d`, len(args))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return portsrepo.InvoicePage{}, fmt.Errorf("failed to query invoices for user %s: %w", userID, err)
	}
	defer rows.Close()

	var records []models.Invoice
	for rows.Next() {
		m, err := scanInvoice(rows)
		if err != nil {
			return portsrepo.InvoicePage{}, fmt.Errorf("failed to scan invoice row: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return portsrepo.InvoicePage{}, fmt.Errorf("error iterating invoice rows: %w", err)
	}

	return buildPage(records), nil
}

func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, invoiceID string, status domain.InvoiceStatus, updatedAt time.Time) error {
	if _, err := uuid.Parse(invoiceID); err != nil {
		return apperrors.ErrNotFound
	}
	query := `UPDATE invoices SET status = $2, updated_at = $3 WHERE id = $1;`
	tag, err := r.Pool.Exec(ctx, query, invoiceID, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.InvoiceNumber,
		&m.Date,
		&m.DueDate,
		&m.ClientName,
		&m.ClientEmail,
		&m.Description,
		&m.Amount,
		&m.Currency,
		&m.PaymentTerms,
		&m.Status,
		&m.UserID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// buildPage validates the scanned records in order and remembers where the
// scan stopped, including records that were rejected.
func buildPage(records []models.Invoice) portsrepo.InvoicePage {
	invoices, rejected := mapping.ToDomainInvoiceSlice(records)
	page := portsrepo.InvoicePage{
		Invoices: invoices,
		Rejected: rejected,
		Scanned:  len(records),
	}
	if n := len(records); n > 0 {
		last := records[n-1]
		page.Last = &portsrepo.InvoiceCursor{CreatedAt: last.CreatedAt, InvoiceID: last.InvoiceID}
	}
	return page
}

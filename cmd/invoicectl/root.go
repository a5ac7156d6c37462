package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/SscSPs/simple_invoice_app/internal/models"
	"github.com/SscSPs/simple_invoice_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var version = "1.0.0"

// localUserID owns records read from files, which carry no owner.
const localUserID = "local"

func newRootCmd(logger *slog.Logger) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "invoicectl",
		Short: "Offline tools for SimpleInvoice records",
		Long: `invoicectl works on invoice records exported as JSON, using the field
names of the invoices collection. Records are checked with the same
validation the server applies when it reads from its record store.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newRenderCmd(logger), newStatsCmd(logger))
	return rootCmd
}

// invoiceRecord is one exported invoice document.
type invoiceRecord struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	Date          string          `json:"date"`
	DueDate       string          `json:"dueDate"`
	ClientName    string          `json:"clientName"`
	ClientEmail   string          `json:"clientEmail"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentTerms  string          `json:"paymentTerms"`
	Status        string          `json:"status"`
	UserID        string          `json:"userId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// toDomain validates the record. Records without an id are named after
// their position in the file.
func (r invoiceRecord) toDomain(position int) (domain.Invoice, error) {
	id := r.ID
	if id == "" {
		id = "#" + strconv.Itoa(position)
	}
	userID := r.UserID
	if userID == "" {
		userID = localUserID
	}
	return mapping.ToDomainInvoice(models.Invoice{
		InvoiceID:     id,
		InvoiceNumber: r.InvoiceNumber,
		Date:          r.Date,
		DueDate:       r.DueDate,
		ClientName:    r.ClientName,
		ClientEmail:   r.ClientEmail,
		Description:   r.Description,
		Amount:        r.Amount,
		Currency:      r.Currency,
		PaymentTerms:  r.PaymentTerms,
		Status:        r.Status,
		UserID:        userID,
		AuditFields:   models.AuditFields{CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt},
	})
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

package main

import (
	"encoding/json"
	"log/slog"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	"github.com/SscSPs/simple_invoice_app/internal/dto"
	"github.com/spf13/cobra"
)

func newStatsCmd(logger *slog.Logger) *cobra.Command {
	var inPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print dashboard statistics for a JSON array of invoice records",
		Long: `Aggregates the records the way the dashboard does. Records that fail
validation are skipped and reported on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var records []invoiceRecord
			if err := readJSONFile(inPath, &records); err != nil {
				return err
			}

			invoices := make([]domain.Invoice, 0, len(records))
			for i, record := range records {
				invoice, err := record.toDomain(i)
				if err != nil {
					logger.Warn("Skipping malformed record", slog.Int("position", i), slog.String("error", err.Error()))
					continue
				}
				invoices = append(invoices, invoice)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(dto.ToInvoiceStatsResponse(domain.AggregateStats(invoices)))
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "JSON file holding an array of invoice records")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

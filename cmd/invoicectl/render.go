package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/SscSPs/simple_invoice_app/internal/adapters/pdf"
	"github.com/SscSPs/simple_invoice_app/internal/core/services"
	"github.com/spf13/cobra"
)

func newRenderCmd(logger *slog.Logger) *cobra.Command {
	var inPath, outDir string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one invoice record as invoice_<number>.pdf",
		Example: `  # Write invoice_INV-001.pdf to the current directory
  invoicectl render --in invoice.json

  # Write it somewhere else
  invoicectl render --in invoice.json --out ./pdfs`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var record invoiceRecord
			if err := readJSONFile(inPath, &record); err != nil {
				return err
			}
			invoice, err := record.toDomain(0)
			if err != nil {
				return err
			}

			documents := services.NewDocumentService(nil, pdf.NewEncoder("invoicectl"))
			rendered, err := documents.RenderInvoice(cmd.Context(), invoice)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			target := filepath.Join(outDir, localFilename(rendered.Filename))
			if err := os.WriteFile(target, rendered.Content, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", target, err)
			}

			logger.Info("Invoice rendered", slog.String("file", target), slog.Int("bytes", len(rendered.Content)))
			fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "Invoice record JSON file")
	cmd.Flags().StringVar(&outDir, "out", ".", "Output directory")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// localFilename keeps an invoice number with path separators in it from
// escaping the output directory or dropping the invoice_ prefix.
func localFilename(name string) string {
	return strings.NewReplacer("/", "_", `\`, "_").Replace(name)
}

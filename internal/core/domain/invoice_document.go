package domain

import (
	"fmt"
	"strings"
)

// Page geometry and palette of the invoice layout, in millimetres on A4 portrait.
const (
	PageWidth  = 210.0
	PageHeight = 297.0

	headerHeight   = 40.0
	leftMargin     = 20.0
	summaryX       = 150.0
	tableStartY    = 140.0
	totalOffset    = 20.0
	statusOffset   = 40.0
	footerY        = 280.0
	descriptionCol = 130.0
	amountCol      = 60.0
)

var (
	ColorPrimary   = RGB{41, 128, 185}
	ColorSecondary = RGB{52, 73, 94}
	ColorWhite     = RGB{255, 255, 255}
	ColorPaid      = RGB{46, 204, 113}
	ColorUnpaid    = RGB{231, 76, 60}
)

// InvoiceFilename is the download name of an invoice document.
func InvoiceFilename(invoiceNumber string) string {
	return fmt.Sprintf("invoice_%s.pdf", invoiceNumber)
}

// InvoiceDocument lays out one invoice as a single page. It reads nothing but
// inv and always shows the due date derived from the payment terms.
func InvoiceDocument(inv Invoice) Document {
	amount := inv.FormattedAmount()

	statusColor := ColorUnpaid
	if inv.Status == StatusPaid {
		statusColor = ColorPaid
	}

	info := func(role TextRole, text string, y float64) TextBlock {
		return TextBlock{Role: role, Text: text, X: leftMargin, Y: y, FontSize: 12, Color: ColorSecondary, Align: AlignLeft}
	}

	return Document{
		Title:    "Invoice " + inv.InvoiceNumber,
		Filename: InvoiceFilename(inv.InvoiceNumber),
		Rects: []FilledRect{
			{X: 0, Y: 0, W: PageWidth, H: headerHeight, Fill: ColorPrimary},
		},
		Texts: []TextBlock{
			{Role: RoleTitle, Text: "INVOICE", X: leftMargin, Y: 30, FontSize: 24, Color: ColorWhite, Align: AlignLeft},
			info(RoleInvoiceNumber, "Invoice Number: "+inv.InvoiceNumber, 60),
			info(RoleIssueDate, "Date: "+FormatDate(inv.Date), 70),
			info(RoleDueDate, "Due Date: "+FormatDate(inv.DerivedDueDate()), 80),
			{Role: RoleBillTo, Text: "Bill To:", X: leftMargin, Y: 100, FontSize: 14, Color: ColorSecondary, Align: AlignLeft},
			info(RoleClientName, inv.ClientName, 110),
			info(RoleClientEmail, inv.ClientEmail, 120),
			{Role: RoleTotal, Text: "Total: " + amount, X: summaryX, Y: totalOffset, Anchor: AnchorTableEnd, FontSize: 14, Color: ColorPrimary, Align: AlignLeft},
			{Role: RoleStatus, Text: strings.ToUpper(string(inv.Status)), X: summaryX, Y: statusOffset, Anchor: AnchorTableEnd, FontSize: 16, Color: statusColor, Align: AlignLeft},
			{Role: RoleFooter, Text: "Thank you for your business!", X: PageWidth / 2, Y: footerY, FontSize: 10, Color: ColorSecondary, Align: AlignCenter},
		},
		Table: Table{
			StartY:       tableStartY,
			Head:         []string{"Description", "Amount"},
			Rows:         [][]string{{inv.Description, amount}},
			ColumnWidths: []float64{descriptionCol, amountCol},
			HeadFill:     ColorPrimary,
			HeadText:     ColorWhite,
			BodyText:     ColorSecondary,
			Align:        AlignCenter,
		},
	}
}

// Package pdf encodes document descriptions as PDF files with go-pdf/fpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/SscSPs/simple_invoice_app/internal/core/domain"
	portssvc "github.com/SscSPs/simple_invoice_app/internal/core/ports/services"
	"github.com/go-pdf/fpdf"
)

const (
	ContentType = "application/pdf"

	fontFamily = "Helvetica"
	rowHeight  = 10.0
	bodyFont   = 10.0
)

var stripeFill = domain.RGB{R: 245, G: 245, B: 245}

// Encoder draws documents on a single A4 portrait page in millimetres.
type Encoder struct {
	author string
}

// NewEncoder returns an encoder that stamps author into the PDF metadata.
func NewEncoder(author string) *Encoder {
	return &Encoder{author: author}
}

var _ portssvc.DocumentEncoder = (*Encoder)(nil)

// ContentType is the media type of the bytes Encode returns.
func (e *Encoder) ContentType() string { return ContentType }

// Encode draws doc. Text is translated to cp1252 so the core fonts can show
// currency symbols such as € and £.
func (e *Encoder) Encode(ctx context.Context, doc domain.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(doc.Title, true)
	if e.author != "" {
		pdf.SetAuthor(e.author, true)
	}
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	for _, r := range doc.Rects {
		setFill(pdf, r.Fill)
		pdf.Rect(r.X, r.Y, r.W, r.H, "F")
	}

	tableEnd := drawTable(pdf, tr, doc.Table)

	for _, t := range doc.Texts {
		y := t.Y
		if t.Anchor == domain.AnchorTableEnd {
			y += tableEnd
		}
		pdf.SetFont(fontFamily, "", t.FontSize)
		pdf.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
		text := tr(t.Text)
		x := t.X
		if t.Align == domain.AlignCenter {
			x -= pdf.GetStringWidth(text) / 2
		}
		pdf.Text(x, y, text)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}

// drawTable draws the table centred on the page and returns the y of its bottom edge.
func drawTable(pdf *fpdf.Fpdf, tr func(string) string, t domain.Table) float64 {
	if len(t.Head) == 0 && len(t.Rows) == 0 {
		return t.StartY
	}

	total := 0.0
	for _, w := range t.ColumnWidths {
		total += w
	}
	left := (domain.PageWidth - total) / 2
	align := string(t.Align)

	width := func(i int) float64 {
		if i < len(t.ColumnWidths) {
			return t.ColumnWidths[i]
		}
		return 0
	}

	y := t.StartY
	if len(t.Head) > 0 {
		pdf.SetFont(fontFamily, "B", bodyFont)
		setFill(pdf, t.HeadFill)
		pdf.SetTextColor(int(t.HeadText.R), int(t.HeadText.G), int(t.HeadText.B))
		pdf.SetXY(left, y)
		for i, cell := range t.Head {
			pdf.CellFormat(width(i), rowHeight, tr(cell), "", 0, align+"M", true, 0, "")
		}
		y += rowHeight
	}

	pdf.SetFont(fontFamily, "", bodyFont)
	pdf.SetTextColor(int(t.BodyText.R), int(t.BodyText.G), int(t.BodyText.B))
	setFill(pdf, stripeFill)
	for r, row := range t.Rows {
		pdf.SetXY(left, y)
		for i, cell := range row {
			pdf.CellFormat(width(i), rowHeight, tr(cell), "", 0, align+"M", r%2 == 1, 0, "")
		}
		y += rowHeight
	}
	return y
}

func setFill(pdf *fpdf.Fpdf, c domain.RGB) {
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
}

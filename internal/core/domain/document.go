package domain

// RGB is a fill or text color.
type RGB struct {
	R, G, B uint8
}

// Anchor tells the encoder what a vertical position is measured from.
type Anchor int

const (
	// AnchorPage positions are absolute page coordinates.
	AnchorPage Anchor = iota
	// AnchorTableEnd positions are offsets below the last row of the table.
	AnchorTableEnd
)

// Align is the horizontal alignment of text around its X coordinate.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
)

// TextRole names what a text block shows so callers can find it again.
type TextRole string

const (
	RoleTitle         TextRole = "title"
	RoleInvoiceNumber TextRole = "invoice_number"
	RoleIssueDate     TextRole = "issue_date"
	RoleDueDate       TextRole = "due_date"
	RoleBillTo        TextRole = "bill_to"
	RoleClientName    TextRole = "client_name"
	RoleClientEmail   TextRole = "client_email"
	RoleTotal         TextRole = "total"
	RoleStatus        TextRole = "status"
	RoleFooter        TextRole = "footer"
)

// FilledRect is a solid rectangle in millimetres.
type FilledRect struct {
	X, Y, W, H float64
	Fill       RGB
}

// TextBlock is one positioned line of text.
type TextBlock struct {
	Role     TextRole
	Text     string
	X, Y     float64
	Anchor   Anchor
	FontSize float64
	Color    RGB
	Align    Align
}

// Table is a striped grid with a styled head row.
type Table struct {
	StartY       float64
	Head         []string
	Rows         [][]string
	ColumnWidths []float64
	HeadFill     RGB
	HeadText     RGB
	BodyText     RGB
	Align        Align
}

// Document is a single-page drawing description handed to a DocumentEncoder.
type Document struct {
	Title    string
	Filename string
	Rects    []FilledRect
	Texts    []TextBlock
	Table    Table
}

// Text returns the block with the given role.
func (d Document) Text(role TextRole) (TextBlock, bool) {
	for _, t := range d.Texts {
		if t.Role == role {
			return t, true
		}
	}
	return TextBlock{}, false
}

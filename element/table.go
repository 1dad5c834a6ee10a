package element

// Table is a rectangular jagged grid of text cells with an optional
// caption block.
type Table struct {
	Rows    [][]*TextBlock
	Caption *TextBlock
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{}
}

// PushRow appends a row of cells.
func (t *Table) PushRow(row []*TextBlock) {
	t.Rows = append(t.Rows, row)
}

// SetCaption attaches a caption block.
func (t *Table) SetCaption(caption *TextBlock) {
	t.Caption = caption
}

// ColumnCount returns the length of the longest row.
func (t *Table) ColumnCount() int {
	max := 0
	for _, row := range t.Rows {
		if len(row) > max {
			max = len(row)
		}
	}
	return max
}

// HasCaption reports whether the table carries a caption with any
// non-whitespace text.
func (t *Table) HasCaption() bool {
	return t.Caption != nil && t.Caption.HasContent()
}

package layout

import (
	"errors"
	"math"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// TableRowGap is the vertical gap between table rows, and between the
// caption slot and the grid.
const TableRowGap = 20.0

// TableColGap is the horizontal gap between table columns.
const TableColGap = 20.0

// TableLayout is the solved geometry of one table: per-cell rectangles
// relative to the table's own origin, the caption rectangle when a
// non-empty caption is present, and the total size.
type TableLayout struct {
	Cells   [][]geom.Rect
	Caption *geom.Rect
	Size    geom.Size
}

// LayoutTable solves the table grid against the available width.
//
// Column count is the longest row's length. Columns take their natural
// (max-content) widths and shrink proportionally when the grid would
// overrun the available width; row heights are then measured at the
// solved column widths. A non-empty caption is stacked above the grid
// with one row gap between the two slots.
func (p *Positioner) LayoutTable(t *element.Table, avail geom.Size, zoom float64) (*TableLayout, error) {
	if p.Text == nil {
		return nil, errNoMeasurer
	}
	if math.IsNaN(avail.W) {
		return nil, errors.New("available width is NaN")
	}

	cols := t.ColumnCount()
	unbounded := geom.Size{W: math.Inf(1), H: math.Inf(1)}

	// Natural column widths.
	colWidth := make([]float64, cols)
	for _, row := range t.Rows {
		for x, cell := range row {
			nat := p.Text.TextSize(cell, unbounded, zoom)
			colWidth[x] = math.Max(colWidth[x], nat.W)
		}
	}

	colGaps := 0.0
	if cols > 1 {
		colGaps = TableColGap * float64(cols-1)
	}
	sumWidth := 0.0
	for _, w := range colWidth {
		sumWidth += w
	}

	// Shrink columns proportionally when the grid overruns the
	// available width.
	if !math.IsInf(avail.W, 1) && sumWidth+colGaps > avail.W && sumWidth > 0 {
		scale := math.Max(0, avail.W-colGaps) / sumWidth
		sumWidth = 0
		for i := range colWidth {
			colWidth[i] *= scale
			sumWidth += colWidth[i]
		}
	}

	// Row heights at the solved column widths.
	rowHeight := make([]float64, len(t.Rows))
	for yIdx, row := range t.Rows {
		for x, cell := range row {
			sz := p.Text.TextSize(cell, geom.Size{W: colWidth[x], H: math.Inf(1)}, zoom)
			rowHeight[yIdx] = math.Max(rowHeight[yIdx], sz.H)
		}
	}

	rowGaps := 0.0
	if len(t.Rows) > 1 {
		rowGaps = TableRowGap * float64(len(t.Rows)-1)
	}
	gridWidth := sumWidth + colGaps
	gridHeight := rowGaps
	for _, h := range rowHeight {
		gridHeight += h
	}
	if len(t.Rows) == 0 {
		gridHeight = 0
	}

	tl := &TableLayout{
		Cells: make([][]geom.Rect, len(t.Rows)),
		Size:  geom.Size{W: gridWidth, H: gridHeight},
	}

	// Caption slot above the grid.
	gridTop := 0.0
	if t.HasCaption() {
		capAvail := avail
		capAvail.H = math.Inf(1)
		capSize := p.Text.TextSize(t.Caption, capAvail, zoom)
		capRect := geom.Rect{Pos: geom.Point{X: 0, Y: 0}, Size: capSize}
		tl.Caption = &capRect
		gridTop = capSize.H + TableRowGap
		tl.Size.W = math.Max(gridWidth, capSize.W)
		tl.Size.H = capSize.H + TableRowGap + gridHeight
	}

	cellY := gridTop
	for yIdx, row := range t.Rows {
		cells := make([]geom.Rect, len(row))
		cellX := 0.0
		for x := range row {
			cells[x] = geom.Rect{
				Pos:  geom.Point{X: cellX, Y: cellY},
				Size: geom.Size{W: colWidth[x], H: rowHeight[yIdx]},
			}
			cellX += colWidth[x] + TableColGap
		}
		tl.Cells[yIdx] = cells
		cellY += rowHeight[yIdx] + TableRowGap
	}

	return tl, nil
}

// TableLayoutAt solves a table's grid with the same available width the
// positioning pass used for a table whose top-left corner sits at
// origin. Hit testing and search highlighting use it to recover cell
// geometry after a pass.
func (p *Positioner) TableLayoutAt(t *element.Table, origin geom.Point, zoom float64) (*TableLayout, error) {
	centering := p.Centering()
	avail := geom.Size{
		W: math.Max(0, p.ScreenSize.W-origin.X-p.PageMargin-centering),
		H: math.Inf(1),
	}
	return p.LayoutTable(t, avail, zoom)
}

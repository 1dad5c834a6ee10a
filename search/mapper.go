package search

import (
	"math"
	"unicode/utf8"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
	"github.com/quillview/quillview/layout"
)

// Metrics converts a font size into character-cell metrics for
// highlight placement. The approximate model can be swapped for real
// shaped-width queries without touching the mapper contract.
type Metrics interface {
	CharWidth(fontSize float64) float64
	LineHeight(fontSize float64) float64
}

// ApproxMetrics is the fixed monospace approximation: half an em per
// character, 1.2 em line height.
type ApproxMetrics struct {
	HidpiScale float64
	Zoom       float64
}

// CharWidth implements Metrics.
func (m ApproxMetrics) CharWidth(fontSize float64) float64 {
	return fontSize * 0.5 * m.HidpiScale * m.Zoom
}

// LineHeight implements Metrics.
func (m ApproxMetrics) LineHeight(fontSize float64) float64 {
	return fontSize * 1.2 * m.HidpiScale * m.Zoom
}

// TableLayouter recovers a table's cell geometry after a layout pass.
// *layout.Positioner satisfies it.
type TableLayouter interface {
	TableLayoutAt(t *element.Table, origin geom.Point, zoom float64) (*layout.TableLayout, error)
}

// Highlight pairs a match index with its rectangle in document space.
type Highlight struct {
	Match int
	Rect  geom.Rect
}

// Mapper translates abstract match locations into highlight
// rectangles. Matches whose element index references nothing in the
// current document are silently skipped: search results are recomputed
// independently of layout and may transiently disagree with it.
type Mapper struct {
	Metrics Metrics
	Tables  TableLayouter
	Zoom    float64
}

// Highlights computes one rectangle per resolvable match.
func (m *Mapper) Highlights(elements []*element.Positioned, matches []Match, query string) []Highlight {
	if len(matches) == 0 {
		return nil
	}
	queryLen := utf8.RuneCountInString(query)
	if queryLen < 1 {
		queryLen = 1
	}

	var out []Highlight
	idx := 0
	emit := func(block *element.TextBlock, bounds *geom.Rect) {
		if bounds != nil {
			for mi, match := range matches {
				if match.Element == idx {
					out = append(out, Highlight{Match: mi, Rect: m.rect(block, *bounds, match, queryLen)})
				}
			}
		}
		idx++
	}

	for _, el := range elements {
		switch e := el.Inner.(type) {
		case *element.TextBlock:
			emit(e, el.Bounds)
		case *element.Section:
			for _, sub := range e.Elements {
				if tb, ok := sub.Inner.(*element.TextBlock); ok {
					emit(tb, sub.Bounds)
				}
			}
		case *element.Row:
			for _, cell := range e.Elements {
				if tb, ok := cell.Inner.(*element.TextBlock); ok {
					emit(tb, cell.Bounds)
				}
			}
		case *element.Table:
			tl := m.tableLayout(e, el.Bounds)
			for y, row := range e.Rows {
				for x, cell := range row {
					if tl == nil {
						emit(cell, nil)
						continue
					}
					r := tl.Cells[y][x]
					r.Pos.X += el.Bounds.Pos.X
					r.Pos.Y += el.Bounds.Pos.Y
					emit(cell, &r)
				}
			}
		}
	}
	return out
}

func (m *Mapper) tableLayout(t *element.Table, bounds *geom.Rect) *layout.TableLayout {
	if m.Tables == nil || bounds == nil {
		return nil
	}
	tl, err := m.Tables.TableLayoutAt(t, bounds.Pos, m.Zoom)
	if err != nil {
		return nil
	}
	return tl
}

func (m *Mapper) rect(block *element.TextBlock, bounds geom.Rect, match Match, queryLen int) geom.Rect {
	fontSize := block.FontSize
	if fontSize == 0 {
		fontSize = element.DefaultFontSize
	}
	charWidth := m.Metrics.CharWidth(fontSize)
	lineHeight := m.Metrics.LineHeight(fontSize)

	width := float64(queryLen) * charWidth
	if queryLen == 1 {
		width = charWidth * 1.2
	}
	return geom.Rect{
		Pos: geom.Point{
			X: bounds.Pos.X + float64(match.Cumulative)*charWidth,
			Y: bounds.Pos.Y,
		},
		Size: geom.Size{W: width, H: math.Min(lineHeight, bounds.Size.H)},
	}
}

package viewer

import (
	"unicode/utf8"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// Hoverable identifies the interactive element under the pointer.
type Hoverable interface {
	hoverable()
}

// HoverText is a hovered text block. Run is the index of the styled
// run under the pointer, resolved with the approximate character
// metric; -1 when it could not be resolved.
type HoverText struct {
	Block *element.TextBlock
	Run   int
}

// HoverImage is a hovered image.
type HoverImage struct {
	Image *element.Image
}

// HoverSummary is a hovered section summary; clicking it toggles the
// section's collapsed state.
type HoverSummary struct {
	Section *element.Section
}

func (*HoverText) hoverable()    {}
func (*HoverImage) hoverable()   {}
func (*HoverSummary) hoverable() {}

// Link returns the link target of the hovered run, if any.
func (h *HoverText) Link() string {
	if h.Run < 0 || h.Run >= len(h.Block.Texts) {
		return ""
	}
	return h.Block.Texts[h.Run].Link
}

// Hover maps a viewport-space point to the topmost non-spacer element
// containing it, recursing into rows and expanded sections. Returns
// nil when nothing interactive is under the point.
func (v *Viewer) Hover(loc geom.Point) Hoverable {
	doc := geom.Point{X: loc.X, Y: loc.Y + v.scrollY}
	return v.findHoverable(v.elements, doc)
}

func (v *Viewer) findHoverable(elements []*element.Positioned, loc geom.Point) Hoverable {
	for _, el := range elements {
		if el.Bounds == nil || !el.Bounds.Contains(loc) {
			continue
		}
		if _, ok := el.Inner.(*element.Spacer); ok {
			continue
		}
		// Commit to the first containing non-spacer element, matching
		// the paint order's topmost hit.
		switch e := el.Inner.(type) {
		case *element.TextBlock:
			return v.hoverTextBlock(e, *el.Bounds, loc)
		case *element.Image:
			return &HoverImage{Image: e}
		case *element.Table:
			return v.hoverTable(e, *el.Bounds, loc)
		case *element.Row:
			return v.findHoverable(e.Elements, loc)
		case *element.Section:
			if e.Summary != nil && e.Summary.Bounds != nil && e.Summary.Bounds.Contains(loc) {
				return &HoverSummary{Section: e}
			}
			if v.SectionCollapsed(e.ID) {
				return nil
			}
			return v.findHoverable(e.Elements, loc)
		}
	}
	return nil
}

// hoverTextBlock resolves the run under the pointer with the same
// character-metric approximation the search mapper uses.
func (v *Viewer) hoverTextBlock(block *element.TextBlock, bounds geom.Rect, loc geom.Point) Hoverable {
	fontSize := block.FontSize
	if fontSize == 0 {
		fontSize = element.DefaultFontSize
	}
	charWidth := fontSize * 0.5 * v.cfg.HidpiScale * v.cfg.Zoom
	if charWidth <= 0 {
		return &HoverText{Block: block, Run: -1}
	}
	offset := int((loc.X - bounds.Pos.X) / charWidth)
	acc := 0
	for i, run := range block.Texts {
		n := utf8.RuneCountInString(run.Text)
		if offset < acc+n {
			return &HoverText{Block: block, Run: i}
		}
		acc += n
	}
	return &HoverText{Block: block, Run: -1}
}

// hoverTable recovers the cell grid and recurses into the cell under
// the pointer.
func (v *Viewer) hoverTable(table *element.Table, bounds geom.Rect, loc geom.Point) Hoverable {
	tl, err := v.pos.TableLayoutAt(table, bounds.Pos, v.cfg.Zoom)
	if err != nil {
		return nil
	}
	if table.HasCaption() && tl.Caption != nil {
		r := *tl.Caption
		r.Pos.X += bounds.Pos.X
		r.Pos.Y += bounds.Pos.Y
		if r.Contains(loc) {
			return v.hoverTextBlock(table.Caption, r, loc)
		}
	}
	for y, row := range table.Rows {
		for x, cell := range row {
			r := tl.Cells[y][x]
			r.Pos.X += bounds.Pos.X
			r.Pos.Y += bounds.Pos.Y
			if r.Contains(loc) {
				return v.hoverTextBlock(cell, r, loc)
			}
		}
	}
	return nil
}

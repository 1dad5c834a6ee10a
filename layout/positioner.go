// Package layout implements the positioning engine: the recursive pass
// that converts a content element tree into absolute pixel rectangles,
// and the constraint-based grid solver used for tables.
package layout

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// DefaultPadding is the default inter-element padding in pixels.
const DefaultPadding = 2.0

// DefaultMargin is the default page margin in pixels.
const DefaultMargin = 100.0

var errNoMeasurer = errors.New("layout: no text measurer configured")

// Positioner owns the state of a layout pass: page geometry, the
// running vertical cursor and the anchor registry. One Positioner is
// reused across passes; ReservedHeight and Anchors describe the most
// recent pass only.
type Positioner struct {
	ScreenSize geom.Size
	HidpiScale float64
	PageWidth  float64
	PageMargin float64

	// ReservedHeight is the running vertical cursor: the total height
	// consumed so far in the current pass.
	ReservedHeight float64

	// Anchors maps lowercased anchor names to vertical offsets. The map
	// is rebuilt from scratch on every Reposition.
	Anchors map[string]float64

	// Text measures text blocks. Positioning any text-bearing element
	// fails without it.
	Text TextMeasurer

	// hidden is the per-pass snapshot of collapsed section IDs.
	hidden map[string]bool
}

// New creates a positioner with the default inter-element padding.
func New(text TextMeasurer, screen geom.Size, hidpiScale, pageWidth, pageMargin float64) *Positioner {
	return NewWithPadding(text, screen, hidpiScale, pageWidth, pageMargin, DefaultPadding)
}

// NewWithPadding creates a positioner whose cursor starts at the given
// top padding.
func NewWithPadding(text TextMeasurer, screen geom.Size, hidpiScale, pageWidth, pageMargin, elementPadding float64) *Positioner {
	return &Positioner{
		ScreenSize:     screen,
		HidpiScale:     hidpiScale,
		PageWidth:      pageWidth,
		PageMargin:     pageMargin,
		ReservedHeight: elementPadding * hidpiScale,
		Anchors:        make(map[string]float64),
		Text:           text,
	}
}

// SetHidden installs the snapshot of collapsed section IDs for the next
// pass. The caller copies its live map; layout never reads shared
// mutable state mid-pass.
func (p *Positioner) SetHidden(snapshot map[string]bool) {
	p.hidden = snapshot
}

// Centering returns the horizontal offset that centers the page column
// within a wider viewport.
func (p *Positioner) Centering() float64 {
	return math.Max(0, p.ScreenSize.W-p.PageWidth) / 2
}

// Position computes and stores the bounds of a single element at the
// current cursor height. The cursor itself is not advanced; that is the
// caller's job once it has decided on trailing padding.
func (p *Positioner) Position(el *element.Positioned, zoom, elementPadding float64) error {
	_, err := p.positionAt(el, p.ReservedHeight, zoom, elementPadding)
	return err
}

// positionAt assigns bounds to el with its top edge at y and returns
// the resulting rectangle. It never touches ReservedHeight: vertical
// cursor ownership stays with the caller, which is what lets a hidden
// section collapse to zero height for its siblings while its children
// keep fully computed expanded-state geometry.
func (p *Positioner) positionAt(el *element.Positioned, y, zoom, elementPadding float64) (geom.Rect, error) {
	centering := p.Centering()
	pad := elementPadding * p.HidpiScale * zoom

	var bounds geom.Rect
	switch e := el.Inner.(type) {
	case *element.TextBlock:
		if p.Text == nil {
			return geom.Rect{}, errNoMeasurer
		}
		x := p.PageMargin + e.Indent + centering
		avail := geom.Size{
			W: math.Max(0, p.ScreenSize.W-x-p.PageMargin-centering),
			H: math.Inf(1),
		}
		size := p.Text.TextSize(e, avail, zoom)
		if e.Anchor != "" {
			p.Anchors[strings.ToLower(e.Anchor)] = y
		}
		bounds = geom.Rect{Pos: geom.Point{X: x, Y: y}, Size: size}

	case *element.Spacer:
		bounds = geom.Rect{
			Pos:  geom.Point{X: 0, Y: y},
			Size: geom.Size{W: 0, H: e.Space * p.HidpiScale * zoom},
		}

	case *element.Image:
		fit := geom.Size{W: math.Min(p.ScreenSize.W, p.PageWidth), H: p.ScreenSize.H}
		size, _ := e.Fit(fit, zoom)
		x := p.PageMargin + centering
		if e.Align == geom.AlignCenter {
			x = p.ScreenSize.W/2 - size.W/2
		}
		bounds = geom.Rect{Pos: geom.Point{X: x, Y: y}, Size: size}

	case *element.Table:
		x := p.PageMargin + centering
		avail := geom.Size{
			W: math.Max(0, p.ScreenSize.W-x-p.PageMargin-centering),
			H: math.Inf(1),
		}
		tl, err := p.LayoutTable(e, avail, zoom)
		if err != nil {
			return geom.Rect{}, fmt.Errorf("layout: table at y=%g: %w", y, err)
		}
		bounds = geom.Rect{Pos: geom.Point{X: x, Y: y}, Size: tl.Size}

	case *element.Row:
		r, err := p.positionRow(e, y, zoom, pad, centering, elementPadding)
		if err != nil {
			return geom.Rect{}, err
		}
		bounds = r

	case *element.Section:
		r, err := p.positionSection(e, y, zoom, pad, centering, elementPadding)
		if err != nil {
			return geom.Rect{}, err
		}
		bounds = r

	default:
		return geom.Rect{}, fmt.Errorf("layout: unknown element variant %T", el.Inner)
	}

	el.Bounds = &bounds
	return bounds, nil
}

// positionRow lays out a row's children left to right, wrapping onto a
// new line whenever the next child would overrun the available width.
// A single child wider than the line is placed anyway; children are
// never split.
func (p *Positioner) positionRow(row *element.Row, y, zoom, pad, centering, elementPadding float64) (geom.Rect, error) {
	left := p.PageMargin + centering
	limit := p.ScreenSize.W - p.PageMargin - centering

	reservedWidth := left
	innerHeight := 0.0
	lineHeight := 0.0
	maxWidth := 0.0

	for _, child := range row.Elements {
		if _, err := p.positionAt(child, y, zoom, elementPadding); err != nil {
			return geom.Rect{}, err
		}
		cb := child.Bounds

		target := reservedWidth + pad + cb.Size.W
		if target > limit && reservedWidth > left {
			// Line is full: close it and start a new one with this child.
			maxWidth = math.Max(maxWidth, reservedWidth)
			reservedWidth = left + pad + cb.Size.W
			innerHeight += lineHeight + pad
			lineHeight = cb.Size.H
			cb.Pos.X = left
		} else {
			lineHeight = math.Max(lineHeight, cb.Size.H)
			cb.Pos.X = reservedWidth
			reservedWidth = target
		}
		cb.Pos.Y = y + innerHeight
	}
	maxWidth = math.Max(maxWidth, reservedWidth)
	innerHeight += lineHeight

	return geom.Rect{
		Pos:  geom.Point{X: left, Y: y},
		Size: geom.Size{W: maxWidth - left, H: innerHeight},
	}, nil
}

// positionSection positions a section's summary and children along a
// private sub-cursor starting at y. Children always receive their
// expanded-state rectangles; only the returned rectangle's height is
// suppressed while the section is hidden, so subsequent siblings see a
// collapsed section as zero-height content.
func (p *Positioner) positionSection(sec *element.Section, y, zoom, pad, centering, elementPadding float64) (geom.Rect, error) {
	bounds := geom.Rect{Pos: geom.Point{X: p.PageMargin + centering, Y: y}}
	cursor := y

	if sec.Summary != nil {
		sr, err := p.positionAt(sec.Summary, cursor, zoom, elementPadding)
		if err != nil {
			return geom.Rect{}, err
		}
		cursor += sr.Size.H + pad
		bounds.Size.H += sr.Size.H + pad
		bounds.Size.W = math.Max(bounds.Size.W, sr.Size.W)
	}

	hidden := p.hidden[sec.ID]
	for _, child := range sec.Elements {
		cr, err := p.positionAt(child, cursor, zoom, elementPadding)
		if err != nil {
			return geom.Rect{}, err
		}
		cursor += cr.Size.H + pad
		if !hidden {
			bounds.Size.H += cr.Size.H + pad
			bounds.Size.W = math.Max(bounds.Size.W, cr.Size.W)
		}
	}
	return bounds, nil
}

// Reposition runs a full pass: the cursor resets to the top padding,
// every top-level element is positioned in order and the cursor
// advances by each element's height plus inter-element padding. The
// padding after a header is suppressed when the next element is a
// table without a caption, so the two read as one unit.
func (p *Positioner) Reposition(elements []*element.Positioned, zoom, elementPadding float64) error {
	pad := elementPadding * p.HidpiScale * zoom
	p.ReservedHeight = pad
	clear(p.Anchors)

	for i, el := range elements {
		r, err := p.positionAt(el, p.ReservedHeight, zoom, elementPadding)
		if err != nil {
			return err
		}
		p.ReservedHeight = r.Pos.Y + r.Size.H
		if !SuppressPadding(elements[i].Inner, nextInner(elements, i)) {
			p.ReservedHeight += pad
		}
	}
	return nil
}

func nextInner(elements []*element.Positioned, i int) element.Element {
	if i+1 < len(elements) {
		return elements[i+1].Inner
	}
	return nil
}

// SuppressPadding reports whether the inter-element padding between cur
// and next should be dropped: a header text block directly followed by
// an uncaptioned table keeps no gap.
func SuppressPadding(cur, next element.Element) bool {
	tb, ok := cur.(*element.TextBlock)
	if !ok || !tb.IsHeader {
		return false
	}
	table, ok := next.(*element.Table)
	return ok && !table.HasCaption()
}

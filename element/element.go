// Package element defines the content element model consumed by the
// layout engine: a tagged union of document content variants plus the
// Positioned wrapper that pairs an element with its computed pixel
// rectangle.
package element

import (
	"github.com/quillview/quillview/geom"
)

// Element is the closed set of content variants. The concrete types are
// *TextBlock, *Spacer, *Image, *Table, *Row and *Section.
type Element interface {
	element()
}

func (*TextBlock) element() {}
func (*Spacer) element()    {}
func (*Image) element()     {}
func (*Table) element()     {}
func (*Row) element()       {}
func (*Section) element()   {}

// Positioned pairs an element with its computed bounds. Bounds is nil
// until the first positioning pass assigns it; consumers must not read
// it before then.
type Positioned struct {
	Inner  Element
	Bounds *geom.Rect
}

// NewPositioned wraps an element with empty bounds.
func NewPositioned(inner Element) *Positioned {
	return &Positioned{Inner: inner}
}

// Contains reports whether loc falls inside the element's bounds. It
// panics if the element has not been positioned yet: reading geometry
// before the first layout pass is a layout-order bug, not a recoverable
// condition.
func (p *Positioned) Contains(loc geom.Point) bool {
	if p.Bounds == nil {
		panic("element: Contains called before element was positioned")
	}
	return p.Bounds.Contains(loc)
}

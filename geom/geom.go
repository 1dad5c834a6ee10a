// Package geom provides the primitive geometry types shared by the
// layout engine: points, sizes and axis-aligned rectangles in a
// top-left-origin, y-down pixel coordinate space.
package geom

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// Size is a width/height pair in pixels.
type Size struct {
	W, H float64
}

// Rect is an axis-aligned rectangle described by its top-left corner
// and its size.
type Rect struct {
	Pos  Point
	Size Size
}

// NewRect constructs a rectangle from a top-left corner and a size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{Pos: Point{X: x, Y: y}, Size: Size{W: w, H: h}}
}

// Max returns the bottom-right corner of the rectangle.
func (r Rect) Max() Point {
	return Point{X: r.Pos.X + r.Size.W, Y: r.Pos.Y + r.Size.H}
}

// Contains reports whether loc falls inside the rectangle. Edges are
// inclusive on all four sides.
func (r Rect) Contains(loc Point) bool {
	max := r.Max()
	return r.Pos.X <= loc.X && loc.X <= max.X && r.Pos.Y <= loc.Y && loc.Y <= max.Y
}

// Align is a horizontal alignment for images and text blocks.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign maps an alignment keyword to an Align value.
func ParseAlign(s string) (Align, bool) {
	switch s {
	case "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	}
	return AlignLeft, false
}

package element

// Row is an ordered run of child elements that flow left to right and
// wrap onto new lines when they exceed the available width.
type Row struct {
	Elements   []*Positioned
	HidpiScale float64
}

// RowWithImage builds a single-image row, the common markdown case of
// an inline image paragraph.
func RowWithImage(img *Image, hidpiScale float64) *Row {
	return &Row{
		Elements:   []*Positioned{NewPositioned(img)},
		HidpiScale: hidpiScale,
	}
}

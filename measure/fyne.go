package measure

import (
	"math"

	"fyne.io/fyne/v2"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// FyneText measures text through the Fyne driver's renderer. It
// requires a running fyne.App and is intended for viewers embedded in a
// Fyne shell; headless callers should use FixedText instead.
type FyneText struct {
	HidpiScale float64
}

// NewFyneText returns a driver-backed measurer at the given display
// scale.
func NewFyneText(hidpiScale float64) *FyneText {
	return &FyneText{HidpiScale: hidpiScale}
}

// TextSize implements layout.TextMeasurer. Each run is measured with
// its own style; wrapping is estimated by folding the summed run width
// into the available width.
func (m *FyneText) TextSize(block *element.TextBlock, avail geom.Size, zoom float64) geom.Size {
	fontSize := block.FontSize
	if fontSize == 0 {
		fontSize = element.DefaultFontSize
	}
	scaled := float32(fontSize * m.HidpiScale * zoom)

	width := 0.0
	lineHeight := fontSize * m.HidpiScale * zoom * lineSpacing
	for _, run := range block.Texts {
		style := fyne.TextStyle{
			Bold:      run.Bold,
			Italic:    run.Italic,
			Monospace: run.Code || block.IsCode,
		}
		sz := fyne.MeasureText(run.Text, scaled, style)
		width += float64(sz.Width)
		lineHeight = math.Max(lineHeight, float64(sz.Height))
	}
	if width == 0 {
		return geom.Size{}
	}

	if math.IsInf(avail.W, 1) || width <= avail.W || avail.W <= 0 {
		return geom.Size{W: width, H: lineHeight}
	}
	lines := math.Ceil(width / avail.W)
	return geom.Size{W: avail.W, H: lines * lineHeight}
}

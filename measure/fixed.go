// Package measure provides concrete implementations of the layout
// engine's measurement collaborators: a deterministic fixed-metric text
// measurer, a Fyne-driver-backed measurer, and image intrinsic-size
// probing.
package measure

import (
	"math"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// lineSpacing is the line height as a multiple of the font size,
// matching the approximation used for search highlights.
const lineSpacing = 1.2

// FixedText measures text with the basicfont face scaled to the block's
// font size. It is deterministic and needs no display driver, which
// makes it the measurer of choice for headless use and tests.
type FixedText struct {
	HidpiScale float64
	Face       font.Face
}

// NewFixedText returns a fixed-metric measurer at the given display
// scale.
func NewFixedText(hidpiScale float64) *FixedText {
	return &FixedText{HidpiScale: hidpiScale, Face: basicfont.Face7x13}
}

// TextSize implements layout.TextMeasurer. Text wraps at the available
// width by advancing whole lines; runs are measured with the face and
// scaled from its base height to the requested font size.
func (m *FixedText) TextSize(block *element.TextBlock, avail geom.Size, zoom float64) geom.Size {
	face := m.Face
	if face == nil {
		face = basicfont.Face7x13
	}
	fontSize := block.FontSize
	if fontSize == 0 {
		fontSize = element.DefaultFontSize
	}
	scale := fontSize * m.HidpiScale * zoom / float64(face.Metrics().Height.Ceil())
	lineHeight := fontSize * m.HidpiScale * zoom * lineSpacing

	text := block.PlainText()
	if text == "" {
		return geom.Size{}
	}

	width := 0.0
	lines := 0
	for _, line := range strings.Split(text, "\n") {
		natural := float64(font.MeasureString(face, line).Ceil()) * scale
		if math.IsInf(avail.W, 1) || natural <= avail.W || avail.W <= 0 {
			width = math.Max(width, natural)
			lines++
			continue
		}
		wrapped := int(math.Ceil(natural / avail.W))
		width = avail.W
		lines += wrapped
	}
	return geom.Size{W: width, H: float64(lines) * lineHeight}
}

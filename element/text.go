package element

import (
	"image/color"
	"strings"

	"github.com/quillview/quillview/geom"
)

// DefaultFontSize is the base font size for body text in pixels.
const DefaultFontSize = 16.0

// Text is a single styled run inside a TextBlock.
type Text struct {
	Text       string
	Link       string
	Bold       bool
	Italic     bool
	Underlined bool
	Striked    bool
	Code       bool
	Color      *color.RGBA
}

// TextBlock is a paragraph-level block of styled text runs.
type TextBlock struct {
	Texts    []Text
	IsHeader bool
	Indent   float64
	// Anchor is the fragment name recorded in the anchor registry when
	// the block is positioned. Empty means no anchor.
	Anchor   string
	Checkbox *bool
	IsCode   bool
	IsQuote  bool
	FontSize float64
	Align    geom.Align
}

// NewTextBlock builds a block from runs at the default font size.
func NewTextBlock(texts ...Text) *TextBlock {
	return &TextBlock{Texts: texts, FontSize: DefaultFontSize}
}

// PlainText returns the concatenated run text.
func (b *TextBlock) PlainText() string {
	var sb strings.Builder
	for _, t := range b.Texts {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// HasContent reports whether any run contains non-whitespace text.
func (b *TextBlock) HasContent() bool {
	for _, t := range b.Texts {
		if strings.TrimSpace(t.Text) != "" {
			return true
		}
	}
	return false
}

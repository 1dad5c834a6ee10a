package element

// DefaultSpacerSize is the unscaled height of a spacer in pixels.
const DefaultSpacerSize = 5.0

// Spacer is vertical whitespace between blocks. Invisible spacers still
// consume height but are skipped by hit testing and rendering.
type Spacer struct {
	Space   float64
	Visible bool
}

// VisibleSpacer returns a spacer that renders a rule.
func VisibleSpacer() *Spacer {
	return &Spacer{Space: DefaultSpacerSize, Visible: true}
}

// InvisibleSpacer returns a spacer that only consumes height.
func InvisibleSpacer() *Spacer {
	return &Spacer{Space: DefaultSpacerSize, Visible: false}
}

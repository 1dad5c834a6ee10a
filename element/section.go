package element

// Section is a collapsible group of elements with an optional summary
// line. Whether a section is currently collapsed is not stored here:
// the interaction layer owns a map keyed by ID and the layout pass
// reads a snapshot of it, so layout never races a mid-pass toggle.
type Section struct {
	// ID is the stable identifier used to look up the collapsed state.
	ID         string
	Elements   []*Positioned
	Summary    *Positioned
	HidpiScale float64
}

// BareSection returns an empty section with no summary.
func BareSection(id string, hidpiScale float64) *Section {
	return &Section{ID: id, HidpiScale: hidpiScale}
}

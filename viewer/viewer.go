// Package viewer coordinates the layout engine for a scrollable,
// zoomable document view: it owns the element queue fed by the content
// producer, the preprocessing filter, the runtime configuration
// surface, scroll state, hit testing and anchor navigation.
package viewer

import (
	"strings"
	"sync"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
	"github.com/quillview/quillview/layout"
)

const (
	// ScrollLineHeight is the unscaled pixel height of one scroll line.
	ScrollLineHeight = 16.0
	// PageScrollFraction is how much of the viewport a page scroll moves.
	PageScrollFraction = 0.9

	// Extra spacing rules applied while positioning freshly drained
	// content: breathing room before a header that is not at document
	// start, and minimum padding after headers and tables.
	minHeaderSpacing = 12.0
	minHeaderPadding = 2.0
	minTablePadding  = 6.0

	zoomStepIn  = 1.1
	zoomStepOut = 0.9
)

// Config is the runtime-mutable geometry configuration. Every change
// applied through the viewer's setters triggers a full reposition.
type Config struct {
	PageWidth      float64
	PageMargin     float64
	ElementPadding float64
	Zoom           float64
	HidpiScale     float64
	ViewportSize   geom.Size

	// LinesToScroll scales line-based scrolling.
	LinesToScroll float64

	// TrimHeaderTableGap enables the destructive preprocessing filter
	// that deletes queued content between a header and an immediately
	// following uncaptioned table. On by default for parity with the
	// document convention it serves; turn it off to keep all content.
	TrimHeaderTableGap bool
}

// DefaultConfig returns the standard configuration for a viewport.
func DefaultConfig(viewport geom.Size) Config {
	return Config{
		PageWidth:          viewport.W,
		PageMargin:         layout.DefaultMargin,
		ElementPadding:     layout.DefaultPadding,
		Zoom:               1,
		HidpiScale:         1,
		ViewportSize:       viewport,
		LinesToScroll:      3,
		TrimHeaderTableGap: true,
	}
}

// Viewer drives layout for one document. Layout runs synchronously on
// the calling (UI) goroutine; the content producer may enqueue from
// another goroutine, and the queue is drained whole before each pass.
type Viewer struct {
	mu    sync.Mutex
	queue []element.Element

	cfg       Config
	pos       *layout.Positioner
	elements  []*element.Positioned
	scrollY   float64
	collapsed map[string]bool
}

// New creates a viewer with the given configuration and text
// measurement collaborator.
func New(cfg Config, text layout.TextMeasurer) *Viewer {
	return &Viewer{
		cfg: cfg,
		pos: layout.NewWithPadding(text, cfg.ViewportSize, cfg.HidpiScale,
			cfg.PageWidth, cfg.PageMargin, cfg.ElementPadding),
		collapsed: make(map[string]bool),
	}
}

// Enqueue hands freshly produced content to the viewer. Safe to call
// from the producer goroutine.
func (v *Viewer) Enqueue(els ...element.Element) {
	v.mu.Lock()
	v.queue = append(v.queue, els...)
	v.mu.Unlock()
}

// ReplaceDocument discards the queue and all positioned elements,
// resets the cursor and scroll position, and enqueues the new batch.
func (v *Viewer) ReplaceDocument(els ...element.Element) {
	v.mu.Lock()
	v.queue = append(v.queue[:0:0], els...)
	v.mu.Unlock()
	v.elements = nil
	v.scrollY = 0
	v.pos.ReservedHeight = v.cfg.ElementPadding * v.cfg.HidpiScale
}

// drain atomically empties the queue. Partial drains never interleave
// with a positioning pass.
func (v *Viewer) drain() []element.Element {
	v.mu.Lock()
	q := v.queue
	v.queue = nil
	v.mu.Unlock()
	return q
}

// snapshotCollapsed copies the collapsed-section state for one pass, so
// a toggle arriving mid-pass cannot produce an inconsistent section
// height.
func (v *Viewer) snapshotCollapsed() {
	v.mu.Lock()
	snap := make(map[string]bool, len(v.collapsed))
	for id, hidden := range v.collapsed {
		snap[id] = hidden
	}
	v.mu.Unlock()
	v.pos.SetHidden(snap)
}

// PositionQueued drains the whole queue, runs the preprocessing filter
// and positions the new elements at the current cursor, appending them
// to the document.
func (v *Viewer) PositionQueued() error {
	batch := v.drain()
	if len(batch) == 0 {
		return nil
	}
	if v.cfg.TrimHeaderTableGap {
		batch = trimHeaderTableGap(batch)
	}
	v.snapshotCollapsed()

	hz := v.cfg.HidpiScale * v.cfg.Zoom
	normalPad := v.cfg.ElementPadding * hz

	for i, raw := range batch {
		el := element.NewPositioned(raw)

		// Headers that are not at document start get a minimum gap
		// above them.
		if tb, ok := raw.(*element.TextBlock); ok && tb.IsHeader {
			if v.pos.ReservedHeight > v.cfg.ElementPadding*v.cfg.HidpiScale {
				v.pos.ReservedHeight += minHeaderSpacing * hz
			}
		}

		if err := v.pos.Position(el, v.cfg.Zoom, v.cfg.ElementPadding); err != nil {
			return err
		}
		v.pos.ReservedHeight += el.Bounds.Size.H

		var next element.Element
		if i+1 < len(batch) {
			next = batch[i+1]
		}
		if !layout.SuppressPadding(raw, next) {
			v.pos.ReservedHeight += paddingAfter(raw, normalPad, hz)
		}

		v.elements = append(v.elements, el)
	}
	return nil
}

// paddingAfter applies the per-variant minimum trailing paddings.
func paddingAfter(el element.Element, normalPad, hz float64) float64 {
	switch e := el.(type) {
	case *element.TextBlock:
		if e.IsHeader {
			return max(normalPad, minHeaderPadding*hz)
		}
	case *element.Table:
		return max(normalPad, minTablePadding*hz)
	}
	return normalPad
}

// Reposition runs a full layout pass over the whole document with the
// current configuration and clamps the scroll position against the new
// total height.
func (v *Viewer) Reposition() error {
	v.snapshotCollapsed()
	if err := v.pos.Reposition(v.elements, v.cfg.Zoom, v.cfg.ElementPadding); err != nil {
		return err
	}
	v.SetScrollY(v.scrollY)
	return nil
}

// repositionRescaled runs a full pass and rescales the scroll offset by
// the change in total content height, preserving the fraction of the
// document the user had scrolled through.
func (v *Viewer) repositionRescaled() error {
	old := v.pos.ReservedHeight
	v.snapshotCollapsed()
	if err := v.pos.Reposition(v.elements, v.cfg.Zoom, v.cfg.ElementPadding); err != nil {
		return err
	}
	if old > 0 {
		v.scrollY *= v.pos.ReservedHeight / old
	}
	v.SetScrollY(v.scrollY)
	return nil
}

// Elements exposes the positioned document for rendering and tests.
func (v *Viewer) Elements() []*element.Positioned {
	return v.elements
}

// Positioner exposes the underlying layout state (anchors, cursor,
// table geometry recovery).
func (v *Viewer) Positioner() *layout.Positioner {
	return v.pos
}

// Config returns the current configuration.
func (v *Viewer) Config() Config {
	return v.cfg
}

// TotalHeight is the total content height of the most recent pass.
func (v *Viewer) TotalHeight() float64 {
	return v.pos.ReservedHeight
}

// ScrollY returns the current scroll offset.
func (v *Viewer) ScrollY() float64 {
	return v.scrollY
}

// SetScrollY sets the scroll offset, clamped to the scrollable range.
func (v *Viewer) SetScrollY(y float64) {
	limit := max(0, v.pos.ReservedHeight-v.cfg.ViewportSize.H)
	v.scrollY = min(max(y, 0), limit)
}

// ScrollLines scrolls by a number of lines; positive scrolls up.
func (v *Viewer) ScrollLines(lines float64) {
	pixels := lines * ScrollLineHeight * v.cfg.LinesToScroll * v.cfg.HidpiScale * v.cfg.Zoom
	v.SetScrollY(v.scrollY - pixels)
}

// ScrollPage scrolls by most of a viewport; positive scrolls up.
func (v *Viewer) ScrollPage(direction float64) {
	v.SetScrollY(v.scrollY - direction*v.cfg.ViewportSize.H*PageScrollFraction)
}

// SetZoom changes the zoom factor, relays out and preserves the scroll
// fraction.
func (v *Viewer) SetZoom(zoom float64) error {
	v.cfg.Zoom = zoom
	return v.repositionRescaled()
}

// ZoomIn zooms in by one step.
func (v *Viewer) ZoomIn() error { return v.SetZoom(v.cfg.Zoom * zoomStepIn) }

// ZoomOut zooms out by one step.
func (v *Viewer) ZoomOut() error { return v.SetZoom(v.cfg.Zoom * zoomStepOut) }

// ZoomReset restores 1:1 zoom.
func (v *Viewer) ZoomReset() error { return v.SetZoom(1) }

// Resize updates the viewport size, relays out against the new widths
// and preserves the scroll fraction.
func (v *Viewer) Resize(size geom.Size) error {
	v.cfg.ViewportSize = size
	v.pos.ScreenSize = size
	return v.repositionRescaled()
}

// SetPageWidth updates the content column width.
func (v *Viewer) SetPageWidth(w float64) error {
	v.cfg.PageWidth = w
	v.pos.PageWidth = w
	return v.Reposition()
}

// SetPageMargin updates the horizontal page margin.
func (v *Viewer) SetPageMargin(m float64) error {
	v.cfg.PageMargin = m
	v.pos.PageMargin = m
	return v.Reposition()
}

// SetElementPadding updates the inter-element padding.
func (v *Viewer) SetElementPadding(p float64) error {
	v.cfg.ElementPadding = p
	return v.Reposition()
}

// SetHidpiScale updates the display density factor.
func (v *Viewer) SetHidpiScale(s float64) error {
	v.cfg.HidpiScale = s
	v.pos.HidpiScale = s
	return v.Reposition()
}

// ToggleSection flips a section's collapsed state and relays out. Only
// that section's height contribution and everything after it move.
func (v *Viewer) ToggleSection(id string) error {
	v.mu.Lock()
	v.collapsed[id] = !v.collapsed[id]
	v.mu.Unlock()
	return v.Reposition()
}

// SectionCollapsed reports whether a section is currently collapsed.
func (v *Viewer) SectionCollapsed(id string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.collapsed[id]
}

// Anchor looks up a named anchor's vertical offset from the most
// recent pass. Lookup is case-insensitive.
func (v *Viewer) Anchor(name string) (float64, bool) {
	y, ok := v.pos.Anchors[strings.ToLower(name)]
	return y, ok
}

// JumpToAnchor scrolls to a named anchor and reports whether it
// resolved.
func (v *Viewer) JumpToAnchor(name string) bool {
	y, ok := v.Anchor(name)
	if !ok {
		return false
	}
	v.SetScrollY(y)
	return true
}

package viewer

import (
	"math"
	"testing"
	"unicode/utf8"

	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// gridMeasurer is a deterministic character-grid measurer: half an em
// per rune, 1.2 em line height, wrapping by whole lines.
type gridMeasurer struct {
	hidpi float64
}

func (m gridMeasurer) TextSize(block *element.TextBlock, avail geom.Size, zoom float64) geom.Size {
	fontSize := block.FontSize
	if fontSize == 0 {
		fontSize = element.DefaultFontSize
	}
	charW := fontSize * 0.5 * m.hidpi * zoom
	lineH := fontSize * 1.2 * m.hidpi * zoom
	n := utf8.RuneCountInString(block.PlainText())
	if n == 0 {
		return geom.Size{}
	}
	w := float64(n) * charW
	if !math.IsInf(avail.W, 1) && avail.W > 0 && w > avail.W {
		lines := math.Ceil(w / avail.W)
		return geom.Size{W: avail.W, H: lines * lineH}
	}
	return geom.Size{W: w, H: lineH}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func newTestViewer(viewport geom.Size) *Viewer {
	return New(DefaultConfig(viewport), gridMeasurer{hidpi: 1})
}

func block(text string) *element.TextBlock {
	return element.NewTextBlock(element.Text{Text: text})
}

func header(text string) *element.TextBlock {
	h := block(text)
	h.IsHeader = true
	return h
}

func uncaptionedTable() *element.Table {
	t := element.NewTable()
	t.PushRow([]*element.TextBlock{block("x")})
	return t
}

func TestPositionQueuedTrimsHeaderTableGap(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 800})
	v.Enqueue(header("Data"), block("junk one"), block("junk two"), uncaptionedTable())

	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}

	els := v.Elements()
	if len(els) != 2 {
		t.Fatalf("filter kept %d elements, expected 2", len(els))
	}
	if _, ok := els[0].Inner.(*element.TextBlock); !ok {
		t.Errorf("first element is %T, expected text block", els[0].Inner)
	}
	if _, ok := els[1].Inner.(*element.Table); !ok {
		t.Errorf("second element is %T, expected table", els[1].Inner)
	}

	// With the gap gone the padding suppression rule also applies: the
	// table sits flush against the header.
	headerBottom := els[0].Bounds.Pos.Y + els[0].Bounds.Size.H
	if !almostEqual(els[1].Bounds.Pos.Y, headerBottom) {
		t.Errorf("table y wrong: got %v, expected %v", els[1].Bounds.Pos.Y, headerBottom)
	}
}

func TestPositionQueuedKeepsCaptionedTableContent(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 800})
	captioned := uncaptionedTable()
	captioned.SetCaption(block("Table 1"))
	v.Enqueue(header("Data"), block("explanation"), captioned)

	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	if got := len(v.Elements()); got != 3 {
		t.Errorf("filter removed content before a captioned table: got %d elements, expected 3", got)
	}
}

func TestPositionQueuedFilterDisabled(t *testing.T) {
	cfg := DefaultConfig(geom.Size{W: 1000, H: 800})
	cfg.TrimHeaderTableGap = false
	v := New(cfg, gridMeasurer{hidpi: 1})
	v.Enqueue(header("Data"), block("junk"), uncaptionedTable())

	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	if got := len(v.Elements()); got != 3 {
		t.Errorf("disabled filter still removed content: got %d elements, expected 3", got)
	}
}

func TestHeaderSpacingNotAppliedAtDocumentStart(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 800})
	v.Enqueue(header("First"))
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	if got := v.Elements()[0].Bounds.Pos.Y; !almostEqual(got, 2) {
		t.Errorf("leading header y wrong: got %v, expected 2", got)
	}

	v2 := newTestViewer(geom.Size{W: 1000, H: 800})
	v2.Enqueue(block("intro"), header("Later"))
	if err := v2.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	// 2 + 19.2 + 2 padding + 12 minimum header spacing.
	if got := v2.Elements()[1].Bounds.Pos.Y; !almostEqual(got, 35.2) {
		t.Errorf("interior header y wrong: got %v, expected 35.2", got)
	}
}

func fillBlocks(v *Viewer, n int) {
	for i := 0; i < n; i++ {
		v.Enqueue(block("line"))
	}
}

func TestScrollClamping(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 20)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}

	// 20 blocks at 19.2px plus 2px padding each, plus the top padding.
	if !almostEqual(v.TotalHeight(), 426) {
		t.Fatalf("total height wrong: got %v, expected 426", v.TotalHeight())
	}

	v.SetScrollY(1e6)
	if !almostEqual(v.ScrollY(), 326) {
		t.Errorf("scroll not clamped to content: got %v, expected 326", v.ScrollY())
	}
	v.SetScrollY(-5)
	if v.ScrollY() != 0 {
		t.Errorf("scroll went negative: got %v", v.ScrollY())
	}
}

func TestScrollClampShortContent(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 800})
	fillBlocks(v, 2)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	v.SetScrollY(50)
	if v.ScrollY() != 0 {
		t.Errorf("short content scrolled: got %v, expected 0", v.ScrollY())
	}
}

func TestScrollLinesAndPages(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 20)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}

	v.ScrollLines(-1)
	// 1 notch x 16px line x 3 lines per notch.
	if !almostEqual(v.ScrollY(), 48) {
		t.Errorf("line scroll wrong: got %v, expected 48", v.ScrollY())
	}
	v.ScrollPage(-1)
	if !almostEqual(v.ScrollY(), 48+90) {
		t.Errorf("page scroll wrong: got %v, expected 138", v.ScrollY())
	}
	v.ScrollPage(1)
	if !almostEqual(v.ScrollY(), 48) {
		t.Errorf("page scroll back wrong: got %v, expected 48", v.ScrollY())
	}
}

func TestZoomPreservesScrollFraction(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 20)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	v.SetScrollY(200)
	oldHeight := v.TotalHeight()
	oldFraction := v.ScrollY() / oldHeight

	if err := v.ZoomIn(); err != nil {
		t.Fatalf("ZoomIn failed: %v", err)
	}
	if !almostEqual(v.TotalHeight(), oldHeight*1.1) {
		t.Errorf("zoomed height wrong: got %v, expected %v", v.TotalHeight(), oldHeight*1.1)
	}
	if got := v.ScrollY() / v.TotalHeight(); !almostEqual(got, oldFraction) {
		t.Errorf("scroll fraction drifted on zoom in: got %v, expected %v", got, oldFraction)
	}

	if err := v.ZoomReset(); err != nil {
		t.Fatalf("ZoomReset failed: %v", err)
	}
	if !almostEqual(v.TotalHeight(), oldHeight) {
		t.Errorf("reset height wrong: got %v, expected %v", v.TotalHeight(), oldHeight)
	}
	if !almostEqual(v.ScrollY(), 200) {
		t.Errorf("scroll not restored after zoom round trip: got %v, expected 200", v.ScrollY())
	}
}

func TestZoomOutStep(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 5)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	if err := v.ZoomOut(); err != nil {
		t.Fatalf("ZoomOut failed: %v", err)
	}
	if !almostEqual(v.Config().Zoom, 0.9) {
		t.Errorf("zoom factor wrong: got %v, expected 0.9", v.Config().Zoom)
	}
}

func TestResizeKeepsScrollFraction(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 20)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	v.SetScrollY(200)

	if err := v.Resize(geom.Size{W: 1000, H: 200}); err != nil {
		t.Fatalf("Resize failed: %v", err)
	}
	// Same width means same heights; the scroll offset survives intact.
	if !almostEqual(v.ScrollY(), 200) {
		t.Errorf("scroll moved on height-only resize: got %v, expected 200", v.ScrollY())
	}
	if !almostEqual(v.Config().ViewportSize.H, 200) {
		t.Errorf("viewport not updated: got %v", v.Config().ViewportSize)
	}
}

func sectionDoc() (*element.Section, []element.Element) {
	sec := element.BareSection("details", 1)
	sec.Summary = element.NewPositioned(block("Details"))
	sec.Elements = []*element.Positioned{
		element.NewPositioned(block("one")),
		element.NewPositioned(block("two")),
	}
	return sec, []element.Element{block("before"), sec, block("after")}
}

func TestToggleSectionMovesSiblings(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 800})
	_, doc := sectionDoc()
	v.Enqueue(doc...)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}

	els := v.Elements()
	expandedAfterY := els[2].Bounds.Pos.Y
	expandedHeight := v.TotalHeight()

	if err := v.ToggleSection("details"); err != nil {
		t.Fatalf("ToggleSection failed: %v", err)
	}
	if !v.SectionCollapsed("details") {
		t.Fatal("section not marked collapsed")
	}
	if els[2].Bounds.Pos.Y >= expandedAfterY {
		t.Errorf("sibling did not move up: got y %v, expanded y %v", els[2].Bounds.Pos.Y, expandedAfterY)
	}
	if v.TotalHeight() >= expandedHeight {
		t.Errorf("total height did not shrink: got %v, expanded %v", v.TotalHeight(), expandedHeight)
	}

	if err := v.ToggleSection("details"); err != nil {
		t.Fatalf("ToggleSection failed: %v", err)
	}
	if v.SectionCollapsed("details") {
		t.Fatal("section still collapsed after second toggle")
	}
	if !almostEqual(els[2].Bounds.Pos.Y, expandedAfterY) {
		t.Errorf("sibling did not return: got y %v, expected %v", els[2].Bounds.Pos.Y, expandedAfterY)
	}
	if !almostEqual(v.TotalHeight(), expandedHeight) {
		t.Errorf("total height did not restore: got %v, expected %v", v.TotalHeight(), expandedHeight)
	}
}

func TestJumpToAnchor(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 10)
	anchored := block("Section two")
	anchored.Anchor = "#Sec"
	v.Enqueue(anchored)
	fillBlocks(v, 10)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}

	if v.JumpToAnchor("#nope") {
		t.Error("unknown anchor resolved")
	}
	// Lookup is case-insensitive in both directions.
	if !v.JumpToAnchor("#SEC") {
		t.Fatal("anchor did not resolve")
	}
	// 10 blocks of 21.2px above it plus the top padding.
	if !almostEqual(v.ScrollY(), 214) {
		t.Errorf("anchor scroll wrong: got %v, expected 214", v.ScrollY())
	}
}

func TestReplaceDocument(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 100})
	fillBlocks(v, 20)
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	v.SetScrollY(100)

	v.ReplaceDocument(block("fresh"))
	if err := v.PositionQueued(); err != nil {
		t.Fatalf("PositionQueued failed: %v", err)
	}
	if got := len(v.Elements()); got != 1 {
		t.Errorf("old document survived replacement: got %d elements, expected 1", got)
	}
	if v.ScrollY() != 0 {
		t.Errorf("scroll not reset: got %v", v.ScrollY())
	}
	if !almostEqual(v.TotalHeight(), 2+19.2+2) {
		t.Errorf("cursor not reset: total height %v, expected 23.2", v.TotalHeight())
	}
}

func TestPositionQueuedEmptyQueue(t *testing.T) {
	v := newTestViewer(geom.Size{W: 1000, H: 800})
	if err := v.PositionQueued(); err != nil {
		t.Errorf("empty queue errored: %v", err)
	}
	if len(v.Elements()) != 0 {
		t.Errorf("empty queue produced elements: %d", len(v.Elements()))
	}
}

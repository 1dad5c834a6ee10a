// Package search locates query matches inside the document's
// text-bearing leaves and maps them to highlight rectangles using an
// approximate character-metric model.
package search

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/language"
	textsearch "golang.org/x/text/search"

	"github.com/quillview/quillview/element"
)

// Match locates one query occurrence. Element is the flat index of the
// containing leaf (see WalkText), Run the index of the styled run the
// match starts in, Offset the rune offset within that run, and
// Cumulative the rune offset within the whole block.
type Match struct {
	Element    int
	Run        int
	Offset     int
	Cumulative int
}

// WalkText visits every text-bearing leaf in document traversal order,
// assigning each its flat element index: top-level text blocks, direct
// section children, row cells and table cells in row-major order all
// share one continuing sequence.
func WalkText(elements []*element.Positioned, fn func(index int, block *element.TextBlock)) {
	idx := 0
	for _, el := range elements {
		switch e := el.Inner.(type) {
		case *element.TextBlock:
			fn(idx, e)
			idx++
		case *element.Section:
			for _, sub := range e.Elements {
				if tb, ok := sub.Inner.(*element.TextBlock); ok {
					fn(idx, tb)
					idx++
				}
			}
		case *element.Row:
			for _, cell := range e.Elements {
				if tb, ok := cell.Inner.(*element.TextBlock); ok {
					fn(idx, tb)
					idx++
				}
			}
		case *element.Table:
			for _, row := range e.Rows {
				for _, cell := range row {
					fn(idx, cell)
					idx++
				}
			}
		}
	}
}

// FindMatches scans the document for case-insensitive occurrences of
// query and returns them in traversal order.
func FindMatches(elements []*element.Positioned, query string) []Match {
	if strings.TrimSpace(query) == "" {
		return nil
	}
	pattern := textsearch.New(language.Und, textsearch.IgnoreCase).CompileString(query)

	var out []Match
	WalkText(elements, func(idx int, block *element.TextBlock) {
		out = append(out, matchBlock(pattern, idx, block)...)
	})
	return out
}

func matchBlock(pattern *textsearch.Pattern, idx int, block *element.TextBlock) []Match {
	text := block.PlainText()
	var out []Match
	offset := 0
	for offset < len(text) {
		start, end := pattern.IndexString(text[offset:])
		if start < 0 {
			break
		}
		cumulative := utf8.RuneCountInString(text[:offset+start])
		run, runOffset := runAt(block, cumulative)
		out = append(out, Match{
			Element:    idx,
			Run:        run,
			Offset:     runOffset,
			Cumulative: cumulative,
		})
		if end <= start {
			end = start + 1
		}
		offset += end
	}
	return out
}

// runAt resolves a block-level rune offset to (run index, offset within
// the run).
func runAt(block *element.TextBlock, cumulative int) (int, int) {
	acc := 0
	for i, run := range block.Texts {
		n := utf8.RuneCountInString(run.Text)
		if cumulative < acc+n {
			return i, cumulative - acc
		}
		acc += n
	}
	if len(block.Texts) == 0 {
		return 0, cumulative
	}
	return len(block.Texts) - 1, cumulative - acc
}

package viewer

import "github.com/quillview/quillview/element"

// trimHeaderTableGap removes every element strictly between a header
// and the next table when that table has no usable caption. This is a
// destructive compatibility heuristic for documents that put layout
// junk between a heading and its table: the elements are deleted from
// the batch, not merely de-padded.
func trimHeaderTableGap(batch []element.Element) []element.Element {
	remove := make(map[int]bool)
	for i, el := range batch {
		tb, ok := el.(*element.TextBlock)
		if !ok || !tb.IsHeader {
			continue
		}
		for j := i + 1; j < len(batch); j++ {
			table, ok := batch[j].(*element.Table)
			if !ok {
				continue
			}
			if !table.HasCaption() {
				for k := i + 1; k < j; k++ {
					remove[k] = true
				}
			}
			break
		}
	}
	if len(remove) == 0 {
		return batch
	}
	out := make([]element.Element, 0, len(batch)-len(remove))
	for i, el := range batch {
		if !remove[i] {
			out = append(out, el)
		}
	}
	return out
}

package layout

import (
	"github.com/quillview/quillview/element"
	"github.com/quillview/quillview/geom"
)

// TextMeasurer is the external text-measurement collaborator. Given a
// block, the space available to it and the current zoom factor it
// returns the block's rendered size. An infinite available width asks
// for the natural (max-content) size.
//
// The engine never measures text itself; font loading and shaping live
// behind this interface.
type TextMeasurer interface {
	TextSize(block *element.TextBlock, avail geom.Size, zoom float64) geom.Size
}

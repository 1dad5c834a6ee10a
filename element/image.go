package element

import "github.com/quillview/quillview/geom"

// Image is a referenced picture. Intrinsic holds the decoded pixel
// dimensions once the loader has resolved them; a zero Intrinsic means
// the image is not yet available and it occupies no space.
type Image struct {
	Source     string
	Align      geom.Align
	Intrinsic  geom.Size
	HidpiScale float64
}

// Fit returns the display size of the image at the given zoom,
// shrunk aspect-preserving to the bounding width. The second return is
// false while the intrinsic size is unknown.
func (img *Image) Fit(bounds geom.Size, zoom float64) (geom.Size, bool) {
	if img.Intrinsic.W <= 0 || img.Intrinsic.H <= 0 {
		return geom.Size{}, false
	}
	scale := img.HidpiScale
	if scale == 0 {
		scale = 1
	}
	w := img.Intrinsic.W * scale * zoom
	h := img.Intrinsic.H * scale * zoom
	if w > bounds.W && bounds.W > 0 {
		h *= bounds.W / w
		w = bounds.W
	}
	return geom.Size{W: w, H: h}, true
}

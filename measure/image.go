package measure

import (
	"fmt"
	"image"
	"io"
	"os"

	// Standard and extended codecs registered for DecodeConfig so the
	// intrinsic size of the common markdown image formats resolves
	// without a full decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/quillview/quillview/geom"
)

// ImageSize reads just enough of an encoded image to report its
// intrinsic pixel dimensions.
func ImageSize(r io.Reader) (geom.Size, error) {
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return geom.Size{}, fmt.Errorf("measure: decode image config: %w", err)
	}
	return geom.Size{W: float64(cfg.Width), H: float64(cfg.Height)}, nil
}

// ImageSizeFile reports the intrinsic pixel dimensions of the image
// file at path.
func ImageSizeFile(path string) (geom.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return geom.Size{}, fmt.Errorf("measure: open image: %w", err)
	}
	defer f.Close()
	return ImageSize(f)
}

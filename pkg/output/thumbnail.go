package output

import (
	"image"
	"strings"

	"github.com/nfnt/resize"
)

// Thumbnail scales img down so its longer side is maxDim pixels, keeping the
// aspect ratio. Images already small enough are returned unchanged.
func Thumbnail(img image.Image, maxDim int) image.Image {
	bounds := img.Bounds()
	if maxDim <= 0 || (bounds.Dx() <= maxDim && bounds.Dy() <= maxDim) {
		return img
	}
	return resize.Thumbnail(uint(maxDim), uint(maxDim), img, resize.Lanczos3)
}

// ThumbnailPath returns the path of the thumbnail saved next to a render
func ThumbnailPath(path string) string {
	return strings.TrimSuffix(path, ".png") + "_thumb.png"
}

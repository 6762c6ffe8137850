// Package cropper applies crop rectangles to images and writes the result.
package cropper

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/ivlev/letterbox/internal/border"
)

// ErrCrop wraps failures to materialize the cropped output.
var ErrCrop = errors.New("crop failed")

// Crop cuts rect out of img. A rectangle that covers the whole image, or
// has zero area, leaves the image untouched.
func Crop(img image.Image, rect border.Rect) image.Image {
	b := img.Bounds()
	if rect.Empty() || rect.Covers(b.Dx(), b.Dy()) {
		return img
	}
	return imaging.Crop(img, rect.Bounds(b.Min))
}

// Save encodes img to path. The format follows the file extension; quality
// applies to JPEG output.
func Save(img image.Image, path string, quality int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: %w", ErrCrop, err)
		}
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrCrop, path, err)
	}
	return nil
}

package edges

import (
	"image"

	"github.com/ivlev/letterbox/internal/border"
)

// ToImage renders a grid as a black image with white edge pixels.
func ToImage(grid *border.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, grid.Width, grid.Height))
	for i, edge := range grid.Cells {
		if edge {
			img.Pix[i] = 255
		}
	}
	return img
}

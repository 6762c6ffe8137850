package edges

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/ivlev/letterbox/internal/border"
	"github.com/ivlev/letterbox/internal/system"
)

// SobelDetector marks pixels whose Sobel gradient magnitude exceeds an
// absolute threshold.
type SobelDetector struct {
	EdgeThreshold float64
}

func NewSobelDetector(threshold float64) *SobelDetector {
	return &SobelDetector{EdgeThreshold: threshold}
}

func (d *SobelDetector) Detect(img image.Image) (*border.Grid, error) {
	b := img.Bounds()
	grid, err := newGrid(b)
	if err != nil {
		return nil, err
	}

	gray := system.GetGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	defer system.PutGray(gray)
	draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)

	at := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x])
	}
	w, h := grid.Width, grid.Height
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := sobelAt(at, x, y, w, h)
			if math.Hypot(gx, gy) > d.EdgeThreshold {
				grid.Set(x, y, true)
			}
		}
	}

	return grid, nil
}

// Sobel kernels
var (
	kernelX = [3][3]float64{
		{-1, 0, 1},
		{-2, 0, 2},
		{-1, 0, 1},
	}
	kernelY = [3][3]float64{
		{-1, -2, -1},
		{0, 0, 0},
		{1, 2, 1},
	}
)

// sobelAt convolves the 3x3 neighbourhood of (x, y) in a w x h image.
// Pixels outside the frame replicate the nearest edge pixel, so a uniform
// border stays edge-free up to the frame.
func sobelAt(pixel func(x, y int) float64, x, y, w, h int) (gx, gy float64) {
	for ky := -1; ky <= 1; ky++ {
		for kx := -1; kx <= 1; kx++ {
			v := pixel(clamp(x+kx, w), clamp(y+ky, h))
			gx += v * kernelX[ky+1][kx+1]
			gy += v * kernelY[ky+1][kx+1]
		}
	}
	return gx, gy
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

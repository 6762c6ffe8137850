//go:build gocv

package edges

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ivlev/letterbox/internal/border"
)

func init() {
	register("opencv", func(p Params) Detector { return NewOpenCVDetector(p) })
}

// OpenCVDetector delegates to cv::Canny. Thresholds are scaled to the
// 8-bit intensity range.
type OpenCVDetector struct {
	Radius float64
	Low    float64
	High   float64
}

func NewOpenCVDetector(p Params) *OpenCVDetector {
	return &OpenCVDetector{Radius: p.Radius, Low: p.Low, High: p.High}
}

func (d *OpenCVDetector) Detect(img image.Image) (*border.Grid, error) {
	grid, err := newGrid(img.Bounds())
	if err != nil {
		return nil, err
	}

	rgb, err := gocv.ImageToMatRGB(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEdgeDetection, err)
	}
	defer rgb.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(rgb, &gray, gocv.ColorRGBToGray)

	if d.Radius > 0 {
		blurred := gocv.NewMat()
		defer blurred.Close()
		gocv.GaussianBlur(gray, &blurred, image.Point{}, d.Radius, d.Radius, gocv.BorderDefault)
		gray, blurred = blurred, gray
	}

	out := gocv.NewMat()
	defer out.Close()
	gocv.Canny(gray, &out, float32(d.Low*255), float32(d.High*255))

	if out.Rows() != grid.Height || out.Cols() != grid.Width {
		return nil, fmt.Errorf("%w: canny output is %dx%d, image is %dx%d",
			ErrEdgeDetection, out.Cols(), out.Rows(), grid.Width, grid.Height)
	}
	for y := 0; y < grid.Height; y++ {
		for x := 0; x < grid.Width; x++ {
			if out.GetUCharAt(y, x) > 0 {
				grid.Set(x, y, true)
			}
		}
	}
	return grid, nil
}

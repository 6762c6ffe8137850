// Package edges turns images into edge-presence grids for the border
// scanner.
//
// Bars must come out edge-free. Content blurred smoothly into the bars
// leaves weak gradients there: canny then finds the bars only in part, and
// sobel, with its absolute threshold, may mark them entirely. A larger
// Radius or higher thresholds help with such inputs.
package edges

import (
	"errors"
	"fmt"
	"image"

	"github.com/ivlev/letterbox/internal/border"
)

// ErrEdgeDetection wraps every failure to produce an edge grid.
var ErrEdgeDetection = errors.New("edge detection failed")

// Detector produces an edge grid with the same size as the image bounds.
type Detector interface {
	Detect(img image.Image) (*border.Grid, error)
}

// Params configures the detectors. Low and High are hysteresis thresholds
// as a fraction of the strongest gradient in the image, Radius is the
// Gaussian smoothing sigma in pixels and Threshold is the absolute Sobel
// magnitude used by the plain Sobel detector.
type Params struct {
	Low       float64
	High      float64
	Radius    float64
	Threshold float64
}

// DefaultParams mirrors the classic "0x1+10%+30%" Canny setting.
func DefaultParams() Params {
	return Params{
		Low:       0.10,
		High:      0.30,
		Radius:    1.0,
		Threshold: 30.0,
	}
}

// Validate checks the parameter ranges.
func (p Params) Validate() error {
	if p.Low < 0 || p.High > 1 || p.Low > p.High {
		return fmt.Errorf("thresholds must satisfy 0 <= low <= high <= 1, got low=%.3f high=%.3f", p.Low, p.High)
	}
	if p.Radius < 0 {
		return fmt.Errorf("radius must not be negative, got %.3f", p.Radius)
	}
	if p.Threshold < 0 {
		return fmt.Errorf("threshold must not be negative, got %.3f", p.Threshold)
	}
	return nil
}

func newGrid(b image.Rectangle) (*border.Grid, error) {
	grid, err := border.NewGrid(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEdgeDetection, err)
	}
	return grid, nil
}

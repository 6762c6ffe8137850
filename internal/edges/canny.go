package edges

import (
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/ivlev/letterbox/internal/border"
)

// CannyDetector is a Canny edge detector: Gaussian smoothing, Sobel
// gradient, non-maximum suppression and hysteresis. Thresholds are
// relative to the strongest gradient so a uniform image yields no edges.
type CannyDetector struct {
	Radius float64
	Low    float64
	High   float64
}

// noiseFloor is the smallest peak gradient treated as structure. Flatter
// images are uniform up to rounding and yield no edges.
const noiseFloor = 8.0

func NewCannyDetector(p Params) *CannyDetector {
	return &CannyDetector{
		Radius: p.Radius,
		Low:    p.Low,
		High:   p.High,
	}
}

func (d *CannyDetector) Detect(img image.Image) (*border.Grid, error) {
	grid, err := newGrid(img.Bounds())
	if err != nil {
		return nil, err
	}
	w, h := grid.Width, grid.Height

	gray := imaging.Grayscale(img)
	if d.Radius > 0 {
		gray = imaging.Blur(gray, d.Radius)
	}

	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		row := gray.Pix[y*gray.Stride:]
		for x := 0; x < w; x++ {
			lum[y*w+x] = float64(row[x*4])
		}
	}

	mag, dir, peak := gradient(lum, w, h)
	if peak < noiseFloor {
		return grid, nil
	}
	thin := suppress(mag, dir, w, h)
	hysteresis(grid, thin, d.Low*peak, d.High*peak)

	return grid, nil
}

// gradient returns the Sobel magnitude, the quantized direction (0: left/right,
// 1: diagonal down, 2: up/down, 3: diagonal up) and the peak magnitude.
func gradient(lum []float64, w, h int) ([]float64, []uint8, float64) {
	mag := make([]float64, w*h)
	dir := make([]uint8, w*h)
	at := func(x, y int) float64 { return lum[y*w+x] }

	var peak float64
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			gx, gy := sobelAt(at, x, y, w, h)
			m := math.Hypot(gx, gy)
			i := y*w + x
			mag[i] = m
			if m > peak {
				peak = m
			}

			angle := math.Atan2(gy, gx) * 180 / math.Pi
			if angle < 0 {
				angle += 180
			}
			switch {
			case angle < 22.5 || angle >= 157.5:
				dir[i] = 0
			case angle < 67.5:
				dir[i] = 1
			case angle < 112.5:
				dir[i] = 2
			default:
				dir[i] = 3
			}
		}
	}
	return mag, dir, peak
}

var neighbours = [4][2]image.Point{
	{{X: -1, Y: 0}, {X: 1, Y: 0}},
	{{X: -1, Y: -1}, {X: 1, Y: 1}},
	{{X: 0, Y: -1}, {X: 0, Y: 1}},
	{{X: 1, Y: -1}, {X: -1, Y: 1}},
}

// suppress keeps only local maxima along the gradient direction.
func suppress(mag []float64, dir []uint8, w, h int) []float64 {
	thin := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			m := mag[i]
			if m == 0 {
				continue
			}
			n := neighbours[dir[i]]
			a := mag[clamp(y+n[0].Y, h)*w+clamp(x+n[0].X, w)]
			b := mag[clamp(y+n[1].Y, h)*w+clamp(x+n[1].X, w)]
			if m >= a && m >= b {
				thin[i] = m
			}
		}
	}
	return thin
}

// hysteresis marks strong pixels and every weak pixel 8-connected to one.
func hysteresis(grid *border.Grid, thin []float64, low, high float64) {
	w, h := grid.Width, grid.Height
	var stack []image.Point

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if thin[y*w+x] >= high && !grid.At(x, y) {
				grid.Set(x, y, true)
				stack = append(stack, image.Pt(x, y))
			}
		}
	}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				x, y := p.X+dx, p.Y+dy
				if x < 0 || x >= w || y < 0 || y >= h || grid.At(x, y) {
					continue
				}
				if v := thin[y*w+x]; v > 0 && v >= low {
					grid.Set(x, y, true)
					stack = append(stack, image.Pt(x, y))
				}
			}
		}
	}
}

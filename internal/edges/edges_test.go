package edges

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ivlev/letterbox/internal/border"
)

// letterboxed draws a checkerboard of 4px cells inside black bars.
func letterboxed(w, h, barY, barX int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := barY; y < h-barY; y++ {
		for x := barX; x < w-barX; x++ {
			v := uint8(40)
			if ((x-barX)/4+(y-barY)/4)%2 == 0 {
				v = 220
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func within(got, want, tolerance int) bool {
	d := got - want
	if d < 0 {
		d = -d
	}
	return d <= tolerance
}

func detectors(t *testing.T) map[string]Detector {
	t.Helper()
	out := map[string]Detector{}
	for _, name := range []string{"canny", "sobel"} {
		d, err := NewDetector(name, DefaultParams())
		if err != nil {
			t.Fatalf("NewDetector(%q) failed: %v", name, err)
		}
		out[name] = d
	}
	return out
}

func TestDetectUniformImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 64, 48))
	for i := range img.Pix {
		img.Pix[i] = 128
	}

	for name, d := range detectors(t) {
		t.Run(name, func(t *testing.T) {
			grid, err := d.Detect(img)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if grid.Width != 64 || grid.Height != 48 {
				t.Fatalf("expected 64x48 grid, got %dx%d", grid.Width, grid.Height)
			}
			if n := grid.Count(); n != 0 {
				t.Errorf("expected no edges, got %d", n)
			}
		})
	}
}

func TestDetectLetterbox(t *testing.T) {
	const w, h, barY, barX = 120, 80, 15, 10
	img := letterboxed(w, h, barY, barX)

	for name, d := range detectors(t) {
		t.Run(name, func(t *testing.T) {
			grid, err := d.Detect(img)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}

			off, err := border.Scan(grid, w, h)
			if err != nil {
				t.Fatalf("Scan failed: %v", err)
			}
			t.Logf("offsets: %+v", off)

			if !within(off.Top, barY, 4) || !within(off.Bottom, h-barY, 4) {
				t.Errorf("rows [%d,%d) too far from [%d,%d)", off.Top, off.Bottom, barY, h-barY)
			}
			if !within(off.Left, barX, 4) || !within(off.Right, w-barX, 4) {
				t.Errorf("columns [%d,%d) too far from [%d,%d)", off.Left, off.Right, barX, w-barX)
			}
		})
	}
}

func TestDetectSubImage(t *testing.T) {
	full := letterboxed(60, 60, 10, 10)
	sub := full.SubImage(image.Rect(5, 5, 55, 55))

	for name, d := range detectors(t) {
		t.Run(name, func(t *testing.T) {
			grid, err := d.Detect(sub)
			if err != nil {
				t.Fatalf("Detect failed: %v", err)
			}
			if grid.Width != 50 || grid.Height != 50 {
				t.Errorf("expected 50x50 grid, got %dx%d", grid.Width, grid.Height)
			}
			if grid.Count() == 0 {
				t.Error("expected edges in the checkerboard")
			}
		})
	}
}

func TestDetectEmptyImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 0, 10))

	for name, d := range detectors(t) {
		t.Run(name, func(t *testing.T) {
			_, err := d.Detect(img)
			if !errors.Is(err, ErrEdgeDetection) {
				t.Errorf("expected ErrEdgeDetection, got %v", err)
			}
			if !errors.Is(err, border.ErrInvalidDimensions) {
				t.Errorf("expected ErrInvalidDimensions in chain, got %v", err)
			}
		})
	}
}

func TestDetectorRegistry(t *testing.T) {
	tests := []struct {
		variant string
		wantErr bool
	}{
		{"canny", false},
		{"sobel", false},
		{"", false}, // default
		{"invalid", true},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			detector, err := NewDetector(tt.variant, DefaultParams())

			if tt.wantErr {
				if err == nil {
					t.Error("Expected error, got nil")
				}
			} else {
				if err != nil {
					t.Errorf("Unexpected error: %v", err)
				}
				if detector == nil {
					t.Error("Expected detector, got nil")
				}
			}
		})
	}
}

func TestDetectorParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"low above high", Params{Low: 0.5, High: 0.2, Radius: 1}},
		{"high above one", Params{Low: 0.1, High: 1.5, Radius: 1}},
		{"negative low", Params{Low: -0.1, High: 0.3}},
		{"negative radius", Params{Low: 0.1, High: 0.3, Radius: -1}},
		{"negative threshold", Params{Low: 0.1, High: 0.3, Threshold: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewDetector("canny", tt.params); err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestToImage(t *testing.T) {
	grid, _ := border.NewGrid(3, 2)
	grid.Set(2, 1, true)

	img := ToImage(grid)
	if img.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("unexpected bounds %v", img.Bounds())
	}
	if img.GrayAt(2, 1).Y != 255 || img.GrayAt(0, 0).Y != 0 {
		t.Errorf("unexpected pixels: %v", img.Pix)
	}
}

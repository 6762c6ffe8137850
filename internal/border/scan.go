// Package border finds letterbox and pillarbox bars in an edge map.
//
// A bar is a contiguous block of edge-free rows (or columns) touching one
// side of the image. Offsets use half-open ranges: content occupies rows
// [Top, Bottom) and columns [Left, Right).
package border

import (
	"context"
	"image"

	"golang.org/x/sync/errgroup"
)

// Offsets delimits the content region of an image.
type Offsets struct {
	Top    int `yaml:"top"`
	Bottom int `yaml:"bottom"`
	Left   int `yaml:"left"`
	Right  int `yaml:"right"`
}

// Rect is the crop rectangle derived from Offsets.
type Rect struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	RowOffset int `yaml:"row_offset"`
	ColOffset int `yaml:"col_offset"`
}

// Scan runs the four directional sweeps over grid and returns the content
// offsets. The grid is not modified.
func Scan(grid *Grid, width, height int) (Offsets, error) {
	if err := grid.validate(width, height); err != nil {
		return Offsets{}, err
	}

	off := Offsets{
		Top:    sweepTop(grid),
		Bottom: sweepBottom(grid),
		Left:   sweepLeft(grid),
		Right:  sweepRight(grid),
	}
	return off.reconcile(), nil
}

// ScanParallel is Scan with each sweep on its own goroutine.
func ScanParallel(ctx context.Context, grid *Grid, width, height int) (Offsets, error) {
	if err := grid.validate(width, height); err != nil {
		return Offsets{}, err
	}

	var off Offsets
	g, ctx := errgroup.WithContext(ctx)
	sweeps := []struct {
		dst *int
		fn  func(*Grid) int
	}{
		{&off.Top, sweepTop},
		{&off.Bottom, sweepBottom},
		{&off.Left, sweepLeft},
		{&off.Right, sweepRight},
	}
	for _, s := range sweeps {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			*s.dst = s.fn(grid)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Offsets{}, err
	}
	return off.reconcile(), nil
}

// sweepTop returns the number of leading edge-free rows.
func sweepTop(g *Grid) int {
	row := 0
	for row < g.Height && g.RowClear(row) {
		row++
	}
	return row
}

// sweepBottom returns one past the last row holding an edge pixel.
func sweepBottom(g *Grid) int {
	row := g.Height
	for row > 0 && g.RowClear(row-1) {
		row--
	}
	return row
}

func sweepLeft(g *Grid) int {
	col := 0
	for col < g.Width && g.ColClear(col) {
		col++
	}
	return col
}

func sweepRight(g *Grid) int {
	col := g.Width
	for col > 0 && g.ColClear(col-1) {
		col--
	}
	return col
}

// reconcile swaps inverted pairs. Sweeps only cross each other when the
// whole image is edge-free, in which case the swap yields the full frame.
func (o Offsets) reconcile() Offsets {
	if o.Top > o.Bottom {
		o.Top, o.Bottom = o.Bottom, o.Top
	}
	if o.Left > o.Right {
		o.Left, o.Right = o.Right, o.Left
	}
	return o
}

// Rect derives the crop rectangle.
func (o Offsets) Rect() Rect {
	return Rect{
		Width:     o.Right - o.Left,
		Height:    o.Bottom - o.Top,
		RowOffset: o.Top,
		ColOffset: o.Left,
	}
}

// Bounds returns the rectangle in image coordinates relative to origin.
func (r Rect) Bounds(origin image.Point) image.Rectangle {
	pt := origin.Add(image.Pt(r.ColOffset, r.RowOffset))
	return image.Rectangle{Min: pt, Max: pt.Add(image.Pt(r.Width, r.Height))}
}

// Empty reports a zero-area rectangle.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Covers reports whether the rectangle spans a full width x height image,
// making the crop a no-op.
func (r Rect) Covers(width, height int) bool {
	return r.RowOffset == 0 && r.ColOffset == 0 && r.Width == width && r.Height == height
}

package border

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions is returned when an image reports a non-positive
// size or an edge grid does not match the declared size.
var ErrInvalidDimensions = errors.New("invalid dimensions")

// Grid is a row-major edge-presence map. A true cell marks a pixel the
// upstream detector classified as an edge.
type Grid struct {
	Width  int
	Height int
	Cells  []bool
}

// NewGrid allocates an edge-free grid of the given size.
func NewGrid(width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	return &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]bool, width*height),
	}, nil
}

// GridFromRows builds a grid from rows of equal length.
func GridFromRows(rows [][]bool) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrInvalidDimensions)
	}

	g, err := NewGrid(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != g.Width {
			return nil, fmt.Errorf("%w: row %d has %d columns, want %d", ErrInvalidDimensions, y, len(row), g.Width)
		}
		copy(g.Cells[y*g.Width:], row)
	}
	return g, nil
}

// At reports whether the pixel at (col, row) is an edge.
func (g *Grid) At(col, row int) bool {
	return g.Cells[row*g.Width+col]
}

// Set marks or clears the pixel at (col, row).
func (g *Grid) Set(col, row int, edge bool) {
	g.Cells[row*g.Width+col] = edge
}

// RowClear reports whether the row contains no edge pixel.
func (g *Grid) RowClear(row int) bool {
	for _, c := range g.Cells[row*g.Width : (row+1)*g.Width] {
		if c {
			return false
		}
	}
	return true
}

// ColClear reports whether the column contains no edge pixel.
func (g *Grid) ColClear(col int) bool {
	for i := col; i < len(g.Cells); i += g.Width {
		if g.Cells[i] {
			return false
		}
	}
	return true
}

// Count returns the number of edge pixels.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.Cells {
		if c {
			n++
		}
	}
	return n
}

func (g *Grid) validate(width, height int) error {
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: image is %dx%d", ErrInvalidDimensions, width, height)
	}
	if g == nil {
		return fmt.Errorf("%w: nil grid", ErrInvalidDimensions)
	}
	if g.Width != width || g.Height != height || len(g.Cells) != width*height {
		return fmt.Errorf("%w: grid is %dx%d (%d cells), image is %dx%d",
			ErrInvalidDimensions, g.Width, g.Height, len(g.Cells), width, height)
	}
	return nil
}

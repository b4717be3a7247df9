// Package grid holds the single-channel intensity matrix that every
// thresholding routine consumes and produces, plus the adapters that move
// it in and out of text matrices and decoded rasters.
package grid

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports an empty or non-rectangular grid, or a
	// parameter that cannot describe a window over one.
	ErrInvalidInput = errors.New("invalid input")
	// ErrOutOfRange reports a coordinate or window that falls outside a grid.
	ErrOutOfRange = errors.New("out of range")
)

// Grid is a rectangular matrix of non-negative intensities stored row-major.
type Grid struct {
	w, h int
	pix  []uint32
}

// New returns a zero-filled grid of w columns and h rows.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("grid %dx%d: %w", w, h, ErrInvalidInput)
	}
	return &Grid{w: w, h: h, pix: make([]uint32, w*h)}, nil
}

// FromRows copies rows into a new grid. Every row must have the length of
// the first one.
func FromRows(rows [][]uint32) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("empty grid: %w", ErrInvalidInput)
	}
	g, err := New(len(rows[0]), len(rows))
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		if len(r) != g.w {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(r), g.w, ErrInvalidInput)
		}
		copy(g.pix[i*g.w:(i+1)*g.w], r)
	}
	return g, nil
}

// Filled returns a w x h grid with every cell set to v.
func Filled(w, h int, v uint32) (*Grid, error) {
	g, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i := range g.pix {
		g.pix[i] = v
	}
	return g, nil
}

func (g *Grid) Width() int  { return g.w }
func (g *Grid) Height() int { return g.h }

// Bounds returns width and height.
func (g *Grid) Bounds() (int, int) { return g.w, g.h }

// At returns the intensity at (row, col). It panics on out-of-range
// coordinates like a slice index would; use Contains to check first.
func (g *Grid) At(row, col int) uint32 {
	return g.pix[row*g.w+col]
}

// Set stores v at (row, col).
func (g *Grid) Set(row, col int, v uint32) {
	g.pix[row*g.w+col] = v
}

// Contains reports whether (row, col) addresses a cell of g.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.h && col >= 0 && col < g.w
}

// Row returns the cells of one row. The slice aliases g.
func (g *Grid) Row(row int) []uint32 {
	return g.pix[row*g.w : (row+1)*g.w]
}

// Rows returns a copy of the grid as a slice of rows.
func (g *Grid) Rows() [][]uint32 {
	out := make([][]uint32, g.h)
	for i := range out {
		out[i] = append([]uint32(nil), g.Row(i)...)
	}
	return out
}

// Clone returns a deep copy of g.
func (g *Grid) Clone() *Grid {
	out := &Grid{w: g.w, h: g.h, pix: make([]uint32, len(g.pix))}
	copy(out.pix, g.pix)
	return out
}

// Equal reports whether g and o have the same dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.w != o.w || g.h != o.h {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Validate checks the rectangular invariant. Grids built through this
// package always pass; it guards zero values and nil pointers handed in by
// callers.
func (g *Grid) Validate() error {
	if g == nil {
		return fmt.Errorf("nil grid: %w", ErrInvalidInput)
	}
	if g.w <= 0 || g.h <= 0 || len(g.pix) != g.w*g.h {
		return fmt.Errorf("grid %dx%d with %d cells: %w", g.w, g.h, len(g.pix), ErrInvalidInput)
	}
	return nil
}

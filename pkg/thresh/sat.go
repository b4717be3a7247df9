package thresh

import (
	"fmt"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

// SummedAreaTable is the integral image of a grid: each cell holds the sum
// of every source cell above and to the left of it, inclusive. Sums are
// 64-bit so a grid of any practical size of 32-bit intensities cannot
// overflow.
type SummedAreaTable struct {
	w, h int
	sums []uint64
}

// NewSummedAreaTable builds the integral image of g in one O(W*H) pass.
func NewSummedAreaTable(g *grid.Grid) (*SummedAreaTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	w, h := g.Bounds()
	t := &SummedAreaTable{w: w, h: h, sums: make([]uint64, w*h)}
	for i := 0; i < h; i++ {
		src := g.Row(i)
		cur := t.sums[i*w : (i+1)*w]
		if i == 0 {
			var run uint64
			for j, v := range src {
				run += uint64(v)
				cur[j] = run
			}
			continue
		}
		prev := t.sums[(i-1)*w : i*w]
		cur[0] = uint64(src[0]) + prev[0]
		for j := 1; j < w; j++ {
			cur[j] = uint64(src[j]) + cur[j-1] + prev[j] - prev[j-1]
		}
	}
	return t, nil
}

func (t *SummedAreaTable) Width() int  { return t.w }
func (t *SummedAreaTable) Height() int { return t.h }

// At returns the inclusive prefix sum up to (row, col).
func (t *SummedAreaTable) At(row, col int) uint64 {
	return t.sums[row*t.w+col]
}

// RectSum returns the sum of the source cells in rows [r0, r1] and columns
// [c0, c1], both inclusive.
func (t *SummedAreaTable) RectSum(r0, c0, r1, c1 int) (uint64, error) {
	if r0 < 0 || c0 < 0 || r1 >= t.h || c1 >= t.w || r0 > r1 || c0 > c1 {
		return 0, fmt.Errorf("rect [%d,%d]-[%d,%d] in %dx%d table: %w", r0, c0, r1, c1, t.w, t.h, grid.ErrOutOfRange)
	}
	return t.rectSum(r0, c0, r1, c1), nil
}

func (t *SummedAreaTable) rectSum(r0, c0, r1, c1 int) uint64 {
	s := t.At(r1, c1)
	if r0 > 0 {
		s -= t.At(r0-1, c1)
	}
	if c0 > 0 {
		s -= t.At(r1, c0-1)
	}
	if r0 > 0 && c0 > 0 {
		s += t.At(r0-1, c0-1)
	}
	return s
}

// SquaredTable is the integral image of squared intensities. It backs the
// O(1) local variance used by Niblack and Sauvola. float64 keeps the range
// open for 32-bit inputs; for 8-bit rasters the sums stay exact.
type SquaredTable struct {
	w, h int
	sums []float64
}

// NewSquaredTable builds the squared-intensity integral image of g.
func NewSquaredTable(g *grid.Grid) (*SquaredTable, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	w, h := g.Bounds()
	t := &SquaredTable{w: w, h: h, sums: make([]float64, w*h)}
	for i := 0; i < h; i++ {
		var run float64
		for j, v := range g.Row(i) {
			f := float64(v)
			run += f * f
			t.sums[i*w+j] = run
			if i > 0 {
				t.sums[i*w+j] += t.sums[(i-1)*w+j]
			}
		}
	}
	return t, nil
}

func (t *SquaredTable) at(row, col int) float64 {
	return t.sums[row*t.w+col]
}

// rectSum is the squared-table twin of SummedAreaTable.rectSum. Callers
// pass in-bounds rectangles.
func (t *SquaredTable) rectSum(r0, c0, r1, c1 int) float64 {
	s := t.at(r1, c1)
	if r0 > 0 {
		s -= t.at(r0-1, c1)
	}
	if c0 > 0 {
		s -= t.at(r1, c0-1)
	}
	if r0 > 0 && c0 > 0 {
		s += t.at(r0-1, c0-1)
	}
	return s
}

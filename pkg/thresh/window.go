package thresh

import (
	"fmt"
	"math"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

// maxHalf caps half-widths so absurd windows cannot overflow int math.
// Any window this large already covers every grid that fits in memory.
const maxHalf = math.MaxInt32

// HalfWidth is the offset used by window-sum queries:
// round(window/2 + 0.1) where window/2 truncates first. Odd windows
// therefore get a half-width one smaller than BorderWidth.
func HalfWidth(window uint) int {
	return capHalf(math.Round(float64(window/2) + 0.1))
}

// BorderWidth is the thickness of the zero frame the local methods leave
// around the grid: round(window/2 + 0.1) with real division.
func BorderWidth(window uint) int {
	return capHalf(math.Round(float64(window)/2 + 0.1))
}

func capHalf(f float64) int {
	if f > maxHalf {
		return maxHalf
	}
	return int(f)
}

// windowSum is the four-corner inclusion-exclusion over corners row-d and
// row+d-1 (likewise for columns). Against the inclusive table that covers
// rows (row-d, row+d-1], a (2d-1)x(2d-1) square; d == 0 yields the cell
// itself. The mean still divides by window*window. It does no bounds
// checking; the framed loop only calls it where every corner exists.
// Intermediate wrap-around cancels out in uint64 arithmetic.
func windowSum(t *SummedAreaTable, row, col, d int) uint64 {
	return t.At(row+d-1, col+d-1) + t.At(row-d, col-d) - t.At(row-d, col+d-1) - t.At(row+d-1, col-d)
}

// WindowSum is the bounds-checked form of the window query used by the
// thresholders: the sum of the window centred on (row, col) for the given
// window size. It fails with grid.ErrOutOfRange when any corner the query
// reads lies outside the table.
func (t *SummedAreaTable) WindowSum(row, col int, window uint) (uint64, error) {
	d := HalfWidth(window)
	if !t.spans(row, col, d) {
		return 0, fmt.Errorf("window %d at (%d,%d) in %dx%d table: %w", window, row, col, t.w, t.h, grid.ErrOutOfRange)
	}
	return windowSum(t, row, col, d), nil
}

// spans reports whether all four corners read by windowSum are in range.
// With d == 0 the corners sit at row-1 and row.
func (t *SummedAreaTable) spans(row, col, d int) bool {
	lo, hi := row-d, row+d-1
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo < 0 || hi >= t.h {
		return false
	}
	lo, hi = col-d, col+d-1
	if lo > hi {
		lo, hi = hi, lo
	}
	return lo >= 0 && hi < t.w
}

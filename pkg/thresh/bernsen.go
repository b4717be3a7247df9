package thresh

import (
	"gonum.org/v1/gonum/floats"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

// DefaultLocalWindow is the default window of the Bernsen, Niblack and
// Sauvola methods.
const DefaultLocalWindow uint = 9

// BernsenThreshold compares each interior pixel with the mid-range of its
// (2b+1)x(2b+1) neighbourhood, b = BorderWidth(window): 255 when
// p >= (max+min)/2. The frame is zeroed as in AdaptiveThreshold.
func BernsenThreshold(g *grid.Grid, window uint) (*grid.Grid, error) {
	b := BorderWidth(window)
	var buf []float64
	return framed(g, window, func(i, j int, p uint32) bool {
		buf = neighbourhood(buf[:0], g, i, j, b)
		return float64(p) >= 0.5*(floats.Max(buf)+floats.Min(buf))
	})
}

// neighbourhood appends the cells of rows [i-b, i+b] and columns
// [j-b, j+b] to dst.
func neighbourhood(dst []float64, g *grid.Grid, i, j, b int) []float64 {
	for r := i - b; r <= i+b; r++ {
		for _, v := range g.Row(r)[j-b : j+b+1] {
			dst = append(dst, float64(v))
		}
	}
	return dst
}

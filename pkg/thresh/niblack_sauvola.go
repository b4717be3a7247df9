package thresh

import (
	"math"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

const (
	DefaultNiblackK = -0.15
	DefaultSauvolaK = 0.1
	// sauvolaRange is the dynamic range of the standard deviation R.
	sauvolaRange = 128.0
)

// NiblackThreshold marks interior pixels with p >= m + k*sigma, where m is
// the window mean and sigma the population standard deviation of the
// (2b+1)x(2b+1) neighbourhood, b = BorderWidth(window).
func NiblackThreshold(g *grid.Grid, window uint, k float64) (*grid.Grid, error) {
	return localStats(g, window, func(p, m, sigma float64) bool {
		return p >= m+k*sigma
	})
}

// SauvolaThreshold marks interior pixels with
// p >= m * (1 + k*(sigma/128 - 1)).
func SauvolaThreshold(g *grid.Grid, window uint, k float64) (*grid.Grid, error) {
	return localStats(g, window, func(p, m, sigma float64) bool {
		return p >= m*(1+k*(sigma/sauvolaRange-1))
	})
}

func localStats(g *grid.Grid, window uint, rule func(p, m, sigma float64) bool) (*grid.Grid, error) {
	sat, err := NewSummedAreaTable(g)
	if err != nil {
		return nil, err
	}
	sq, err := NewSquaredTable(g)
	if err != nil {
		return nil, err
	}
	// Unlike the adaptive method, the mean queries with the border width:
	// corners i-b and i+b-1 span exactly window cells for odd windows.
	b := BorderWidth(window)
	area := float64(window) * float64(window)
	n := float64((2*b + 1) * (2*b + 1))
	return framed(g, window, func(i, j int, p uint32) bool {
		m := float64(windowSum(sat, i, j, b)) / area
		return rule(float64(p), m, localStdDev(sat, sq, i, j, b, n))
	})
}

// localStdDev returns the population standard deviation of the n cells in
// rows [i-b, i+b] and columns [j-b, j+b].
func localStdDev(sat *SummedAreaTable, sq *SquaredTable, i, j, b int, n float64) float64 {
	mean := float64(sat.rectSum(i-b, j-b, i+b, j+b)) / n
	v := sq.rectSum(i-b, j-b, i+b, j+b)/n - mean*mean
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

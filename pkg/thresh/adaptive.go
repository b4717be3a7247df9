package thresh

import (
	"fmt"

	"github.com/Fepozopo/lthresh/pkg/grid"
)

const (
	// DefaultWindow and DefaultK are the adaptive method's defaults.
	DefaultWindow uint    = 7
	DefaultK      float64 = 0.2

	Foreground uint32 = 255
	Background uint32 = 0
)

// AdaptiveThreshold binarizes g against the local mean of a window x window
// neighbourhood. Pixels closer than BorderWidth(window) to an edge become 0.
// Every other pixel p with local mean m becomes 255 when
//
//	p >= m * (1 + k*((p-m)/(1-p+m) - 1))
//
// and 0 otherwise. The denominator vanishes at p == m+1; the resulting
// infinities and NaNs are compared as-is. g is not modified.
func AdaptiveThreshold(g *grid.Grid, window uint, k float64) (*grid.Grid, error) {
	return adaptive(g, window, k, 0)
}

// AdaptiveThresholdEpsilon is AdaptiveThreshold with eps added to the
// denominator, (1+eps-p+m), keeping the correction term finite.
func AdaptiveThresholdEpsilon(g *grid.Grid, window uint, k, eps float64) (*grid.Grid, error) {
	if eps < 0 {
		return nil, fmt.Errorf("epsilon %v: %w", eps, grid.ErrInvalidInput)
	}
	return adaptive(g, window, k, eps)
}

func adaptive(g *grid.Grid, window uint, k, eps float64) (*grid.Grid, error) {
	sat, err := NewSummedAreaTable(g)
	if err != nil {
		return nil, err
	}
	d := HalfWidth(window)
	area := float64(window) * float64(window)
	return framed(g, window, func(i, j int, p uint32) bool {
		m := float64(windowSum(sat, i, j, d)) / area
		return adaptiveRule(float64(p), m, k, eps)
	})
}

func adaptiveRule(p, m, k, eps float64) bool {
	return p >= m*(1+k*((p-m)/(1+eps-p+m)-1))
}

// framed runs decide over the interior of a copy of g after zeroing the
// BorderWidth(window) frame. decide sees the original pixel value.
func framed(g *grid.Grid, window uint, decide func(i, j int, p uint32) bool) (*grid.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if window == 0 {
		return nil, fmt.Errorf("window 0: %w", grid.ErrInvalidInput)
	}
	w, h := g.Bounds()
	b := BorderWidth(window)

	out := g.Clone()
	zeroBorder(out, b)
	for i := b; i < h-b; i++ {
		for j := b; j < w-b; j++ {
			if decide(i, j, g.At(i, j)) {
				out.Set(i, j, Foreground)
			} else {
				out.Set(i, j, Background)
			}
		}
	}
	return out, nil
}

// zeroBorder clears a frame of thickness b on all four sides of g. A frame
// at least half the grid wide clears everything.
func zeroBorder(g *grid.Grid, b int) {
	w, h := g.Bounds()
	bh, bw := min(b, h), min(b, w)
	for i := 0; i < bh; i++ {
		clear(g.Row(i))
	}
	for i := max(h-b, bh); i < h; i++ {
		clear(g.Row(i))
	}
	for i := bh; i < max(h-b, bh); i++ {
		row := g.Row(i)
		clear(row[:bw])
		clear(row[max(w-b, 0):])
	}
}

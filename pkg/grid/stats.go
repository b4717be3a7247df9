package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises the intensities of a grid.
type Stats struct {
	Width, Height int
	Min, Max      float64
	Mean          float64
	StdDev        float64 // population standard deviation
	// Histogram counts values 0..255; larger values land in Overflow.
	Histogram [256]int
	Overflow  int
	// Foreground is the share of cells equal to 255.
	Foreground float64
	Binary     bool // every cell is 0 or 255
}

// Floats returns the cells of g as float64 in row-major order.
func (g *Grid) Floats() []float64 {
	out := make([]float64, len(g.pix))
	for i, v := range g.pix {
		out[i] = float64(v)
	}
	return out
}

// Summarize computes Stats for g.
func Summarize(g *Grid) (Stats, error) {
	if err := g.Validate(); err != nil {
		return Stats{}, err
	}
	x := g.Floats()
	s := Stats{
		Width:  g.w,
		Height: g.h,
		Min:    floats.Min(x),
		Max:    floats.Max(x),
		Mean:   stat.Mean(x, nil),
		StdDev: math.Sqrt(stat.PopVariance(x, nil)),
		Binary: true,
	}
	fg := 0
	for _, v := range g.pix {
		if v < 256 {
			s.Histogram[v]++
		} else {
			s.Overflow++
		}
		switch v {
		case 255:
			fg++
		case 0:
		default:
			s.Binary = false
		}
	}
	s.Foreground = float64(fg) / float64(len(g.pix))
	return s, nil
}

func (s Stats) String() string {
	kind := "grayscale"
	if s.Binary {
		kind = "binary"
	}
	return fmt.Sprintf("Size: %dx%d, Kind: %s, Min: %.0f, Max: %.0f, Mean: %.3f, StdDev: %.3f, Foreground: %.2f%%",
		s.Width, s.Height, kind, s.Min, s.Max, s.Mean, s.StdDev, s.Foreground*100)
}

package thresh

import "github.com/Fepozopo/lthresh/pkg/grid"

// DefaultGlobalThreshold is the cut used when none is given.
const DefaultGlobalThreshold uint32 = 120

// GlobalThreshold sets every cell >= t to 255 and the rest to 0. There is
// no border frame.
func GlobalThreshold(g *grid.Grid, t uint32) (*grid.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	out := g.Clone()
	for i := 0; i < out.Height(); i++ {
		row := out.Row(i)
		for j, v := range row {
			if v >= t {
				row[j] = Foreground
			} else {
				row[j] = Background
			}
		}
	}
	return out, nil
}

// Invert maps every cell v to 255-v, saturating at 0 for values above 255.
func Invert(g *grid.Grid) (*grid.Grid, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	out := g.Clone()
	for i := 0; i < out.Height(); i++ {
		row := out.Row(i)
		for j, v := range row {
			if v >= Foreground {
				row[j] = 0
			} else {
				row[j] = Foreground - v
			}
		}
	}
	return out, nil
}

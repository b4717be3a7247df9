package grid

import (
	"io"
	"strings"
)

// Preview draws g with Unicode half blocks, two grid rows per text line,
// downsampling so the output is at most maxCols characters wide. A cell
// counts as lit when its value is at least half of 255; downsampled cells
// use the block mean.
func Preview(w io.Writer, g *Grid, maxCols int) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if maxCols <= 0 {
		maxCols = 80
	}
	step := 1
	for g.w/step > maxCols {
		step++
	}
	cols := (g.w + step - 1) / step
	rows := (g.h + step - 1) / step

	lit := func(r, c int) bool {
		if r >= rows {
			return false
		}
		var sum, n uint64
		for i := r * step; i < (r+1)*step && i < g.h; i++ {
			for j := c * step; j < (c+1)*step && j < g.w; j++ {
				sum += uint64(g.At(i, j))
				n++
			}
		}
		return n > 0 && sum*2 >= 255*n
	}

	var sb strings.Builder
	for r := 0; r < rows; r += 2 {
		for c := 0; c < cols; c++ {
			top, bottom := lit(r, c), lit(r+1, c)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

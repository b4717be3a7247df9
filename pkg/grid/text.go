package grid

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// maxLineBytes bounds a single matrix row. A 4096-wide row of 10-digit
// values fits comfortably.
const maxLineBytes = 1 << 20

// Read parses a whitespace-separated integer matrix, one row per line.
// The column count is the number of values on the first row; every other
// row must match it. Blank lines are ignored.
func Read(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var rows [][]uint32
	line := 0
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if len(rows) > 0 && len(fields) != len(rows[0]) {
			return nil, fmt.Errorf("line %d: %d values, want %d: %w", line, len(fields), len(rows[0]), ErrInvalidInput)
		}
		row := make([]uint32, len(fields))
		for j, f := range fields {
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %d: %v: %w", line, j+1, err, ErrInvalidInput)
			}
			row[j] = uint32(v)
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed reading matrix: %w", err)
	}
	return FromRows(rows)
}

// Write emits g as text: values separated by single spaces, rows separated
// by newlines, no newline after the last row.
func Write(w io.Writer, g *Grid) error {
	if err := g.Validate(); err != nil {
		return err
	}
	bw := bufio.NewWriter(w)
	buf := make([]byte, 0, 16)
	for i := 0; i < g.h; i++ {
		if i > 0 {
			bw.WriteByte('\n')
		}
		for j, v := range g.Row(i) {
			if j > 0 {
				bw.WriteByte(' ')
			}
			buf = strconv.AppendUint(buf[:0], uint64(v), 10)
			bw.Write(buf)
		}
	}
	return bw.Flush()
}

// Load reads a text matrix from path.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Save writes g to path as a text matrix, replacing any existing file.
func Save(path string, g *Grid) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, g); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// String renders g in the text matrix format.
func (g *Grid) String() string {
	var sb strings.Builder
	_ = Write(&sb, g)
	return sb.String()
}

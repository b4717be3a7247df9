package grid

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewRejectsEmpty(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, 2}} {
		if _, err := New(dims[0], dims[1]); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("New(%d,%d) err = %v; want ErrInvalidInput", dims[0], dims[1], err)
		}
	}
}

func TestFromRows(t *testing.T) {
	rows := [][]uint32{{1, 2, 3}, {4, 5, 6}}
	g, err := FromRows(rows)
	if err != nil {
		t.Fatalf("FromRows: %v", err)
	}
	if w, h := g.Bounds(); w != 3 || h != 2 {
		t.Fatalf("Bounds = %dx%d; want 3x2", w, h)
	}
	if g.At(1, 2) != 6 || g.At(0, 0) != 1 {
		t.Fatalf("unexpected cells: %v", g.Rows())
	}
	// the grid owns its storage
	rows[0][0] = 99
	if g.At(0, 0) != 1 {
		t.Fatalf("FromRows aliases its input")
	}
	if diff := cmp.Diff([][]uint32{{1, 2, 3}, {4, 5, 6}}, g.Rows()); diff != "" {
		t.Fatalf("Rows mismatch (-want +got):\n%s", diff)
	}

	bad := [][][]uint32{
		nil,
		{{}},
		{{1, 2}, {3}},
		{{1}, {2, 3}},
	}
	for _, b := range bad {
		if _, err := FromRows(b); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("FromRows(%v) err = %v; want ErrInvalidInput", b, err)
		}
	}
}

func TestCloneAndEqual(t *testing.T) {
	g, _ := Filled(4, 3, 7)
	c := g.Clone()
	if !g.Equal(c) {
		t.Fatalf("clone differs")
	}
	c.Set(2, 3, 8)
	if g.Equal(c) {
		t.Fatalf("clone shares storage with original")
	}
	if g.At(2, 3) != 7 {
		t.Fatalf("original changed: %d", g.At(2, 3))
	}
	o, _ := Filled(3, 4, 7)
	if g.Equal(o) {
		t.Fatalf("grids of different shape compare equal")
	}
	var nilGrid *Grid
	if !nilGrid.Equal(nil) || g.Equal(nil) {
		t.Fatalf("nil comparisons wrong")
	}
}

func TestContains(t *testing.T) {
	g, _ := New(3, 2)
	cases := []struct {
		r, c int
		want bool
	}{
		{0, 0, true},
		{1, 2, true},
		{2, 0, false},
		{0, 3, false},
		{-1, 0, false},
	}
	for _, c := range cases {
		if got := g.Contains(c.r, c.c); got != c.want {
			t.Fatalf("Contains(%d,%d) = %v; want %v", c.r, c.c, got, c.want)
		}
	}
}

func TestValidate(t *testing.T) {
	var g *Grid
	if err := g.Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("nil grid: %v", err)
	}
	if err := (&Grid{w: 2, h: 2, pix: make([]uint32, 3)}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short storage: %v", err)
	}
	ok, _ := New(2, 2)
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid grid: %v", err)
	}
}

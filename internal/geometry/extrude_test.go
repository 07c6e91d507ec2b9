package geometry

import (
	"testing"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

func TestExtrudeHeights(t *testing.T) {
	d := &payload.Dataset{
		Base:      5,
		Sequences: [][]int{{0, 1, 1, 2, 3}, {2, 4, 1}},
	}
	sel := []int{0, 1}
	colors := colorize.Map(d.Sequences, sel, colorize.Options{})

	cells := Extrude(d, sel, colors)
	if got, want := len(cells), 5+3; got != want {
		t.Fatalf("len(cells) = %d, want %d", got, want)
	}

	// First sequence has length 5: base 4.5, top 5.5.
	for _, c := range cells[:5] {
		if c.Base != 4.5 || c.Top != 5.5 {
			t.Errorf("cell (%d,%d) span [%g,%g], want [4.5,5.5]", c.X, c.Y, c.Base, c.Top)
		}
		if c.Color != colors[0] {
			t.Errorf("cell (%d,%d) color = %+v, want %+v", c.X, c.Y, c.Color, colors[0])
		}
	}
	// Second sequence has length 3: base 2.5, top 3.5.
	for _, c := range cells[5:] {
		if c.Base != 2.5 || c.Top != 3.5 {
			t.Errorf("cell (%d,%d) span [%g,%g], want [2.5,3.5]", c.X, c.Y, c.Base, c.Top)
		}
	}
}

func TestExtrudeKeepsOverlaps(t *testing.T) {
	// Both sequences contain the pair (1, 2); each keeps its own cell.
	d := &payload.Dataset{
		Base:      3,
		Sequences: [][]int{{1, 2, 0}, {1, 2, 2}},
	}
	sel := []int{0, 1}
	colors := colorize.Map(d.Sequences, sel, colorize.Options{})

	n := 0
	for _, c := range Extrude(d, sel, colors) {
		if c.X == 1 && c.Y == 2 {
			n++
		}
	}
	if n != 2 {
		t.Fatalf("cells at (1,2) = %d, want 2", n)
	}
}

func TestExtrudeEmptySelection(t *testing.T) {
	d := &payload.Dataset{Base: 4, Sequences: [][]int{{0, 1}}}
	if cells := Extrude(d, nil, nil); len(cells) != 0 {
		t.Fatalf("len(cells) = %d, want 0", len(cells))
	}
}

func TestMaxTop(t *testing.T) {
	cells := []Cell{{Top: 3.5}, {Top: 5.5}, {Top: 1.5}}
	if got := MaxTop(cells); got != 5.5 {
		t.Fatalf("MaxTop = %g, want 5.5", got)
	}
	if got := MaxTop(nil); got != 0 {
		t.Fatalf("MaxTop(nil) = %g, want 0", got)
	}
}

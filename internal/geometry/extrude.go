// Package geometry lifts occupied grid positions into height-coded volumetric
// cells for 3D presentation.
package geometry

import (
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

const (
	// Footprint is the cuboid's edge length in grid units, leaving a gap
	// between neighboring cells.
	Footprint = 0.8
	// Thickness is the fixed cuboid height.
	Thickness = 1.0
)

// Cell is one cuboid: footprint Footprint×Footprint anchored at grid position
// (X, Y) using the same column/row convention as the 2D projector, spanning
// [Base, Top] vertically.
type Cell struct {
	X, Y      int
	Base, Top float64
	Color     colorize.RGBA
}

// Extrude emits one cell per coordinate pair of each selected sequence,
// positioned at a height derived from the sequence length. Cells are emitted
// in the projector's order (ascending index, then pair order) for rendering
// parity, but unlike the 2D grid nothing is overwritten or deduplicated:
// sequences sharing an (x, y) each contribute a cell at their own height.
//
// An empty selection yields an empty list.
func Extrude(d *payload.Dataset, selected []int, colors map[int]colorize.RGBA) []Cell {
	total := 0
	for _, idx := range selected {
		total += len(d.Sequences[idx])
	}

	cells := make([]Cell, 0, total)
	for _, idx := range selected {
		height := float64(len(d.Sequences[idx]))
		base := height - 0.5
		c := colors[idx]
		for _, p := range grid.Pairs(d.Sequences[idx]) {
			cells = append(cells, Cell{X: p[0], Y: p[1], Base: base, Top: base + Thickness, Color: c})
		}
	}
	return cells
}

// MaxTop returns the highest cell top, used by renderers to scale the
// vertical axis. Zero for an empty list.
func MaxTop(cells []Cell) float64 {
	max := 0.0
	for _, c := range cells {
		if c.Top > max {
			max = c.Top
		}
	}
	return max
}

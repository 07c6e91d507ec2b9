// Package grid projects selected residue sequences onto the m×m occupancy
// buffer consumed by 2D renderers.
package grid

import (
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

// Buffer is a dense row-major m×m color matrix. The zero RGBA value is the
// empty-cell sentinel; every assigned color carries a non-zero alpha, so
// occupancy and color share one slot.
type Buffer struct {
	Size  int
	cells []colorize.RGBA
}

func NewBuffer(size int) *Buffer {
	return &Buffer{Size: size, cells: make([]colorize.RGBA, size*size)}
}

// At returns the color at column x, row y.
func (b *Buffer) At(x, y int) colorize.RGBA {
	return b.cells[y*b.Size+x]
}

// Set colors the cell at column x, row y, dropping out-of-bounds coordinates.
// Residues are already reduced mod the grid size, so the bounds check is a
// safety net rather than a normal path.
func (b *Buffer) Set(x, y int, c colorize.RGBA) {
	if x < 0 || x >= b.Size || y < 0 || y >= b.Size {
		return
	}
	b.cells[y*b.Size+x] = c
}

// Occupied reports whether any sequence touched the cell.
func (b *Buffer) Occupied(x, y int) bool {
	return b.cells[y*b.Size+x] != colorize.RGBA{}
}

// OccupiedCount returns the number of non-empty cells.
func (b *Buffer) OccupiedCount() int {
	n := 0
	var empty colorize.RGBA
	for _, c := range b.cells {
		if c != empty {
			n++
		}
	}
	return n
}

// Pairs generates the consecutive-residue coordinate pairs of one sequence,
// wrapping the final element back to the first so the cycle closes.
func Pairs(seq []int) [][2]int {
	out := make([][2]int, len(seq))
	for i, a := range seq {
		out[i] = [2]int{a, seq[(i+1)%len(seq)]}
	}
	return out
}

// Project fills an m×m buffer from the selected sequences. Sequences are
// processed in ascending index order and pairs in sequence order; later writes
// win at shared cells, which makes overlapping selections render identically
// on every run. The selection is assumed ascending (the session keeps it so).
//
// Coordinate convention: a pair (a, b) colors column a, row b.
func Project(d *payload.Dataset, selected []int, colors map[int]colorize.RGBA) *Buffer {
	buf := NewBuffer(d.Base)
	for _, idx := range selected {
		c := colors[idx]
		for _, p := range Pairs(d.Sequences[idx]) {
			buf.Set(p[0], p[1], c)
		}
	}
	return buf
}

// EstimateBytes is the pre-flight size hook: the in-memory cost of projecting
// a grid of the given dimension. Callers compare the dimension against their
// configured threshold before invoking Project; the projector itself never
// prompts.
func EstimateBytes(size int) int64 {
	const cellBytes = 32 // four float64 components
	return int64(size) * int64(size) * cellBytes
}

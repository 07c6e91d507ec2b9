package viz

import (
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
)

// GridView draws the occupancy buffer into the terminal. Row 0 renders at the
// top, matching the projector's row-major convention.
//
// When the grid is larger than the viewport it is sampled with a uniform
// stride; a stride cell is shown occupied if any cell in its block is, so thin
// cycles stay visible on large moduli.
func GridView(buf *grid.Buffer, maxW, maxH int) string {
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	// Two pixel rows per terminal row.
	maxPixH := maxH * 2

	stride := 1
	for buf.Size/stride > maxW || buf.Size/stride > maxPixH {
		stride++
	}

	dim := (buf.Size + stride - 1) / stride
	c := NewCanvas(dim, dim+dim%2)
	for py := 0; py < dim; py++ {
		for px := 0; px < dim; px++ {
			// First occupied cell in the stride block wins.
			for yy := py * stride; yy < (py+1)*stride && yy < buf.Size; yy++ {
				for xx := px * stride; xx < (px+1)*stride && xx < buf.Size; xx++ {
					if buf.Occupied(xx, yy) {
						c.Set(px, py, buf.At(xx, yy))
						yy = buf.Size
						break
					}
				}
			}
		}
	}
	return c.Render()
}

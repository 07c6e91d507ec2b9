package viz

import (
	"math"
	"sort"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/geometry"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects world coordinates onto the canvas with simple rotation and
// perspective, the same painter's-algorithm approach used for the wireframe
// views elsewhere in the tree.
type Camera struct {
	Dist             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

func NewCamera() *Camera {
	// Slightly elevated three-quarter view, matching the default viewing
	// angle of the exported charts.
	return &Camera{Dist: 50, RotX: -0.9, RotZ: 0.6, Zoom: 1.0}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p Vec3) Vec3 {
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	return p
}

// project maps a world point to canvas pixels plus a depth for sorting.
func (c *Camera) project(p Vec3, w, h int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	if rot.Z >= c.Dist-0.1 {
		return 0, 0, 0, false
	}
	scale := c.Dist / (c.Dist - rot.Z)
	minDim := float64(h)
	if float64(w) < minDim {
		minDim = float64(w)
	}
	pxScale := minDim / 3.0
	sx := int(rot.X*scale*pxScale) + w/2
	sy := int(-rot.Y*scale*pxScale) + h/2
	return sx, sy, rot.Z, true
}

type coloredEdge struct {
	a, b  Vec3
	color colorize.RGBA
}

// cellEdges emits the 12 wireframe edges of one volumetric cell in normalized
// world coordinates: the grid footprint maps onto [-1, 1]² and heights onto
// [0, 1] of the tallest cell.
func cellEdges(cell geometry.Cell, base int, maxTop float64, out []coloredEdge) []coloredEdge {
	half := float64(base) / 2
	nx := func(v float64) float64 { return (v - half) / half }
	nz := func(v float64) float64 { return v / maxTop }

	x0, x1 := nx(float64(cell.X)), nx(float64(cell.X)+geometry.Footprint)
	y0, y1 := nx(float64(cell.Y)), nx(float64(cell.Y)+geometry.Footprint)
	z0, z1 := nz(cell.Base), nz(cell.Top)

	v := [8]Vec3{
		{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0},
		{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1},
	}
	edges := [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
	for _, e := range edges {
		out = append(out, coloredEdge{a: v[e[0]], b: v[e[1]], color: cell.Color})
	}
	return out
}

// RenderCells draws the volumetric cells as depth-sorted colored wireframe
// cuboids. base is the grid dimension the cell coordinates live in.
func RenderCells(c *Canvas, cells []geometry.Cell, base int, cam *Camera) {
	if len(cells) == 0 {
		return
	}
	maxTop := geometry.MaxTop(cells)
	if maxTop == 0 {
		maxTop = 1
	}

	edges := make([]coloredEdge, 0, len(cells)*12)
	for _, cell := range cells {
		edges = cellEdges(cell, base, maxTop, edges)
	}

	type projected struct {
		x1, y1, x2, y2 int
		depth          float64
		color          colorize.RGBA
	}
	proj := make([]projected, 0, len(edges))
	for _, e := range edges {
		x1, y1, d1, ok1 := cam.project(e.a, c.W, c.H)
		x2, y2, d2, ok2 := cam.project(e.b, c.W, c.H)
		if ok1 || ok2 {
			proj = append(proj, projected{x1, y1, x2, y2, (d1 + d2) / 2, e.color})
		}
	}

	// Far edges first so near geometry overdraws them.
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, e := range proj {
		c.DrawLine(e.x1, e.y1, e.x2, e.y2, e.color)
	}
}

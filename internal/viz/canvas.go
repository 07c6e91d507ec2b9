package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/colorize"
)

// Canvas is a color pixel buffer rendered with half-block characters: each
// terminal row carries two pixel rows (foreground = upper pixel, background =
// lower pixel), doubling the vertical resolution.
type Canvas struct {
	W, H int
	px   []colorize.RGBA
}

// NewCanvas allocates a w×h pixel canvas. Height should be even so pixel rows
// pack into terminal rows without a ragged edge.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{W: w, H: h, px: make([]colorize.RGBA, w*h)}
}

// Set colors one pixel; out-of-bounds coordinates are dropped.
func (c *Canvas) Set(x, y int, col colorize.RGBA) {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return
	}
	c.px[y*c.W+x] = col
}

// At returns the pixel color; the zero value means unset.
func (c *Canvas) At(x, y int) colorize.RGBA {
	if x < 0 || x >= c.W || y < 0 || y >= c.H {
		return colorize.RGBA{}
	}
	return c.px[y*c.W+x]
}

// Clear resets every pixel.
func (c *Canvas) Clear() {
	for i := range c.px {
		c.px[i] = colorize.RGBA{}
	}
}

// DrawLine draws a colored line with Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col colorize.RGBA) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	errTerm := dx - dy

	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * errTerm
		if e2 > -dy {
			errTerm -= dy
			x0 += sx
		}
		if e2 < dx {
			errTerm += dx
			y0 += sy
		}
	}
}

// Render produces the styled terminal string, one "▀" per pixel pair.
func (c *Canvas) Render() string {
	var b strings.Builder
	var empty colorize.RGBA
	for y := 0; y < c.H; y += 2 {
		for x := 0; x < c.W; x++ {
			top := c.At(x, y)
			bottom := c.At(x, y+1)
			switch {
			case top == empty && bottom == empty:
				b.WriteByte(' ')
			case bottom == empty:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(top.Hex())).Render("▀"))
			case top == empty:
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(bottom.Hex())).Render("▄"))
			default:
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(top.Hex())).
					Background(lipgloss.Color(bottom.Hex())).
					Render("▀"))
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

package export

import (
	"fmt"
	"strings"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
)

// GridToSVG renders the occupancy buffer as an SVG document, one rect per
// occupied cell on a black background. cellSize is the rect edge in SVG units.
func GridToSVG(buf *grid.Buffer, cellSize float64) string {
	if cellSize <= 0 {
		cellSize = 10
	}
	span := float64(buf.Size) * cellSize

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#000000"/>
`, span, span, span, span))

	for y := 0; y < buf.Size; y++ {
		for x := 0; x < buf.Size; x++ {
			if !buf.Occupied(x, y) {
				continue
			}
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>
`, float64(x)*cellSize, float64(y)*cellSize, cellSize, cellSize, buf.At(x, y).Hex()))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

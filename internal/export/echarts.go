package export

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/geometry"
)

// CellsToHTML writes an interactive 3D scatter of the volumetric cells, one
// series per sequence color so the browser legend mirrors the terminal one.
// Cells plot at their top height, matching the top-cube presentation of the
// wireframe view.
func CellsToHTML(w io.Writer, base int, cells []geometry.Cell) error {
	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("Fibonacci mod %d period visualization", base),
			Subtitle: "cell height encodes sequence period length",
		}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "x", Type: "value", Max: base}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "y", Type: "value", Max: base}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "period", Type: "value"}),
	)

	// Preserve first-seen (ascending index) order of the series.
	var order []string
	byColor := make(map[string][]opts.Chart3DData)
	for _, c := range cells {
		hex := c.Color.Hex()
		if _, ok := byColor[hex]; !ok {
			order = append(order, hex)
		}
		byColor[hex] = append(byColor[hex], opts.Chart3DData{
			Value: []interface{}{c.X, c.Y, c.Top},
		})
	}

	for _, hex := range order {
		scatter.AddSeries(hex, byColor[hex],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: hex}),
		)
	}

	return scatter.Render(w)
}

package viz

import (
	"fmt"

	"github.com/guptarohit/asciigraph"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/payload"
)

// LengthProfile charts sequence length against sequence index for the whole
// dataset, a quick way to spot the short cycles worth selecting.
func LengthProfile(d *payload.Dataset, width, height int) string {
	if len(d.Sequences) == 0 {
		return "no sequences"
	}
	data := make([]float64, len(d.Sequences))
	for i, seq := range d.Sequences {
		data[i] = float64(len(seq))
	}
	if len(data) == 1 {
		return fmt.Sprintf("single sequence of length %d", len(d.Sequences[0]))
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("sequence length by index (mod %d)", d.Base)),
	)
}

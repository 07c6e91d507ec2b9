// Package colorize derives the stable per-sequence colors used by every
// renderer. Color assignment is a pure function of the sequence index and the
// length spread of the current selection, so identical inputs always produce
// identical output.
package colorize

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Palette is the fixed base palette, cycled by sequence index. The values
// must stay bit-for-bit stable: exported datasets and previously rendered
// images depend on them.
var Palette = [12]string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
	"#bcbd22", "#17becf", "#393b79", "#637939",
}

var paletteRGB [12]colorful.Color

func init() {
	for i, hex := range Palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(fmt.Sprintf("colorize: bad palette entry %q: %v", hex, err))
		}
		paletteRGB[i] = c
	}
}

const (
	// DefaultSmoothing is the perceptual tuning exponent applied to the raw
	// intensity. It is a design constant, not user input.
	DefaultSmoothing = 0.95
	// DefaultAlpha is the fixed opacity carried for volumetric rendering,
	// independent of intensity.
	DefaultAlpha = 0.8
)

// RGBA is a color with components in [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Hex renders the opaque part as #rrggbb lowercase.
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", clamp255(c.R), clamp255(c.G), clamp255(c.B))
}

func clamp255(v float64) int {
	n := int(v*255.0 + 0.5)
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return n
}

// Options tunes the assignment. The zero value selects the defaults.
type Options struct {
	Smoothing float64
	Alpha     float64
}

func (o Options) withDefaults() Options {
	if o.Smoothing == 0 {
		o.Smoothing = DefaultSmoothing
	}
	if o.Alpha == 0 {
		o.Alpha = DefaultAlpha
	}
	return o
}

// Intensity maps a sequence length onto [0, 1] relative to the selection's
// length spread. Shorter sequences score higher; a selection with a single
// length is exactly 1.0.
func Intensity(seqLen, minLen, maxLen int) float64 {
	if minLen == maxLen {
		return 1.0
	}
	return 1.0 - float64(seqLen-minLen)/float64(maxLen-minLen)
}

// Assign computes the color for one sequence. The base color comes from the
// palette by index; intensity then scales saturation by 0.8+0.2·i and value by
// 0.85+0.15·i in HSV space, making shorter sequences more vivid.
func Assign(index, seqLen, minLen, maxLen int, opt Options) RGBA {
	opt = opt.withDefaults()

	intensity := Intensity(seqLen, minLen, maxLen)
	if opt.Smoothing != 1.0 {
		intensity = math.Pow(intensity, opt.Smoothing)
	}

	base := paletteRGB[index%len(paletteRGB)]
	h, s, v := base.Hsv()
	adjusted := colorful.Hsv(h, s*(0.8+0.2*intensity), v*(0.85+0.15*intensity))

	return RGBA{R: adjusted.R, G: adjusted.G, B: adjusted.B, A: opt.Alpha}
}

// Map assigns colors to every selected index at once, normalizing intensity
// over the selection's own min/max length. Reselecting a different subset
// therefore recomputes intensities; that re-normalization is the documented
// contract, not an accident.
func Map(sequences [][]int, selected []int, opt Options) map[int]RGBA {
	colors := make(map[int]RGBA, len(selected))
	if len(selected) == 0 {
		return colors
	}

	minLen, maxLen := len(sequences[selected[0]]), len(sequences[selected[0]])
	for _, idx := range selected {
		n := len(sequences[idx])
		if n < minLen {
			minLen = n
		}
		if n > maxLen {
			maxLen = n
		}
	}

	for _, idx := range selected {
		colors[idx] = Assign(idx, len(sequences[idx]), minLen, maxLen, opt)
	}
	return colors
}

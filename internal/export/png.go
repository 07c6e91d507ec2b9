package export

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/XuanzhengZhou/fibonacci-mod-visualizer/internal/grid"
)

// GridToPNG writes the buffer as a raster image with pixelsPerCell square
// pixels per grid cell, the same layout as the original high-resolution grid
// export. Empty cells are black.
func GridToPNG(w io.Writer, buf *grid.Buffer, pixelsPerCell int) error {
	if pixelsPerCell < 1 {
		pixelsPerCell = 1
	}
	span := buf.Size * pixelsPerCell
	img := image.NewRGBA(image.Rect(0, 0, span, span))

	for y := 0; y < buf.Size; y++ {
		for x := 0; x < buf.Size; x++ {
			c := buf.At(x, y)
			rgba := color.RGBA{
				R: uint8(c.R*255 + 0.5),
				G: uint8(c.G*255 + 0.5),
				B: uint8(c.B*255 + 0.5),
				A: 255,
			}
			for py := 0; py < pixelsPerCell; py++ {
				for px := 0; px < pixelsPerCell; px++ {
					img.SetRGBA(x*pixelsPerCell+px, y*pixelsPerCell+py, rgba)
				}
			}
		}
	}

	return png.Encode(w, img)
}

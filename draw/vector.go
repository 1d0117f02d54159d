package draw

import (
	"image"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/BeatGlow/ssd1306/pixel"
)

// VectorThreshold is the luminance at which an antialiased vector pixel is
// turned on.
const VectorThreshold = 0x8000

// Vector renders paint into r of dst. The context is r.Dx()×r.Dy() with its
// origin at r.Min and starts transparent; pixels paint leaves transparent do
// not touch dst.
func Vector(dst Image, r image.Rectangle, paint func(*gg.Context)) {
	if r.Empty() {
		return
	}
	dc := gg.NewContext(r.Dx(), r.Dy())
	paint(dc)

	var (
		src   = dc.Image()
		sb    = src.Bounds()
		model = pixel.Threshold(VectorThreshold)
	)
	for y := 0; y < r.Dy(); y++ {
		for x := 0; x < r.Dx(); x++ {
			c := src.At(sb.Min.X+x, sb.Min.Y+y)
			if _, _, _, a := c.RGBA(); a < VectorThreshold {
				continue
			}
			dst.Set(r.Min.X+x, r.Min.Y+y, model.Convert(opaque(c)))
		}
	}
}

// opaque undoes alpha premultiplication.
func opaque(c color.Color) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 || a == 0xffff {
		return c
	}
	return color.RGBA64{
		R: uint16(r * 0xffff / a),
		G: uint16(g * 0xffff / a),
		B: uint16(b * 0xffff / a),
		A: 0xffff,
	}
}

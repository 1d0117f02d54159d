// Package draw has drawing primitives for the 1-bit framebuffers of OLED
// displays. Everything draws through the [image/draw.Image] interface, so
// the primitives work on in-memory images and on display drivers alike.
package draw

import (
	"image"
	"image/color"
	"image/draw"
)

// Image is an alias for [image/draw.Image].
type Image = draw.Image

// Fill sets every pixel of r that lies inside dst to c.
func Fill(dst Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

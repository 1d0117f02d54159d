package draw

import (
	"image"
	"image/color"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
)

// DefaultFace is the bitmap font used when no face is given.
var DefaultFace font.Face = basicfont.Face7x13

// Text draws s with its baseline starting at dot and returns the dot after
// the last glyph. A nil face uses DefaultFace.
func Text(dst Image, dot image.Point, face font.Face, s string, c color.Color) image.Point {
	if face == nil {
		face = DefaultFace
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	d.DrawString(s)
	return image.Pt(d.Dot.X.Round(), d.Dot.Y.Round())
}

// TextBounds returns the pixels covered by s drawn at dot.
func TextBounds(dot image.Point, face font.Face, s string) image.Rectangle {
	if face == nil {
		face = DefaultFace
	}
	d := &font.Drawer{
		Face: face,
		Dot:  fixed.P(dot.X, dot.Y),
	}
	b, _ := d.BoundString(s)
	return image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil())
}

// NewTrueTypeFace returns the Go Regular font at size points. Glyphs are fully
// hinted so strokes land on whole pixels.
func NewTrueTypeFace(size float64) (font.Face, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	return truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

package pixel

import (
	"image"
	"image/color"
	"image/draw"
)

type Image interface {
	draw.Image

	// Clear the image.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values and is a container that is used by most image formats in this package.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func (p *Buffer) Clear() {
	clear(p.Pix)
}

func (p *Buffer) fill(on bool) {
	var value byte
	if on {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// bit reports the pixel stored at pos under mask.
func (p *Buffer) bit(pos int, mask byte) color.Color {
	return Mono{On: p.Pix[pos]&mask != 0}
}

// setBit stores c, converted to Mono, at pos under mask.
func (p *Buffer) setBit(pos int, mask byte, c color.Color) {
	if monoModel(c).(Mono).On {
		p.Pix[pos] |= mask
	} else {
		p.Pix[pos] &^= mask
	}
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel monochrome image with horizontally packed
// bytes, least significant bit on the left.
type MonoImage struct {
	Buffer
}

func NewMonoImage(w, h int) *MonoImage {
	stride := (w + 7) / 8
	return &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
}

func (p *MonoImage) mask(x int) byte {
	return 1 << uint((x-p.Rect.Min.X)&7)
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.bit(p.PixOffset(x, y), p.mask(x))
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(p.Rect) {
		p.setBit(p.PixOffset(x, y), p.mask(x), c)
	}
}

func (p *MonoImage) Fill(c color.Color) {
	p.fill(monoModel(c).(Mono).On)
}

// MonoVerticalLSBImage is a 1-bit per pixel monochrome image.
//
// Every byte holds 8 vertically stacked pixels, the least significant bit on
// top, and bytes run left to right in bands of 8 rows. This is the display RAM
// layout of SSD1306 and related OLED controllers.
type MonoVerticalLSBImage struct {
	Buffer
}

func NewMonoVerticalLSBImage(w, h int) *MonoVerticalLSBImage {
	pages := (h + 7) / 8
	return &MonoVerticalLSBImage{
		Buffer: makeBuffer(w, h, w, pages*w),
	}
}

// ToMonoVerticalLSB converts src using model, MonoModel if nil.
func ToMonoVerticalLSB(src image.Image, model color.Model) *MonoVerticalLSBImage {
	if model == nil {
		model = MonoModel
	}
	r := src.Bounds()
	p := NewMonoVerticalLSBImage(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p.Set(x-r.Min.X, y-r.Min.Y, model.Convert(src.At(x, y)))
		}
	}
	return p
}

func (p *MonoVerticalLSBImage) ColorModel() color.Model {
	return MonoModel
}

// PixOffset is the index of the byte holding (x, y).
func (p *MonoVerticalLSBImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)/8*p.Stride + (x - p.Rect.Min.X)
}

func (p *MonoVerticalLSBImage) mask(y int) byte {
	return 1 << uint((y-p.Rect.Min.Y)&7)
}

func (p *MonoVerticalLSBImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(p.Rect) {
		return color.Transparent
	}
	return p.bit(p.PixOffset(x, y), p.mask(y))
}

func (p *MonoVerticalLSBImage) Set(x, y int, c color.Color) {
	if (image.Point{X: x, Y: y}).In(p.Rect) {
		p.setBit(p.PixOffset(x, y), p.mask(y), c)
	}
}

func (p *MonoVerticalLSBImage) Fill(c color.Color) {
	p.fill(monoModel(c).(Mono).On)
}

// Invert flips every pixel.
func (p *MonoVerticalLSBImage) Invert() {
	for i := range p.Pix {
		p.Pix[i] = ^p.Pix[i]
	}
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
	_ Image = (*MonoVerticalLSBImage)(nil)
)

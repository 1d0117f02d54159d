package ssd1306

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"periph.io/x/conn/v3/display"
	"tinygo.org/x/drivers"

	"github.com/BeatGlow/ssd1306/pixel"
)

// Graphics is a buffered graphics mode on top of a Device.
//
// Pixels are drawn into the framebuffer and reach the panel on Flush or
// BoundedFlush. Graphics is not safe for concurrent use.
type Graphics struct {
	*Device
	fb      *FrameBuffer
	dirty   Region
	bands   bands
	scratch [MaxWidth * MaxPages]byte
}

// NewGraphics takes over d and returns its graphics mode. The caller must not
// use d directly anymore; Release hands it back.
func NewGraphics(d *Device) *Graphics {
	g := &Graphics{
		Device: d,
		fb:     NewFrameBuffer(d.geometry, d.rotation),
		dirty:  EmptyRegion(),
	}
	g.bands.reset()
	return g
}

// Release returns the underlying device. The Graphics must not be used
// afterwards.
func (g *Graphics) Release() *Device {
	d := g.Device
	g.Device = nil
	return d
}

func (g *Graphics) String() string {
	return fmt.Sprintf("%s graphics", g.Device)
}

// FrameBuffer gives direct access to the framebuffer. Writes through it are
// not tracked; use Flush to send them.
func (g *Graphics) FrameBuffer() *FrameBuffer {
	return g.fb
}

// Dirty returns the region changed since the last flush.
func (g *Graphics) Dirty() Region {
	return g.dirty
}

// SetPixel turns the pixel at (x, y) on or off. Coordinates outside the
// display are ignored.
func (g *Graphics) SetPixel(x, y int, on bool) {
	if !g.fb.SetPixel(x, y, on) {
		return
	}
	g.dirty.Widen(x, y)
	page, column, _ := g.fb.Physical(x, y)
	g.bands.mark(page, column)
}

// Pixel reports whether the pixel at (x, y) is on.
func (g *Graphics) Pixel(x, y int) bool {
	return g.fb.Pixel(x, y)
}

// Clear turns all pixels off and marks the whole display for the next flush.
func (g *Graphics) Clear() {
	g.fb.Clear()
	w, h := g.fb.Dimensions()
	g.dirty.Full(w, h)
	g.bands.full(g.geometry)
}

// SetRotation changes the display rotation. Pixels already in the buffer keep
// their physical position.
func (g *Graphics) SetRotation(rotation Rotation) error {
	if err := g.Device.SetRotation(rotation); err != nil {
		return err
	}
	g.fb.SetRotation(g.rotation)
	if !g.dirty.Empty() {
		// Logical bounds of the old orientation are meaningless now.
		w, h := g.fb.Dimensions()
		g.dirty.Full(w, h)
	}
	return nil
}

func (g *Graphics) resetDirty() {
	g.dirty.Reset()
	g.bands.reset()
}

// ColorModel implements image.Image.
func (g *Graphics) ColorModel() color.Model {
	return pixel.MonoModel
}

// Bounds implements image.Image, in rotated coordinates.
func (g *Graphics) Bounds() image.Rectangle {
	w, h := g.fb.Dimensions()
	return image.Rect(0, 0, w, h)
}

// At implements image.Image.
func (g *Graphics) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(g.Bounds()) {
		return color.Transparent
	}
	return pixel.Mono{On: g.fb.Pixel(x, y)}
}

// Set implements draw.Image.
func (g *Graphics) Set(x, y int, c color.Color) {
	g.SetPixel(x, y, pixel.MonoModel.Convert(c).(pixel.Mono).On)
}

// Draw implements display.Drawer. The source is copied into the framebuffer
// and the changed region is flushed before Draw returns.
func (g *Graphics) Draw(r image.Rectangle, src image.Image, sp image.Point) error {
	draw.Draw(g, r, src, sp, draw.Src)
	return g.BoundedFlush()
}

// Halt implements conn.Resource by turning the display off.
func (g *Graphics) Halt() error {
	return g.DisplayOn(false)
}

// Image returns the framebuffer as an unrotated image sharing its memory.
func (g *Graphics) Image() *pixel.MonoVerticalLSBImage {
	return &pixel.MonoVerticalLSBImage{
		Buffer: pixel.Buffer{
			Rect:   g.geometry.Bounds(),
			Pix:    g.fb.Bytes(),
			Stride: g.geometry.Width,
		},
	}
}

// Displayer adapts the graphics mode to the TinyGo display interface.
func (g *Graphics) Displayer() drivers.Displayer {
	return displayer{g}
}

type displayer struct {
	g *Graphics
}

func (d displayer) Size() (x, y int16) {
	w, h := d.g.fb.Dimensions()
	return int16(w), int16(h)
}

func (d displayer) SetPixel(x, y int16, c color.RGBA) {
	d.g.Set(int(x), int(y), c)
}

func (d displayer) Display() error {
	return d.g.BoundedFlush()
}

// Interface checks.
var (
	_ draw.Image     = (*Graphics)(nil)
	_ display.Drawer = (*Graphics)(nil)
)

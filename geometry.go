package ssd1306

import (
	"fmt"
	"image"
)

// Controller memory limits. The SSD1306 has 128 segments and 64 COM lines,
// organised as 8 pages of 128 bytes.
const (
	MaxWidth  = 128
	MaxHeight = 64
	MaxPages  = MaxHeight / 8
	pageSize  = 8
)

// Geometry describes the panel glued to the controller.
type Geometry struct {
	// Width of the panel in pixels (segments).
	Width int

	// Height of the panel in pixels (COM lines), a multiple of 8.
	Height int

	// ColumnOffset is the first controller column wired to the panel.
	ColumnOffset int

	// RowOffset is the first controller row wired to the panel, a multiple of 8.
	RowOffset int

	// AlternativeCOM selects the alternative COM pin configuration.
	AlternativeCOM bool

	// SwapCOM enables the COM left/right remap.
	SwapCOM bool
}

// Supported panel sizes.
var (
	Size128x64 = Geometry{Width: 128, Height: 64, AlternativeCOM: true}
	Size128x32 = Geometry{Width: 128, Height: 32}
	Size96x16  = Geometry{Width: 96, Height: 16}
	Size72x40  = Geometry{Width: 72, Height: 40, ColumnOffset: 28, AlternativeCOM: true}
	Size64x48  = Geometry{Width: 64, Height: 48, ColumnOffset: 32, AlternativeCOM: true}
)

var knownGeometries = []Geometry{
	Size128x64,
	Size128x32,
	Size96x16,
	Size72x40,
	Size64x48,
}

// GeometryFor returns the predefined geometry for a w×h panel.
func GeometryFor(w, h int) (Geometry, error) {
	for _, g := range knownGeometries {
		if g.Width == w && g.Height == h {
			return g, nil
		}
	}
	return Geometry{}, fmt.Errorf("%w %dx%d", ErrUnsupportedSize, w, h)
}

// Pages is the number of 8 pixel high bands.
func (g Geometry) Pages() int {
	return g.Height / pageSize
}

// Size is the number of framebuffer bytes used by the panel.
func (g Geometry) Size() int {
	return g.Width * g.Pages()
}

// Bounds of the panel in physical (unrotated) pixels.
func (g Geometry) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.Width, g.Height)
}

// RAM is the part of the controller display RAM the panel shows, in RAM
// pixel coordinates.
func (g Geometry) RAM() image.Rectangle {
	return g.Bounds().Add(image.Pt(g.ColumnOffset, g.RowOffset))
}

// Validate checks the geometry fits the controller memory.
func (g Geometry) Validate() error {
	switch {
	case g.Width <= 0 || g.Width > MaxWidth:
		return fmt.Errorf("%w: width %d", ErrUnsupportedSize, g.Width)
	case g.Height <= 0 || g.Height > MaxHeight || g.Height%pageSize != 0:
		return fmt.Errorf("%w: height %d", ErrUnsupportedSize, g.Height)
	case g.ColumnOffset < 0 || g.ColumnOffset+g.Width > MaxWidth:
		return fmt.Errorf("%w: column offset %d for width %d", ErrUnsupportedSize, g.ColumnOffset, g.Width)
	case g.RowOffset < 0 || g.RowOffset%pageSize != 0 || g.RowOffset+g.Height > MaxHeight:
		return fmt.Errorf("%w: row offset %d for height %d", ErrUnsupportedSize, g.RowOffset, g.Height)
	}
	return nil
}

func (g Geometry) String() string {
	return fmt.Sprintf("%dx%d", g.Width, g.Height)
}

// comPins is the argument of the COM pins hardware configuration command.
func (g Geometry) comPins() byte {
	v := byte(0x02)
	if g.AlternativeCOM {
		v |= 0x10
	}
	if g.SwapCOM {
		v |= 0x20
	}
	return v
}

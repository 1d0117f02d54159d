package ssd1306

import "image"

// FrameBuffer mirrors the controller display RAM.
//
// Each byte holds 8 vertically stacked pixels, the least significant bit on
// top. Bytes are stored page by page, left to right: the byte for (page,
// column) lives at page*Width+column. The backing array is sized for the
// largest panel; only the first Width*Pages bytes are used.
type FrameBuffer struct {
	geometry Geometry
	rotation Rotation
	buf      [MaxWidth * MaxPages]byte
}

// NewFrameBuffer returns an empty framebuffer for the panel.
func NewFrameBuffer(g Geometry, r Rotation) *FrameBuffer {
	return &FrameBuffer{
		geometry: g,
		rotation: r % 4,
	}
}

// Geometry of the panel.
func (fb *FrameBuffer) Geometry() Geometry {
	return fb.geometry
}

// Rotation used to map logical coordinates.
func (fb *FrameBuffer) Rotation() Rotation {
	return fb.rotation
}

// SetRotation changes the logical to physical mapping. The buffer content is
// not transformed.
func (fb *FrameBuffer) SetRotation(r Rotation) {
	fb.rotation = r % 4
}

// Dimensions are the logical width and height.
func (fb *FrameBuffer) Dimensions() (w, h int) {
	if fb.rotation.Swapped() {
		return fb.geometry.Height, fb.geometry.Width
	}
	return fb.geometry.Width, fb.geometry.Height
}

// locate maps a logical coordinate to a byte index and bit mask.
func (fb *FrameBuffer) locate(x, y int) (index int, mask byte, ok bool) {
	w, h := fb.Dimensions()
	if x < 0 || y < 0 || x >= w || y >= h {
		return 0, 0, false
	}
	if fb.rotation.Swapped() {
		index = (x/pageSize)*fb.geometry.Width + y
		mask = 1 << uint(x%pageSize)
	} else {
		index = (y/pageSize)*fb.geometry.Width + x
		mask = 1 << uint(y%pageSize)
	}
	if index >= fb.geometry.Size() {
		return 0, 0, false
	}
	return index, mask, true
}

// Physical returns the controller page and column holding the logical pixel.
func (fb *FrameBuffer) Physical(x, y int) (page, column int, ok bool) {
	index, _, ok := fb.locate(x, y)
	if !ok {
		return 0, 0, false
	}
	return index / fb.geometry.Width, index % fb.geometry.Width, true
}

// SetPixel turns the logical pixel (x, y) on or off. Coordinates outside the
// panel are ignored; the return value reports whether a byte was addressed.
func (fb *FrameBuffer) SetPixel(x, y int, on bool) bool {
	index, mask, ok := fb.locate(x, y)
	if !ok {
		return false
	}
	if on {
		fb.buf[index] |= mask
	} else {
		fb.buf[index] &^= mask
	}
	return true
}

// Pixel returns the state of the logical pixel (x, y); false outside the panel.
func (fb *FrameBuffer) Pixel(x, y int) bool {
	index, mask, ok := fb.locate(x, y)
	if !ok {
		return false
	}
	return fb.buf[index]&mask != 0
}

// Clear zeroes the active part of the buffer.
func (fb *FrameBuffer) Clear() {
	clear(fb.buf[:fb.geometry.Size()])
}

// Bytes returns the active part of the buffer, page by page.
func (fb *FrameBuffer) Bytes() []byte {
	return fb.buf[:fb.geometry.Size()]
}

// Band returns columns [c0, c1) of a page.
func (fb *FrameBuffer) Band(page, c0, c1 int) []byte {
	off := page * fb.geometry.Width
	return fb.buf[off+c0 : off+c1]
}

// AppendColumn appends the bytes of pages [p0, p1) in column c, top to
// bottom, to dst.
func (fb *FrameBuffer) AppendColumn(dst []byte, c, p0, p1 int) []byte {
	for page := p0; page < p1; page++ {
		dst = append(dst, fb.buf[page*fb.geometry.Width+c])
	}
	return dst
}

// physicalRect maps a logical rectangle to physical panel pixels.
func (fb *FrameBuffer) physicalRect(r image.Rectangle) image.Rectangle {
	if fb.rotation.Swapped() {
		return image.Rect(r.Min.Y, r.Min.X, r.Max.Y, r.Max.X)
	}
	return r
}

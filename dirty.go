package ssd1306

import (
	"fmt"
	"image"
)

// Region is the smallest rectangle, in logical pixel coordinates, that bounds
// every pixel change since the last flush. Bounds are inclusive.
type Region struct {
	MinX, MaxX int
	MinY, MaxY int
}

// EmptyRegion returns a region in the empty state.
func EmptyRegion() Region {
	var r Region
	r.Reset()
	return r
}

// Widen grows the region to include (x, y).
func (r *Region) Widen(x, y int) {
	if r.Empty() {
		r.MinX, r.MaxX, r.MinY, r.MaxY = x, x, y, y
		return
	}
	r.MinX = min(r.MinX, x)
	r.MaxX = max(r.MaxX, x)
	r.MinY = min(r.MinY, y)
	r.MaxY = max(r.MaxY, y)
}

// Empty reports whether nothing was recorded.
func (r Region) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Reset empties the region.
func (r *Region) Reset() {
	r.MinX, r.MaxX = 1, 0
	r.MinY, r.MaxY = 1, 0
}

// Full sets the region to a whole w×h frame.
func (r *Region) Full(w, h int) {
	r.MinX, r.MaxX = 0, w-1
	r.MinY, r.MaxY = 0, h-1
}

// Rect converts the region to a half open rectangle.
func (r Region) Rect() image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(r.MinX, r.MinY, r.MaxX+1, r.MaxY+1)
}

func (r Region) String() string {
	if r.Empty() {
		return "empty"
	}
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.MinX, r.MinY, r.MaxX, r.MaxY)
}

// span is an inclusive range of touched columns within one page.
type span struct {
	lo, hi int
}

func (s span) empty() bool { return s.lo > s.hi }

// bands tracks touched columns per page, in controller coordinates.
type bands [MaxPages]span

func (b *bands) mark(page, column int) {
	s := &b[page]
	if s.empty() {
		s.lo, s.hi = column, column
		return
	}
	s.lo = min(s.lo, column)
	s.hi = max(s.hi, column)
}

func (b *bands) reset() {
	for i := range b {
		b[i] = span{lo: 1, hi: 0}
	}
}

func (b *bands) full(g Geometry) {
	b.reset()
	for page := 0; page < g.Pages(); page++ {
		b[page] = span{lo: 0, hi: g.Width - 1}
	}
}

package draw

import (
	"image"
	"image/color"
)

// Corner selects one or more corners of a rounded shape.
type Corner uint8

// Corners
const (
	TopLeft Corner = 1 << iota
	TopRight
	BottomRight
	BottomLeft

	AllCorners = TopLeft | TopRight | BottomRight | BottomLeft
)

// Line draws a line between two points, both end points included.
func Line(dst Image, a, b image.Point, c color.Color) {
	var (
		dx, sx = abs(b.X - a.X), step(a.X, b.X)
		dy, sy = -abs(b.Y - a.Y), step(a.Y, b.Y)
		err    = dx + dy
	)
	for {
		dst.Set(a.X, a.Y, c)
		if a == b {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			a.X += sx
		}
		if e2 <= dx {
			err += dx
			a.Y += sy
		}
	}
}

// HorizontalLine draws w pixels from (x,y) to the right.
func HorizontalLine(dst Image, x, y, w int, c color.Color) {
	for end := x + w; x < end; x++ {
		dst.Set(x, y, c)
	}
}

// VerticalLine draws h pixels from (x,y) down.
func VerticalLine(dst Image, x, y, h int, c color.Color) {
	for end := y + h; y < end; y++ {
		dst.Set(x, y, c)
	}
}

// Circle draws a circle outline around center.
func Circle(dst Image, center image.Point, radius int, c color.Color) {
	Arc(dst, center, radius, AllCorners, c)
}

// FilledCircle draws a disc around center.
func FilledCircle(dst Image, center image.Point, radius int, c color.Color) {
	if radius <= 0 {
		dst.Set(center.X, center.Y, c)
		return
	}
	fillCaps(dst, image.Rectangle{Min: center, Max: center}, radius, c)
}

// Arc draws the quarter circles of the selected corners around center.
func Arc(dst Image, center image.Point, radius int, corners Corner, c color.Color) {
	if radius <= 0 {
		dst.Set(center.X, center.Y, c)
		return
	}
	octant(radius, func(x, y int) {
		for _, d := range [2]image.Point{{x, y}, {y, x}} {
			if corners&TopLeft != 0 {
				dst.Set(center.X-d.X, center.Y-d.Y, c)
			}
			if corners&TopRight != 0 {
				dst.Set(center.X+d.X, center.Y-d.Y, c)
			}
			if corners&BottomRight != 0 {
				dst.Set(center.X+d.X, center.Y+d.Y, c)
			}
			if corners&BottomLeft != 0 {
				dst.Set(center.X-d.X, center.Y+d.Y, c)
			}
		}
	})
}

// Rectangle draws the outline of rect. The outline stays inside rect.
func Rectangle(dst Image, rect image.Rectangle, c color.Color) {
	if rect.Empty() {
		return
	}
	w, h := rect.Dx(), rect.Dy()
	HorizontalLine(dst, rect.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, rect.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, rect.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, rect.Min.Y, h, c)
}

// RoundedRectangle draws the outline of rect with rounded corners.
func RoundedRectangle(dst Image, rect image.Rectangle, radius int, c color.Color) {
	if rect.Empty() {
		return
	}
	r := clampRadius(rect, radius)
	if r == 0 {
		Rectangle(dst, rect, c)
		return
	}
	inner := corners(rect, r)
	w, h := inner.Dx()+1, inner.Dy()+1
	HorizontalLine(dst, inner.Min.X, rect.Min.Y, w, c)
	HorizontalLine(dst, inner.Min.X, rect.Max.Y-1, w, c)
	VerticalLine(dst, rect.Min.X, inner.Min.Y, h, c)
	VerticalLine(dst, rect.Max.X-1, inner.Min.Y, h, c)
	Arc(dst, inner.Min, r, TopLeft, c)
	Arc(dst, image.Pt(inner.Max.X, inner.Min.Y), r, TopRight, c)
	Arc(dst, inner.Max, r, BottomRight, c)
	Arc(dst, image.Pt(inner.Min.X, inner.Max.Y), r, BottomLeft, c)
}

// Box draws a filled rectangle.
func Box(dst Image, rect image.Rectangle, c color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		HorizontalLine(dst, rect.Min.X, y, rect.Dx(), c)
	}
}

// RoundedBox draws a filled rectangle with rounded corners.
func RoundedBox(dst Image, rect image.Rectangle, radius int, c color.Color) {
	if rect.Empty() {
		return
	}
	r := clampRadius(rect, radius)
	if r == 0 {
		Box(dst, rect, c)
		return
	}
	inner := corners(rect, r)
	Box(dst, image.Rect(rect.Min.X, inner.Min.Y, rect.Max.X, inner.Max.Y+1), c)
	fillCaps(dst, inner, r, c)
}

// corners returns the rectangle spanned by the centers of the corner arcs;
// Max is inclusive.
func corners(rect image.Rectangle, r int) image.Rectangle {
	return image.Rectangle{
		Min: image.Pt(rect.Min.X+r, rect.Min.Y+r),
		Max: image.Pt(rect.Max.X-1-r, rect.Max.Y-1-r),
	}
}

// fillCaps fills the rounded top and bottom caps around the arc centers in
// inner (Max inclusive).
func fillCaps(dst Image, inner image.Rectangle, r int, c color.Color) {
	span := inner.Dx() + 1
	octant(r, func(x, y int) {
		HorizontalLine(dst, inner.Min.X-x, inner.Min.Y-y, span+2*x, c)
		HorizontalLine(dst, inner.Min.X-y, inner.Min.Y-x, span+2*y, c)
		HorizontalLine(dst, inner.Min.X-x, inner.Max.Y+y, span+2*x, c)
		HorizontalLine(dst, inner.Min.X-y, inner.Max.Y+x, span+2*y, c)
	})
}

func clampRadius(rect image.Rectangle, radius int) int {
	return max(0, min(radius, (rect.Dx()-1)/2, (rect.Dy()-1)/2))
}

// octant walks the first octant of a midpoint circle, from (0, radius) until
// x passes y.
func octant(radius int, plot func(x, y int)) {
	x, y, d := 0, radius, 1-radius
	for x <= y {
		plot(x, y)
		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func step(from, to int) int {
	if from < to {
		return 1
	}
	return -1
}

package ssd1306

import (
	"fmt"
	"image"
)

// bandOverhead is the number of bytes spent on window commands for every band
// sent by a bounded flush.
const bandOverhead = 7

// Flush sends the whole framebuffer to the display.
//
// The controller must be in horizontal or vertical addressing mode.
func (g *Graphics) Flush() error {
	geo := g.geometry
	if err := g.SetDrawArea(geo.Bounds()); err != nil {
		return err
	}
	if err := g.stream(0, geo.Pages(), 0, geo.Width); err != nil {
		return err
	}
	debugf("flush %d bytes", geo.Size())
	g.resetDirty()
	return nil
}

type band struct {
	page   int
	c0, c1 int
}

// BoundedFlush sends only the page bands touched since the last flush, each
// limited to its touched columns. Without tracked changes it does a full
// Flush, as it does when the bands cover nearly the whole display.
//
// The controller must be in horizontal or vertical addressing mode.
func (g *Graphics) BoundedFlush() error {
	if g.dirty.Empty() {
		return g.Flush()
	}
	if !g.mode.Windowed() {
		return fmt.Errorf("%w: flush needs horizontal or vertical mode, not %s", ErrInvalidMode, g.mode)
	}

	geo := g.geometry
	r := g.fb.physicalRect(g.dirty.Rect()).Intersect(geo.Bounds())
	if r.Empty() {
		g.resetDirty()
		return nil
	}

	var (
		firstPage = r.Min.Y / pageSize
		lastPage  = min((r.Max.Y-1)/pageSize, geo.Pages()-1)
		todo      [MaxPages]band
		n, cost   int
	)
	for page := firstPage; page <= lastPage; page++ {
		s := g.bands[page]
		if s.empty() {
			continue
		}
		c0, c1 := max(s.lo, 0), min(s.hi+1, geo.Width)
		if c0 >= c1 {
			continue
		}
		todo[n] = band{page: page, c0: c0, c1: c1}
		n++
		cost += c1 - c0 + bandOverhead
	}
	if cost >= geo.Size() {
		debugf("bounded flush of %s costs %d bytes, doing full flush", g.dirty, cost)
		return g.Flush()
	}

	debugf("bounded flush of %s in %d bands, %d bytes", g.dirty, n, cost)
	for _, b := range todo[:n] {
		area := image.Rect(b.c0, b.page*pageSize, b.c1, (b.page+1)*pageSize)
		if err := g.SetDrawArea(area); err != nil {
			return err
		}
		if err := g.stream(b.page, b.page+1, b.c0, b.c1); err != nil {
			return err
		}
	}
	g.resetDirty()
	return nil
}

// stream sends pages [p0, p1) × columns [c0, c1) in the order the controller
// auto-advances in the current addressing mode. The draw area must already
// cover exactly this rectangle.
func (g *Graphics) stream(p0, p1, c0, c1 int) error {
	w := g.geometry.Width
	if g.mode == Vertical {
		buf := g.scratch[:0]
		for c := c0; c < c1; c++ {
			buf = g.fb.AppendColumn(buf, c, p0, p1)
		}
		return g.c.Data(buf...)
	}
	if c0 == 0 && c1 == w {
		return g.c.Data(g.fb.Bytes()[p0*w : p1*w]...)
	}
	for page := p0; page < p1; page++ {
		if err := g.c.Data(g.fb.Band(page, c0, c1)...); err != nil {
			return err
		}
	}
	return nil
}

package ssd1306

import (
	"fmt"
	"image"
)

// AddrMode is the addressing mode the controller was last switched to.
func (d *Device) AddrMode() AddrMode {
	return d.mode
}

// ChangeMode switches the controller addressing mode.
func (d *Device) ChangeMode(mode AddrMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: addressing mode %s", ErrOutOfRange, mode)
	}
	if err := d.command(setMemoryMode, byte(mode)); err != nil {
		return err
	}
	debugf("addressing mode %s -> %s", d.mode, mode)
	d.mode = mode
	return nil
}

// SetDrawArea limits where following data writes land. The rectangle is in
// panel pixels, unrotated; rows are widened to whole pages. Only valid in
// horizontal or vertical addressing mode.
func (d *Device) SetDrawArea(r image.Rectangle) error {
	if !d.mode.Windowed() {
		return fmt.Errorf("%w: draw area needs horizontal or vertical mode, not %s", ErrInvalidMode, d.mode)
	}
	if r.Empty() || !r.In(d.geometry.Bounds()) {
		return fmt.Errorf("%w: draw area %s outside %s panel", ErrOutOfRange, r, d.geometry)
	}
	var (
		colOffset  = d.geometry.ColumnOffset
		pageOffset = d.geometry.RowOffset / pageSize
		startPage  = r.Min.Y / pageSize
		endPage    = (r.Max.Y - 1) / pageSize
	)
	return d.commands(
		[]byte{setColumnAddr, byte(r.Min.X + colOffset), byte(r.Max.X - 1 + colOffset)},
		[]byte{setPageAddr, byte(startPage + pageOffset), byte(endPage + pageOffset)},
	)
}

// SetColumn sets the column the next data write starts at. Only valid in page
// addressing mode.
func (d *Device) SetColumn(column int) error {
	if d.mode != Page {
		return fmt.Errorf("%w: column start needs page mode, not %s", ErrInvalidMode, d.mode)
	}
	if column < 0 || column >= d.geometry.Width {
		return fmt.Errorf("%w: column %d", ErrOutOfRange, column)
	}
	c := byte(column + d.geometry.ColumnOffset)
	return d.command(setLowColumn|c&0x0f, setHighColumn|c>>4)
}

// SetRow selects the page containing pixel row row for the next data write.
// Only valid in page addressing mode.
func (d *Device) SetRow(row int) error {
	if d.mode != Page {
		return fmt.Errorf("%w: page start needs page mode, not %s", ErrInvalidMode, d.mode)
	}
	if row < 0 || row >= d.geometry.Height {
		return fmt.Errorf("%w: row %d", ErrOutOfRange, row)
	}
	page := (row + d.geometry.RowOffset) / pageSize
	return d.command(setPageStart | byte(page&0x07))
}

// Package pixel implements the 1-bit color model and image layouts used by
// monochrome OLED controllers.
//
// The types are compatible with Go's native [color.Color] and [image.Image] /
// [draw.Image] interfaces.
package pixel

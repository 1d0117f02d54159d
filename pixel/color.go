package pixel

import "image/color"

// MonoModel converts any color to Mono by its luminance.
var MonoModel color.Model = color.ModelFunc(monoModel)

var (
	Off = Mono{false}
	On  = Mono{true}
)

// Mono represents a 1-bit monochrome color.
type Mono struct {
	On bool
}

func (c Mono) RGBA() (r, g, b, a uint32) {
	if c.On {
		return 0xffff, 0xffff, 0xffff, 0xffff
	}
	return 0, 0, 0, 0xffff
}

func monoModel(c color.Color) color.Color {
	if _, ok := c.(Mono); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return Off
	}

	// These coefficients (the fractions 0.299, 0.587 and 0.114) are the same
	// as those given by the JFIF specification and used by func RGBToYCbCr in
	// ycbcr.go.
	//
	// Note that 19595 + 38470 + 7471 equals 65536.
	//
	// The 31 is 16 + 15. The 16 is the same as used in RGBToYCbCr. The 15 is
	// because the return value is 1 bit color, not 16 bit color.
	y := (19595*r + 38470*g + 7471*b + 1<<15) >> 31

	return Mono{On: y != 0}
}

// Threshold returns a model that turns a pixel on when its luminance is at
// least level, with level in [0, 0xffff].
func Threshold(level uint32) color.Model {
	return color.ModelFunc(func(c color.Color) color.Color {
		if m, ok := c.(Mono); ok {
			return m
		}
		y := color.Gray16Model.Convert(c).(color.Gray16).Y
		_, _, _, a := c.RGBA()
		return Mono{On: a != 0 && uint32(y) >= level}
	})
}

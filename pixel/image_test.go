package pixel

import (
	"image"
	"image/color"
	"math/rand"
	"testing"
)

func TestMonoImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoVerticalLSBImage(t *testing.T) {
	testImage(t, func(size image.Point) Image {
		return NewMonoVerticalLSBImage(size.X, size.Y)
	}, MonoModel)
}

func TestMonoVerticalLSBImageLayout(t *testing.T) {
	i := NewMonoVerticalLSBImage(128, 64)
	i.Set(0, 0, On)
	i.Set(5, 9, On)
	i.Set(127, 63, On)

	if v := i.Pix[0]; v != 0x01 {
		t.Errorf("expected byte 0 to be 0x01, got %#02x", v)
	}
	if v := i.Pix[1*128+5]; v != 0x02 {
		t.Errorf("expected byte at page 1 column 5 to be 0x02, got %#02x", v)
	}
	if v := i.Pix[7*128+127]; v != 0x80 {
		t.Errorf("expected last byte to be 0x80, got %#02x", v)
	}

	i.Invert()
	if v := i.At(0, 0); v != Off {
		t.Errorf("expected (0,0) to be off after invert, got %v", v)
	}
	if v := i.At(1, 0); v != On {
		t.Errorf("expected (1,0) to be on after invert, got %v", v)
	}
}

func TestToMonoVerticalLSB(t *testing.T) {
	src := image.NewGray(image.Rect(10, 10, 26, 26))
	src.SetGray(10, 10, color.Gray{Y: 0xff})
	src.SetGray(25, 25, color.Gray{Y: 0xff})

	p := ToMonoVerticalLSB(src, nil)
	if v := p.Bounds(); v != image.Rect(0, 0, 16, 16) {
		t.Fatalf("expected bounds to be rebased to the origin, got %s", v)
	}
	if v := p.At(0, 0); v != On {
		t.Errorf("expected (0,0) on, got %v", v)
	}
	if v := p.At(15, 15); v != On {
		t.Errorf("expected (15,15) on, got %v", v)
	}
	if v := p.At(1, 0); v != Off {
		t.Errorf("expected (1,0) off, got %v", v)
	}
}

func testImage(t *testing.T, f func(image.Point) Image, model color.Model) {
	t.Helper()
	testCases := []image.Point{
		{},
		image.Pt(1, 1),
		image.Pt(2, 2),
		image.Pt(72, 40),
		image.Pt(128, 64),
	}
	for _, test := range testCases {
		t.Run(test.String(), func(it *testing.T) {
			i := f(test)

			if v := i.Bounds().Size(); !v.Eq(test) {
				it.Errorf("expected image size %s, got %s", test, v)
			}

			if v := i.ColorModel(); v != model {
				it.Errorf("expected color model %T, got %T", model, v)
			}

			it.Run("in-bounds", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := testRandomColor()
						i.Set(x, y, c)
						if v := i.ColorModel().Convert(c); i.At(x, y) != v {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
							return
						}
					}
				}
			})

			it.Run("in-bounds-matching-model", func(itt *testing.T) {
				for y := 0; y < test.Y; y++ {
					for x := 0; x < test.X; x++ {
						c := model.Convert(testRandomColor())
						i.Set(x, y, c)
						if i.At(x, y) != c {
							itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v", x, y, i.At(x, y), c)
							return
						}
					}
				}
			})

			it.Run("out-bounds", func(itt *testing.T) {
				for y := -test.Y; y < test.Y*2; y++ {
					for x := -test.X; x < test.X*2; x++ {
						i.Set(x, y, testRandomColor())
						if x < 0 || y < 0 {
							if v := i.At(x, y); v != color.Transparent {
								itt.Fatalf("pixel (%d,%d) is %#+v, expected transparent", x, y, v)
								return
							}
						}
					}
				}
			})

			it.Run("fill", func(itt *testing.T) {
				c := testRandomColor()
				i.Fill(c)
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := i.ColorModel().Convert(c); i.At(x, y) != v {
						itt.Fatalf("pixel (%d,%d) is %#+v, expected %#+v (%v)", x, y, i.At(x, y), v, c)
						return
					}
				}
			})

			it.Run("clear", func(itt *testing.T) {
				i.Clear()
				if test.X > 0 && test.Y > 0 {
					x := rand.Intn(test.X)
					y := rand.Intn(test.Y)
					if v := monoModel(i.At(x, y)); v != Off {
						itt.Fatalf("pixel (%d,%d) is not black", x, y)
					}
				}
			})
		})
	}
}

func testRandomColor() color.Color {
	return color.RGBA{
		R: uint8(rand.Intn(255)),
		G: uint8(rand.Intn(255)),
		B: uint8(rand.Intn(255)),
		A: 0xFF,
	}
}

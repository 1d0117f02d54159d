package draw

import (
	"image"
	"image/color"
	"testing"

	"github.com/fogleman/gg"

	"github.com/BeatGlow/ssd1306/pixel"
)

func countOn(i image.Image) (n int) {
	b := i.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if pixel.MonoModel.Convert(i.At(x, y)) == pixel.On {
				n++
			}
		}
	}
	return
}

func TestLine(t *testing.T) {
	tests := []struct {
		Name string
		A, B image.Point
		Want int
	}{
		{"point", image.Pt(3, 3), image.Pt(3, 3), 1},
		{"horizontal", image.Pt(0, 0), image.Pt(9, 0), 10},
		{"vertical", image.Pt(4, 9), image.Pt(4, 0), 10},
		{"diagonal", image.Pt(0, 0), image.Pt(7, 7), 8},
		{"steep", image.Pt(0, 0), image.Pt(3, 15), 16},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			i := pixel.NewMonoVerticalLSBImage(32, 32)
			Line(i, test.A, test.B, pixel.On)
			if v := countOn(i); v != test.Want {
				it.Errorf("expected %d pixels, got %d", test.Want, v)
			}
			if i.At(test.A.X, test.A.Y) != pixel.On || i.At(test.B.X, test.B.Y) != pixel.On {
				it.Errorf("expected both end points to be drawn")
			}
		})
	}
}

func TestRectangle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	Rectangle(i, image.Rect(2, 4, 12, 9), pixel.On)

	if v, want := countOn(i), 2*10+2*3; v != want {
		t.Errorf("expected %d outline pixels, got %d", want, v)
	}
	for _, pt := range []image.Point{{2, 4}, {11, 4}, {2, 8}, {11, 8}} {
		if i.At(pt.X, pt.Y) != pixel.On {
			t.Errorf("expected corner %s to be on", pt)
		}
	}
	if i.At(12, 4) != pixel.Off || i.At(2, 9) != pixel.Off {
		t.Error("expected outline to stay inside the rectangle")
	}
	if i.At(5, 6) != pixel.Off {
		t.Error("expected rectangle to be hollow")
	}
}

func TestBox(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	Box(i, image.Rect(1, 1, 5, 4), pixel.On)
	if v := countOn(i); v != 4*3 {
		t.Errorf("expected 12 pixels, got %d", v)
	}
	Box(i, image.Rectangle{}, pixel.On)
	if v := countOn(i); v != 4*3 {
		t.Errorf("expected empty box to draw nothing, got %d pixels", v)
	}
}

func TestFill(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(16, 16)
	Fill(i, image.Rect(12, 12, 20, 20), pixel.On)
	if v := countOn(i); v != 4*4 {
		t.Errorf("expected fill clipped to 16 pixels, got %d", v)
	}
	Fill(i, i.Bounds(), pixel.Off)
	if v := countOn(i); v != 0 {
		t.Errorf("expected image cleared, got %d pixels", v)
	}
}

func TestRoundedBox(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	RoundedBox(i, image.Rect(0, 0, 10, 8), 2, pixel.On)
	for _, pt := range []image.Point{{0, 0}, {9, 0}, {0, 7}, {9, 7}, {10, 4}, {4, 8}} {
		if i.At(pt.X, pt.Y) != pixel.Off {
			t.Errorf("expected %s to be off", pt)
		}
	}
	for _, pt := range []image.Point{{2, 0}, {7, 0}, {0, 2}, {9, 5}, {4, 4}, {2, 7}} {
		if i.At(pt.X, pt.Y) != pixel.On {
			t.Errorf("expected %s to be on", pt)
		}
	}
}

func TestRoundedRectangle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	RoundedRectangle(i, image.Rect(0, 0, 10, 8), 2, pixel.On)
	if i.At(0, 0) != pixel.Off || i.At(4, 4) != pixel.Off {
		t.Error("expected corners cut and a hollow inside")
	}
	for _, pt := range []image.Point{{2, 0}, {7, 0}, {0, 2}, {9, 5}, {4, 7}, {1, 0}, {0, 1}} {
		if i.At(pt.X, pt.Y) != pixel.On {
			t.Errorf("expected %s on the outline", pt)
		}
	}
}

func TestFilledCircle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	FilledCircle(i, image.Pt(16, 16), 3, pixel.On)
	for _, pt := range []image.Point{{16, 16}, {13, 16}, {19, 16}, {16, 13}, {16, 19}, {15, 15}} {
		if i.At(pt.X, pt.Y) != pixel.On {
			t.Errorf("expected %s inside the disc", pt)
		}
	}
	if i.At(13, 13) != pixel.Off || i.At(20, 16) != pixel.Off {
		t.Error("expected pixels outside the disc to be off")
	}
}

func TestCircle(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(32, 32)
	Circle(i, image.Pt(16, 16), 8, pixel.On)
	for _, pt := range []image.Point{{16, 8}, {16, 24}, {8, 16}, {24, 16}} {
		if i.At(pt.X, pt.Y) != pixel.On {
			t.Errorf("expected %s on the circle", pt)
		}
	}
	if i.At(16, 16) != pixel.Off {
		t.Error("expected center to be off")
	}
}

func TestText(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(128, 32)
	dot := Text(i, image.Pt(0, 13), nil, "Hi", color.White)
	if dot.X != 14 {
		t.Errorf("expected dot to advance two 7 pixel glyphs, got %s", dot)
	}
	if countOn(i) == 0 {
		t.Error("expected text to turn pixels on")
	}
	b := TextBounds(image.Pt(0, 13), nil, "Hi")
	if b.Empty() || b.Max.X > 14 {
		t.Errorf("unexpected text bounds %s", b)
	}
}

func TestNewTrueTypeFace(t *testing.T) {
	face, err := NewTrueTypeFace(12)
	if err != nil {
		t.Fatal(err)
	}
	defer face.Close()

	i := pixel.NewMonoVerticalLSBImage(128, 32)
	Text(i, image.Pt(0, 20), face, "Go", color.White)
	if countOn(i) == 0 {
		t.Error("expected text to turn pixels on")
	}
}

func TestVector(t *testing.T) {
	i := pixel.NewMonoVerticalLSBImage(64, 64)
	i.Set(0, 0, pixel.On)
	Vector(i, image.Rect(16, 16, 48, 48), func(dc *gg.Context) {
		dc.DrawRectangle(4, 4, 8, 8)
		dc.SetColor(color.White)
		dc.Fill()
	})
	if i.At(24, 24) != pixel.On {
		t.Error("expected filled rectangle inside the vector area")
	}
	if i.At(18, 18) != pixel.Off {
		t.Error("expected pixels outside the shape to be off")
	}
	if i.At(0, 0) != pixel.On {
		t.Error("expected pixels outside the vector area to be kept")
	}
}

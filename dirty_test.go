package ssd1306

import (
	"image"
	"testing"
)

func TestRegion(t *testing.T) {
	r := EmptyRegion()
	if !r.Empty() {
		t.Fatal("expected new region to be empty")
	}
	if v := r.Rect(); !v.Empty() {
		t.Errorf("expected empty rectangle, got %s", v)
	}

	r.Widen(5, 5)
	if want := (Region{MinX: 5, MaxX: 5, MinY: 5, MaxY: 5}); r != want {
		t.Errorf("expected %s, got %s", want, r)
	}
	r.Widen(2, 9)
	if want := (Region{MinX: 2, MaxX: 5, MinY: 5, MaxY: 9}); r != want {
		t.Errorf("expected %s, got %s", want, r)
	}
	if v, want := r.Rect(), image.Rect(2, 5, 6, 10); v != want {
		t.Errorf("expected rectangle %s, got %s", want, v)
	}

	r.Reset()
	if !r.Empty() {
		t.Error("expected region to be empty after reset")
	}
	r.Widen(0, 0)
	if r.Empty() {
		t.Error("expected (0,0) to be recorded")
	}

	r.Full(128, 64)
	if want := (Region{MinX: 0, MaxX: 127, MinY: 0, MaxY: 63}); r != want {
		t.Errorf("expected %s, got %s", want, r)
	}
}

func TestBands(t *testing.T) {
	var b bands
	b.reset()
	for page := range b {
		if !b[page].empty() {
			t.Fatalf("expected page %d to be empty", page)
		}
	}
	b.mark(2, 40)
	b.mark(2, 10)
	b.mark(2, 20)
	if s := b[2]; s.lo != 10 || s.hi != 40 {
		t.Errorf("expected span 10-40, got %d-%d", s.lo, s.hi)
	}
	b.full(Size128x32)
	if s := b[3]; s.lo != 0 || s.hi != 127 {
		t.Errorf("expected full span, got %d-%d", s.lo, s.hi)
	}
	if !b[4].empty() {
		t.Error("expected pages beyond the panel to stay empty")
	}
}

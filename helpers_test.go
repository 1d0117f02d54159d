package ssd1306

import (
	"bytes"
	"testing"

	"github.com/BeatGlow/ssd1306/emulator"
)

var testRotations = []Rotation{NoRotation, Rotate90, Rotate180, Rotate270}

// newTestGraphics returns an initialized graphics mode on an emulated
// controller with an empty transfer log.
func newTestGraphics(t *testing.T, g Geometry, r Rotation, mode AddrMode) (*Graphics, *emulator.Controller) {
	t.Helper()
	emu := emulator.New(t.Name())
	d, err := New(emu, &Config{Geometry: &g, Rotation: r, AddrMode: mode})
	if err != nil {
		t.Fatal(err)
	}
	if err = d.Init(); err != nil {
		t.Fatal(err)
	}
	emu.ClearLog()
	return NewGraphics(d), emu
}

// ramOf returns the display RAM bytes behind the panel, page by page, in the
// framebuffer layout.
func ramOf(emu *emulator.Controller, g Geometry) []byte {
	var (
		mem  = emu.Memory()
		out  = make([]byte, 0, g.Size())
		poff = g.RowOffset / pageSize
	)
	for page := 0; page < g.Pages(); page++ {
		off := (page+poff)*emulator.Columns + g.ColumnOffset
		out = append(out, mem[off:off+g.Width]...)
	}
	return out
}

func testInSync(t *testing.T, gr *Graphics, emu *emulator.Controller) {
	t.Helper()
	want := gr.FrameBuffer().Bytes()
	if got := ramOf(emu, gr.Geometry()); !bytes.Equal(got, want) {
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("display RAM differs from framebuffer at page %d column %d: %#02x != %#02x",
					i/gr.Geometry().Width, i%gr.Geometry().Width, got[i], want[i])
			}
		}
	}
}

// testTransfers returns the command and data transfers in the log.
func testTransfers(emu *emulator.Controller) (commands, data []emulator.Transfer) {
	for _, t := range emu.Log() {
		if t.Data {
			data = append(data, t)
		} else {
			commands = append(commands, t)
		}
	}
	return
}

package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/BeatGlow/ssd1306"
)

func newTestRunner(t *testing.T, out *bytes.Buffer) *runner {
	t.Helper()
	r, err := newRunner(&ssd1306.Profile{Bus: "emulator", Width: 128, Height: 32}, out)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestRunScript(t *testing.T) {
	var out bytes.Buffer
	r := newTestRunner(t, &out)
	script := `
# corners
pixel 0 0 on
pixel 127 31 on
bounded
line 0 8 9 8
rect 20 0 30 10
text 40 12 "Hi there"
flush
status
show
`
	if err := r.runScript(strings.NewReader(script)); err != nil {
		t.Fatal(err)
	}
	mem := r.emu.Memory()
	if mem[0] != 0x01 || mem[3*128+127] != 0x80 {
		t.Errorf("expected corner pixels on the controller")
	}
	if mem[1*128+9] != 0x01 {
		t.Errorf("expected line end on the controller")
	}
	if !strings.Contains(out.String(), "horizontal addressing") {
		t.Errorf("expected status line, got %q", out.String())
	}
}

func TestRunScriptErrors(t *testing.T) {
	tests := []struct {
		Name   string
		Script string
		Want   string
	}{
		{"unknown", "frobnicate", "line 1: frobnicate: unknown command"},
		{"usage", "\npixel 1", "line 2"},
		{"page mode", "mode page\nflush", "line 2: flush"},
		{"brightness", "brightness 16 0", "out of range"},
		{"preset", "brightness blinding", "unknown brightness"},
		{"quote", `text 0 0 "open`, "line 1"},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			r := newTestRunner(it, new(bytes.Buffer))
			err := r.runScript(strings.NewReader(test.Script))
			if err == nil || !strings.Contains(err.Error(), test.Want) {
				it.Errorf("expected error containing %q, got %v", test.Want, err)
			}
		})
	}

	r := newTestRunner(t, new(bytes.Buffer))
	err := r.runScript(strings.NewReader("mode page\nbounded"))
	if !errors.Is(err, ssd1306.ErrInvalidMode) {
		t.Errorf("expected ErrInvalidMode, got %v", err)
	}
}

package ssd1306

import (
	"fmt"
	"strings"
)

// Brightness is a combination of the precharge period and the contrast level.
type Brightness struct {
	// Precharge is the phase 2 precharge period in DCLKs, 1 to 15.
	Precharge uint8

	// Contrast level.
	Contrast uint8
}

// Brightness presets.
var (
	Dimmest   = Brightness{Precharge: 0x1, Contrast: 0x00}
	Dim       = Brightness{Precharge: 0x2, Contrast: 0x2F}
	Normal    = Brightness{Precharge: 0x2, Contrast: 0x5F}
	Bright    = Brightness{Precharge: 0x2, Contrast: 0x9F}
	Brightest = Brightness{Precharge: 0x2, Contrast: 0xFF}
)

var brightnessPresets = map[string]Brightness{
	"dimmest":   Dimmest,
	"dim":       Dim,
	"normal":    Normal,
	"bright":    Bright,
	"brightest": Brightest,
}

// Valid reports whether the precharge period is in range.
func (b Brightness) Valid() bool {
	return b.Precharge >= 1 && b.Precharge <= 15
}

// ParseBrightness looks up a preset by name.
func ParseBrightness(s string) (Brightness, error) {
	b, ok := brightnessPresets[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return Normal, fmt.Errorf("ssd1306: unknown brightness %q", s)
	}
	return b, nil
}

package ssd1306

import (
	"fmt"
	"strings"
)

// Rotation defines pixel rotation.
type Rotation uint8

// Supported rotations.
const (
	NoRotation Rotation = iota
	Rotate90            // Rotate 90° clock wise
	Rotate180           // Rotate 180°
	Rotate270           // Rotate 270° clock wise
)

// Rotate0 is an alias for NoRotation.
const Rotate0 = NoRotation

func (r Rotation) String() string {
	switch r % 4 {
	case Rotate90:
		return "90°"
	case Rotate180:
		return "180°"
	case Rotate270:
		return "270°"
	default:
		return "0°"
	}
}

// Swapped reports whether width and height trade places.
func (r Rotation) Swapped() bool {
	return r%4 == Rotate90 || r%4 == Rotate270
}

// Remap returns the segment remap and COM output direction bits that realize
// the rotation on the controller.
func (r Rotation) Remap() (segmentRemap, comReversed bool) {
	switch r % 4 {
	case Rotate90:
		return false, true
	case Rotate180:
		return false, false
	case Rotate270:
		return true, false
	default:
		return true, true
	}
}

// ParseRotation parses the rotation names accepted by the command line tools
// and configuration files.
func ParseRotation(s string) (Rotation, error) {
	switch strings.ToLower(strings.TrimSuffix(strings.TrimSpace(s), "°")) {
	case "", "no", "none", "0":
		return NoRotation, nil
	case "90", "right", "cw":
		return Rotate90, nil
	case "180", "flip":
		return Rotate180, nil
	case "270", "left", "ccw":
		return Rotate270, nil
	default:
		return NoRotation, fmt.Errorf("ssd1306: invalid rotation %q", s)
	}
}

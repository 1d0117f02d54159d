package ssd1306

import (
	"fmt"
	"strings"
)

// Command opcodes, see the SSD1306 datasheet chapter 9.
const (
	setLowColumn          = 0x00
	setHighColumn         = 0x10
	setMemoryMode         = 0x20
	setColumnAddr         = 0x21
	setPageAddr           = 0x22
	setScroll             = 0x2E // | enable
	setStartLine          = 0x40
	setContrast           = 0x81
	setChargePump         = 0x8D
	setSegmentRemap       = 0xA0 // | remap
	setDisplayAllOnResume = 0xA4
	setDisplayAllOn       = 0xA5
	setNormalDisplay      = 0xA6
	setInvertDisplay      = 0xA7
	setMultiplexRatio     = 0xA8
	setDisplayOff         = 0xAE
	setDisplayOn          = 0xAF
	setPageStart          = 0xB0
	setComScanInc         = 0xC0
	setComScanDec         = 0xC8
	setDisplayOffset      = 0xD3
	setDisplayClockDiv    = 0xD5
	setPrecharge          = 0xD9
	setComPins            = 0xDA
	setVComDetect         = 0xDB
)

// Fixed command arguments used during initialisation.
const (
	displayClockDiv = 0x80 // oscillator frequency 8, divide ratio 1
	chargePumpOn    = 0x14
	vcomhAuto       = 0x40 // ~0.77 × Vcc
)

// AddrMode is the memory addressing mode of the controller.
type AddrMode byte

// Addressing modes, values as written to the memory mode register.
const (
	Horizontal AddrMode = 0x00
	Vertical   AddrMode = 0x01
	Page       AddrMode = 0x02
)

func (m AddrMode) String() string {
	switch m {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Page:
		return "page"
	default:
		return fmt.Sprintf("AddrMode(%#02x)", byte(m))
	}
}

// Valid reports whether m is one of the three addressing modes; 0x03 is
// reserved by the controller.
func (m AddrMode) Valid() bool {
	return m == Horizontal || m == Vertical || m == Page
}

// Windowed reports whether the mode supports a draw window.
func (m AddrMode) Windowed() bool {
	return m == Horizontal || m == Vertical
}

// ParseAddrMode parses an addressing mode name.
func ParseAddrMode(s string) (AddrMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal", "column":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	case "p", "page":
		return Page, nil
	default:
		return Page, fmt.Errorf("ssd1306: invalid addressing mode %q", s)
	}
}

func remapCommand(remap bool) byte {
	if remap {
		return setSegmentRemap | 0x01
	}
	return setSegmentRemap
}

func comScanCommand(reversed bool) byte {
	if reversed {
		return setComScanDec
	}
	return setComScanInc
}

func prechargeArg(precharge uint8) byte {
	// phase 2 in the high nibble, phase 1 fixed at 1 DCLK
	return (precharge&0x0f)<<4 | 0x01
}

// Package ssd1306 drives SSD1306 monochrome OLED controllers.
//
// The driver keeps a copy of the controller display RAM in memory, tracks the
// part of it that changed and only sends the changed page bands on a bounded
// flush. A Device holds the bus connection, the panel geometry and the
// addressing mode state of the controller; a Graphics takes over a Device and
// adds the framebuffer.
//
// Devices are not safe for concurrent use. Applications drawing and flushing
// from different goroutines must serialize access themselves.
package ssd1306

import (
	"errors"
	"fmt"
	"log"
	"os"
)

var debug bool

func init() {
	debug = os.Getenv("SSD1306_DEBUG") != ""
}

func debugf(format string, args ...any) {
	if debug {
		log.Printf("ssd1306: "+format, args...)
	}
}

// Errors
var (
	ErrInvalidMode     = errors.New("ssd1306: command not valid in current addressing mode")
	ErrOutOfRange      = errors.New("ssd1306: value out of range")
	ErrUnsupportedSize = errors.New("ssd1306: unsupported display size")
)

// Config is the display configuration.
type Config struct {
	// Width of the display in pixels.
	Width int

	// Height of the display in pixels.
	Height int

	// Geometry overrides Width and Height for panels with custom offsets.
	Geometry *Geometry

	// Rotation of the display.
	Rotation Rotation

	// AddrMode is the addressing mode selected by Init.
	AddrMode AddrMode

	// Brightness set by Init, Normal if zero.
	Brightness Brightness
}

// DefaultConfig is a 128x64 panel in horizontal addressing mode.
var DefaultConfig = Config{
	Width:      128,
	Height:     64,
	Rotation:   NoRotation,
	AddrMode:   Horizontal,
	Brightness: Normal,
}

func (config *Config) geometry() (Geometry, error) {
	if config.Geometry != nil {
		g := *config.Geometry
		return g, g.Validate()
	}
	w, h := config.Width, config.Height
	if w == 0 {
		w = DefaultConfig.Width
	}
	if h == 0 {
		h = DefaultConfig.Height
	}
	return GeometryFor(w, h)
}

// Device is a SSD1306 controller on a bus.
//
// The controller starts in page addressing mode after a reset; the local copy
// of the mode only changes after the controller accepted a mode command.
type Device struct {
	c          Conn
	geometry   Geometry
	rotation   Rotation
	mode       AddrMode
	initMode   AddrMode
	brightness Brightness
	halted     bool
}

// New returns a Device talking over conn. No commands are sent until Init.
func New(conn Conn, config *Config) (*Device, error) {
	if config == nil {
		config = new(Config)
		*config = DefaultConfig
	}
	g, err := config.geometry()
	if err != nil {
		return nil, err
	}
	brightness := config.Brightness
	if brightness == (Brightness{}) {
		brightness = Normal
	}
	return &Device{
		c:          conn,
		geometry:   g,
		rotation:   config.Rotation % 4,
		mode:       Page,
		initMode:   config.AddrMode,
		brightness: brightness,
	}, nil
}

func (d *Device) String() string {
	w, h := d.Dimensions()
	return fmt.Sprintf("SSD1306 OLED %dx%d", w, h)
}

// Conn is the bus connection.
func (d *Device) Conn() Conn {
	return d.c
}

// Geometry of the panel.
func (d *Device) Geometry() Geometry {
	return d.geometry
}

// Rotation is the current display rotation.
func (d *Device) Rotation() Rotation {
	return d.rotation
}

// Dimensions returns the display size, taking the rotation into account.
func (d *Device) Dimensions() (w, h int) {
	if d.rotation.Swapped() {
		return d.geometry.Height, d.geometry.Width
	}
	return d.geometry.Width, d.geometry.Height
}

// Close turns the display off and closes the connection.
func (d *Device) Close() error {
	if !d.halted {
		if err := d.DisplayOn(false); err != nil {
			_ = d.c.Close()
			return err
		}
	}
	return d.c.Close()
}

func (d *Device) command(cmds ...byte) error {
	return d.c.Command(cmds...)
}

func (d *Device) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command...); err != nil {
			return
		}
	}
	return
}

package ssd1306

import (
	"errors"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"
)

// Conn errors.
var (
	ErrResetPin = errors.New("ssd1306: reset GPIO pin is invalid")
	ErrDCPin    = errors.New("ssd1306: data/command (DC) GPIO pin is invalid")
)

// Conn is the command channel to the controller.
//
// Errors returned by a Conn are handed to the caller unchanged; the driver
// never retries.
type Conn interface {
	String() string

	// Close the connection.
	Close() error

	// Reset drives the reset line to level.
	Reset(level gpio.Level) error

	// Command sends control bytes, including command arguments.
	Command(cmds ...byte) error

	// Data sends display RAM bytes.
	Data(data ...byte) error
}

// SPI is a Conn on a 4-wire SPI bus.
type SPI interface {
	Conn

	// SetDataLow inverts the data/command line: data is sent with D/C low.
	SetDataLow(bool)

	// SetMode requests a SPI mode.
	SetMode(mode spi.Mode) error

	// SetMaxSpeed requests a SPI clock speed.
	SetMaxSpeed(hz int) error
}

// resetLine is the optional reset pin shared by the bus implementations.
type resetLine struct {
	pin gpio.PinOut
}

func (r resetLine) valid() bool {
	return r.pin != nil && r.pin != gpio.INVALID
}

func (r resetLine) Reset(level gpio.Level) error {
	if !r.valid() {
		return ErrResetPin
	}
	return r.pin.Out(level)
}

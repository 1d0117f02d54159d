package conn

import (
	"errors"
	"fmt"
	"strconv"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
)

// ErrSPIConnected is returned when the mode or speed is changed after the
// first transfer.
var ErrSPIConnected = errors.New("conn: SPI settings can not change after the first transfer")

// SPI is a device on a SPI port. The port is connected with 8 bits per word on
// the first transfer; mode and speed can be changed until then.
type SPI struct {
	port spi.PortCloser
	conn spi.Conn
	mode spi.Mode
	freq physic.Frequency
}

// OpenSPI opens port SPI<bus>.<device> from the host port registry, use a
// negative bus number for the first available port.
func OpenSPI(bus, device int) (*SPI, error) {
	name := ""
	if bus >= 0 {
		name = "SPI" + strconv.Itoa(bus) + "." + strconv.Itoa(device)
	}
	port, err := spireg.Open(name)
	if err != nil {
		return nil, err
	}
	return NewSPI(port), nil
}

// NewSPI wraps an opened port.
func NewSPI(port spi.PortCloser) *SPI {
	return &SPI{port: port, mode: spi.Mode0}
}

func (c *SPI) String() string {
	return fmt.Sprintf("%s %s max speed=%s", c.port, c.mode, c.freq)
}

func (c *SPI) Close() error {
	return c.port.Close()
}

// Mode is the clock polarity and phase used for the connection.
func (c *SPI) Mode() spi.Mode {
	return c.mode
}

// SetMode selects the SPI mode.
func (c *SPI) SetMode(mode spi.Mode) error {
	if c.conn != nil {
		return ErrSPIConnected
	}
	c.mode = mode
	return nil
}

// MaxSpeed is the requested clock speed in Hz, zero if unset.
func (c *SPI) MaxSpeed() int {
	return int(c.freq / physic.Hertz)
}

// SetMaxSpeed requests a clock speed; zero or negative values are ignored.
func (c *SPI) SetMaxSpeed(hz int) error {
	if hz <= 0 {
		return nil
	}
	if c.conn != nil {
		return ErrSPIConnected
	}
	c.freq = physic.Frequency(hz) * physic.Hertz
	return nil
}

// Write sends b in a single half duplex transfer.
func (c *SPI) Write(b []byte) (int, error) {
	if c.conn == nil {
		sc, err := c.port.Connect(c.freq, c.mode, 8)
		if err != nil {
			return 0, err
		}
		c.conn = sc
	}
	if err := c.conn.Tx(b, nil); err != nil {
		return 0, err
	}
	return len(b), nil
}

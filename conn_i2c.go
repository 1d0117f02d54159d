package ssd1306

import (
	"slices"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"

	"github.com/BeatGlow/ssd1306/conn"
)

// I²C control bytes, datasheet 8.1.5.2: Co=0, D/C# selects the payload.
const (
	i2cCommand = 0x00
	i2cData    = 0x40
)

// I2CConfig describes the I²C bus configuration.
type I2CConfig struct {
	// Device is the I²C bus number, -1 selects the first available bus.
	Device int

	// Addr is the 7-bit slave address, 0x3C or 0x3D.
	Addr uint8

	// ChunkSize is the maximum number of data bytes per transaction.
	ChunkSize int

	// Reset pin, optional.
	Reset gpio.PinOut
}

// DefaultI2CConfig are the default configuration values.
var DefaultI2CConfig = I2CConfig{
	Device:    -1,
	Addr:      0x3c,
	ChunkSize: 1024,
}

type i2cConn struct {
	*conn.I2C
	resetLine
	chunkSize int
	buf       []byte
}

// OpenI2C opens the I²C bus from the host bus registry.
func OpenI2C(config *I2CConfig) (Conn, error) {
	if config == nil {
		config = &DefaultI2CConfig
	}
	c, err := conn.OpenI2C(config.Device, config.Addr)
	if err != nil {
		return nil, err
	}
	return newI2CConn(c, config.Reset, config.ChunkSize), nil
}

// NewI2C returns a Conn for the controller at addr on an already opened bus.
func NewI2C(bus i2c.Bus, addr uint16, reset gpio.PinOut) Conn {
	return newI2CConn(conn.NewI2C(bus, addr), reset, DefaultI2CConfig.ChunkSize)
}

func newI2CConn(c *conn.I2C, reset gpio.PinOut, chunkSize int) *i2cConn {
	if chunkSize <= 0 {
		chunkSize = DefaultI2CConfig.ChunkSize
	}
	return &i2cConn{
		I2C:       c,
		resetLine: resetLine{pin: reset},
		chunkSize: chunkSize,
		buf:       make([]byte, 0, chunkSize+1),
	}
}

// Command sends all bytes in one transaction behind a single control byte.
func (c *i2cConn) Command(cmds ...byte) error {
	if len(cmds) == 0 {
		return nil
	}
	return c.send(i2cCommand, cmds)
}

// Data sends the bytes in transactions of at most chunkSize payload bytes.
func (c *i2cConn) Data(data ...byte) error {
	for chunk := range slices.Chunk(data, c.chunkSize) {
		if err := c.send(i2cData, chunk); err != nil {
			return err
		}
	}
	return nil
}

func (c *i2cConn) send(control byte, p []byte) error {
	c.buf = append(append(c.buf[:0], control), p...)
	_, err := c.I2C.Write(c.buf)
	return err
}

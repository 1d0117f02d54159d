package ssd1306

import (
	"fmt"
	"slices"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/spi"

	"github.com/BeatGlow/ssd1306/conn"
)

// SPIConfig describes the SPI bus configuration.
type SPIConfig struct {
	Bus    int
	Device int
	Mode   uint8

	// SpeedHz must be one of ValidSPISpeeds.
	SpeedHz uint32

	// DataLow sends display RAM bytes with D/C low instead of high.
	DataLow bool

	// BatchSize is the maximum number of bytes per spidev write.
	BatchSize uint

	// Reset, DC and CE pins; nil Reset and DC are looked up by their default
	// name when the bus is opened. CE is optional.
	Reset gpio.PinOut
	DC    gpio.PinOut
	CE    gpio.PinOut
}

// DefaultSPIConfig are the default configuration values.
var DefaultSPIConfig = SPIConfig{
	SpeedHz:   8_000_000,
	BatchSize: 4096,
}

// Default SPI pin names.
const (
	DefaultResetPin = "GPIO25"
	DefaultDCPin    = "GPIO24"
)

// ValidSPISpeeds are the SPI bus speeds accepted by OpenSPI. The SSD1306
// serial clock cycle time is 100ns minimum.
var ValidSPISpeeds = []uint32{
	500_000,
	1_000_000,
	2_000_000,
	4_000_000,
	8_000_000,
	10_000_000,
}

// spiBus is the part of conn.SPI used by spiConn.
type spiBus interface {
	String() string
	Close() error
	Write([]byte) (int, error)
	SetMode(spi.Mode) error
	SetMaxSpeed(int) error
}

type spiConn struct {
	bus spiBus
	resetLine
	dc        gpio.PinOut
	cs        gpio.PinOut
	dataLow   bool
	batchSize int

	// last level driven on dc, nil before the first transfer
	dcLevel *gpio.Level
}

// OpenSPI opens a 4-wire SPI connection through spidev. Call host.Init first
// so the default pins can be resolved.
func OpenSPI(config *SPIConfig) (SPI, error) {
	if config == nil {
		config = &DefaultSPIConfig
	}
	cfg := *config

	if cfg.Reset == nil {
		cfg.Reset = gpioreg.ByName(DefaultResetPin)
	}
	if cfg.DC == nil {
		cfg.DC = gpioreg.ByName(DefaultDCPin)
	}
	if cfg.DC == nil || cfg.DC == gpio.INVALID {
		return nil, ErrDCPin
	}
	if cfg.SpeedHz == 0 {
		cfg.SpeedHz = DefaultSPIConfig.SpeedHz
	}
	if !slices.Contains(ValidSPISpeeds, cfg.SpeedHz) {
		return nil, fmt.Errorf("ssd1306: invalid SPI speed %dHz", cfg.SpeedHz)
	}

	bus, err := conn.OpenSPI(cfg.Bus, cfg.Device)
	if err != nil {
		return nil, err
	}
	if err = bus.SetMode(spi.Mode(cfg.Mode)); err == nil {
		err = bus.SetMaxSpeed(int(cfg.SpeedHz))
	}
	if err != nil {
		_ = bus.Close()
		return nil, err
	}
	return newSPIConn(bus, &cfg), nil
}

func newSPIConn(bus spiBus, config *SPIConfig) *spiConn {
	batch := int(config.BatchSize)
	if batch <= 0 {
		batch = int(DefaultSPIConfig.BatchSize)
	}
	return &spiConn{
		bus:       bus,
		resetLine: resetLine{pin: config.Reset},
		dc:        config.DC,
		cs:        config.CE,
		dataLow:   config.DataLow,
		batchSize: batch,
	}
}

func (c *spiConn) String() string {
	return fmt.Sprintf("SPI bus %s", c.bus)
}

func (c *spiConn) Close() error {
	return c.bus.Close()
}

// Command sends control bytes with D/C in command state. Command arguments
// are control bytes too on the SSD1306.
func (c *spiConn) Command(cmds ...byte) error {
	return c.transfer(gpio.Level(c.dataLow), cmds)
}

func (c *spiConn) Data(data ...byte) error {
	return c.transfer(gpio.Level(!c.dataLow), data)
}

// transfer drives D/C, then sends p in batches with chip select held low.
func (c *spiConn) transfer(dc gpio.Level, p []byte) (err error) {
	if len(p) == 0 {
		return nil
	}
	if c.dcLevel == nil || *c.dcLevel != dc {
		if err = c.dc.Out(dc); err != nil {
			return
		}
		c.dcLevel = &dc
	}

	if err = c.selectChip(gpio.Low); err != nil {
		return
	}
	defer func() {
		if release := c.selectChip(gpio.High); err == nil {
			err = release
		}
	}()

	if len(p) > c.batchSize {
		debugf("spi write %d bytes in batches of %d", len(p), c.batchSize)
	}
	for batch := range slices.Chunk(p, c.batchSize) {
		if _, err = c.bus.Write(batch); err != nil {
			return
		}
	}
	return
}

func (c *spiConn) selectChip(level gpio.Level) error {
	if c.cs == nil || c.cs == gpio.INVALID {
		return nil
	}
	return c.cs.Out(level)
}

func (c *spiConn) SetDataLow(v bool) {
	c.dataLow = v
	c.dcLevel = nil
}

func (c *spiConn) SetMode(mode spi.Mode) error {
	return c.bus.SetMode(mode)
}

func (c *spiConn) SetMaxSpeed(hz int) error {
	return c.bus.SetMaxSpeed(hz)
}

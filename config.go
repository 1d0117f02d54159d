package ssd1306

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"

	"github.com/BeatGlow/ssd1306/emulator"
)

// ErrConfigFormat is returned for configuration files of unknown format.
var ErrConfigFormat = errors.New("ssd1306: unknown configuration format")

// Profile is a panel profile as stored in YAML or TOML files.
//
//	bus: i2c
//	width: 72
//	height: 40
//	rotation: 180
//	mode: horizontal
//	brightness: dim
//	i2c:
//	  addr: 0x3d
type Profile struct {
	// Bus is one of i2c, spi or emulator.
	Bus string `yaml:"bus" toml:"bus"`

	Width          int    `yaml:"width" toml:"width"`
	Height         int    `yaml:"height" toml:"height"`
	ColumnOffset   *int   `yaml:"column_offset" toml:"column_offset"`
	RowOffset      *int   `yaml:"row_offset" toml:"row_offset"`
	AlternativeCOM *bool  `yaml:"alternative_com" toml:"alternative_com"`
	SwapCOM        bool   `yaml:"swap_com" toml:"swap_com"`
	Rotation       string `yaml:"rotation" toml:"rotation"`
	Mode           string `yaml:"mode" toml:"mode"`

	// Brightness is a preset name; Precharge and Contrast override it.
	Brightness string `yaml:"brightness" toml:"brightness"`
	Precharge  *uint8 `yaml:"precharge" toml:"precharge"`
	Contrast   *uint8 `yaml:"contrast" toml:"contrast"`

	I2C I2CProfile `yaml:"i2c" toml:"i2c"`
	SPI SPIProfile `yaml:"spi" toml:"spi"`
}

// I2CProfile are the I²C settings of a Profile.
type I2CProfile struct {
	Device    *int   `yaml:"device" toml:"device"`
	Addr      uint8  `yaml:"addr" toml:"addr"`
	ChunkSize int    `yaml:"chunk_size" toml:"chunk_size"`
	Reset     string `yaml:"reset" toml:"reset"`
}

// SPIProfile are the SPI settings of a Profile.
type SPIProfile struct {
	Bus       int    `yaml:"bus" toml:"bus"`
	Device    int    `yaml:"device" toml:"device"`
	Mode      uint8  `yaml:"mode" toml:"mode"`
	SpeedHz   uint32 `yaml:"speed_hz" toml:"speed_hz"`
	DataLow   bool   `yaml:"data_low" toml:"data_low"`
	BatchSize uint   `yaml:"batch_size" toml:"batch_size"`
	Reset     string `yaml:"reset" toml:"reset"`
	DC        string `yaml:"dc" toml:"dc"`
	CE        string `yaml:"ce" toml:"ce"`
}

// LoadConfig reads a profile, the format follows the file extension.
func LoadConfig(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ParseConfig decodes a profile in format yaml, yml or toml, with or without
// a leading dot.
func ParseConfig(data []byte, format string) (*Profile, error) {
	p := new(Profile)
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, err
		}
	case "toml":
		if err := toml.Unmarshal(data, p); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w %q", ErrConfigFormat, format)
	}
	return p, nil
}

// Config converts the panel settings. Unset values keep their DefaultConfig
// value.
func (p *Profile) Config() (*Config, error) {
	config := new(Config)
	*config = DefaultConfig

	if p.Width != 0 {
		config.Width = p.Width
	}
	if p.Height != 0 {
		config.Height = p.Height
	}
	if p.ColumnOffset != nil || p.RowOffset != nil || p.AlternativeCOM != nil || p.SwapCOM {
		g, err := GeometryFor(config.Width, config.Height)
		if err != nil {
			g = Geometry{Width: config.Width, Height: config.Height}
		}
		if p.ColumnOffset != nil {
			g.ColumnOffset = *p.ColumnOffset
		}
		if p.RowOffset != nil {
			g.RowOffset = *p.RowOffset
		}
		if p.AlternativeCOM != nil {
			g.AlternativeCOM = *p.AlternativeCOM
		}
		g.SwapCOM = p.SwapCOM
		if err = g.Validate(); err != nil {
			return nil, err
		}
		config.Geometry = &g
	}

	var err error
	if p.Rotation != "" {
		if config.Rotation, err = ParseRotation(p.Rotation); err != nil {
			return nil, err
		}
	}
	if p.Mode != "" {
		if config.AddrMode, err = ParseAddrMode(p.Mode); err != nil {
			return nil, err
		}
	}
	if p.Brightness != "" {
		if config.Brightness, err = ParseBrightness(p.Brightness); err != nil {
			return nil, err
		}
	}
	if p.Precharge != nil {
		config.Brightness.Precharge = *p.Precharge
	}
	if p.Contrast != nil {
		config.Brightness.Contrast = *p.Contrast
	}
	if !config.Brightness.Valid() {
		return nil, fmt.Errorf("%w: precharge %d", ErrOutOfRange, config.Brightness.Precharge)
	}
	return config, nil
}

// I2CConfig converts the I²C settings. Pin names are looked up in the GPIO
// registry, so the host drivers must be initialized.
func (p *Profile) I2CConfig() (*I2CConfig, error) {
	config := new(I2CConfig)
	*config = DefaultI2CConfig
	if p.I2C.Device != nil {
		config.Device = *p.I2C.Device
	}
	if p.I2C.Addr != 0 {
		config.Addr = p.I2C.Addr
	}
	if p.I2C.ChunkSize != 0 {
		config.ChunkSize = p.I2C.ChunkSize
	}
	var err error
	if config.Reset, err = lookupPin(p.I2C.Reset, config.Reset); err != nil {
		return nil, err
	}
	return config, nil
}

// SPIConfig converts the SPI settings.
func (p *Profile) SPIConfig() (*SPIConfig, error) {
	config := new(SPIConfig)
	*config = DefaultSPIConfig
	config.Bus = p.SPI.Bus
	config.Device = p.SPI.Device
	config.Mode = p.SPI.Mode
	config.DataLow = p.SPI.DataLow
	if p.SPI.SpeedHz != 0 {
		config.SpeedHz = p.SPI.SpeedHz
	}
	if p.SPI.BatchSize != 0 {
		config.BatchSize = p.SPI.BatchSize
	}
	var err error
	if config.Reset, err = lookupPin(p.SPI.Reset, config.Reset); err != nil {
		return nil, err
	}
	if config.DC, err = lookupPin(p.SPI.DC, config.DC); err != nil {
		return nil, err
	}
	if config.CE, err = lookupPin(p.SPI.CE, config.CE); err != nil {
		return nil, err
	}
	return config, nil
}

// Open connects to the bus named by the profile, I²C if empty. The emulator
// bus returns an *emulator.Controller.
func (p *Profile) Open() (Conn, error) {
	switch bus := strings.ToLower(p.Bus); bus {
	case "", "i2c":
		config, err := p.I2CConfig()
		if err != nil {
			return nil, err
		}
		return OpenI2C(config)
	case "spi":
		config, err := p.SPIConfig()
		if err != nil {
			return nil, err
		}
		return OpenSPI(config)
	case "emulator", "emu":
		return emulator.New("emulator"), nil
	default:
		return nil, fmt.Errorf("ssd1306: unsupported bus type %q", bus)
	}
}

func lookupPin(name string, fallback gpio.PinOut) (gpio.PinOut, error) {
	if name == "" {
		return fallback, nil
	}
	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, fmt.Errorf("ssd1306: unknown GPIO pin %q", name)
	}
	return pin, nil
}

package ssd1306

import (
	"bytes"
	"errors"
	"testing"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spitest"

	"github.com/BeatGlow/ssd1306/conn"
)

func TestI2CConn(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: 0x3d, W: []byte{0x00, 0xae, 0xaf}},
			{Addr: 0x3d, W: []byte{0x40, 1, 2, 3, 4}},
			{Addr: 0x3d, W: []byte{0x40, 5, 6, 7, 8}},
			{Addr: 0x3d, W: []byte{0x40, 9, 10}},
		},
		DontPanic: true,
	}
	c := newI2CConn(conn.NewI2C(bus, 0x3d), nil, 4)
	if err := c.Command(0xae, 0xaf); err != nil {
		t.Fatal(err)
	}
	if err := c.Command(); err != nil {
		t.Fatal(err)
	}
	if err := c.Data(1, 2, 3, 4, 5, 6, 7, 8, 9, 10); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestI2CConnError(t *testing.T) {
	bus := &i2ctest.Playback{
		Ops:       []i2ctest.IO{{Addr: 0x3c, W: []byte{0x00, 0xae}}},
		DontPanic: true,
	}
	c := NewI2C(bus, 0x3c, nil)
	// The playback does not expect this write and fails it.
	if err := c.Command(0xaf); err == nil {
		t.Fatal("expected transport error")
	}
}

func TestI2CConnReset(t *testing.T) {
	pin := &gpiotest.Pin{N: "RST", L: gpio.High}
	c := NewI2C(&i2ctest.Playback{DontPanic: true}, 0x3c, pin)
	if err := c.Reset(gpio.Low); err != nil {
		t.Fatal(err)
	}
	if pin.Read() != gpio.Low {
		t.Error("expected reset pin low")
	}
	if err := NewI2C(&i2ctest.Playback{DontPanic: true}, 0x3c, gpio.INVALID).Reset(gpio.Low); !errors.Is(err, ErrResetPin) {
		t.Errorf("expected ErrResetPin, got %v", err)
	}
}

type testSPIWrite struct {
	dc gpio.Level
	cs gpio.Level
	p  []byte
}

type testSPIBus struct {
	dc, cs *gpiotest.Pin
	writes []testSPIWrite
	mode   spi.Mode
	speed  int
	err    error
}

func (b *testSPIBus) String() string { return "testSPIBus" }
func (b *testSPIBus) Close() error   { return nil }

func (b *testSPIBus) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	b.writes = append(b.writes, testSPIWrite{dc: b.dc.Read(), cs: b.cs.Read(), p: append([]byte(nil), p...)})
	return len(p), nil
}

func (b *testSPIBus) SetMode(mode spi.Mode) error {
	b.mode = mode
	return nil
}

func (b *testSPIBus) SetMaxSpeed(hz int) error {
	b.speed = hz
	return nil
}

func TestSPIConn(t *testing.T) {
	for _, dataLow := range []bool{false, true} {
		var (
			dc  = &gpiotest.Pin{N: "DC"}
			cs  = &gpiotest.Pin{N: "CE", L: gpio.High}
			bus = &testSPIBus{dc: dc, cs: cs}
			c   = newSPIConn(bus, &SPIConfig{BatchSize: 4, DataLow: dataLow, DC: dc, CE: cs})
		)
		if err := c.Command(0x21, 0, 127); err != nil {
			t.Fatal(err)
		}
		if err := c.Data(1, 2, 3, 4, 5, 6); err != nil {
			t.Fatal(err)
		}
		if err := c.Data(); err != nil {
			t.Fatal(err)
		}

		command, data := gpio.Low, gpio.High
		if dataLow {
			command, data = data, command
		}
		want := []testSPIWrite{
			{dc: command, cs: gpio.Low, p: []byte{0x21, 0, 127}},
			{dc: data, cs: gpio.Low, p: []byte{1, 2, 3, 4}},
			{dc: data, cs: gpio.Low, p: []byte{5, 6}},
		}
		if len(bus.writes) != len(want) {
			t.Fatalf("data low %t: expected %d writes, got %d", dataLow, len(want), len(bus.writes))
		}
		for i, w := range want {
			got := bus.writes[i]
			if got.dc != w.dc || got.cs != w.cs || !bytes.Equal(got.p, w.p) {
				t.Errorf("data low %t: write %d: expected %+v, got %+v", dataLow, i, w, got)
			}
		}
		if cs.Read() != gpio.High {
			t.Error("expected chip select released")
		}
	}
}

func TestSPIConnTransportError(t *testing.T) {
	var (
		dc   = &gpiotest.Pin{N: "DC"}
		cs   = &gpiotest.Pin{N: "CE", L: gpio.High}
		bang = errors.New("spi timeout")
		bus  = &testSPIBus{dc: dc, cs: cs, err: bang}
		c    = newSPIConn(bus, &SPIConfig{BatchSize: 16, DC: dc, CE: cs})
	)
	if err := c.Data(1, 2, 3); err != bang {
		t.Fatalf("expected transport error, got %v", err)
	}
	if cs.Read() != gpio.High {
		t.Error("expected chip select released after an error")
	}
	if err := c.Reset(gpio.Low); !errors.Is(err, ErrResetPin) {
		t.Errorf("expected ErrResetPin, got %v", err)
	}
	if err := c.SetMode(spi.Mode3); err != nil || bus.mode != spi.Mode3 {
		t.Errorf("expected mode to reach the bus, got %v", err)
	}
}

func TestOpenSPIValidation(t *testing.T) {
	if _, err := OpenSPI(&SPIConfig{DC: gpio.INVALID}); !errors.Is(err, ErrDCPin) {
		t.Errorf("expected ErrDCPin, got %v", err)
	}
	dc := &gpiotest.Pin{N: "DC"}
	if _, err := OpenSPI(&SPIConfig{DC: dc, SpeedHz: 3_000_000}); err == nil {
		t.Error("expected invalid speed to be rejected")
	}
}

func TestSPIConnPort(t *testing.T) {
	var (
		rec = &spitest.Record{}
		dc  = &gpiotest.Pin{N: "DC"}
		bus = conn.NewSPI(rec)
		c   = newSPIConn(bus, &SPIConfig{BatchSize: 4, DC: dc})
	)
	if err := c.SetMode(spi.Mode0); err != nil {
		t.Fatal(err)
	}
	if err := c.SetMaxSpeed(int(DefaultSPIConfig.SpeedHz)); err != nil {
		t.Fatal(err)
	}
	if err := c.Command(0x21, 0, 127); err != nil {
		t.Fatal(err)
	}
	if err := c.Data(1, 2, 3, 4, 5, 6); err != nil {
		t.Fatal(err)
	}
	if dc.Read() != gpio.High {
		t.Error("expected D/C high after data")
	}

	want := [][]byte{{0x21, 0, 127}, {1, 2, 3, 4}, {5, 6}}
	if len(rec.Ops) != len(want) {
		t.Fatalf("expected %d transfers, got %d", len(want), len(rec.Ops))
	}
	for i, w := range want {
		if !bytes.Equal(rec.Ops[i].W, w) {
			t.Errorf("transfer %d: expected % x, got % x", i, w, rec.Ops[i].W)
		}
	}
	if err := c.SetMode(spi.Mode3); !errors.Is(err, conn.ErrSPIConnected) {
		t.Errorf("expected ErrSPIConnected, got %v", err)
	}
}

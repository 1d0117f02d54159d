package ssd1306

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// Init configures the controller in the addressing mode from the Config.
func (d *Device) Init() error {
	return d.InitWithMode(d.initMode)
}

// InitWithMode configures the controller and selects an addressing mode.
//
// The display stays off while clock, multiplex, offsets, charge pump and
// addressing mode are programmed and is switched on last. On a bus error the
// controller may be half configured, Init must be run again.
func (d *Device) InitWithMode(mode AddrMode) (err error) {
	if !d.brightness.Valid() {
		return fmt.Errorf("%w: precharge %d", ErrOutOfRange, d.brightness.Precharge)
	}
	if !mode.Valid() {
		return fmt.Errorf("%w: addressing mode %s", ErrOutOfRange, mode)
	}
	debugf("init %s panel, %s addressing, rotation %s", d.geometry, mode, d.rotation)

	if err = d.commands(
		[]byte{setDisplayOff},
		[]byte{setDisplayClockDiv, displayClockDiv},
		[]byte{setMultiplexRatio, byte(d.geometry.Height - 1)},
		[]byte{setDisplayOffset, 0x00},
		[]byte{setStartLine | 0x00},
		[]byte{setChargePump, chargePumpOn},
		[]byte{setMemoryMode, byte(mode)},
		[]byte{setComPins, d.geometry.comPins()},
	); err != nil {
		return
	}
	if err = d.SetRotation(d.rotation); err != nil {
		return
	}
	if err = d.SetBrightness(d.brightness); err != nil {
		return
	}
	if err = d.commands(
		[]byte{setVComDetect, vcomhAuto},
		[]byte{setDisplayAllOnResume},
		[]byte{setNormalDisplay},
		[]byte{setScroll | 0x00},
		[]byte{setDisplayOn},
	); err != nil {
		return
	}

	d.mode = mode
	d.halted = false
	return nil
}

// SetRotation sends the segment remap and COM direction for the rotation.
func (d *Device) SetRotation(rotation Rotation) error {
	rotation %= 4
	remap, reversed := rotation.Remap()
	if err := d.commands(
		[]byte{remapCommand(remap)},
		[]byte{comScanCommand(reversed)},
	); err != nil {
		return err
	}
	d.rotation = rotation
	return nil
}

// SetBrightness sets the precharge period and contrast level.
func (d *Device) SetBrightness(b Brightness) error {
	if !b.Valid() {
		return fmt.Errorf("%w: precharge %d, must be 1 to 15", ErrOutOfRange, b.Precharge)
	}
	if err := d.commands(
		[]byte{setPrecharge, prechargeArg(b.Precharge)},
		[]byte{setContrast, b.Contrast},
	); err != nil {
		return err
	}
	d.brightness = b
	return nil
}

// SetContrast adjusts the contrast level only.
func (d *Device) SetContrast(level uint8) error {
	if err := d.command(setContrast, level); err != nil {
		return err
	}
	d.brightness.Contrast = level
	return nil
}

// DisplayOn turns the panel on or off. Display RAM is retained while off.
func (d *Device) DisplayOn(on bool) (err error) {
	if on {
		err = d.command(setDisplayOn)
	} else {
		err = d.command(setDisplayOff)
	}
	if err == nil {
		d.halted = !on
	}
	return
}

// Invert toggles inverse video.
func (d *Device) Invert(invert bool) error {
	if invert {
		return d.command(setInvertDisplay)
	}
	return d.command(setNormalDisplay)
}

// EntireOn lights every pixel regardless of display RAM, or resumes showing
// RAM content.
func (d *Device) EntireOn(on bool) error {
	if on {
		return d.command(setDisplayAllOn)
	}
	return d.command(setDisplayAllOnResume)
}

// Reset pulses the reset line. The controller returns to its power on state,
// including page addressing mode; Init must be called afterwards.
func (d *Device) Reset() (err error) {
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	time.Sleep(time.Millisecond)
	if err = d.c.Reset(gpio.Low); err != nil {
		return
	}
	time.Sleep(10 * time.Millisecond)
	if err = d.c.Reset(gpio.High); err != nil {
		return
	}
	d.mode = Page
	return nil
}

// Draw sends raw display RAM bytes at the current controller address.
func (d *Device) Draw(buf []byte) error {
	return d.c.Data(buf...)
}

// Package emulator implements a SSD1306 controller in software.
//
// A Controller decodes the command stream it receives the way the controller
// does and keeps its own display RAM, so it can stand in for a real bus in
// tests and on machines without a display attached.
package emulator

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/conn/v3/gpio"

	"github.com/BeatGlow/ssd1306/pixel"
)

// RAM dimensions.
const (
	Columns = 128
	Pages   = 8
	Rows    = Pages * 8
)

// Addressing modes, as written to the memory mode register.
const (
	Horizontal = 0x00
	Vertical   = 0x01
	Page       = 0x02
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("emulator: controller is closed")

// Transfer is a single Command or Data call.
type Transfer struct {
	Data  bool
	Bytes []byte
}

func (t Transfer) String() string {
	if t.Data {
		return fmt.Sprintf("data % x", t.Bytes)
	}
	return fmt.Sprintf("command % x", t.Bytes)
}

// State are the controller registers.
type State struct {
	Mode         byte
	ColumnStart  int
	ColumnEnd    int
	PageStart    int
	PageEnd      int
	Column       int
	Page         int
	On           bool
	Contrast     byte
	Precharge    byte
	SegmentRemap bool
	COMReversed  bool
	Multiplex    int
	Offset       int
	StartLine    int
	Inverted     bool
	EntireOn     bool
	ChargePump   bool
	Scrolling    bool
	ClockDiv     byte
	COMPins      byte
	VCOMH        byte
}

// power-on register values
var resetState = State{
	Mode:      Page,
	ColumnEnd: Columns - 1,
	PageEnd:   Pages - 1,
	Contrast:  0x7f,
	Precharge: 0x22,
	Multiplex: Rows - 1,
	ClockDiv:  0x80,
	COMPins:   0x12,
	VCOMH:     0x20,
}

// argument count per opcode, opcodes not listed take none
var argCount = map[byte]int{
	0x20: 1, // memory mode
	0x21: 2, // column address
	0x22: 2, // page address
	0x26: 6, // horizontal scroll setup
	0x27: 6,
	0x29: 5, // vertical and horizontal scroll setup
	0x2a: 5,
	0x81: 1, // contrast
	0x8d: 1, // charge pump
	0xa3: 2, // vertical scroll area
	0xa8: 1, // multiplex
	0xd3: 1, // display offset
	0xd5: 1, // clock divide
	0xd9: 1, // precharge
	0xda: 1, // COM pins
	0xdb: 1, // VCOMH deselect
}

// Controller is an emulated SSD1306. It implements the Conn interface of the
// driver.
type Controller struct {
	name    string
	ram     [Pages][Columns]byte
	state   State
	pending []byte
	log     []Transfer
	reset   gpio.Level
	closed  bool

	failIn  int
	failErr error
}

// New returns a controller in its power-on state.
func New(name string) *Controller {
	if name == "" {
		name = "emulator"
	}
	return &Controller{
		name:   name,
		state:  resetState,
		reset:  gpio.High,
		failIn: -1,
	}
}

func (c *Controller) String() string {
	return c.name
}

// Close marks the controller closed; later transfers fail with ErrClosed.
func (c *Controller) Close() error {
	c.closed = true
	return nil
}

// Reset drives the emulated reset pin. Releasing the pin after holding it low
// restores the power-on registers; display RAM is kept.
func (c *Controller) Reset(level gpio.Level) error {
	if err := c.fail(); err != nil {
		return err
	}
	if c.reset == gpio.Low && level == gpio.High {
		c.state = resetState
		c.pending = c.pending[:0]
	}
	c.reset = level
	return nil
}

// FailAfter makes the transfer after n successful ones return err, once.
func (c *Controller) FailAfter(n int, err error) {
	c.failIn, c.failErr = n, err
}

func (c *Controller) fail() error {
	if c.closed {
		return ErrClosed
	}
	switch {
	case c.failIn < 0:
		return nil
	case c.failIn == 0:
		c.failIn = -1
		return c.failErr
	default:
		c.failIn--
		return nil
	}
}

// Command decodes control bytes. Arguments may arrive in later calls.
func (c *Controller) Command(cmds ...byte) error {
	if err := c.fail(); err != nil {
		return err
	}
	c.record(false, cmds)
	for _, b := range cmds {
		c.pending = append(c.pending, b)
		if len(c.pending) > argCount[c.pending[0]] {
			c.execute(c.pending[0], c.pending[1:])
			c.pending = c.pending[:0]
		}
	}
	return nil
}

// Data writes display RAM at the current pointer and advances it.
func (c *Controller) Data(data ...byte) error {
	if err := c.fail(); err != nil {
		return err
	}
	c.record(true, data)
	for _, b := range data {
		c.ram[c.state.Page][c.state.Column] = b
		c.advance()
	}
	return nil
}

func (c *Controller) record(data bool, p []byte) {
	c.log = append(c.log, Transfer{Data: data, Bytes: append([]byte(nil), p...)})
}

func (c *Controller) execute(op byte, args []byte) {
	s := &c.state
	switch {
	case op <= 0x0f:
		s.Column = s.Column&0xf0 | int(op&0x0f)
	case op <= 0x1f:
		s.Column = s.Column&0x0f | int(op&0x07)<<4
	case op == 0x20:
		s.Mode = args[0] & 0x03
	case op == 0x21:
		s.ColumnStart, s.ColumnEnd = int(args[0]&0x7f), int(args[1]&0x7f)
		s.Column = s.ColumnStart
	case op == 0x22:
		s.PageStart, s.PageEnd = int(args[0]&0x07), int(args[1]&0x07)
		s.Page = s.PageStart
	case op == 0x2e:
		s.Scrolling = false
	case op == 0x2f:
		s.Scrolling = true
	case op >= 0x40 && op <= 0x7f:
		s.StartLine = int(op & 0x3f)
	case op == 0x81:
		s.Contrast = args[0]
	case op == 0x8d:
		s.ChargePump = args[0]&0x04 != 0
	case op == 0xa0, op == 0xa1:
		s.SegmentRemap = op&1 != 0
	case op == 0xa4, op == 0xa5:
		s.EntireOn = op&1 != 0
	case op == 0xa6, op == 0xa7:
		s.Inverted = op&1 != 0
	case op == 0xa8:
		s.Multiplex = int(args[0] & 0x3f)
	case op == 0xae, op == 0xaf:
		s.On = op&1 != 0
	case op >= 0xb0 && op <= 0xb7:
		s.Page = int(op & 0x07)
	case op == 0xc0:
		s.COMReversed = false
	case op == 0xc8:
		s.COMReversed = true
	case op == 0xd3:
		s.Offset = int(args[0] & 0x3f)
	case op == 0xd5:
		s.ClockDiv = args[0]
	case op == 0xd9:
		s.Precharge = args[0]
	case op == 0xda:
		s.COMPins = args[0]
	case op == 0xdb:
		s.VCOMH = args[0]
	}
}

func (c *Controller) advance() {
	s := &c.state
	switch s.Mode {
	case Horizontal:
		if s.Column++; s.Column > s.ColumnEnd {
			s.Column = s.ColumnStart
			if s.Page++; s.Page > s.PageEnd {
				s.Page = s.PageStart
			}
		}
	case Vertical:
		if s.Page++; s.Page > s.PageEnd {
			s.Page = s.PageStart
			if s.Column++; s.Column > s.ColumnEnd {
				s.Column = s.ColumnStart
			}
		}
	default:
		// Page mode wraps within the page.
		if s.Column++; s.Column >= Columns {
			s.Column = 0
		}
	}
}

// State returns the registers.
func (c *Controller) State() State {
	return c.state
}

// Pending reports whether a command is waiting for more argument bytes.
func (c *Controller) Pending() bool {
	return len(c.pending) > 0
}

// Memory returns a copy of the display RAM, page by page.
func (c *Controller) Memory() []byte {
	out := make([]byte, 0, Pages*Columns)
	for page := range c.ram {
		out = append(out, c.ram[page][:]...)
	}
	return out
}

// Fill sets every display RAM byte to v.
func (c *Controller) Fill(v byte) {
	for page := range c.ram {
		for col := range c.ram[page] {
			c.ram[page][col] = v
		}
	}
}

// Log returns the transfers since the last ClearLog.
func (c *Controller) Log() []Transfer {
	return c.log
}

// ClearLog empties the transfer log.
func (c *Controller) ClearLog() {
	c.log = c.log[:0]
}

// Image returns the display RAM inside r, in RAM pixel coordinates, as an
// image with its origin at r.Min.
func (c *Controller) Image(r image.Rectangle) *pixel.MonoVerticalLSBImage {
	r = r.Intersect(image.Rect(0, 0, Columns, Rows))
	img := pixel.NewMonoVerticalLSBImage(r.Dx(), r.Dy())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if c.bit(x, y) {
				img.Set(x-r.Min.X, y-r.Min.Y, pixel.On)
			}
		}
	}
	return img
}

// Panel returns what the glass shows for the RAM window r: segment remap,
// COM direction, start line, inversion and the display switch applied. With
// remap set and the COM scan reversed the panel shows RAM as is.
func (c *Controller) Panel(r image.Rectangle) *pixel.MonoVerticalLSBImage {
	r = r.Intersect(image.Rect(0, 0, Columns, Rows))
	var (
		s   = c.state
		w   = r.Dx()
		h   = r.Dy()
		img = pixel.NewMonoVerticalLSBImage(w, h)
	)
	if !s.On {
		return img
	}
	for gy := 0; gy < h; gy++ {
		for gx := 0; gx < w; gx++ {
			x, y := gx, gy
			if !s.SegmentRemap {
				x = w - 1 - gx
			}
			if !s.COMReversed {
				y = h - 1 - gy
			}
			on := s.EntireOn || c.bit(r.Min.X+x, r.Min.Y+(y+s.StartLine)%h)
			if on != s.Inverted {
				img.Set(gx, gy, pixel.On)
			}
		}
	}
	return img
}

func (c *Controller) bit(x, y int) bool {
	return c.ram[y/8][x]&(1<<uint(y%8)) != 0
}

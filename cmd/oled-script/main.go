// Command oled-script runs drawing scripts against a SSD1306 display.
//
// Every line is a command with its arguments, quoted the way a shell would:
//
//	mode horizontal
//	clear
//	rect 0 0 128 64
//	text 4 14 "hello, world"  # bitmap font
//	pixel 127 63 on
//	bounded
//	show
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ssd1306"
	"github.com/BeatGlow/ssd1306/draw"
	"github.com/BeatGlow/ssd1306/emulator"
	"github.com/BeatGlow/ssd1306/pixel"
)

func main() {
	configFlag := flag.String("config", "", "Panel profile (.yaml or .toml)")
	busFlag := flag.String("bus", "", "Bus type: i2c, spi or emulator (default: from profile, else emulator)")
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [script]\n", os.Args[0])
		os.Exit(1)
	}

	profile := new(ssd1306.Profile)
	if *configFlag != "" {
		var err error
		if profile, err = ssd1306.LoadConfig(*configFlag); err != nil {
			fatal(err)
		}
	}
	if *busFlag != "" {
		profile.Bus = *busFlag
	} else if profile.Bus == "" {
		profile.Bus = "emulator"
	}
	if *widthFlag != 0 {
		profile.Width = *widthFlag
	}
	if *heightFlag != 0 {
		profile.Height = *heightFlag
	}
	if *rotateFlag != "" {
		profile.Rotation = *rotateFlag
	}

	var script io.Reader = os.Stdin
	if flag.NArg() == 1 && flag.Arg(0) != "-" {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			fatal(err)
		}
		defer f.Close()
		script = f
	}

	if profile.Bus != "emulator" {
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
	}

	r, err := newRunner(profile, os.Stdout)
	if err != nil {
		fatal(err)
	}
	defer r.gr.Close()

	if err = r.runScript(script); err != nil {
		fatal(err)
	}
}

type runner struct {
	gr      *ssd1306.Graphics
	emu     *emulator.Controller
	preview *emulator.Preview
	out     io.Writer
}

func newRunner(profile *ssd1306.Profile, out io.Writer) (*runner, error) {
	config, err := profile.Config()
	if err != nil {
		return nil, err
	}
	conn, err := profile.Open()
	if err != nil {
		return nil, err
	}
	d, err := ssd1306.New(conn, config)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err = d.Init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	r := &runner{
		gr:  ssd1306.NewGraphics(d),
		out: out,
	}
	if r.emu, _ = conn.(*emulator.Controller); r.emu != nil {
		r.preview = emulator.NewPreview(&emulator.PreviewOpts{Writer: out})
	}
	return r, nil
}

func (r *runner) runScript(script io.Reader) error {
	s := bufio.NewScanner(script)
	for line := 1; s.Scan(); line++ {
		args, err := shlex.Split(s.Text())
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if len(args) == 0 {
			continue
		}
		if err = r.run(args[0], args[1:]); err != nil {
			return fmt.Errorf("line %d: %s: %w", line, args[0], err)
		}
	}
	return s.Err()
}

var errUsage = errors.New("invalid arguments")

func (r *runner) run(cmd string, args []string) error {
	cmd = strings.ToLower(cmd)
	switch cmd {
	case "pixel":
		if len(args) != 3 {
			return errUsage
		}
		v, err := ints(args[:2], 2)
		if err != nil {
			return err
		}
		on, err := parseSwitch(args[2])
		if err != nil {
			return err
		}
		r.gr.SetPixel(v[0], v[1], on)
	case "clear":
		r.gr.Clear()
	case "flush":
		return r.gr.Flush()
	case "bounded":
		return r.gr.BoundedFlush()
	case "mode":
		if len(args) != 1 {
			return errUsage
		}
		mode, err := ssd1306.ParseAddrMode(args[0])
		if err != nil {
			return err
		}
		return r.gr.ChangeMode(mode)
	case "rotate":
		if len(args) != 1 {
			return errUsage
		}
		rotation, err := ssd1306.ParseRotation(args[0])
		if err != nil {
			return err
		}
		return r.gr.SetRotation(rotation)
	case "brightness":
		if len(args) == 1 {
			b, err := ssd1306.ParseBrightness(args[0])
			if err != nil {
				return err
			}
			return r.gr.SetBrightness(b)
		}
		v, err := ints(args, 2)
		if err != nil {
			return err
		}
		if v[0] < 0 || v[0] > 0xff || v[1] < 0 || v[1] > 0xff {
			return ssd1306.ErrOutOfRange
		}
		return r.gr.SetBrightness(ssd1306.Brightness{Precharge: uint8(v[0]), Contrast: uint8(v[1])})
	case "line":
		v, err := ints(args, 4)
		if err != nil {
			return err
		}
		draw.Line(r.gr, image.Pt(v[0], v[1]), image.Pt(v[2], v[3]), pixel.On)
	case "rect", "box":
		v, err := ints(args, 4)
		if err != nil {
			return err
		}
		rect := image.Rect(v[0], v[1], v[2], v[3])
		if cmd == "box" {
			draw.Box(r.gr, rect, pixel.On)
		} else {
			draw.Rectangle(r.gr, rect, pixel.On)
		}
	case "circle":
		v, err := ints(args, 3)
		if err != nil {
			return err
		}
		draw.Circle(r.gr, image.Pt(v[0], v[1]), v[2], pixel.On)
	case "text":
		if len(args) != 3 {
			return errUsage
		}
		v, err := ints(args[:2], 2)
		if err != nil {
			return err
		}
		draw.Text(r.gr, image.Pt(v[0], v[1]), nil, args[2], pixel.On)
	case "invert":
		if len(args) != 1 {
			return errUsage
		}
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return r.gr.Invert(on)
	case "display":
		if len(args) != 1 {
			return errUsage
		}
		on, err := parseSwitch(args[0])
		if err != nil {
			return err
		}
		return r.gr.DisplayOn(on)
	case "sleep":
		if len(args) != 1 {
			return errUsage
		}
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return err
		}
		time.Sleep(d)
	case "status":
		w, h := r.gr.Dimensions()
		fmt.Fprintf(r.out, "%s: %dx%d, rotation %s, %s addressing, dirty %s\n",
			r.gr.Conn(), w, h, r.gr.Rotation(), r.gr.AddrMode(), r.gr.Dirty())
	case "show":
		if r.preview == nil {
			return errors.New("only the emulator can be shown")
		}
		return r.preview.Render(r.emu.Panel(r.gr.Geometry().RAM()), false)
	default:
		return errors.New("unknown command")
	}
	return nil
}

func ints(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, errUsage
	}
	v := make([]int, n)
	for i, arg := range args {
		var err error
		if v[i], err = strconv.Atoi(arg); err != nil {
			return nil, err
		}
	}
	return v, nil
}

func parseSwitch(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "on", "1", "true":
		return true, nil
	case "off", "0", "false":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", s)
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"math"
	"os"
	"time"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/ssd1306"
	"github.com/BeatGlow/ssd1306/draw"
	"github.com/BeatGlow/ssd1306/emulator"
	"github.com/BeatGlow/ssd1306/pixel"
)

func main() {
	configFlag := flag.String("config", "", "Panel profile (.yaml or .toml)")
	widthFlag := flag.Int("width", 0, "Display width")
	heightFlag := flag.Int("height", 0, "Display height")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	modeFlag := flag.String("mode", "", "Addressing mode (horizontal or vertical)")
	brightnessFlag := flag.String("brightness", "", "Brightness preset")
	i2cDeviceFlag := flag.Int("i2c-dev", ssd1306.DefaultI2CConfig.Device, "I²C device number (default: use first available)")
	i2cAddrFlag := flag.Uint("i2c-addr", uint(ssd1306.DefaultI2CConfig.Addr), "I²C device address")
	spiBusFlag := flag.Int("spi-bus", 0, "SPI bus")
	spiDeviceFlag := flag.Int("spi-dev", 0, "SPI device")
	resetPinFlag := flag.String("reset", "", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "", "Data/Command GPIO pin (DC)")
	cePinFlag := flag.String("ce", "", "Chip enable GPIO pin")
	ttfFlag := flag.Float64("ttf", 0, "Use the Go TrueType font at this size instead of the bitmap font")
	framesFlag := flag.Int("frames", 0, "Stop after this many frames (default: run until interrupted)")
	intervalFlag := flag.Duration("interval", 50*time.Millisecond, "Frame interval")
	flag.Parse()

	if flag.NArg() > 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [i2c|spi|emulator]\n", os.Args[0])
		os.Exit(1)
	}

	profile := new(ssd1306.Profile)
	if *configFlag != "" {
		var err error
		if profile, err = ssd1306.LoadConfig(*configFlag); err != nil {
			fatal(err)
		}
	}
	if flag.NArg() == 1 {
		profile.Bus = flag.Arg(0)
	}

	// Flags override the profile.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "width":
			profile.Width = *widthFlag
		case "height":
			profile.Height = *heightFlag
		case "rotate":
			profile.Rotation = *rotateFlag
		case "mode":
			profile.Mode = *modeFlag
		case "brightness":
			profile.Brightness = *brightnessFlag
		case "i2c-dev":
			profile.I2C.Device = i2cDeviceFlag
		case "i2c-addr":
			profile.I2C.Addr = uint8(*i2cAddrFlag)
		case "spi-bus":
			profile.SPI.Bus = *spiBusFlag
		case "spi-dev":
			profile.SPI.Device = *spiDeviceFlag
		case "reset":
			profile.I2C.Reset, profile.SPI.Reset = *resetPinFlag, *resetPinFlag
		case "dc":
			profile.SPI.DC = *dcPinFlag
		case "ce":
			profile.SPI.CE = *cePinFlag
		}
	})

	if profile.Bus != "emulator" {
		if _, err := host.Init(); err != nil {
			fatal(err)
		}
	}

	config, err := profile.Config()
	if err != nil {
		fatal(err)
	}
	if config.AddrMode == ssd1306.Page {
		fatal(errors.New("the demo draws through a window, use horizontal or vertical addressing"))
	}

	conn, err := profile.Open()
	if err != nil {
		fatal(err)
	}
	fmt.Printf("using connection: %s\n", conn)

	d, err := ssd1306.New(conn, config)
	if err != nil {
		fatal(err)
	}

	if err = d.Reset(); err != nil && !errors.Is(err, ssd1306.ErrResetPin) {
		fatal(err)
	}
	if err = d.Init(); err != nil {
		fatal(err)
	}
	fmt.Printf("using driver: %s (%s addressing, rotation %s)\n", d, d.AddrMode(), d.Rotation())

	var face font.Face
	if *ttfFlag > 0 {
		if face, err = draw.NewTrueTypeFace(*ttfFlag); err != nil {
			fatal(err)
		}
		defer face.Close()
	}

	var (
		output  = ssd1306.NewGraphics(d)
		emu, _  = conn.(*emulator.Controller)
		preview *emulator.Preview
	)
	defer output.Close()
	if emu != nil {
		preview = emulator.NewPreview(nil)
		defer preview.Halt()
	}
	show := func() {
		if preview == nil {
			return
		}
		if err := preview.Render(emu.Panel(output.Geometry().RAM()), true); err != nil {
			fatal(err)
		}
	}

	r := output.Bounds()
	output.Clear()

	// Draw box around edge
	draw.Rectangle(output, r, pixel.On)
	draw.Text(output, image.Pt(4, 14), face, "SSD1306", pixel.On)
	gauge := image.Rect(r.Max.X/2, 2, r.Max.X-2, r.Max.Y-2)
	if err = output.Flush(); err != nil {
		fatal(err)
	}
	show()

	fmt.Println("hit control-c to stop...")
	var (
		ticker = time.NewTicker(*intervalFlag)
		ball   = image.Rect(3, r.Max.Y-10, 9, r.Max.Y-4)
		dx     = 1
	)
	defer ticker.Stop()
	for frame := 0; *framesFlag == 0 || frame < *framesFlag; frame++ {
		// Moving ball along the bottom, only its trail and new position change.
		draw.Fill(output, ball, pixel.Off)
		if ball.Max.X+dx > gauge.Min.X-1 || ball.Min.X+dx < 2 {
			dx = -dx
		}
		ball = ball.Add(image.Pt(dx, 0))
		draw.RoundedBox(output, ball, 2, pixel.On)

		// Rotating needle in the gauge.
		angle := float64(frame) * math.Pi / 30
		draw.Fill(output, gauge, pixel.Off)
		draw.Vector(output, gauge, func(dc *gg.Context) {
			w, h := float64(gauge.Dx()), float64(gauge.Dy())
			cx, cy, radius := w/2, h/2, math.Min(w, h)/2-1
			dc.SetRGB(1, 1, 1)
			dc.SetLineWidth(1)
			dc.DrawCircle(cx, cy, radius)
			dc.Stroke()
			dc.DrawLine(cx, cy, cx+radius*math.Cos(angle), cy+radius*math.Sin(angle))
			dc.Stroke()
		})

		if err = output.BoundedFlush(); err != nil {
			fatal(err)
		}
		show()
		<-ticker.C
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

package emulator

import (
	"bytes"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"

	"github.com/BeatGlow/ssd1306/pixel"
)

// PreviewOpts are the options of a Preview.
type PreviewOpts struct {
	// Palette used to pick terminal colors, ansi256.Default if nil.
	Palette *ansi256.Palette

	// On and Off are the lit and dark pixel colors.
	On, Off color.Color

	// Writer receives the output, colorized stdout if nil.
	Writer io.Writer
}

// DefaultOn is the color of a lit pixel.
var DefaultOn color.Color = color.NRGBA{R: 0xc8, G: 0xe8, B: 0xff, A: 0xff}

// Preview prints monochrome images to a terminal with ANSI color blocks, one
// block per pixel.
type Preview struct {
	w       io.Writer
	on, off string
	buf     bytes.Buffer
}

// NewPreview returns a Preview writing to opts.Writer.
func NewPreview(opts *PreviewOpts) *Preview {
	if opts == nil {
		opts = new(PreviewOpts)
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	w := opts.Writer
	if w == nil {
		w = colorable.NewColorableStdout()
	}
	on, off := opts.On, opts.Off
	if on == nil {
		on = DefaultOn
	}
	if off == nil {
		off = color.Black
	}
	return &Preview{
		w:   w,
		on:  p.Block(nrgba(on)),
		off: p.Block(nrgba(off)),
	}
}

func nrgba(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}

func (p *Preview) String() string {
	return "Preview"
}

// Render writes img, moving the cursor back to the top first when home is
// set so frames overwrite each other.
func (p *Preview) Render(img image.Image, home bool) error {
	b := img.Bounds()
	p.buf.Reset()
	if home {
		_, _ = p.buf.WriteString("\033[H")
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		_, _ = p.buf.WriteString("\033[0m")
		for x := b.Min.X; x < b.Max.X; x++ {
			if pixel.MonoModel.Convert(img.At(x, y)) == pixel.On {
				_, _ = p.buf.WriteString(p.on)
			} else {
				_, _ = p.buf.WriteString(p.off)
			}
		}
		_, _ = p.buf.WriteString("\033[0m\n")
	}
	_, err := p.buf.WriteTo(p.w)
	return err
}

// Halt resets the terminal colors.
func (p *Preview) Halt() error {
	_, err := io.WriteString(p.w, "\033[0m")
	return err
}

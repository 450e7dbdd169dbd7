package ansi

import (
	"io"
	"strings"

	"github.com/gookit/color"
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/engine/render"
)

// Palette holds the colors of DOS text mode (VGA).
var Palette = [16]color.RGBColor{
	color.RGB(0x00, 0x00, 0x00), // black
	color.RGB(0x00, 0x00, 0xAA), // blue
	color.RGB(0x00, 0xAA, 0x00), // green
	color.RGB(0x00, 0xAA, 0xAA), // cyan
	color.RGB(0xAA, 0x00, 0x00), // red
	color.RGB(0xAA, 0x00, 0xAA), // magenta
	color.RGB(0xAA, 0x55, 0x00), // brown
	color.RGB(0xAA, 0xAA, 0xAA), // light gray
	color.RGB(0x55, 0x55, 0x55), // dark gray
	color.RGB(0x55, 0x55, 0xFF), // light blue
	color.RGB(0x55, 0xFF, 0x55), // light green
	color.RGB(0x55, 0xFF, 0xFF), // light cyan
	color.RGB(0xFF, 0x55, 0x55), // light red
	color.RGB(0xFF, 0x55, 0xFF), // light magenta
	color.RGB(0xFF, 0xFF, 0x55), // yellow
	color.RGB(0xFF, 0xFF, 0xFF), // white
}

// Screen is a render sink for terminals. Glyphs are placed side by side, as
// with render.BufferSink.
type Screen struct {
	render.BufferSink
	FG, BG font.Color // defaults for cells without colors, may be NoColor
	Plain  bool       // output characters only, without escape sequences
}

var _ render.Sink = (*Screen)(nil)

// NewScreen creates a screen with default colors fg and bg. Use
// font.NoColor to keep the terminal's colors.
func NewScreen(fg, bg font.Color) (*Screen, error) {
	for _, c := range []font.Color{fg, bg} {
		if c < font.NoColor || c > 15 {
			return nil, core.Error(core.EINVALID, "color %d not in 0…15", c)
		}
	}
	return &Screen{FG: fg, BG: bg}, nil
}

// String returns the buffered lines with escape sequences. Consecutive cells
// of equal attributes share one escape sequence; attributes are reset at the
// end of every line which set any.
func (s *Screen) String() string {
	if s.Plain {
		return s.BufferSink.String()
	}
	var sb strings.Builder
	for i, line := range s.Lines(s.BG.IsSet()) {
		if i > 0 {
			sb.WriteByte('\n')
		}
		current := ""
		for _, cell := range line {
			if code := s.sgr(cell); code != current {
				if current != "" {
					sb.WriteString(color.ResetSet)
				}
				if code != "" {
					sb.WriteString(color.StartSet + code + "m")
				}
				current = code
			}
			sb.WriteRune(cell.Ch)
		}
		if current != "" {
			sb.WriteString(color.ResetSet)
		}
	}
	return sb.String()
}

// WriteTo writes the buffered lines to w, terminated by a newline.
func (s *Screen) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String()+"\n")
	tracer().Debugf("wrote %d lines (%d bytes) to terminal", s.Height(), n)
	return int64(n), err
}

// sgr returns the SGR parameters for a cell, or "" for a cell without
// attributes.
func (s *Screen) sgr(cell font.Cell) string {
	fg, bg := cell.FG, cell.BG
	if !fg.IsSet() {
		fg = s.FG
	}
	if !bg.IsSet() {
		bg = s.BG
	}
	if !fg.IsSet() && !bg.IsSet() && !cell.Blink && !cell.Bold {
		return ""
	}
	style := &color.RGBStyle{}
	if fg.IsSet() {
		style.SetFg(Palette[fg&0x0F])
	}
	if bg.IsSet() {
		style.SetBg(Palette[bg&0x0F])
	}
	if cell.Bold {
		style.AddOpts(color.OpBold)
	}
	if cell.Blink {
		style.AddOpts(color.OpBlink)
	}
	return style.String()
}

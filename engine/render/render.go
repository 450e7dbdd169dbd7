package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/uax/grapheme"
)

// Sink receives the cells of rendered glyphs.
//
// Errors returned by a sink stop rendering immediately and are returned to
// the caller unchanged. Cells already drawn are not retracted.
type Sink interface {
	Draw(font.Cell) error // draw a cell at the current position
	NextLine() error      // move to the next line of the current glyph
	NextChar() error      // move on to the position of the next glyph
}

// Mode selects how glyph markers are rendered.
type Mode int

// Render modes.
const (
	Display Mode = iota // markers are invisible
	Edit                // markers are revealed
)

func (m Mode) String() string {
	switch m {
	case Display:
		return "display"
	case Edit:
		return "edit"
	}
	return "Mode(" + strconv.Itoa(int(m)) + ")"
}

// ParseMode parses "display" or "edit".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "display", "":
		return Display, nil
	case "edit":
		return Edit, nil
	}
	return Display, core.Error(core.EINVALID, "unknown render mode %q", s)
}

// Markers used in edit mode.
const (
	EditHardBlank   = '·'
	EditFillMarker  = '@'
	EditOutlineHole = 'O'
	EditEndMarker   = '&'
)

// Options control rendering.
type Options struct {
	Mode         Mode
	OutlineStyle int  // 0…18
	Strict       bool // fail for characters missing from a font
	RawOutline   bool // draw outline placeholders as their letters
}

// Validate checks the options. Outline styles are never clamped, a style
// outside 0…18 is an error.
func (opts Options) Validate() error {
	if opts.OutlineStyle < 0 || opts.OutlineStyle >= OutlineStyles {
		return core.WrapError(ErrOutlineStyle, core.EINVALID,
			"outline style %d not in 0…%d", opts.OutlineStyle, OutlineStyles-1)
	}
	if opts.Mode != Display && opts.Mode != Edit {
		return core.Error(core.EINVALID, "unknown render mode %d", opts.Mode)
	}
	return nil
}

// OptionsFromConfig reads render options from a configuration.
// Keys are 'render.mode' (display|edit), 'render.outline' (0…18) and
// 'render.strict' (boolean). Missing keys leave the defaults in place.
func OptionsFromConfig(conf schuko.Configuration) (Options, error) {
	opts := Options{}
	if conf == nil {
		return opts, nil
	}
	var err error
	if opts.Mode, err = ParseMode(conf.GetString("render.mode")); err != nil {
		return opts, err
	}
	if s := strings.TrimSpace(conf.GetString("render.outline")); s != "" {
		if opts.OutlineStyle, err = strconv.Atoi(s); err != nil {
			return opts, core.WrapError(err, core.EINVALID, "configuration render.outline: %q is not a number", s)
		}
	}
	if s := strings.TrimSpace(conf.GetString("render.strict")); s != "" {
		if opts.Strict, err = strconv.ParseBool(s); err != nil {
			return opts, core.WrapError(err, core.EINVALID, "configuration render.strict: %q is not a boolean", s)
		}
	}
	return opts, opts.Validate()
}

// Cursor is the position within a glyph, relative to the glyph's upper left
// corner.
type Cursor struct {
	Line, Column int
}

func (c Cursor) String() string {
	return fmt.Sprintf("(%d,%d)", c.Line, c.Column)
}

// Glyph renders a glyph to a sink and returns the cursor position after the
// last part.
func Glyph(sink Sink, g *font.Glyph, opts Options) (Cursor, error) {
	var cur Cursor
	if err := opts.Validate(); err != nil {
		return cur, err
	}
	if g == nil {
		return cur, nil
	}
	edit := opts.Mode == Edit
	for _, p := range g.Parts {
		var cell font.Cell
		switch p.Kind {
		case font.CharPart:
			cell = font.PlainCell(p.Ch)
		case font.ColoredPart:
			cell = font.Cell{Ch: p.Ch, FG: font.Color(p.FG), BG: font.Color(p.BG), Blink: p.Blink}
		case font.HardBlankPart:
			cell = font.PlainCell(marker(edit, EditHardBlank))
		case font.FillMarkerPart:
			cell = font.PlainCell(marker(edit, EditFillMarker))
		case font.OutlineHolePart:
			cell = font.PlainCell(marker(edit, EditOutlineHole))
		case font.EndMarkerPart:
			if !edit {
				continue
			}
			cell = font.PlainCell(EditEndMarker)
		case font.PlaceholderPart:
			if opts.RawOutline {
				cell = font.PlainCell(rune(p.Slot))
			} else {
				ch, err := OutlineChar(opts.OutlineStyle, p.Slot)
				if err != nil {
					return cur, err
				}
				cell = font.PlainCell(ch)
			}
		case font.NewLinePart:
			if err := sink.NextLine(); err != nil {
				return cur, err
			}
			cur.Line++
			cur.Column = 0
			continue
		default:
			return cur, core.Error(core.EINTERNAL, "glyph part of unknown kind %d", p.Kind)
		}
		if err := sink.Draw(cell); err != nil {
			return cur, err
		}
		cur.Column++
	}
	return cur, nil
}

func marker(edit bool, m rune) rune {
	if edit {
		return m
	}
	return ' '
}

// Char renders the glyph for ch. If the font has no glyph for ch, the
// font's spacing is rendered as blank cells, or, with opts.Strict, an error
// wrapping ErrUndefinedGlyph is returned. Spaces are never an error, as
// TheDraw fonts cannot define them.
func Char(sink Sink, f font.Font, ch rune, opts Options) (Cursor, error) {
	if g, ok := f.Glyph(ch); ok {
		return Glyph(sink, g, opts)
	}
	var cur Cursor
	if err := opts.Validate(); err != nil {
		return cur, err
	}
	if opts.Strict && ch != ' ' {
		return cur, core.WrapError(ErrUndefinedGlyph, core.EMISSING,
			"font %q has no glyph for %q", f.Name(), ch)
	}
	tracer().Debugf("font %q has no glyph for %q, drawing %d blanks", f.Name(), ch, f.Spacing())
	for i := 0; i < f.Spacing(); i++ {
		if err := sink.Draw(font.PlainCell(' ')); err != nil {
			return cur, err
		}
		cur.Column++
	}
	return cur, nil
}

var setupGraphemes sync.Once

// Text renders a string, one glyph per grapheme, calling the sink's NextChar
// between glyphs. Graphemes made of more than one code point are rendered
// with the glyph of their first code point.
func Text(sink Sink, f font.Font, text string, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	setupGraphemes.Do(grapheme.SetupGraphemeClasses)
	gstr := grapheme.StringFromString(text)
	for i := 0; i < gstr.Len(); i++ {
		ch, _ := utf8.DecodeRuneInString(gstr.Nth(i))
		if i > 0 {
			if err := sink.NextChar(); err != nil {
				return err
			}
		}
		if _, err := Char(sink, f, ch, opts); err != nil {
			return err
		}
	}
	tracer().Debugf("rendered %d characters with font %q", gstr.Len(), f.Name())
	return nil
}

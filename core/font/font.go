/*
Package font is the in-memory model shared by both retro font formats.

There are two font formats we handle:

* FIGlet fonts (*.flf) are plain text. Every character is drawn with
ordinary characters, one text line per glyph row.

* TheDraw fonts (*.tdf) are binary bundles of one or more fonts. A TheDraw
font is of one of three types: outline, block or color. Characters are
stored as CP437 bytes, interspersed with control bytes.

Both formats are parsed into a Glyph per character, a sequence of glyph parts.
Parts are plain characters, colored characters, line breaks or one of a
handful of markers (hard blanks, outline placeholders, …).

A Font is either a FIGlet font or a TheDraw font. All font values are
read-only after construction; conversion and serialization build new values.
Fonts may therefore be shared between goroutines freely.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package font

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.fonts")
}

// Format identifies the source format of a font.
type Format int8

// Font formats
const (
	NoFormat Format = iota
	FormatFiglet
	FormatTdf
)

func (f Format) String() string {
	switch f {
	case FormatFiglet:
		return "FIGlet"
	case FormatTdf:
		return "TheDraw"
	}
	return "<none>"
}

// Font is either a FIGlet font or a TheDraw font.
// The zero value is a font without glyphs.
type Font struct {
	figlet *FigletFont
	tdf    *TdfFont
}

// FromFiglet wraps a FIGlet font.
func FromFiglet(f *FigletFont) Font {
	return Font{figlet: f}
}

// FromTdf wraps a TheDraw font.
func FromTdf(f *TdfFont) Font {
	return Font{tdf: f}
}

// Format returns the source format of f.
func (f Font) Format() Format {
	switch {
	case f.figlet != nil:
		return FormatFiglet
	case f.tdf != nil:
		return FormatTdf
	}
	return NoFormat
}

// Figlet returns the FIGlet font, if f is one.
func (f Font) Figlet() (*FigletFont, bool) {
	return f.figlet, f.figlet != nil
}

// Tdf returns the TheDraw font, if f is one.
func (f Font) Tdf() (*TdfFont, bool) {
	return f.tdf, f.tdf != nil
}

// Name returns the font's name.
func (f Font) Name() string {
	switch f.Format() {
	case FormatFiglet:
		return f.figlet.Name()
	case FormatTdf:
		return f.tdf.Name()
	}
	return ""
}

// Glyph returns the glyph for ch, if present.
func (f Font) Glyph(ch rune) (*Glyph, bool) {
	switch f.Format() {
	case FormatFiglet:
		return f.figlet.Glyph(ch)
	case FormatTdf:
		return f.tdf.Glyph(ch)
	}
	return nil, false
}

// HasChar is true if the font has a glyph for ch.
func (f Font) HasChar(ch rune) bool {
	_, ok := f.Glyph(ch)
	return ok
}

// Spacing is the number of blank cells to use for characters missing from
// the font. For TheDraw fonts this is the font's spacing. FIGlet fonts use the
// width of their space glyph.
func (f Font) Spacing() int {
	switch f.Format() {
	case FormatFiglet:
		if g, ok := f.figlet.Glyph(' '); ok && g.Width > 0 {
			return int(g.Width)
		}
		return 1
	case FormatTdf:
		return int(f.tdf.Spacing())
	}
	return 0
}

// GlyphCount returns the number of defined characters.
func (f Font) GlyphCount() int {
	switch f.Format() {
	case FormatFiglet:
		return f.figlet.GlyphCount()
	case FormatTdf:
		return f.tdf.GlyphCount()
	}
	return 0
}

// Chars returns the defined characters in ascending order.
func (f Font) Chars() []rune {
	switch f.Format() {
	case FormatFiglet:
		return f.figlet.Chars()
	case FormatTdf:
		return f.tdf.Chars()
	}
	return nil
}

// Description is a one-line summary of the font, suitable for listings.
func (f Font) Description() string {
	switch f.Format() {
	case FormatFiglet:
		h := f.figlet.Header()
		return fmt.Sprintf("%s font %q, height %d, %d glyphs", f.Format(), f.Name(),
			h.Height, f.GlyphCount())
	case FormatTdf:
		return fmt.Sprintf("%s %s font %q, spacing %d, %d glyphs", f.Format(), f.tdf.Type(),
			f.Name(), f.tdf.Spacing(), f.GlyphCount())
	}
	return "empty font"
}

func (f Font) String() string {
	return f.Description()
}

// --- Cells -----------------------------------------------------------------

// Color is a DOS text mode color index 0…15. NoColor denotes an unset color.
type Color int8

// NoColor is the Color of cells which do not carry color information.
const NoColor Color = -1

// IsSet is true for colors 0…15.
func (c Color) IsSet() bool {
	return c >= 0 && c <= 15
}

// Cell is a single character cell produced by rendering a glyph.
type Cell struct {
	Ch     rune
	FG, BG Color
	Blink  bool
	Bold   bool
}

// PlainCell creates a cell without color attributes.
func PlainCell(ch rune) Cell {
	return Cell{Ch: ch, FG: NoColor, BG: NoColor}
}

func (c Cell) String() string {
	if c.FG.IsSet() || c.BG.IsSet() {
		return fmt.Sprintf("[%q %d/%d]", c.Ch, c.FG, c.BG)
	}
	return fmt.Sprintf("[%q]", c.Ch)
}

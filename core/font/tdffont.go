package font

import (
	"errors"
	"fmt"
	"sort"
)

// Character range covered by TheDraw fonts.
const (
	TdfFirstChar rune = '!'
	TdfLastChar  rune = '~'
)

// TdfNameLen is the maximum length of a TheDraw font name in bytes.
const TdfNameLen = 12

// ErrCharOutOfRange flags a glyph for a character TheDraw fonts cannot hold.
var ErrCharOutOfRange = errors.New("character outside of TheDraw range '!'…'~'")

// InTdfRange is true for characters a TheDraw font may define.
func InTdfRange(ch rune) bool {
	return ch >= TdfFirstChar && ch <= TdfLastChar
}

// TdfFont is a single font record of a TheDraw bundle.
type TdfFont struct {
	name     string
	fontType FontType
	spacing  uint8
	glyphs   map[rune]*Glyph
}

// NewTdfFont creates a TheDraw font. The glyph map is copied; it may only
// contain characters '!'…'~'. Nil glyphs are ignored.
func NewTdfFont(name string, t FontType, spacing uint8, glyphs map[rune]*Glyph) (*TdfFont, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid TheDraw font type %d", t)
	}
	f := &TdfFont{
		name:     name,
		fontType: t,
		spacing:  spacing,
		glyphs:   make(map[rune]*Glyph, len(glyphs)),
	}
	for ch, g := range glyphs {
		if g == nil {
			continue
		}
		if !InTdfRange(ch) {
			return nil, fmt.Errorf("%w: %q", ErrCharOutOfRange, ch)
		}
		f.glyphs[ch] = g
	}
	tracer().Debugf("created %s font %q with %d glyphs", t, name, len(f.glyphs))
	return f, nil
}

// Name returns the font's name.
func (f *TdfFont) Name() string {
	return f.name
}

// Type returns the font's type.
func (f *TdfFont) Type() FontType {
	return f.fontType
}

// Spacing returns the width of a blank between characters.
func (f *TdfFont) Spacing() uint8 {
	return f.spacing
}

// Glyph returns the glyph for ch, if present.
func (f *TdfFont) Glyph(ch rune) (*Glyph, bool) {
	g, ok := f.glyphs[ch]
	return g, ok
}

// HasChar is true if the font has a glyph for ch.
func (f *TdfFont) HasChar(ch rune) bool {
	_, ok := f.glyphs[ch]
	return ok
}

// GlyphCount returns the number of defined characters.
func (f *TdfFont) GlyphCount() int {
	return len(f.glyphs)
}

// Chars returns the defined characters in ascending order.
func (f *TdfFont) Chars() []rune {
	chars := make([]rune, 0, len(f.glyphs))
	for ch := range f.glyphs {
		chars = append(chars, ch)
	}
	sort.Slice(chars, func(i, j int) bool { return chars[i] < chars[j] })
	return chars
}

// Equal is true if f and other have the same name, type, spacing and
// glyphs.
func (f *TdfFont) Equal(other *TdfFont) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.name != other.name || f.fontType != other.fontType || f.spacing != other.spacing {
		return false
	}
	if len(f.glyphs) != len(other.glyphs) {
		return false
	}
	for ch, g := range f.glyphs {
		if !g.Equal(other.glyphs[ch]) {
			return false
		}
	}
	return true
}

func (f *TdfFont) String() string {
	return fmt.Sprintf("TheDraw %s font %q (%d glyphs)", f.fontType, f.name, len(f.glyphs))
}

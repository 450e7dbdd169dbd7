package convert

import (
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/cp437"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/core/font/tdf"
)

// Colors used for glyphs converted to color fonts: light gray on black, the
// DOS default.
const (
	DefaultFG uint8 = 7
	DefaultBG uint8 = 0
)

// Options control conversion.
type Options struct {
	// DropOutOfRange accepts FIGlet fonts with characters outside '!'…'~'.
	// These characters are left out of the converted font.
	DropOutOfRange bool
}

// Compatible checks if src can be converted to a TheDraw font of type
// target. It returns false and an error wrapping ErrUnsupportedFontType for
// target types conversion cannot produce, and false and an error wrapping
// ErrIncompatibleCharacterSet if src has characters TheDraw fonts cannot
// hold. The space character is exempt, as TheDraw fonts express it by their
// spacing.
func Compatible(src *font.FigletFont, target font.FontType, opts Options) (bool, error) {
	switch target {
	case font.BlockType, font.ColorType:
	case font.OutlineType:
		return false, core.WrapError(ErrUnsupportedFontType, core.EUNSUPPORTED,
			"cannot derive outline structure from FIGlet font %q", src.Name())
	default:
		return false, core.WrapError(ErrUnsupportedFontType, core.EUNSUPPORTED,
			"invalid target font type %d", target)
	}
	if opts.DropOutOfRange {
		return true, nil
	}
	var bad []rune
	src.Each(func(ch rune, _ *font.Glyph) bool {
		if ch != ' ' && !font.InTdfRange(ch) {
			bad = append(bad, ch)
		}
		return true
	})
	if len(bad) > 0 {
		return false, core.WrapError(ErrIncompatibleCharacterSet, core.EINCOMPATIBLE,
			"FIGlet font %q has %d characters outside '!'…'~', first is %q", src.Name(), len(bad), bad[0])
	}
	return true, nil
}

// Convert creates a TheDraw font of type target from the glyphs of src.
// Compatible is checked first and its error is returned if conversion is not
// possible.
//
// Characters are transcoded to Char parts for block fonts and to Colored
// parts with DefaultFG and DefaultBG for color fonts. Hard blanks and line
// breaks are kept. Characters encoding to a tag byte of the target type are
// replaced by cp437.Fallback, so the converted font serializes losslessly.
// The converted font's spacing is the width of src's space glyph, or 1 if
// src has none. Names are cut to 12 bytes.
func Convert(src *font.FigletFont, target font.FontType, opts Options) (*font.TdfFont, error) {
	if ok, err := Compatible(src, target, opts); !ok {
		return nil, err
	}
	glyphs := make(map[rune]*font.Glyph)
	var err error
	src.Each(func(ch rune, g *font.Glyph) bool {
		if !font.InTdfRange(ch) {
			if ch != ' ' {
				tracer().Infof("dropping character %q of FIGlet font %q", ch, src.Name())
			}
			return true
		}
		var tg *font.Glyph
		if tg, err = transcode(g, target); err != nil {
			err = core.WrapError(err, core.EINTERNAL, "cannot convert glyph %q", ch)
			return false
		}
		glyphs[ch] = tg
		return true
	})
	if err != nil {
		return nil, err
	}
	tdf, err := font.NewTdfFont(truncateName(src.Name()), target, spacing(src), glyphs)
	if err != nil {
		return nil, core.WrapError(err, core.EINTERNAL, "cannot create font from %q", src.Name())
	}
	tracer().Infof("converted FIGlet font %q to %s font with %d glyphs", src.Name(), target, tdf.GlyphCount())
	return tdf, nil
}

// transcode builds a new glyph of the target's part vocabulary. Characters
// which TheDraw would read back as tags ('&', for example) are replaced by
// cp437.Fallback.
func transcode(g *font.Glyph, target font.FontType) (*font.Glyph, error) {
	parts := make([]font.GlyphPart, 0, len(g.Parts))
	for _, p := range g.Parts {
		switch p.Kind {
		case font.CharPart, font.ColoredPart:
			ch := p.Ch
			if tdf.IsTag(target, cp437.Encode(ch)) {
				tracer().Infof("character %q is a tag in %s fonts, replaced by %q", ch, target, rune(cp437.Fallback))
				ch = rune(cp437.Fallback)
			}
			if target == font.ColorType {
				parts = append(parts, font.Colored(ch, DefaultFG, DefaultBG, false))
			} else {
				parts = append(parts, font.Char(ch))
			}
		case font.HardBlankPart, font.NewLinePart:
			parts = append(parts, p)
		default:
			return nil, core.Error(core.EINTERNAL, "unexpected %s part in FIGlet glyph", p.Kind)
		}
	}
	return font.MeasuredGlyph(parts), nil
}

func spacing(src *font.FigletFont) uint8 {
	g, ok := src.Glyph(' ')
	if !ok || g.Width == 0 {
		return 1
	}
	if g.Width > 255 {
		return 255
	}
	return uint8(g.Width)
}

// truncateName cuts a name to TdfNameLen bytes without splitting a UTF-8
// sequence.
func truncateName(name string) string {
	if len(name) <= font.TdfNameLen {
		return name
	}
	n := font.TdfNameLen
	for n > 0 && name[n]&0xC0 == 0x80 {
		n--
	}
	return name[:n]
}

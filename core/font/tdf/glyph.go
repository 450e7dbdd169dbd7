package tdf

import (
	"fmt"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/cp437"
	"github.com/npillmayer/retrofont/core/font"
)

// Tag bytes of a glyph's byte stream.
const (
	tagEnd       byte = 0x00
	tagNewLine   byte = 0x0D
	tagEndMarker byte = '&'
	tagHardBlank byte = 0xFF
	tagFill      byte = '@'
	tagHole      byte = 'O'
)

// DefaultAttribute is the attribute byte written for uncolored characters of
// color fonts: light gray on black.
const DefaultAttribute byte = 0x07

// DecodeGlyph decodes one glyph from the start of b, which usually is a
// glyph block starting at a table offset. It returns the glyph and the number
// of bytes consumed.
//
// The first two bytes are width and height. The remaining bytes are tags,
// terminated by 0x00. 0x0D is a line break and '&' an end marker for every
// font type. Otherwise:
//
//	outline: 0xFF hard blank, '@' fill marker, 'O' outline hole,
//	         'A'…'R' outline placeholders, any other byte a character
//	block:   0xFF hard blank, any other byte a character
//	color:   a character byte followed by an attribute byte (bits 0–3
//	         foreground, bits 4–6 background, bit 7 blink); character
//	         0xFF is a hard blank
//
// If b ends before the terminator, strict decoding fails with
// ErrMissingTerminator. Lenient decoding ends the glyph there; if not even
// width and height are present, lenient decoding returns a nil glyph and no
// error.
func DecodeGlyph(t font.FontType, b []byte, opts Options) (*font.Glyph, int, error) {
	if len(b) < 2 {
		if opts.Lenient {
			tracer().Infof("glyph without width/height skipped")
			return nil, len(b), nil
		}
		return nil, len(b), glyphError(ErrMissingTerminator, "glyph header truncated")
	}
	width, height := uint16(b[0]), uint16(b[1])
	n := int(width)*int(height) + int(height)
	if n > len(b) {
		n = len(b)
	}
	parts := make([]font.GlyphPart, 0, n)
	i := 2
	for {
		if i >= len(b) {
			if opts.Lenient {
				tracer().Infof("glyph stream exhausted after %d bytes, ending glyph", i)
				break
			}
			return nil, i, glyphError(ErrMissingTerminator, "stream ends after %d bytes", i)
		}
		c := b[i]
		i++
		if c == tagEnd {
			break
		}
		switch c {
		case tagNewLine:
			parts = append(parts, font.NewLine())
			continue
		case tagEndMarker:
			parts = append(parts, font.EndMarker())
			continue
		}
		switch t {
		case font.OutlineType:
			parts = append(parts, decodeOutlineTag(c))
		case font.BlockType:
			if c == tagHardBlank {
				parts = append(parts, font.HardBlank())
			} else {
				parts = append(parts, font.Char(cp437.Decode(c)))
			}
		case font.ColorType:
			if i >= len(b) {
				if opts.Lenient {
					tracer().Infof("glyph stream exhausted before attribute byte, ending glyph")
					return font.NewGlyph(width, height, parts), i, nil
				}
				return nil, i, glyphError(ErrMissingTerminator, "attribute byte missing after %d bytes", i)
			}
			attr := b[i]
			i++
			if c == tagHardBlank {
				parts = append(parts, font.HardBlank())
			} else {
				fg, bg, blink := UnpackAttribute(attr)
				parts = append(parts, font.Colored(cp437.Decode(c), fg, bg, blink))
			}
		default:
			return nil, i, glyphError(ErrUnsupportedType, "%d", t)
		}
	}
	return font.NewGlyph(width, height, parts), i, nil
}

// glyphError reports malformed glyph data, coded as EINVALID.
func glyphError(kind error, format string, v ...interface{}) error {
	return core.ErrorWithCode(fmt.Errorf("%w: "+format, append([]interface{}{kind}, v...)...), core.EINVALID)
}

func decodeOutlineTag(c byte) font.GlyphPart {
	switch {
	case c == tagHardBlank:
		return font.HardBlank()
	case c == tagFill:
		return font.FillMarker()
	case c == tagHole:
		return font.OutlineHole()
	case c >= font.FirstSlot && c <= font.LastSlot:
		return font.Placeholder(c)
	}
	return font.Char(cp437.Decode(c))
}

// IsTag reports whether c, as a character byte of a font of type t, would be
// read back as a tag instead of a character: 0x00, 0x0D, '&' and 0xFF for
// every type, and '@', 'O' and 'A'…'R' for outline fonts.
func IsTag(t font.FontType, c byte) bool {
	switch c {
	case tagEnd, tagNewLine, tagEndMarker, tagHardBlank:
		return true
	}
	if t == font.OutlineType {
		return c == tagFill || c == tagHole || (c >= font.FirstSlot && c <= font.LastSlot)
	}
	return false
}

// UnpackAttribute splits a DOS attribute byte into foreground (bits 0–3,
// bit 3 being intensity), background (bits 4–6) and blink (bit 7).
func UnpackAttribute(attr byte) (fg, bg uint8, blink bool) {
	return attr & 0x0F, (attr >> 4) & 0x07, attr&0x80 != 0
}

// PackAttribute is the inverse of UnpackAttribute. Backgrounds 8…15 lose
// their intensity bit, as the attribute byte holds only 3 bits for them.
func PackAttribute(fg, bg uint8, blink bool) byte {
	attr := fg&0x0F | (bg&0x07)<<4
	if blink {
		attr |= 0x80
	}
	return attr
}

// EncodeGlyph encodes a glyph for a font of type t, including the
// terminating zero byte.
//
// Characters are encoded to CP437, unmappable ones as '?'. Color fonts
// write plain characters with DefaultAttribute and hard blanks as 0xFF with
// a zero attribute; block and outline fonts drop the colors of colored
// characters. Fill markers, outline holes and placeholders are valid for
// outline fonts only (ErrUnsupportedPart). Characters encoding to a tag byte
// of the font type (see IsTag) cannot be stored and fail with
// ErrUnsupportedPart as well.
func EncodeGlyph(t font.FontType, g *font.Glyph) ([]byte, error) {
	if g.Width > 255 || g.Height > 255 {
		return nil, glyphError(ErrGlyphTooLarge, "%dx%d", g.Width, g.Height)
	}
	out := make([]byte, 0, 2+2*len(g.Parts)+1)
	out = append(out, byte(g.Width), byte(g.Height))
	for _, p := range g.Parts {
		switch p.Kind {
		case font.NewLinePart:
			out = append(out, tagNewLine)
		case font.EndMarkerPart:
			out = append(out, tagEndMarker)
		case font.HardBlankPart:
			out = append(out, tagHardBlank)
			if t == font.ColorType {
				out = append(out, 0)
			}
		case font.FillMarkerPart, font.OutlineHolePart, font.PlaceholderPart:
			if t != font.OutlineType {
				return nil, glyphError(ErrUnsupportedPart, "%s in %s font", p, t)
			}
			switch p.Kind {
			case font.FillMarkerPart:
				out = append(out, tagFill)
			case font.OutlineHolePart:
				out = append(out, tagHole)
			default:
				out = append(out, p.Slot)
			}
		case font.CharPart, font.ColoredPart:
			c := cp437.Encode(p.Ch)
			if IsTag(t, c) {
				return nil, glyphError(ErrUnsupportedPart, "character %q encodes to tag byte 0x%02X in %s font",
					p.Ch, c, t)
			}
			out = append(out, c)
			if t == font.ColorType && p.Kind == font.CharPart {
				out = append(out, DefaultAttribute)
			} else if t == font.ColorType {
				out = append(out, PackAttribute(p.FG, p.BG, p.Blink))
			}
		default:
			return nil, glyphError(ErrUnsupportedPart, "unknown part kind %d", p.Kind)
		}
	}
	return append(out, tagEnd), nil
}

package tdf

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/cp437"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/schuko"
)

// Layout constants of TheDraw bundles.
const (
	Signature  = "TheDraw FONTS file"
	IDLength   = len(Signature) + 1 // 0x13
	CtrlZ      = 0x1A
	Indicator  = 0xFF00AA55
	NameLen    = font.TdfNameLen
	TableSize  = int(font.TdfLastChar-font.TdfFirstChar) + 1 // 94
	NoGlyph    = 0xFFFF
	headerSize = 1 + len(Signature) + 1
	// indicator, name length, name, reserved, type, spacing, block length, offsets
	recordHeaderSize = 4 + 1 + NameLen + 4 + 1 + 1 + 2 + 2*TableSize
)

// Options control the strictness of parsing.
type Options struct {
	// Lenient accepts glyphs whose byte stream runs out before the
	// terminating zero byte. The glyph ends where the glyph block ends.
	// Strict parsing (the default) reports ErrMissingTerminator instead.
	Lenient bool
}

// OptionsFromConfig reads parsing options from a configuration.
// Key 'tdf.lenient' may be set to a boolean value.
func OptionsFromConfig(conf schuko.Configuration) (Options, error) {
	opts := Options{}
	if conf == nil {
		return opts, nil
	}
	if s := strings.TrimSpace(conf.GetString("tdf.lenient")); s != "" {
		lenient, err := strconv.ParseBool(s)
		if err != nil {
			return opts, core.WrapError(err, core.EINVALID, "configuration tdf.lenient: %q is not a boolean", s)
		}
		opts.Lenient = lenient
	}
	return opts, nil
}

// Sniff is true if b starts with the header of a TheDraw bundle.
func Sniff(b []byte) bool {
	return len(b) >= headerSize && int(b[0]) == IDLength &&
		bytes.Equal(b[1:1+len(Signature)], []byte(Signature))
}

// Parse parses all fonts of a TheDraw bundle with default options.
func Parse(b []byte) ([]*font.TdfFont, error) {
	return ParseWith(b, Options{})
}

// ParseWith parses all fonts of a TheDraw bundle, in file order.
// Fonts are returned only if the whole bundle is well-formed.
//
// The bundle ends with a zero byte in place of the next record, or at the end
// of input directly after a complete record.
func ParseWith(b []byte, opts Options) ([]*font.TdfFont, error) {
	src := binarySegm(b)
	if len(src) < 1 {
		return nil, errFormat(ErrTooShort, "empty input")
	}
	if int(src[0]) != IDLength {
		return nil, errFormat(ErrIDLengthMismatch, "id length is %d, expected %d", src[0], IDLength)
	}
	sig, err := src.view(1, len(Signature))
	if err != nil {
		return nil, errFormat(ErrTooShort, "input ends within signature")
	}
	if string(sig) != Signature {
		return nil, errFormat(ErrIDMismatch, "signature is %q", string(sig))
	}
	if !src.has(headerSize-1, 1) || src[headerSize-1] != CtrlZ {
		return nil, errFormat(ErrTooShort, "missing ctrl-z after signature")
	}
	var fonts []*font.TdfFont
	pos := headerSize
	for pos < len(src) && src[pos] != 0 {
		f, next, err := parseRecord(src, pos, opts)
		if err != nil {
			tracer().Errorf("font #%d of bundle at offset %d: %v", len(fonts)+1, pos, err)
			return nil, err
		}
		fonts = append(fonts, f)
		pos = next
	}
	if pos >= len(src) {
		tracer().Debugf("bundle ends without terminator after %d fonts", len(fonts))
	}
	tracer().Infof("parsed TheDraw bundle with %d fonts", len(fonts))
	return fonts, nil
}

// parseRecord parses a font record starting at pos and returns the font and
// the position following the record.
func parseRecord(src binarySegm, pos int, opts Options) (*font.TdfFont, int, error) {
	indicator, err := src.u32(pos)
	if err != nil {
		return nil, 0, errFormat(ErrTruncatedRecord, "record at offset %d has no indicator", pos)
	}
	if indicator != Indicator {
		return nil, 0, errFormat(ErrIndicatorMismatch, "indicator %#08x at offset %d", indicator, pos)
	}
	hdr, err := src.view(pos, recordHeaderSize)
	if err != nil {
		return nil, 0, errFormat(ErrTruncatedRecord, "record at offset %d needs %d header bytes, %d available",
			pos, recordHeaderSize, len(src)-pos)
	}
	name := parseName(hdr[4:])
	fontType := font.FontType(hdr[4+1+NameLen+4])
	if !fontType.Valid() {
		return nil, 0, errFormat(ErrUnsupportedType, "font %q has type %d", name, hdr[4+1+NameLen+4])
	}
	spacing := hdr[4+1+NameLen+4+1]
	blockLen := int(u16(hdr[4+1+NameLen+4+2:]))
	table := hdr[recordHeaderSize-2*TableSize:]
	offsets := make([]int, TableSize)
	for i := range offsets {
		off := int(u16(table[2*i:]))
		if off != NoGlyph && off >= blockLen {
			return nil, 0, errFormat(ErrGlyphOffsetOutOfBlock, "font %q, char %q: offset %d, block length %d",
				name, font.TdfFirstChar+rune(i), off, blockLen)
		}
		offsets[i] = off
	}
	block, err := src.view(pos+recordHeaderSize, blockLen)
	if err != nil {
		return nil, 0, errFormat(ErrTruncatedRecord, "font %q: glyph block of %d bytes exceeds input",
			name, blockLen)
	}
	tracer().Debugf("font %q: type %s, spacing %d, glyph block %d bytes", name, fontType, spacing, blockLen)
	glyphs := make(map[rune]*font.Glyph, TableSize)
	decoded := make(map[int]*font.Glyph) // aliased offsets share one glyph
	for i, off := range offsets {
		if off == NoGlyph {
			continue
		}
		ch := font.TdfFirstChar + rune(i)
		g, seen := decoded[off]
		if !seen {
			g, _, err = DecodeGlyph(fontType, block[off:], opts)
			if err != nil {
				return nil, 0, errFormat(err, "font %q, char %q at block offset %d", name, ch, off)
			}
			decoded[off] = g
		}
		if g != nil {
			glyphs[ch] = g
		}
	}
	f, err := font.NewTdfFont(name, fontType, spacing, glyphs)
	if err != nil {
		return nil, 0, core.WrapError(err, core.EINTERNAL, "font %q", name)
	}
	return f, pos + recordHeaderSize + blockLen, nil
}

// parseName extracts the font name from the name length byte and the padded
// name field following it.
func parseName(b []byte) string {
	n := int(b[0])
	if n > NameLen {
		n = NameLen
	}
	raw := b[1 : 1+n]
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return cp437.DecodeString(raw)
}

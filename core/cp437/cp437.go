package cp437

import (
	"sync"

	"golang.org/x/text/encoding/charmap"
)

// Fallback is the byte used for runes without a CP437 counterpart.
const Fallback byte = '?'

// Display glyphs for the control range 0x01…0x1F. A zero entry keeps the
// control character (BS, HT, LF, CR, SUB, ESC).
var controlGlyphs = [32]rune{
	0, '☺', '☻', '♥', '♦', '♣', '♠', '•',
	0, 0, 0, '♂', '♀', 0, '♫', '☼',
	'►', '◄', '↕', '‼', '¶', '§', '▬', '↨',
	'↑', '↓', 0, 0, '∟', '↔', '▲', '▼',
}

var (
	tablesBuilt sync.Once
	toUnicode   [256]rune
	fromUnicode map[rune]byte
)

func buildTables() {
	tablesBuilt.Do(func() {
		fromUnicode = make(map[rune]byte, 256)
		for i := 0; i < 256; i++ {
			b := byte(i)
			r := charmap.CodePage437.DecodeByte(b)
			if i < len(controlGlyphs) && controlGlyphs[i] != 0 {
				r = controlGlyphs[i]
			}
			toUnicode[i] = r
			if r == 0 { // never map NUL back, it would silently terminate glyph streams
				continue
			}
			if _, dup := fromUnicode[r]; dup {
				tracer().Errorf("CP437 table has duplicate mapping for %#U", r)
				continue
			}
			fromUnicode[r] = b
		}
		tracer().Debugf("CP437 tables built, %d reverse entries", len(fromUnicode))
	})
}

// Decode returns the Unicode code point for a CP437 byte.
func Decode(b byte) rune {
	buildTables()
	return toUnicode[b]
}

// Encode returns the CP437 byte for r, or Fallback if r is not part
// of the code page.
func Encode(r rune) byte {
	if b, ok := EncodeOK(r); ok {
		return b
	}
	return Fallback
}

// EncodeOK returns the CP437 byte for r and true, or Fallback and false if
// r cannot be represented. NUL is never representable.
func EncodeOK(r rune) (byte, bool) {
	buildTables()
	b, ok := fromUnicode[r]
	if !ok {
		return Fallback, false
	}
	return b, true
}

// DecodeString decodes a CP437 byte sequence.
func DecodeString(b []byte) string {
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = Decode(c)
	}
	return string(runes)
}

// EncodeString encodes s to CP437, substituting Fallback for runes
// outside the code page.
func EncodeString(s string) []byte {
	out := make([]byte, 0, len(s))
	for _, r := range s {
		out = append(out, Encode(r))
	}
	return out
}

/*
Package figlet reads fonts in FIGlet's text format (.flf).

A FIGlet font starts with a header line

	flf2a$ 6 5 16 15 11 0 24463 229

i.e. the signature "flf2a" immediately followed by the hard blank character,
then height, baseline, maximum line length, old layout, number of comment
lines and, optionally, print direction, full layout and the number of
code-tagged characters. The comment lines follow, then the glyphs for
characters 32…126, optionally the seven German characters Ä Ö Ü ä ö ü ß, and
finally any number of code-tagged characters, each introduced by a line
holding its code point in decimal, hexadecimal (0x…) or octal (0…) notation.

Every glyph consists of exactly 'height' lines. The last character of a line
is its end mark; the last line of a glyph usually carries it twice.

FIGlet smushing and kerning are not supported: glyphs are rendered as-is.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package figlet

import (
	"errors"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.fonts")
}

// Errors of FIGlet parsing. Errors returned by Parse wrap one of these and are
// coded core.EINVALID.
var (
	ErrHeader    = errors.New("invalid FIGlet header")
	ErrCharacter = errors.New("invalid FIGlet character")
)

func errFormat(kind error, format string, v ...interface{}) error {
	return core.WrapError(kind, core.EINVALID, "FIGlet font format: "+format, v...)
}

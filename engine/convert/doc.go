/*
Package convert converts FIGlet fonts to TheDraw fonts.

FIGlet fonts may define any character, TheDraw fonts only '!'…'~'. Before
converting, Compatible checks whether a FIGlet font fits into a TheDraw font
of a given type. Conversion never drops characters silently: either the caller
asks for it explicitly with Options.DropOutOfRange, or conversion fails with
ErrIncompatibleCharacterSet.

FIGlet glyphs are flat text. They can be transcoded to block fonts and, with a
uniform default color, to color fonts. Outline fonts would need a
decomposition of the glyphs into outline segments, which flat text does not
carry; converting to an outline font fails with ErrUnsupportedFontType.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package convert

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.render'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.render")
}

// Errors of conversion. Both leave the source font untouched.
var (
	ErrIncompatibleCharacterSet = errors.New("incompatible character set")
	ErrUnsupportedFontType      = errors.New("unsupported target font type")
)

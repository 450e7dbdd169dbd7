/*
Package render draws glyphs of retro fonts as character cells.

Rendering walks the parts of a glyph and hands a cell for every visible part
to a Sink. Line breaks within a glyph are reported to the sink with NextLine.
Between the characters of a string, Text calls the sink's NextChar, leaving
it to the sink where to place the following glyph. BufferSink places glyphs
side by side.

Two modes are supported. Display mode renders a glyph the way it is meant to
be seen. Edit mode reveals the markers of TheDraw fonts: hard blanks are shown
as '·', fill markers as '@', outline holes as 'O' and end markers as '&'.

Outline fonts do not draw their outlines directly. Their glyphs carry
placeholders 'A'…'R', which are replaced by box drawing characters from one of
19 outline styles, chosen at render time.

Rendering is synchronous and does not modify fonts; fonts may be rendered from
concurrent goroutines into separate sinks.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package render

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.render'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.render")
}

// Errors of rendering. Errors of sinks are passed through unchanged.
var (
	// ErrUndefinedGlyph is reported in strict mode for characters missing from a font.
	ErrUndefinedGlyph = errors.New("undefined glyph")
	// ErrOutlineStyle is reported for outline styles outside 0…18.
	ErrOutlineStyle = errors.New("outline style out of range")
)

/*
Package tdf reads and writes TheDraw font bundles.

A bundle is a header followed by one or more font records and a terminating
zero byte. Each font record carries a name, a type (outline, block or color),
a spacing value and an offset table for the 94 printable characters '!'…'~'
into a block of glyph data. Offsets may alias, i.e. several characters may
share one glyph. The table entry 0xFFFF marks a missing glyph.

	id length (0x13) · "TheDraw FONTS file" · 0x1A · record… · 0x00

	record:  indicator 0xFF00AA55 (LE) · name length · name[12] · reserved[4]
	         type · spacing · block length (LE) · offsets[94] (LE) · block

Every glyph in the block starts with its width and height, followed by a
stream of tagged bytes terminated by 0x00. How bytes are interpreted depends
on the font type; see DecodeGlyph.

Parsing is all-or-nothing: if any record of a bundle is malformed, no fonts
are returned. Errors carry one of the sentinel errors of this package in their
chain and are coded core.EINVALID.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package tdf

import (
	"errors"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.fonts")
}

// Errors of bundle parsing.
var (
	ErrTooShort              = errors.New("bundle too short")
	ErrIDLengthMismatch      = errors.New("id length mismatch")
	ErrIDMismatch            = errors.New("id mismatch")
	ErrIndicatorMismatch     = errors.New("font indicator mismatch")
	ErrUnsupportedType       = errors.New("unsupported font type")
	ErrGlyphOffsetOutOfBlock = errors.New("glyph offset outside of glyph block")
	ErrTruncatedRecord       = errors.New("truncated font record")
	ErrMissingTerminator     = errors.New("glyph without terminator")
)

// Errors of bundle serialization.
var (
	ErrNameTooLong     = errors.New("font name too long")
	ErrGlyphTooLarge   = errors.New("glyph dimensions exceed 255")
	ErrBlockTooLarge   = errors.New("glyph block exceeds 64K")
	ErrUnsupportedPart = errors.New("glyph part not supported by font type")
)

// errFormat produces user level errors for bundle parsing and writing.
func errFormat(kind error, format string, v ...interface{}) error {
	return core.WrapError(kind, core.EINVALID, "TheDraw font format: "+format, v...)
}

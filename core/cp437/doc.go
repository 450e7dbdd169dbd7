/*
Package cp437 maps between the bytes of IBM code page 437 and Unicode.

Both font formats handled by retrofont store their artwork as CP437 bytes.
Decoding is total, every byte has a Unicode counterpart. The display glyphs
of the control range (☺, ♥, ♪, …) are used instead of control characters,
with the exception of backspace, tab, line feed, carriage return, ctrl-Z and
escape. Encoding is partial; runes missing from the code page encode to
Fallback.

The tables are built on first use and are read-only afterwards, so they may
be used from concurrent goroutines.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cp437

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.fonts")
}

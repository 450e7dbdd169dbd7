/*
Package ansi writes rendered glyphs to terminals.

A Screen buffers the cells of rendered text and outputs them with ANSI escape
sequences. Colors of TheDraw fonts are indices into the 16 color palette of
DOS text mode, which is output as 24-bit true color. Blinking and bold cells
are output with the corresponding SGR attributes.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package ansi

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.render'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.render")
}

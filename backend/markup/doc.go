/*
Package markup writes rendered glyphs as HTML.

A Page buffers the cells of rendered text and builds a preformatted HTML
element from them. Runs of equally colored cells become span elements with
inline styles, using the colors of the DOS text mode palette.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package markup

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'retrofont.render'.
func tracer() tracing.Trace {
	return tracing.Select("retrofont.render")
}

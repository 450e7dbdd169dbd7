/*
Package fontregistry manages a registry for loaded fonts.

Fonts are registered under a normalized name. Clients may look up fonts by
their full name or by an unambiguous prefix of it.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'retrofont.fonts'
func tracer() tracing.Trace {
	return tracing.Select("retrofont.fonts")
}

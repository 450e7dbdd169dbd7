package font

import (
	"fmt"

	"github.com/emirpasic/gods/maps/treemap"
)

// FigletHeader holds the parameters of a FIGlet font's header line.
type FigletHeader struct {
	Hardblank      rune // sub-character used for hard blanks, usually '$'
	Height         int  // height of every character
	Baseline       int  // height excluding descenders
	MaxLength      int  // maximum line length, including end marks
	OldLayout      int  // layout mode of FIGlet 2.0
	CommentLines   int  // number of comment lines following the header
	PrintDirection int  // 0 = left to right, 1 = right to left
	FullLayout     int  // layout mode of FIGlet 2.2, -1 if absent
	CodetagCount   int  // number of code-tagged characters, -1 if absent
}

// FigletFont is a font in FIGlet's text format. Characters are not limited to
// a range; FIGlet fonts may define arbitrary code points ("code-tagged"
// characters).
type FigletFont struct {
	name     string
	header   FigletHeader
	comments []string
	glyphs   *treemap.Map // int(code point) -> *Glyph, ordered by code point
}

// Name returns the font's name.
func (f *FigletFont) Name() string {
	return f.name
}

// Header returns the font's header parameters.
func (f *FigletFont) Header() FigletHeader {
	return f.header
}

// Comments returns a copy of the font's comment lines.
func (f *FigletFont) Comments() []string {
	c := make([]string, len(f.comments))
	copy(c, f.comments)
	return c
}

// Glyph returns the glyph for ch, if present.
func (f *FigletFont) Glyph(ch rune) (*Glyph, bool) {
	if f.glyphs == nil {
		return nil, false
	}
	v, found := f.glyphs.Get(int(ch))
	if !found {
		return nil, false
	}
	return v.(*Glyph), true
}

// HasChar is true if the font has a glyph for ch.
func (f *FigletFont) HasChar(ch rune) bool {
	_, ok := f.Glyph(ch)
	return ok
}

// GlyphCount returns the number of defined characters.
func (f *FigletFont) GlyphCount() int {
	if f.glyphs == nil {
		return 0
	}
	return f.glyphs.Size()
}

// Chars returns the defined characters in ascending order.
func (f *FigletFont) Chars() []rune {
	chars := make([]rune, 0, f.GlyphCount())
	f.Each(func(ch rune, _ *Glyph) bool {
		chars = append(chars, ch)
		return true
	})
	return chars
}

// Each calls visit for every glyph in ascending order of characters, until
// visit returns false.
func (f *FigletFont) Each(visit func(rune, *Glyph) bool) {
	if f.glyphs == nil {
		return
	}
	it := f.glyphs.Iterator()
	for it.Next() {
		if !visit(rune(it.Key().(int)), it.Value().(*Glyph)) {
			return
		}
	}
}

func (f *FigletFont) String() string {
	return fmt.Sprintf("FIGlet font %q (%d glyphs)", f.name, f.GlyphCount())
}

// --- Builder ---------------------------------------------------------------

// FigletBuilder collects the parts of a FIGlet font. Once Font has been
// called, the builder must not be used any more.
type FigletBuilder struct {
	font *FigletFont
}

// NewFigletBuilder starts a new FIGlet font.
func NewFigletBuilder(name string, header FigletHeader) *FigletBuilder {
	return &FigletBuilder{
		font: &FigletFont{
			name:   name,
			header: header,
			glyphs: treemap.NewWithIntComparator(),
		},
	}
}

// AddComment appends a comment line.
func (b *FigletBuilder) AddComment(line string) *FigletBuilder {
	b.font.comments = append(b.font.comments, line)
	return b
}

// AddGlyph sets the glyph for ch, replacing an earlier one.
func (b *FigletBuilder) AddGlyph(ch rune, g *Glyph) *FigletBuilder {
	if g == nil {
		return b
	}
	b.font.glyphs.Put(int(ch), g)
	return b
}

// Font returns the font built so far.
func (b *FigletBuilder) Font() *FigletFont {
	f := b.font
	b.font = nil
	return f
}

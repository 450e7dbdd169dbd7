package markup

import (
	"io"
	"strings"

	"github.com/npillmayer/retrofont/backend/ansi"
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/engine/render"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Class is the CSS class of the pre element created for a page.
const Class = "retrofont"

// stylesheet is used for standalone documents.
const stylesheet = `
pre.retrofont { font-family: "Perfect DOS VGA 437", "Cascadia Mono", monospace; line-height: 1; }
pre.retrofont .blink { animation: retrofont-blink 1s steps(1) infinite; }
@keyframes retrofont-blink { 50% { visibility: hidden; } }
`

// Page is a render sink producing HTML. Glyphs are placed side by side, as
// with render.BufferSink.
type Page struct {
	render.BufferSink
	FG, BG font.Color // defaults for cells without colors, may be NoColor
}

var _ render.Sink = (*Page)(nil)

// NewPage creates a page with default colors fg and bg. Use font.NoColor to
// leave colors to the surrounding document.
func NewPage(fg, bg font.Color) (*Page, error) {
	for _, c := range []font.Color{fg, bg} {
		if c < font.NoColor || c > 15 {
			return nil, core.Error(core.EINVALID, "color %d not in 0…15", c)
		}
	}
	return &Page{FG: fg, BG: bg}, nil
}

// Node returns the buffered lines as a pre element.
func (p *Page) Node() *html.Node {
	pre := element(atom.Pre, html.Attribute{Key: "class", Val: Class})
	if s := p.style(font.PlainCell(' ')); s != "" {
		pre.Attr = append(pre.Attr, html.Attribute{Key: "style", Val: s})
	}
	var run strings.Builder
	runStyle, runBlink := "", false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if runStyle == "" && !runBlink {
			pre.AppendChild(text(run.String()))
		} else {
			span := element(atom.Span)
			if runStyle != "" {
				span.Attr = append(span.Attr, html.Attribute{Key: "style", Val: runStyle})
			}
			if runBlink {
				span.Attr = append(span.Attr, html.Attribute{Key: "class", Val: "blink"})
			}
			span.AppendChild(text(run.String()))
			pre.AppendChild(span)
		}
		run.Reset()
	}
	for i, line := range p.Lines(p.BG.IsSet()) {
		if i > 0 {
			flush()
			runStyle, runBlink = "", false
			run.WriteByte('\n')
		}
		for _, cell := range line {
			s := p.cellStyle(cell)
			if s != runStyle || cell.Blink != runBlink {
				flush()
				runStyle, runBlink = s, cell.Blink
			}
			run.WriteRune(cell.Ch)
		}
	}
	flush()
	return pre
}

// Document returns a complete HTML document with the page's pre element as
// its body.
func (p *Page) Document(title string) *html.Node {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html)
	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	t := element(atom.Title)
	t.AppendChild(text(title))
	head.AppendChild(t)
	st := element(atom.Style)
	st.AppendChild(text(stylesheet))
	head.AppendChild(st)
	body := element(atom.Body)
	body.AppendChild(p.Node())
	root.AppendChild(head)
	root.AppendChild(body)
	doc.AppendChild(root)
	return doc
}

// Render writes the page's pre element to w.
func (p *Page) Render(w io.Writer) error {
	if err := html.Render(w, p.Node()); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write HTML")
	}
	tracer().Debugf("wrote %d lines as HTML", p.Height())
	return nil
}

func (p *Page) String() string {
	var sb strings.Builder
	if err := p.Render(&sb); err != nil {
		return err.Error()
	}
	return sb.String()
}

// style returns the inline style of a cell, including default colors.
func (p *Page) style(cell font.Cell) string {
	var s []string
	if fg := pick(cell.FG, p.FG); fg.IsSet() {
		s = append(s, "color:#"+ansi.Palette[fg&0x0F].Hex())
	}
	if bg := pick(cell.BG, p.BG); bg.IsSet() {
		s = append(s, "background-color:#"+ansi.Palette[bg&0x0F].Hex())
	}
	if cell.Bold {
		s = append(s, "font-weight:bold")
	}
	return strings.Join(s, ";")
}

// cellStyle returns the inline style of a cell, leaving out what the pre
// element already carries.
func (p *Page) cellStyle(cell font.Cell) string {
	s := p.style(cell)
	if s == p.style(font.PlainCell(' ')) {
		return ""
	}
	return s
}

func pick(c, dflt font.Color) font.Color {
	if c.IsSet() {
		return c
	}
	return dflt
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

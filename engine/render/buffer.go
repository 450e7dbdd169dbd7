package render

import (
	"strings"

	"github.com/npillmayer/retrofont/core/font"
)

// BufferSink collects cells in memory, placing glyphs side by side: NextLine
// moves down within the current glyph, NextChar moves to the right of the
// widest line drawn so far and back to the top. Lines shorter than the
// current glyph's left edge are padded with blanks.
//
// The zero value is an empty buffer, ready to use.
type BufferSink struct {
	lines [][]font.Cell
	line  int // line within the current glyph
	left  int // left edge of the current glyph
}

var _ Sink = (*BufferSink)(nil)

// Draw appends a cell to the current line.
func (b *BufferSink) Draw(c font.Cell) error {
	for b.line >= len(b.lines) {
		b.lines = append(b.lines, nil)
	}
	for len(b.lines[b.line]) < b.left {
		b.lines[b.line] = append(b.lines[b.line], font.PlainCell(' '))
	}
	b.lines[b.line] = append(b.lines[b.line], c)
	return nil
}

// NextLine moves to the next line of the current glyph.
func (b *BufferSink) NextLine() error {
	b.line++
	return nil
}

// NextChar moves to the start of the next glyph.
func (b *BufferSink) NextChar() error {
	b.left = b.Width()
	b.line = 0
	return nil
}

// Width returns the length of the longest line.
func (b *BufferSink) Width() int {
	w := 0
	for _, l := range b.lines {
		if len(l) > w {
			w = len(l)
		}
	}
	return w
}

// Height returns the number of lines.
func (b *BufferSink) Height() int {
	return len(b.lines)
}

// Lines returns the buffered cells, line by line. With pad set, all lines
// are padded with blanks to the same length.
func (b *BufferSink) Lines(pad bool) [][]font.Cell {
	w := b.Width()
	lines := make([][]font.Cell, len(b.lines))
	for i, l := range b.lines {
		n := len(l)
		if pad {
			n = w
		}
		lines[i] = make([]font.Cell, len(l), n)
		copy(lines[i], l)
		for len(lines[i]) < n {
			lines[i] = append(lines[i], font.PlainCell(' '))
		}
	}
	return lines
}

// Strings returns the characters of the buffered lines, without colors and
// without trailing blanks.
func (b *BufferSink) Strings() []string {
	out := make([]string, len(b.lines))
	var sb strings.Builder
	for i, l := range b.lines {
		sb.Reset()
		for _, c := range l {
			sb.WriteRune(c.Ch)
		}
		out[i] = strings.TrimRight(sb.String(), " ")
	}
	return out
}

func (b *BufferSink) String() string {
	return strings.Join(b.Strings(), "\n")
}

// Reset empties the buffer.
func (b *BufferSink) Reset() {
	b.lines = b.lines[:0]
	b.line, b.left = 0, 0
}

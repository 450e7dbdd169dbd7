package figlet

import (
	"bytes"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/text/encoding/charmap"
)

// Magic is the signature every FIGlet font starts with.
const Magic = "flf2a"

// DeutschChars are the optional characters following the required ASCII
// range, in file order.
var DeutschChars = []rune{196, 214, 220, 228, 246, 252, 223}

// Sniff is true if b starts with the FIGlet signature.
func Sniff(b []byte) bool {
	return bytes.HasPrefix(b, []byte(Magic))
}

// Parse parses a FIGlet font. Input which is not valid UTF-8 is read as
// Latin-1, as older fonts often are.
func Parse(b []byte, name string) (*font.FigletFont, error) {
	if !utf8.Valid(b) {
		latin, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
		if err != nil {
			return nil, errFormat(ErrHeader, "cannot decode font %q: %v", name, err)
		}
		tracer().Debugf("FIGlet font %q is not UTF-8, decoded as Latin-1", name)
		b = latin
	}
	return ParseString(string(b), name)
}

// ParseString parses a FIGlet font from its text.
func ParseString(text string, name string) (*font.FigletFont, error) {
	if name == "" {
		name = "figlet"
	}
	lines := splitLines(text)
	if len(lines) == 0 {
		return nil, errFormat(ErrHeader, "font %q is empty", name)
	}
	header, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}
	lines = lines[1:]
	if len(lines) < header.CommentLines {
		return nil, errFormat(ErrHeader, "font %q announces %d comment lines, has %d",
			name, header.CommentLines, len(lines))
	}
	builder := font.NewFigletBuilder(name, header)
	for _, c := range lines[:header.CommentLines] {
		builder.AddComment(c)
	}
	r := &reader{lines: lines[header.CommentLines:], header: header}
	for ch := rune(32); ch <= 126; ch++ {
		g, err := r.glyph(ch)
		if err != nil {
			return nil, err
		}
		builder.AddGlyph(ch, g)
	}
	for _, ch := range DeutschChars {
		if r.done() || r.atCodeTag() {
			break
		}
		g, err := r.glyph(ch)
		if err != nil {
			return nil, err
		}
		builder.AddGlyph(ch, g)
	}
	tagged := 0
	for !r.done() {
		code, err := r.codeTag()
		if err != nil {
			return nil, err
		}
		g, err := r.glyph(rune(code))
		if err != nil {
			return nil, err
		}
		if code < 0 || code > utf8.MaxRune {
			tracer().Debugf("FIGlet font %q: skipping character with code %d", name, code)
			continue
		}
		builder.AddGlyph(rune(code), g)
		tagged++
	}
	f := builder.Font()
	tracer().Infof("parsed FIGlet font %q: height %d, %d glyphs (%d code-tagged)",
		name, header.Height, f.GlyphCount(), tagged)
	return f, nil
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func parseHeader(line string) (font.FigletHeader, error) {
	h := font.FigletHeader{PrintDirection: 0, FullLayout: -1, CodetagCount: -1}
	if !strings.HasPrefix(line, Magic) {
		return h, errFormat(ErrHeader, "signature %q missing", Magic)
	}
	hb, size := utf8.DecodeRuneInString(line[len(Magic):])
	if size == 0 || hb == ' ' {
		return h, errFormat(ErrHeader, "hard blank missing")
	}
	h.Hardblank = hb
	fields := strings.Fields(line[len(Magic)+size:])
	if len(fields) < 5 {
		return h, errFormat(ErrHeader, "header has %d parameters, at least 5 required", len(fields))
	}
	targets := []*int{&h.Height, &h.Baseline, &h.MaxLength, &h.OldLayout, &h.CommentLines,
		&h.PrintDirection, &h.FullLayout, &h.CodetagCount}
	for i, field := range fields {
		if i >= len(targets) {
			break
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return h, errFormat(ErrHeader, "header parameter #%d is %q", i+1, field)
		}
		*targets[i] = n
	}
	if h.Height < 1 {
		return h, errFormat(ErrHeader, "height is %d", h.Height)
	}
	if h.MaxLength < 0 {
		return h, errFormat(ErrHeader, "maximum line length is %d", h.MaxLength)
	}
	if h.CommentLines < 0 {
		return h, errFormat(ErrHeader, "comment line count is %d", h.CommentLines)
	}
	return h, nil
}

// reader hands out the glyph lines of a font, following the comments.
type reader struct {
	lines  []string
	pos    int
	header font.FigletHeader
}

// done is true if no more glyphs follow. Trailing blank lines are ignored.
func (r *reader) done() bool {
	for _, l := range r.lines[r.pos:] {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// atCodeTag is true if the next line introduces a code-tagged character.
func (r *reader) atCodeTag() bool {
	if r.pos >= len(r.lines) {
		return false
	}
	_, err := parseCode(r.lines[r.pos])
	return err == nil
}

func (r *reader) codeTag() (int64, error) {
	line := r.lines[r.pos]
	code, err := parseCode(line)
	if err != nil {
		return 0, errFormat(ErrCharacter, "line %q is not a code tag", line)
	}
	r.pos++
	return code, nil
}

func parseCode(line string) (int64, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, strconv.ErrSyntax
	}
	return strconv.ParseInt(fields[0], 0, 64)
}

// glyph reads the next 'height' lines as the glyph for ch.
func (r *reader) glyph(ch rune) (*font.Glyph, error) {
	height := r.header.Height
	if height > len(r.lines)-r.pos {
		return nil, errFormat(ErrCharacter, "character %q: %d lines required, %d left",
			ch, height, len(r.lines)-r.pos)
	}
	n := 0
	for _, raw := range r.lines[r.pos : r.pos+height] {
		n += len(raw) + 1
	}
	parts := make([]font.GlyphPart, 0, n)
	width := 0
	for i, raw := range r.lines[r.pos : r.pos+height] {
		line, ok := stripEndMarks(raw)
		if !ok {
			return nil, errFormat(ErrCharacter, "character %q: line %d is empty", ch, i+1)
		}
		if i > 0 {
			parts = append(parts, font.NewLine())
		}
		for _, c := range line {
			if c == r.header.Hardblank {
				parts = append(parts, font.HardBlank())
			} else {
				parts = append(parts, font.Char(c))
			}
		}
		if w := uax11.Width([]byte(line), uax11.LatinContext); w > width {
			width = w
		}
	}
	r.pos += height
	return font.NewGlyph(uint16(width), uint16(height), parts), nil
}

// stripEndMarks removes trailing white space and up to two end marks, the
// end mark being the line's last character.
func stripEndMarks(line string) (string, bool) {
	line = strings.TrimRight(line, " \t\r")
	mark, size := utf8.DecodeLastRuneInString(line)
	if size == 0 {
		return "", false
	}
	line = line[:len(line)-size]
	if last, n := utf8.DecodeLastRuneInString(line); n > 0 && last == mark {
		line = line[:len(line)-n]
	}
	return line, true
}

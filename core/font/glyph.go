package font

import (
	"fmt"
	"strings"
)

// FontType is the type of a TheDraw font. The numeric values are the ones
// stored in font files.
type FontType uint8

// TheDraw font types
const (
	OutlineType FontType = 0
	BlockType   FontType = 1
	ColorType   FontType = 2
)

// Valid is true for the three known font types.
func (t FontType) Valid() bool {
	return t <= ColorType
}

func (t FontType) String() string {
	switch t {
	case OutlineType:
		return "outline"
	case BlockType:
		return "block"
	case ColorType:
		return "color"
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseFontType parses "outline", "block" or "color" (case insensitive).
func ParseFontType(s string) (FontType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "outline":
		return OutlineType, nil
	case "block":
		return BlockType, nil
	case "color", "colour":
		return ColorType, nil
	}
	return 0, fmt.Errorf("unknown font type %q", s)
}

// PartKind is the kind of a glyph part.
type PartKind uint8

// Kinds of glyph parts
const (
	CharPart PartKind = iota
	ColoredPart
	HardBlankPart
	NewLinePart
	FillMarkerPart
	OutlineHolePart
	PlaceholderPart
	EndMarkerPart
)

var partKindNames = [...]string{"Char", "Colored", "HardBlank", "NewLine", "FillMarker",
	"OutlineHole", "Placeholder", "EndMarker"}

func (k PartKind) String() string {
	if int(k) < len(partKindNames) {
		return partKindNames[k]
	}
	return fmt.Sprintf("PartKind(%d)", uint8(k))
}

// First and last slot letter of outline placeholders.
const (
	FirstSlot byte = 'A'
	LastSlot  byte = 'R'
)

// GlyphPart is one unit of a glyph. Which fields are meaningful depends on
// Kind: Ch for Char and Colored parts, FG/BG/Blink for Colored parts only,
// Slot for Placeholder parts only. GlyphParts are comparable.
type GlyphPart struct {
	Kind  PartKind
	Ch    rune
	FG    uint8 // 0…15
	BG    uint8 // 0…15
	Blink bool
	Slot  byte // 'A'…'R'
}

// Char creates a plain character part.
func Char(ch rune) GlyphPart {
	return GlyphPart{Kind: CharPart, Ch: ch}
}

// Colored creates a colored character part. fg and bg are reduced to
// 4 bits each.
func Colored(ch rune, fg, bg uint8, blink bool) GlyphPart {
	return GlyphPart{Kind: ColoredPart, Ch: ch, FG: fg & 0x0F, BG: bg & 0x0F, Blink: blink}
}

// HardBlank creates a hard blank part.
func HardBlank() GlyphPart { return GlyphPart{Kind: HardBlankPart} }

// NewLine creates a line break part.
func NewLine() GlyphPart { return GlyphPart{Kind: NewLinePart} }

// FillMarker creates an outline fill marker part.
func FillMarker() GlyphPart { return GlyphPart{Kind: FillMarkerPart} }

// OutlineHole creates an outline hole part.
func OutlineHole() GlyphPart { return GlyphPart{Kind: OutlineHolePart} }

// EndMarker creates an end marker part.
func EndMarker() GlyphPart { return GlyphPart{Kind: EndMarkerPart} }

// Placeholder creates an outline placeholder part for slot 'A'…'R'.
// It panics for other slots.
func Placeholder(slot byte) GlyphPart {
	if slot < FirstSlot || slot > LastSlot {
		panic(fmt.Sprintf("outline placeholder slot %q out of range", slot))
	}
	return GlyphPart{Kind: PlaceholderPart, Slot: slot}
}

// Width is the number of cells a part occupies on its line.
func (p GlyphPart) Width() int {
	switch p.Kind {
	case NewLinePart, EndMarkerPart:
		return 0
	}
	return 1
}

func (p GlyphPart) String() string {
	switch p.Kind {
	case CharPart:
		return fmt.Sprintf("Char(%q)", p.Ch)
	case ColoredPart:
		return fmt.Sprintf("Colored(%q,%d,%d,%v)", p.Ch, p.FG, p.BG, p.Blink)
	case PlaceholderPart:
		return fmt.Sprintf("Placeholder(%c)", p.Slot)
	}
	return p.Kind.String()
}

// Glyph is the artwork for one character.
//
// A glyph must not be modified once it has been handed to a font.
type Glyph struct {
	Width  uint16
	Height uint16
	Parts  []GlyphPart
}

// NewGlyph creates a glyph from a copy of parts.
func NewGlyph(width, height uint16, parts []GlyphPart) *Glyph {
	p := make([]GlyphPart, len(parts))
	copy(p, parts)
	return &Glyph{Width: width, Height: height, Parts: p}
}

// MeasuredGlyph creates a glyph from a copy of parts and computes width
// (longest line) and height (number of lines) from the parts.
func MeasuredGlyph(parts []GlyphPart) *Glyph {
	w, h := Measure(parts)
	return NewGlyph(uint16(w), uint16(h), parts)
}

// Measure returns the width of the longest line and the number of lines of
// a sequence of parts. An empty sequence has height 0.
func Measure(parts []GlyphPart) (width, height int) {
	if len(parts) == 0 {
		return 0, 0
	}
	height = 1
	col := 0
	for _, p := range parts {
		if p.Kind == NewLinePart {
			height++
			col = 0
			continue
		}
		col += p.Width()
		if col > width {
			width = col
		}
	}
	return
}

// Equal is true if g and other have the same dimensions and parts.
func (g *Glyph) Equal(other *Glyph) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height || len(g.Parts) != len(other.Parts) {
		return false
	}
	for i, p := range g.Parts {
		if p != other.Parts[i] {
			return false
		}
	}
	return true
}

// LineCount returns the number of lines drawn by the glyph's parts.
func (g *Glyph) LineCount() int {
	_, h := Measure(g.Parts)
	return h
}

func (g *Glyph) String() string {
	return fmt.Sprintf("glyph %dx%d, %d parts", g.Width, g.Height, len(g.Parts))
}

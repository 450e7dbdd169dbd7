package convert

import (
	"errors"
	"testing"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/core/font/figlet"
	"github.com/npillmayer/retrofont/core/font/tdf"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// figletFont builds a FIGlet font with a 2-wide space glyph and one glyph
// "cc" over "c$" for every character given.
func figletFont(name string, chars ...rune) *font.FigletFont {
	b := font.NewFigletBuilder(name, font.FigletHeader{Hardblank: '$', Height: 2})
	b.AddGlyph(' ', font.MeasuredGlyph([]font.GlyphPart{
		font.HardBlank(), font.HardBlank(), font.NewLine(), font.Char(' '), font.Char(' '),
	}))
	for _, c := range chars {
		b.AddGlyph(c, font.MeasuredGlyph([]font.GlyphPart{
			font.Char(c), font.Char(c), font.NewLine(), font.Char(c), font.HardBlank(),
		}))
	}
	return b.Font()
}

func TestCompatible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.render")
	defer teardown()
	//
	ok, err := Compatible(figletFont("ascii", '!', 'A', 'z', '~'), font.BlockType, Options{})
	assert.True(t, ok)
	assert.NoError(t, err)
	ok, err = Compatible(figletFont("ascii", 'A'), font.ColorType, Options{})
	assert.True(t, ok)
	assert.NoError(t, err)
	//
	wide := figletFont("wide", 'A', 'Ä', '☺')
	ok, err = Compatible(wide, font.BlockType, Options{})
	assert.False(t, ok)
	assert.True(t, errors.Is(err, ErrIncompatibleCharacterSet))
	assert.Equal(t, core.EINCOMPATIBLE, core.Code(err))
	ok, err = Compatible(wide, font.BlockType, Options{DropOutOfRange: true})
	assert.True(t, ok)
	assert.NoError(t, err)
	//
	for _, target := range []font.FontType{font.OutlineType, font.FontType(3)} {
		ok, err = Compatible(figletFont("ascii", 'A'), target, Options{})
		assert.False(t, ok)
		assert.True(t, errors.Is(err, ErrUnsupportedFontType), "target %d", target)
		assert.Equal(t, core.EUNSUPPORTED, core.Code(err))
	}
}

func TestConvertBlock(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.render")
	defer teardown()
	//
	src := figletFont("A rather long font name", 'A', 'b')
	f, err := Convert(src, font.BlockType, Options{})
	require.NoError(t, err)
	assert.Equal(t, "A rather lon", f.Name())
	assert.Equal(t, font.BlockType, f.Type())
	assert.Equal(t, uint8(2), f.Spacing())
	assert.Equal(t, []rune{'A', 'b'}, f.Chars())
	g, ok := f.Glyph('A')
	require.True(t, ok)
	assert.Equal(t, []font.GlyphPart{
		font.Char('A'), font.Char('A'), font.NewLine(), font.Char('A'), font.HardBlank(),
	}, g.Parts)
	assert.Equal(t, uint16(2), g.Width)
	assert.Equal(t, uint16(2), g.Height)
	src0, _ := src.Glyph('A')
	assert.NotSame(t, src0, g, "conversion must build new glyphs")
	assert.False(t, f.HasChar(' '))
}

func TestConvertColor(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.render")
	defer teardown()
	//
	f, err := Convert(figletFont("colors", 'x'), font.ColorType, Options{})
	require.NoError(t, err)
	g, _ := f.Glyph('x')
	colored := font.Colored('x', DefaultFG, DefaultBG, false)
	assert.Equal(t, []font.GlyphPart{
		colored, colored, font.NewLine(), colored, font.HardBlank(),
	}, g.Parts)
	//
	data, err := tdf.SerializeFont(f)
	require.NoError(t, err)
	fonts, err := tdf.Parse(data)
	require.NoError(t, err)
	require.Len(t, fonts, 1)
	assert.True(t, f.Equal(fonts[0]))
}

func TestConvertIncompatible(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.render")
	defer teardown()
	//
	src := figletFont("wide", 'A', 'Ä')
	f, err := Convert(src, font.BlockType, Options{})
	assert.Nil(t, f)
	assert.True(t, errors.Is(err, ErrIncompatibleCharacterSet))
	assert.Equal(t, 3, src.GlyphCount(), "source must stay untouched")
	//
	f, err = Convert(src, font.BlockType, Options{DropOutOfRange: true})
	require.NoError(t, err)
	assert.Equal(t, []rune{'A'}, f.Chars())
	//
	_, err = Convert(src, font.OutlineType, Options{DropOutOfRange: true})
	assert.True(t, errors.Is(err, ErrUnsupportedFontType))
}

func TestConvertParsedFiglet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.render")
	defer teardown()
	//
	text := "flf2a$ 1 1 4 0 0\n$$$@@\n!@@\n"
	_, err := figlet.ParseString(text, "tiny")
	require.Error(t, err, "a FIGlet font needs all of ' '…'~'")
	//
	text = "flf2a$ 1 1 4 0 0\n"
	for c := ' '; c <= '~'; c++ {
		if c == ' ' {
			text += "$$$@@\n"
		} else {
			text += string(c) + "#@@\n"
		}
	}
	src, err := figlet.ParseString(text, "tiny")
	require.NoError(t, err)
	f, err := Convert(src, font.BlockType, Options{})
	require.NoError(t, err)
	assert.Equal(t, uint8(3), f.Spacing())
	assert.Equal(t, 94, f.GlyphCount())
	g, _ := f.Glyph('Q')
	assert.Equal(t, []font.GlyphPart{font.Char('Q'), font.Char('#')}, g.Parts)
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short", truncateName("short"))
	assert.Equal(t, "exactly12byt", truncateName("exactly12bytes"))
	assert.Equal(t, "aääää", truncateName("aääääää"), "must not split UTF-8 sequences")
}

func TestConvertTagCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.render")
	defer teardown()
	//
	for _, target := range []font.FontType{font.BlockType, font.ColorType} {
		f, err := Convert(figletFont("amp", '&', 'B'), target, Options{})
		require.NoError(t, err)
		g, ok := f.Glyph('&')
		require.True(t, ok)
		for _, p := range g.Parts {
			assert.NotEqual(t, '&', p.Ch, "%s font", target)
		}
		assert.Equal(t, '?', g.Parts[0].Ch)
		//
		data, err := tdf.SerializeFont(f)
		require.NoError(t, err)
		fonts, err := tdf.Parse(data)
		require.NoError(t, err)
		require.Len(t, fonts, 1)
		assert.True(t, f.Equal(fonts[0]), "%s font must survive serialization", target)
	}
}

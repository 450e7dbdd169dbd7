package tdf

import (
	"errors"
	"testing"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Helpers for building bundles by hand ----------------------------------

func bundleHeader() []byte {
	b := []byte{0x13}
	b = append(b, "TheDraw FONTS file"...)
	return append(b, 0x1A)
}

// record builds a font record. Characters not in offsets get 0xFFFF.
func record(name string, fontType, spacing byte, offsets map[rune]uint16, block []byte) []byte {
	r := putU32(nil, 0xFF00AA55)
	r = append(r, byte(len(name)))
	field := make([]byte, 12)
	copy(field, name)
	r = append(r, field...)
	r = append(r, 0, 0, 0, 0)
	r = append(r, fontType, spacing)
	r = putU16(r, uint16(len(block)))
	for ch := '!'; ch <= '~'; ch++ {
		if off, ok := offsets[ch]; ok {
			r = putU16(r, off)
		} else {
			r = putU16(r, 0xFFFF)
		}
	}
	return append(r, block...)
}

func bundle(records ...[]byte) []byte {
	b := bundleHeader()
	for _, r := range records {
		b = append(b, r...)
	}
	return append(b, 0)
}

// funtopia is the documented sample record: block font, spacing 3, a glyph
// block of 0xE4 bytes.
func funtopia() []byte {
	block := make([]byte, 0xE4)
	copy(block, []byte{2, 2, 0xDB, 0xDF, 0x0D, 0xFF, 0xDC, 0})
	copy(block[8:], []byte{1, 1, 0xB1, '&', 0})
	return bundle(record("Funtopia", 1, 3, map[rune]uint16{'A': 0, 'B': 8, 'C': 8}, block))
}

// --- Test Suite Preparation ------------------------------------------------

type BundleTestEnviron struct {
	suite.Suite
	block, color, outline *font.TdfFont
}

// listen for 'go test' command --> run test methods
func TestBundleFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	suite.Run(t, new(BundleTestEnviron))
}

// run once, before test suite methods
func (env *BundleTestEnviron) SetupSuite() {
	env.T().Log("Setting up test suite")
	tracing.Select("retrofont.fonts").SetTraceLevel(tracing.LevelError)
	var err error
	env.block, err = font.NewTdfFont("BLOCKY", font.BlockType, 1, map[rune]*font.Glyph{
		'A': font.NewGlyph(2, 2, []font.GlyphPart{
			font.Char('█'), font.Char('▀'), font.NewLine(), font.HardBlank(), font.Char('▄'),
		}),
		'~': font.NewGlyph(1, 1, []font.GlyphPart{font.Char('░'), font.EndMarker()}),
	})
	env.Require().NoError(err)
	env.color, err = font.NewTdfFont("Colors", font.ColorType, 0, map[rune]*font.Glyph{
		'Z': font.NewGlyph(3, 2, []font.GlyphPart{
			font.Colored('A', 0x1, 0x6, false),
			font.Colored('▓', 0xE, 0x1, true),
			font.HardBlank(),
			font.NewLine(),
			font.EndMarker(),
			font.Colored('B', 0xF, 0x0, false),
		}),
	})
	env.Require().NoError(err)
	env.outline, err = font.NewTdfFont("Outl", font.OutlineType, 2, map[rune]*font.Glyph{
		'!': font.NewGlyph(4, 2, []font.GlyphPart{
			font.Placeholder('E'), font.Placeholder('A'), font.Placeholder('F'), font.Char(' '),
			font.NewLine(),
			font.Placeholder('C'), font.FillMarker(), font.OutlineHole(), font.Placeholder('R'),
			font.HardBlank(),
		}),
	})
	env.Require().NoError(err)
	tracing.Select("retrofont.fonts").SetTraceLevel(tracing.LevelInfo)
}

// run once, after test suite methods
func (env *BundleTestEnviron) TearDownSuite() {
	env.T().Log("Tearing down test suite")
}

// --- Tests -----------------------------------------------------------------

func (env *BundleTestEnviron) TestSampleRecord() {
	fonts, err := Parse(funtopia())
	env.Require().NoError(err)
	env.Require().Len(fonts, 1)
	f := fonts[0]
	env.Equal("Funtopia", f.Name())
	env.Equal(font.BlockType, f.Type())
	env.Equal(uint8(3), f.Spacing())
	env.Equal(3, f.GlyphCount())
	a, ok := f.Glyph('A')
	env.Require().True(ok)
	env.Equal([]font.GlyphPart{
		font.Char('█'), font.Char('▀'), font.NewLine(), font.HardBlank(), font.Char('▄'),
	}, a.Parts)
	env.Equal(uint16(2), a.Width)
	env.Equal(uint16(2), a.Height)
}

func (env *BundleTestEnviron) TestAliasedOffsets() {
	fonts, err := Parse(funtopia())
	env.Require().NoError(err)
	b, okB := fonts[0].Glyph('B')
	c, okC := fonts[0].Glyph('C')
	env.Require().True(okB && okC)
	env.True(b.Equal(c))
	env.Equal([]font.GlyphPart{font.Char('▒'), font.EndMarker()}, b.Parts)
}

func (env *BundleTestEnviron) TestRoundTrip() {
	for _, f := range []*font.TdfFont{env.block, env.color, env.outline} {
		b, err := SerializeFont(f)
		env.Require().NoError(err, f.Name())
		fonts, err := Parse(b)
		env.Require().NoError(err, f.Name())
		env.Require().Len(fonts, 1)
		env.True(f.Equal(fonts[0]), "font %q differs after round trip", f.Name())
	}
}

func (env *BundleTestEnviron) TestBundleOrder() {
	b, err := Serialize([]*font.TdfFont{env.outline, env.block, env.color})
	env.Require().NoError(err)
	env.Equal(byte(0), b[len(b)-1])
	fonts, err := Parse(b)
	env.Require().NoError(err)
	env.Require().Len(fonts, 3)
	env.Equal("Outl", fonts[0].Name())
	env.Equal("BLOCKY", fonts[1].Name())
	env.Equal("Colors", fonts[2].Name())
}

func (env *BundleTestEnviron) TestOffsetsWithinBlock() {
	b, err := Serialize([]*font.TdfFont{env.block, env.outline})
	env.Require().NoError(err)
	pos := headerSize
	for b[pos] != 0 {
		src := binarySegm(b)
		blockLen, _ := src.u16(pos + 4 + 1 + NameLen + 4 + 2)
		for i := 0; i < TableSize; i++ {
			off, _ := src.u16(pos + recordHeaderSize - 2*TableSize + 2*i)
			if off != NoGlyph {
				env.Less(int(off), int(blockLen))
			}
		}
		pos += recordHeaderSize + int(blockLen)
	}
}

func (env *BundleTestEnviron) TestColorAttributeBytes() {
	b, err := EncodeGlyph(font.ColorType, colorGlyph(env.color))
	env.Require().NoError(err)
	env.Equal([]byte{3, 2, 'A', 0x61, 0xB2, 0x9E, 0xFF, 0x00, 0x0D, '&', 'B', 0x0F, 0}, b)
}

// --- Plain tests -----------------------------------------------------------

func TestEmptyFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	fonts, err := Parse(bundle(record("empty", 0, 0, nil, nil)))
	require.NoError(t, err)
	require.Len(t, fonts, 1)
	assert.Equal(t, 0, fonts[0].GlyphCount())
	assert.Equal(t, font.OutlineType, fonts[0].Type())
}

func TestBundleWithoutTerminator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	b := funtopia()
	fonts, err := Parse(b[:len(b)-1])
	require.NoError(t, err)
	assert.Len(t, fonts, 1)
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	good := funtopia()
	badID := append([]byte{}, good...)
	badID[1] = 'X'
	noCtrlZ := append([]byte{}, good...)
	noCtrlZ[19] = 0x1B
	badIndicator := append([]byte{}, good...)
	badIndicator[20] = 0x56
	badType := append([]byte{}, good...)
	badType[20+4+1+12+4] = 3
	outOfBlock := bundle(record("oob", 1, 0, map[rune]uint16{'A': 4}, []byte{1, 1, 'x', 0}))
	midTable := good[:20+4+1+12+4+1+1+2+40]
	shortBlock := good[:len(good)-20]
	secondTruncated := append(append([]byte{}, good[:len(good)-1]...), good[20:20+100]...)
	noTerminator := bundle(record("noterm", 1, 0, map[rune]uint16{'A': 0}, []byte{1, 1, 'x', 'y'}))
	//
	for name, tc := range map[string]struct {
		input []byte
		kind  error
	}{
		"empty":            {nil, ErrTooShort},
		"id length":        {[]byte{0x12, 'T'}, ErrIDLengthMismatch},
		"short signature":  {good[:10], ErrTooShort},
		"signature":        {badID, ErrIDMismatch},
		"ctrl-z":           {noCtrlZ, ErrTooShort},
		"header only":      {good[:19], ErrTooShort},
		"indicator":        {badIndicator, ErrIndicatorMismatch},
		"type":             {badType, ErrUnsupportedType},
		"offset":           {outOfBlock, ErrGlyphOffsetOutOfBlock},
		"mid offset table": {midTable, ErrTruncatedRecord},
		"short block":      {shortBlock, ErrTruncatedRecord},
		"second record":    {secondTruncated, ErrTruncatedRecord},
		"indicator cut":    {good[:22], ErrTruncatedRecord},
		"terminator":       {noTerminator, ErrMissingTerminator},
	} {
		fonts, err := Parse(tc.input)
		assert.Nil(t, fonts, name)
		if assert.Error(t, err, name) {
			assert.True(t, errors.Is(err, tc.kind), "%s: expected %v, got %v", name, tc.kind, err)
			assert.Equal(t, core.EINVALID, core.Code(err), name)
		}
	}
}

func TestLenientTerminator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	noTerminator := bundle(record("noterm", 1, 0, map[rune]uint16{'A': 0, 'B': 3}, []byte{1, 1, 'x', 'y'}))
	_, err := ParseWith(noTerminator, Options{Lenient: false})
	assert.True(t, errors.Is(err, ErrMissingTerminator))
	fonts, err := ParseWith(noTerminator, Options{Lenient: true})
	require.NoError(t, err)
	require.Len(t, fonts, 1)
	a, ok := fonts[0].Glyph('A')
	require.True(t, ok)
	assert.Equal(t, []font.GlyphPart{font.Char('x'), font.Char('y')}, a.Parts)
	// 'B' starts at the last byte of the block, width/height incomplete
	assert.False(t, fonts[0].HasChar('B'))
	//
	colorCut := bundle(record("cut", 2, 0, map[rune]uint16{'A': 0}, []byte{1, 1, 'x', 0x07, 'y'}))
	_, err = ParseWith(colorCut, Options{})
	assert.True(t, errors.Is(err, ErrMissingTerminator))
	fonts, err = ParseWith(colorCut, Options{Lenient: true})
	require.NoError(t, err)
	a, _ = fonts[0].Glyph('A')
	assert.Equal(t, []font.GlyphPart{font.Colored('x', 7, 0, false)}, a.Parts)
}

func TestDecodeByType(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	stream := []byte{3, 1, 'A', '@', 'O', 0xFF, 'S', 0}
	g, n, err := DecodeGlyph(font.OutlineType, stream, Options{})
	require.NoError(t, err)
	assert.Equal(t, len(stream), n)
	assert.Equal(t, []font.GlyphPart{
		font.Placeholder('A'), font.FillMarker(), font.OutlineHole(), font.HardBlank(), font.Char('S'),
	}, g.Parts)
	g, _, err = DecodeGlyph(font.BlockType, stream, Options{})
	require.NoError(t, err)
	assert.Equal(t, []font.GlyphPart{
		font.Char('A'), font.Char('@'), font.Char('O'), font.HardBlank(), font.Char('S'),
	}, g.Parts)
}

func TestAttributePacking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	fg, bg, blink := UnpackAttribute(0x9E)
	assert.Equal(t, uint8(0xE), fg)
	assert.Equal(t, uint8(0x1), bg)
	assert.True(t, blink)
	assert.Equal(t, byte(0x9E), PackAttribute(fg, bg, blink))
	assert.Equal(t, byte(0x07), PackAttribute(7, 0, false))
	assert.Equal(t, byte(0x4F), PackAttribute(0xF, 0xC, false)) // background loses intensity
}

func TestSerializeErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	g := font.NewGlyph(1, 1, []font.GlyphPart{font.Char('x')})
	long, err := font.NewTdfFont("ThisNameIsTooLong", font.BlockType, 0, map[rune]*font.Glyph{'A': g})
	require.NoError(t, err)
	_, err = SerializeFont(long)
	assert.True(t, errors.Is(err, ErrNameTooLong))
	//
	huge, _ := font.NewTdfFont("huge", font.BlockType, 0, map[rune]*font.Glyph{
		'A': font.NewGlyph(300, 1, []font.GlyphPart{font.Char('x')}),
	})
	_, err = SerializeFont(huge)
	assert.True(t, errors.Is(err, ErrGlyphTooLarge))
	//
	marker, _ := font.NewTdfFont("marker", font.BlockType, 0, map[rune]*font.Glyph{
		'A': font.NewGlyph(1, 1, []font.GlyphPart{font.Placeholder('B')}),
	})
	_, err = SerializeFont(marker)
	assert.True(t, errors.Is(err, ErrUnsupportedPart))
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestUnmappableCharacters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	f, _ := font.NewTdfFont("euro", font.BlockType, 0, map[rune]*font.Glyph{
		'E': font.NewGlyph(1, 1, []font.GlyphPart{font.Char('€')}),
	})
	b, err := SerializeFont(f)
	require.NoError(t, err)
	fonts, err := Parse(b)
	require.NoError(t, err)
	e, _ := fonts[0].Glyph('E')
	assert.Equal(t, []font.GlyphPart{font.Char('?')}, e.Parts)
}

func TestSniffAndConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	assert.True(t, Sniff(funtopia()))
	assert.False(t, Sniff([]byte("flf2a$ 1 1 2 0 0")))
	//
	opts, err := OptionsFromConfig(testconfig.Conf{"tdf.lenient": "true"})
	require.NoError(t, err)
	assert.True(t, opts.Lenient)
	opts, err = OptionsFromConfig(testconfig.Conf{})
	require.NoError(t, err)
	assert.False(t, opts.Lenient)
	_, err = OptionsFromConfig(testconfig.Conf{"tdf.lenient": "perhaps"})
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func colorGlyph(f *font.TdfFont) *font.Glyph {
	g, _ := f.Glyph('Z')
	return g
}

func TestTagCharactersAreRejected(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	for _, tc := range []struct {
		t  font.FontType
		ch rune
	}{
		{font.ColorType, '&'}, {font.ColorType, '\r'}, {font.ColorType, '\u00a0'},
		{font.BlockType, '&'}, {font.BlockType, '\r'}, {font.BlockType, '\u00a0'},
		{font.OutlineType, '&'}, {font.OutlineType, '@'}, {font.OutlineType, 'O'},
		{font.OutlineType, 'A'}, {font.OutlineType, 'R'},
	} {
		for _, p := range []font.GlyphPart{font.Char(tc.ch), font.Colored(tc.ch, 7, 0, false)} {
			_, err := EncodeGlyph(tc.t, font.NewGlyph(1, 1, []font.GlyphPart{p}))
			assert.True(t, errors.Is(err, ErrUnsupportedPart), "%s font, %v", tc.t, p)
			assert.Equal(t, core.EINVALID, core.Code(err))
		}
	}
	assert.True(t, IsTag(font.ColorType, 0x00))
	assert.False(t, IsTag(font.BlockType, 'A'))
	assert.False(t, IsTag(font.ColorType, 'O'))
	assert.True(t, IsTag(font.OutlineType, 'O'))
	b, err := EncodeGlyph(font.BlockType, font.NewGlyph(1, 1, []font.GlyphPart{font.Char('S')}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 1, 'S', 0}, b)
}

func TestSerializedColorFontParsesBackOrFails(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	glyphs := func(first rune) map[rune]*font.Glyph {
		return map[rune]*font.Glyph{
			'A': font.NewGlyph(3, 1, []font.GlyphPart{
				font.Colored(first, 7, 0, false), font.Colored('x', 7, 0, false), font.Colored('y', 7, 0, false),
			}),
			'B': font.NewGlyph(1, 1, []font.GlyphPart{font.Colored('z', 7, 0, false)}),
		}
	}
	for _, first := range []rune{'&', 'w'} {
		f, err := font.NewTdfFont("amp", font.ColorType, 1, glyphs(first))
		require.NoError(t, err)
		data, err := SerializeFont(f)
		if err != nil {
			assert.True(t, errors.Is(err, ErrUnsupportedPart))
			assert.Equal(t, '&', first)
			continue
		}
		fonts, err := Parse(data)
		require.NoError(t, err)
		require.Len(t, fonts, 1)
		assert.True(t, f.Equal(fonts[0]), "%q: parsed font differs", first)
	}
}

func TestDecodeTrustsStreamOverHeader(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	g, n, err := DecodeGlyph(font.BlockType, []byte{255, 255, 'x', 0}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, uint16(255), g.Width)
	assert.Equal(t, []font.GlyphPart{font.Char('x')}, g.Parts)
	//
	_, _, err = DecodeGlyph(font.BlockType, []byte{255, 255, 'x'}, Options{})
	assert.True(t, errors.Is(err, ErrMissingTerminator))
	assert.Equal(t, core.EINVALID, core.Code(err))
}

package fontregistry

import (
	"testing"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tdfFont(t *testing.T, name string) font.Font {
	f, err := font.NewTdfFont(name, font.BlockType, 1, map[rune]*font.Glyph{
		'A': font.MeasuredGlyph([]font.GlyphPart{font.Char('█')}),
	})
	require.NoError(t, err)
	return font.FromTdf(f)
}

func TestNormalize(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	assert.Equal(t, "fire_font", NormalizeFontname(" Fire Font "))
	assert.Equal(t, "standard", NormalizeFontname("/usr/share/figlet/Standard.flf"))
	assert.Equal(t, "mega", NormalizeFontname(`C:\TDF\MEGA.TDF`))
}

func TestStoreAndLookup(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	reg.StoreFont(tdfFont(t, "Funtopia"))
	reg.StoreFont(tdfFont(t, "Fire Font"))
	reg.StoreFont(tdfFont(t, "Fire Fly"))
	reg.StoreFont(font.Font{})
	assert.Equal(t, 3, reg.Len())
	assert.Equal(t, []string{"fire_fly", "fire_font", "funtopia"}, reg.Names())
	//
	f, err := reg.Font("FUNTOPIA")
	require.NoError(t, err)
	assert.Equal(t, "Funtopia", f.Name())
	f, err = reg.Font("fun")
	require.NoError(t, err)
	assert.Equal(t, "Funtopia", f.Name())
	f, err = reg.Font("fire fo")
	require.NoError(t, err)
	assert.Equal(t, "Fire Font", f.Name())
	//
	_, err = reg.Font("fire")
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = reg.Font("nothing")
	assert.Equal(t, core.EMISSING, core.Code(err))
	reg.LogFontList()
}

func TestFirstStoreWins(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	reg := NewRegistry()
	first := tdfFont(t, "Twin")
	reg.StoreFont(first)
	g, _ := font.NewTdfFont("twin", font.ColorType, 0, nil)
	reg.StoreFont(font.FromTdf(g))
	f, err := reg.Font("twin")
	require.NoError(t, err)
	assert.Equal(t, "Twin", f.Name())
	assert.Equal(t, 1, reg.Len())
}

func TestGlobalRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "retrofont.fonts")
	defer teardown()
	//
	assert.Same(t, GlobalRegistry(), GlobalRegistry())
}

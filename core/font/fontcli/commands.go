package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/retrofont/backend/ansi"
	"github.com/npillmayer/retrofont/backend/markup"
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/core/font/tdf"
	"github.com/npillmayer/retrofont/core/locate/resources"
	"github.com/npillmayer/retrofont/engine/convert"
	"github.com/npillmayer/retrofont/engine/render"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/pterm/pterm"
	"golang.org/x/net/html"
)

// loadFonts resolves a font name to the fonts it contains.
func (a *app) loadFonts(name string) ([]font.Font, error) {
	if name == "" {
		return nil, core.Error(core.EINVALID, "no font given")
	}
	opts, err := tdf.OptionsFromConfig(a.conf)
	if err != nil {
		return nil, err
	}
	fonts, err := resources.ResolveFonts(name, a.conf, opts).Fonts()
	if err != nil {
		return nil, err
	}
	if len(fonts) == 0 {
		return nil, core.Error(core.EMISSING, "no fonts found in %s", name)
	}
	return fonts, nil
}

// selectFont loads the fonts of a font file and selects font #num,
// counting from 1.
func (a *app) selectFont(name string, num int) (font.Font, error) {
	if num < 1 {
		return font.Font{}, core.Error(core.EINVALID, "font number must be 1 or greater")
	}
	fonts, err := a.loadFonts(name)
	if err != nil {
		return font.Font{}, err
	}
	if num > len(fonts) {
		return font.Font{}, core.Error(core.EMISSING,
			"font #%d does not exist, %s contains %d font(s)", num, name, len(fonts))
	}
	return fonts[num-1], nil
}

// renderFlags are the flags shared by render and preview.
type renderFlags struct {
	font    *string
	num     *int
	edit    *bool
	outline *int
	strict  *bool
	fg, bg  *int
}

func addRenderFlags(fs *flag.FlagSet) *renderFlags {
	return &renderFlags{
		font:    fs.String("font", "blocky", "Font file, URL or font name"),
		num:     fs.Int("num", 1, "Number of the font in a bundle, starting at 1"),
		edit:    fs.Bool("edit", false, "Reveal markers of TheDraw fonts"),
		outline: fs.Int("outline", 0, "Outline style [0…18]"),
		strict:  fs.Bool("strict", false, "Fail for characters missing from the font"),
		fg:      fs.Int("fg", -1, "Default foreground color [0…15]"),
		bg:      fs.Int("bg", -1, "Default background color [0…15]"),
	}
}

// configure puts the render flags into the configuration.
func (rf *renderFlags) configure(conf testconfig.Conf) {
	mode := render.Display
	if *rf.edit {
		mode = render.Edit
	}
	conf["render.mode"] = mode.String()
	conf["render.outline"] = strconv.Itoa(*rf.outline)
	conf["render.strict"] = strconv.FormatBool(*rf.strict)
}

func colors(rf *renderFlags) (fg, bg font.Color, err error) {
	for _, c := range []int{*rf.fg, *rf.bg} {
		if c < -1 || c > 15 {
			return 0, 0, core.Error(core.EINVALID, "color %d not in 0…15", c)
		}
	}
	return font.Color(*rf.fg), font.Color(*rf.bg), nil
}

func (a *app) render(args []string) error {
	fs, c := a.flags("render")
	rf := addRenderFlags(fs)
	text := fs.String("text", "", "Text to render")
	asHTML := fs.Bool("html", false, "Output an HTML document")
	if err := a.parse(fs, c, args); err != nil {
		return err
	}
	rf.configure(a.conf)
	opts, err := render.OptionsFromConfig(a.conf)
	if err != nil {
		return err
	}
	fg, bg, err := colors(rf)
	if err != nil {
		return err
	}
	f, err := a.selectFont(*rf.font, *rf.num)
	if err != nil {
		return err
	}
	tracer().Infof("rendering %q with %s", *text, f.Description())
	if *asHTML {
		return a.renderHTML(f, *text, opts, fg, bg)
	}
	screen, err := ansi.NewScreen(fg, bg)
	if err != nil {
		return err
	}
	if err = render.Text(screen, f, *text, opts); err != nil {
		return err
	}
	_, err = screen.WriteTo(a.out)
	return err
}

func (a *app) renderHTML(f font.Font, text string, opts render.Options, fg, bg font.Color) error {
	page, err := markup.NewPage(fg, bg)
	if err != nil {
		return err
	}
	if err = render.Text(page, f, text, opts); err != nil {
		return err
	}
	if err = html.Render(a.out, page.Document(text)); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write HTML")
	}
	_, err = fmt.Fprintln(a.out)
	return err
}

func (a *app) convert(args []string) error {
	fs, c := a.flags("convert")
	input := fs.String("input", "", "FIGlet font to convert")
	output := fs.String("output", "", "TheDraw font file to write")
	typ := fs.String("type", "color", "Type of the TheDraw font [block|color|outline]")
	drop := fs.Bool("drop", false, "Drop characters TheDraw fonts cannot hold")
	if err := a.parse(fs, c, args); err != nil {
		return err
	}
	if *output == "" {
		return core.Error(core.EINVALID, "no output file given")
	}
	target, err := font.ParseFontType(*typ)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "convert: %v", err)
	}
	src, err := a.selectFont(*input, 1)
	if err != nil {
		return err
	}
	fig, ok := src.Figlet()
	if !ok {
		return core.Error(core.EUNSUPPORTED, "%s is not a FIGlet font", *input)
	}
	tdfFont, err := convert.Convert(fig, target, convert.Options{DropOutOfRange: *drop})
	if err != nil {
		return err
	}
	data, err := tdf.SerializeFont(tdfFont)
	if err != nil {
		return err
	}
	if err = os.WriteFile(*output, data, 0644); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s", *output)
	}
	pterm.Fprintln(a.out, pterm.Sprintf("wrote %s font %q with %d glyphs to %s",
		target, tdfFont.Name(), tdfFont.GlyphCount(), *output))
	return nil
}

func (a *app) inspect(args []string) error {
	fs, c := a.flags("inspect")
	name := fs.String("font", "", "Font file, URL or font name")
	if err := a.parse(fs, c, args); err != nil {
		return err
	}
	fonts, err := a.loadFonts(*name)
	if err != nil {
		return err
	}
	data := pterm.TableData{{"#", "Name", "Format", "Type", "Spacing", "Height", "Glyphs"}}
	for i, f := range fonts {
		row := []string{strconv.Itoa(i + 1), f.Name(), f.Format().String(), "", strconv.Itoa(f.Spacing()), "", strconv.Itoa(f.GlyphCount())}
		if t, ok := f.Tdf(); ok {
			row[3] = t.Type().String()
		}
		if fig, ok := f.Figlet(); ok {
			row[5] = strconv.Itoa(fig.Header().Height)
		}
		data = append(data, row)
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot format font table")
	}
	pterm.Fprintln(a.out, table)
	return nil
}

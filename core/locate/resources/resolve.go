package resources

import (
	"context"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/core/font/fontregistry"
	"github.com/npillmayer/retrofont/core/font/tdf"
	"github.com/npillmayer/schuko"
)

// NotFound returns an application error for a missing font.
func NotFound(res string) error {
	e := fmt.Errorf("resource missing: %v", res)
	return core.WrapError(e, core.EMISSING, "font not found: %s", res)
}

//go:embed packaged/*
var packaged embed.FS

// PackagedFonts lists the file names of the fonts packaged with this module.
func PackagedFonts() []string {
	entries, _ := packaged.ReadDir("packaged/fonts")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

// --- Fonts -----------------------------------------------------------------

type fontsPlusErr struct {
	fonts []font.Font
	err   error
}

// FontsPromise is returned by ResolveFonts. Fonts blocks until loading
// has completed.
type FontsPromise interface {
	Fonts() ([]font.Font, error)
	FontsContext(ctx context.Context) ([]font.Font, error)
}

type fontLoader struct {
	await func(ctx context.Context) ([]font.Font, error)
}

func (loader fontLoader) Fonts() ([]font.Font, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) FontsContext(ctx context.Context) ([]font.Font, error) {
	return loader.await(ctx)
}

// ResolveFonts resolves a font name to a list of fonts. name is tried as
//
//   - an http(s) URL, downloaded to the user's cache directory once,
//   - the path of a font file,
//   - the name (or an unambiguous prefix) of a font already in the global
//     font registry,
//   - the name of a packaged font, e.g. "term" or "blocky",
//   - the name of a font file in one of the directories of SearchPath(conf).
//
// Font files holding more than one font (TheDraw bundles, ZIP archives)
// resolve to all of their fonts, in file order. Fonts loaded from files are
// stored in the global font registry.
func ResolveFonts(name string, conf schuko.Configuration, opts tdf.Options) FontsPromise {
	ch := make(chan fontsPlusErr, 1)
	go func(ch chan<- fontsPlusErr) {
		result := fontsPlusErr{}
		result.fonts, result.err = resolve(name, conf, opts)
		if result.err == nil {
			for _, f := range result.fonts {
				fontregistry.GlobalRegistry().StoreFont(f)
			}
		}
		ch <- result
		close(ch)
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) ([]font.Font, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.fonts, r.err
			}
		},
	}
}

func resolve(name string, conf schuko.Configuration, opts tdf.Options) ([]font.Font, error) {
	if isURL(name) {
		return resolveURL(name, conf, opts)
	}
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		tracer().Debugf("%s is a font file", name)
		return loadFile(name, opts)
	}
	if f, err := fontregistry.GlobalRegistry().Font(name); err == nil {
		tracer().Debugf("font %s found in registry", name)
		return []font.Font{f}, nil
	}
	if fname, ok := findPackaged(name); ok {
		tracer().Debugf("found font as packaged font file %s", fname)
		data, err := packaged.ReadFile("packaged/fonts/" + fname)
		if err != nil {
			return nil, core.WrapError(err, core.EINTERNAL, "cannot read packaged font %s", fname)
		}
		return LoadFonts(fname, data, opts)
	}
	if fpath, ok := findFontFile(SearchPath(conf), name); ok {
		return loadFile(fpath, opts)
	}
	tracer().Infof("font %s not found", name)
	return nil, NotFound(name)
}

func findPackaged(name string) (string, bool) {
	want := fontregistry.NormalizeFontname(name)
	for _, fname := range PackagedFonts() {
		if fontregistry.NormalizeFontname(fname) == want {
			return fname, true
		}
	}
	return "", false
}

func loadFile(fpath string, opts tdf.Options) ([]font.Font, error) {
	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %s", fpath)
	}
	fonts, err := LoadFonts(fpath, data, opts)
	if err == nil {
		tracer().Infof("loaded %d fonts from %s", len(fonts), fpath)
	}
	return fonts, err
}

func isURL(name string) bool {
	return strings.HasPrefix(name, "http://") || strings.HasPrefix(name, "https://")
}

func resolveURL(url string, conf schuko.Configuration, opts tdf.Options) ([]font.Font, error) {
	cachedir, err := CacheDirPath(conf, "fonts")
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "no cache directory for %s", url)
	}
	base := url[strings.LastIndex(url, "/")+1:]
	if i := strings.IndexAny(base, "?#"); i >= 0 {
		base = base[:i]
	}
	if base == "" {
		return nil, core.Error(core.EINVALID, "URL %s does not name a file", url)
	}
	fpath := filepath.Join(cachedir, base)
	if _, err := os.Stat(fpath); err != nil {
		tracer().Infof("downloading %s", url)
		if err = DownloadCachedFile(fpath, url); err != nil {
			return nil, core.WrapError(err, core.EMISSING, "cannot download font %s", url)
		}
	}
	return loadFile(fpath, opts)
}

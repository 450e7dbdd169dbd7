package resources

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/retrofont/core/font/fontregistry"
	"github.com/npillmayer/schuko"
)

// SearchPath returns the directories to search for font files: the entries
// of configuration key 'fonts.path' (separated like PATH), followed by the
// 'fonts' folder of the application's configuration directory.
func SearchPath(conf schuko.Configuration) []string {
	var dirs []string
	if conf != nil {
		for _, dir := range filepath.SplitList(conf.GetString("fonts.path")) {
			if dir = strings.TrimSpace(dir); dir != "" {
				dirs = append(dirs, dir)
			}
		}
	}
	if uconfdir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(uconfdir, appKey(conf), "fonts"))
	}
	return dirs
}

// findFontFile searches dirs for a font file for a given font name.
// The first file whose normalized name matches is returned, with compressed
// files matching by their inner name ("fire.tdf.gz" matches "fire").
func findFontFile(dirs []string, name string) (string, bool) {
	want := fontregistry.NormalizeFontname(name)
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			tracer().Debugf("skipping font directory %s: %v", dir, err)
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			fname := e.Name()
			candidate := strings.TrimSuffix(fname, ".gz")
			if !isFontFile(candidate) && !strings.EqualFold(filepath.Ext(fname), ".zip") {
				continue
			}
			if fontregistry.NormalizeFontname(candidate) == want {
				tracer().Debugf("found font file %s in %s", fname, dir)
				return filepath.Join(dir, fname), true
			}
		}
	}
	return "", false
}

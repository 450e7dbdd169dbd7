package fontregistry

import (
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/schuko/tracing"
)

// Registry is a type for holding loaded fonts.
type Registry struct {
	sync.Mutex
	fonts *trie.Trie // normalized name -> font.Font
	count int
}

var globalFontRegistry *Registry

var globalRegistryCreation sync.Once

// GlobalRegistry is an application-wide singleton to hold loaded fonts.
func GlobalRegistry() *Registry {
	globalRegistryCreation.Do(func() {
		globalFontRegistry = NewRegistry()
	})
	return globalFontRegistry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{fonts: trie.New()}
}

// StoreFont pushes a font into the registry if it isn't contained yet.
//
// The font will be stored using the normalized font name as a key. If this
// key is already associated with a font, that font will not be overridden.
func (fr *Registry) StoreFont(f font.Font) {
	if f.Format() == font.NoFormat {
		tracer().Errorf("registry cannot store null font")
		return
	}
	key := NormalizeFontname(f.Name())
	fr.Lock()
	defer fr.Unlock()
	if _, ok := fr.fonts.Find(key); !ok {
		tracer().Debugf("registry stores font %s as %s", f.Name(), key)
		fr.fonts.Add(key, f)
		fr.count++
	}
}

// Font returns the font registered under name. If no font is registered
// under exactly this name, a font whose name starts with name is returned,
// provided there is only one.
func (fr *Registry) Font(name string) (font.Font, error) {
	key := NormalizeFontname(name)
	fr.Lock()
	defer fr.Unlock()
	if node, ok := fr.fonts.Find(key); ok {
		tracer().Debugf("registry found font %s", key)
		return node.Meta().(font.Font), nil
	}
	candidates := fr.fonts.PrefixSearch(key)
	switch len(candidates) {
	case 0:
		tracer().Infof("registry does not contain font %s", key)
		return font.Font{}, core.Error(core.EMISSING, "font %q not found in registry", name)
	case 1:
		node, _ := fr.fonts.Find(candidates[0])
		tracer().Debugf("registry found font %s for prefix %s", candidates[0], key)
		return node.Meta().(font.Font), nil
	}
	sort.Strings(candidates)
	return font.Font{}, core.Error(core.EINVALID, "font name %q is ambiguous: %s",
		name, strings.Join(candidates, ", "))
}

// Names returns the normalized names of all registered fonts, sorted.
func (fr *Registry) Names() []string {
	fr.Lock()
	defer fr.Unlock()
	names := fr.fonts.Keys()
	sort.Strings(names)
	return names
}

// Len returns the number of registered fonts.
func (fr *Registry) Len() int {
	fr.Lock()
	defer fr.Unlock()
	return fr.count
}

// LogFontList is a helper function to dump the list of known fonts
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	tracer().Infof("--- registered fonts ---")
	for _, k := range fr.Names() {
		f, _ := fr.Font(k)
		tracer().Infof("font [%s] = %v", k, f.Description())
	}
	tracer().Infof("------------------------")
	tracer().SetTraceLevel(level)
}

// NormalizeFontname normalizes a font name or font file name: the directory
// and the extension are removed, spaces are replaced by underscores and
// letters are lower-cased.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(fname)
	fname = path.Base(strings.ReplaceAll(fname, "\\", "/"))
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ReplaceAll(fname, " ", "_")
	return strings.ToLower(fname)
}

package resources

import (
	"bytes"
	"errors"
	"io"
	"path"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/npillmayer/retrofont/core"
	"github.com/npillmayer/retrofont/core/font"
	"github.com/npillmayer/retrofont/core/font/figlet"
	"github.com/npillmayer/retrofont/core/font/tdf"
)

// ErrArchiveEmpty is returned for archives without any font file.
var ErrArchiveEmpty = errors.New("archive contains no font")

var (
	gzipMagic = []byte{0x1F, 0x8B}
	zipMagic  = []byte("PK\x03\x04")
)

// fontExtensions are the extensions of font files within archives.
var fontExtensions = []string{".tdf", ".flf"}

// LoadFonts loads all fonts from the contents of a font file. The format is
// determined from the data: gzip streams and ZIP archives are unpacked,
// then TheDraw bundles and FIGlet fonts are recognized by their signatures.
// name is used to name FIGlet fonts, which do not carry a name themselves.
//
// From ZIP archives, every entry ending in .tdf or .flf is loaded.
func LoadFonts(name string, data []byte, opts tdf.Options) ([]font.Font, error) {
	base := fontBaseName(name)
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		tracer().Debugf("font file %s is gzip compressed", name)
		unpacked, err := gunzip(data)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "cannot decompress font file %s", name)
		}
		return LoadFonts(strings.TrimSuffix(name, path.Ext(name)), unpacked, opts)
	case bytes.HasPrefix(data, zipMagic):
		tracer().Debugf("font file %s is a ZIP archive", name)
		return loadArchive(name, data, opts)
	case tdf.Sniff(data):
		fonts, err := tdf.ParseWith(data, opts)
		if err != nil {
			return nil, err
		}
		loaded := make([]font.Font, len(fonts))
		for i, f := range fonts {
			loaded[i] = font.FromTdf(f)
		}
		return loaded, nil
	case figlet.Sniff(data):
		f, err := figlet.Parse(data, base)
		if err != nil {
			return nil, err
		}
		return []font.Font{font.FromFiglet(f)}, nil
	}
	return nil, core.Error(core.EINVALID, "%s is neither a TheDraw nor a FIGlet font", name)
}

func gunzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func loadArchive(name string, data []byte, opts tdf.Options) ([]font.Font, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot open archive %s", name)
	}
	var fonts []font.Font
	for _, entry := range archive.File {
		if entry.FileInfo().IsDir() || !isFontFile(entry.Name) {
			continue
		}
		content, err := readEntry(entry)
		if err != nil {
			return nil, core.WrapError(err, core.EINVALID, "cannot read %s from archive %s", entry.Name, name)
		}
		loaded, err := LoadFonts(entry.Name, content, opts)
		if err != nil {
			return nil, err
		}
		tracer().Debugf("archive %s: %d fonts in %s", name, len(loaded), entry.Name)
		fonts = append(fonts, loaded...)
	}
	if len(fonts) == 0 {
		return nil, core.WrapError(ErrArchiveEmpty, core.EMISSING, "archive %s contains no font file", name)
	}
	return fonts, nil
}

func readEntry(entry *zip.File) ([]byte, error) {
	r, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func isFontFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range fontExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func fontBaseName(name string) string {
	base := path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

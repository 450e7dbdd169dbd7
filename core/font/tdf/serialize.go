package tdf

import (
	"github.com/npillmayer/retrofont/core/cp437"
	"github.com/npillmayer/retrofont/core/font"
)

// Serialize writes fonts as a TheDraw bundle, including the terminating
// zero byte.
//
// Every defined character gets a glyph of its own in the glyph block, even if
// two characters share a glyph. Offsets therefore never alias.
func Serialize(fonts []*font.TdfFont) ([]byte, error) {
	out := make([]byte, 0, headerSize+len(fonts)*(recordHeaderSize+1024)+1)
	out = appendHeader(out)
	for _, f := range fonts {
		var err error
		if out, err = appendRecord(out, f); err != nil {
			tracer().Errorf("cannot serialize font %q: %v", f.Name(), err)
			return nil, err
		}
	}
	out = append(out, 0)
	tracer().Infof("serialized %d fonts into %d bytes", len(fonts), len(out))
	return out, nil
}

// SerializeFont writes a single font as a bundle.
func SerializeFont(f *font.TdfFont) ([]byte, error) {
	return Serialize([]*font.TdfFont{f})
}

func appendHeader(out []byte) []byte {
	out = append(out, byte(IDLength))
	out = append(out, Signature...)
	return append(out, CtrlZ)
}

func appendRecord(out []byte, f *font.TdfFont) ([]byte, error) {
	name := cp437.EncodeString(f.Name())
	if len(name) > NameLen {
		return nil, errFormat(ErrNameTooLong, "name %q has %d bytes, maximum is %d", f.Name(), len(name), NameLen)
	}
	table := make([]byte, 0, 2*TableSize)
	var block []byte
	for ch := font.TdfFirstChar; ch <= font.TdfLastChar; ch++ {
		g, ok := f.Glyph(ch)
		if !ok {
			table = putU16(table, NoGlyph)
			continue
		}
		if len(block) >= NoGlyph {
			return nil, errFormat(ErrBlockTooLarge, "font %q: no offset left for char %q", f.Name(), ch)
		}
		table = putU16(table, uint16(len(block)))
		enc, err := EncodeGlyph(f.Type(), g)
		if err != nil {
			return nil, errFormat(err, "font %q, char %q", f.Name(), ch)
		}
		block = append(block, enc...)
	}
	if len(block) > 0xFFFF {
		return nil, errFormat(ErrBlockTooLarge, "font %q: glyph block has %d bytes", f.Name(), len(block))
	}
	out = putU32(out, Indicator)
	out = append(out, byte(len(name)))
	out = append(out, name...)
	out = append(out, make([]byte, NameLen-len(name))...)
	out = append(out, 0, 0, 0, 0) // reserved
	out = append(out, byte(f.Type()), f.Spacing())
	out = putU16(out, uint16(len(block)))
	out = append(out, table...)
	out = append(out, block...)
	tracer().Debugf("font %q: %d glyphs in %d bytes", f.Name(), f.GlyphCount(), len(block))
	return out, nil
}

package resource

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"recoveryui/gui/archive"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// DefaultFontDPI applies when a font node has no dpi attribute.
const DefaultFontDPI = 300

// FontResource is a TrueType face. The size attribute is a char size in
// quarter points.
type FontResource struct {
	base
	loader *Loader

	face     font.Face
	orig     font.Face
	origSize int
	size     int
}

// NewFontResource loads the face described by n. The returned resource
// may carry no face; Manager only keeps fonts where Face is non-nil.
func NewFontResource(n theme.Node, arc archive.Archive, l *Loader) *FontResource {
	f := &FontResource{base: newBase(n), loader: l}
	if err := f.load(n, arc); err != nil {
		l.Log.Error().Err(err).Str("font", f.name).Msg("load font")
	}
	return f
}

// NewFontResourceFromFace wraps an already built face, such as a
// built-in fallback font. size is the char size the face represents.
func NewFontResourceFromFace(name string, face font.Face, size int, l *Loader) *FontResource {
	return &FontResource{base: base{name: name}, loader: l, face: face, origSize: size, size: size}
}

func (f *FontResource) Kind() Kind { return KindFont }

// Face returns the active face, falling back to the original face when
// an override produced none.
func (f *FontResource) Face() font.Face {
	if f.face != nil {
		return f.face
	}
	return f.orig
}

// Original returns the face loaded before the first override, or nil.
func (f *FontResource) Original() font.Face { return f.orig }

// Size is the char size the active face was built with.
func (f *FontResource) Size() int { return f.size }

// OriginalSize is the scaled size from the first successful load.
func (f *FontResource) OriginalSize() int { return f.origSize }

func (f *FontResource) load(n theme.Node, arc archive.Archive) error {
	const op = "resource.LoadFont"
	f.face = nil
	if n == nil {
		return uierr.New(op, uierr.KindConfig, f.name, uierr.ErrNotFound)
	}
	file, ok := n.Attr("filename")
	if !ok {
		return uierr.New(op, uierr.KindConfig, f.name, uierr.ErrNoFilename)
	}
	if !strings.HasSuffix(file, ".ttf") {
		return uierr.New(op, uierr.KindUnsupported, file, uierr.ErrUnsupportedFont)
	}

	var size int
	if f.origSize != 0 {
		if !theme.HasAttr(n, "scale") {
			return uierr.New(op, uierr.KindConfig, f.name, fmt.Errorf("override has no scale attribute"))
		}
		size = f.origSize * theme.AttrInt(n, "scale", 0) / 100
	} else {
		if !theme.HasAttr(n, "size") {
			return uierr.New(op, uierr.KindConfig, f.name, fmt.Errorf("no size attribute"))
		}
		size = f.loader.Scale.Min(theme.AttrInt(n, "size", 0))
		f.origSize = size
	}
	if size <= 0 {
		return uierr.New(op, uierr.KindConfig, f.name, fmt.Errorf("invalid font size %d", size))
	}
	dpi := theme.AttrInt(n, "dpi", DefaultFontDPI)

	data, err := f.readFontFile(arc, file)
	if err != nil {
		return uierr.New(op, uierr.KindAsset, file, err)
	}
	ft, err := opentype.Parse(data)
	if err != nil {
		return uierr.New(op, uierr.KindAsset, file, err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    float64(size) / 4,
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
	if err != nil {
		return uierr.New(op, uierr.KindAsset, file, err)
	}
	f.face = face
	f.size = size
	f.loader.Log.Info().Str("font", f.name).Str("file", file).Int("size", size).Int("dpi", dpi).Msg("loaded font")
	return nil
}

// readFontFile extracts fonts/<file> to its own temp path (never the
// shared image scratch file) or reads it from the theme directory.
func (f *FontResource) readFontFile(arc archive.Archive, file string) ([]byte, error) {
	tmp := filepath.Join(f.loader.fontTmpDir(), filepath.Base(file))
	if ExtractResource(arc, "fonts", file, "", tmp) == nil {
		defer os.Remove(tmp)
		return os.ReadFile(tmp)
	}
	return os.ReadFile(filepath.Join(f.loader.ResDir, "fonts", file))
}

// Override replaces the active face from an override node. The first
// override keeps the current face as the original; later ones close the
// active face first.
func (f *FontResource) Override(n theme.Node, arc archive.Archive) error {
	if f.orig == nil {
		f.orig = f.face
	} else if f.face != nil {
		_ = f.face.Close()
	}
	f.face = nil
	if err := f.load(n, arc); err != nil {
		f.loader.Log.Error().Err(err).Str("font", f.name).Msg("override font")
		return err
	}
	return nil
}

// DeleteFont closes the active and original faces.
func (f *FontResource) DeleteFont() {
	if f.face != nil {
		_ = f.face.Close()
	}
	if f.orig != nil && f.orig != f.face {
		_ = f.orig.Close()
	}
	f.face = nil
	f.orig = nil
}

func (f *FontResource) Release() { f.DeleteFont() }

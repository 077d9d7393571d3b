package resource

import (
	"errors"
	"os"
	"path/filepath"

	"recoveryui/gui/archive"
	"recoveryui/gui/gfx"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"

	"github.com/rs/zerolog"
)

const (
	DefaultScratchPath = "/tmp/extract.bin"
	DefaultFontTmpDir  = "/tmp"
)

// Loader decodes assets for resources. It shares one scratch file across
// loads, so a Loader must not be used from more than one goroutine.
type Loader struct {
	// ScratchPath receives each extracted image before decode.
	ScratchPath string
	// FontTmpDir receives extracted font files.
	FontTmpDir string
	// ResDir is the on-disk theme directory used when there is no archive.
	ResDir string
	Scale  theme.Scale
	Log    zerolog.Logger
}

func (l *Loader) scratch() string {
	if l.ScratchPath == "" {
		return DefaultScratchPath
	}
	return l.ScratchPath
}

func (l *Loader) fontTmpDir() string {
	if l.FontTmpDir == "" {
		return DefaultFontTmpDir
	}
	return l.FontTmpDir
}

// loadVia runs the image lookup order and hands each candidate file to
// decode. Extracted scratch files are removed right after decode.
func loadVia[T any](l *Loader, arc archive.Archive, file string, decode func(string) (T, error)) (T, error) {
	var zero T
	scratch := l.scratch()

	fromScratch := func() (T, error) {
		v, err := decode(scratch)
		if rmErr := os.Remove(scratch); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			l.Log.Warn().Err(rmErr).Str("path", scratch).Msg("remove scratch file")
		}
		return v, err
	}

	if ExtractResource(arc, "images", file, ".png", scratch) == nil {
		l.Log.Debug().Str("file", file).Msg("image load method #1")
		return fromScratch()
	}
	if ExtractResource(arc, "images", file, "", scratch) == nil {
		l.Log.Debug().Str("file", file).Msg("image load method #2")
		return fromScratch()
	}
	if arc != nil {
		return zero, uierr.New("resource.LoadImage", uierr.KindAsset, file, uierr.ErrNotFound)
	}

	l.Log.Debug().Str("file", file).Msg("image load method #3")
	dir := filepath.Join(l.ResDir, "images")
	var err error
	for _, p := range []string{filepath.Join(dir, file+".png"), filepath.Join(dir, file)} {
		var v T
		if v, err = decode(p); err == nil {
			return v, nil
		}
	}
	return zero, uierr.New("resource.LoadImage", uierr.KindAsset, file, err)
}

// LoadImage decodes the named image into a display surface. A nil result
// means the image is unavailable.
func (l *Loader) LoadImage(arc archive.Archive, file string) *gfx.Surface {
	s, err := loadVia(l, arc, file, gfx.LoadSurface)
	if err != nil {
		l.Log.Info().Err(err).Str("file", file).Bool("zip", arc != nil).Msg("failed to load image")
		return nil
	}
	return s
}

// LoadCanvas decodes the named image into an alpha canvas.
func (l *Loader) LoadCanvas(arc archive.Archive, file string) *gfx.Canvas {
	c, err := loadVia(l, arc, file, gfx.LoadCanvas)
	if err != nil {
		l.Log.Info().Err(err).Str("file", file).Bool("zip", arc != nil).Msg("failed to load canvas")
		return nil
	}
	return c
}

func (l *Loader) factors(retainAspect bool) (float64, float64, bool) {
	if !l.Scale.Enabled() {
		return 0, 0, false
	}
	sw, sh := l.Scale.W, l.Scale.H
	if retainAspect {
		sw = min(sw, sh)
		sh = sw
	}
	return sw, sh, true
}

// CheckAndScaleImage applies the theme scale to src. When scaling fails
// the source is returned unscaled.
func (l *Loader) CheckAndScaleImage(src *gfx.Surface, retainAspect bool) *gfx.Surface {
	if src == nil {
		return nil
	}
	sw, sh, ok := l.factors(retainAspect)
	if !ok {
		return src
	}
	dst, err := gfx.ScaleSurface(src, sw, sh)
	if err != nil {
		l.Log.Info().Err(err).Msg("error scaling image, using regular size")
		return src
	}
	src.Free()
	return dst
}

// CheckAndScaleCanvas is CheckAndScaleImage for canvases. On failure the
// original canvas itself is returned, not a copy.
func (l *Loader) CheckAndScaleCanvas(src *gfx.Canvas, retainAspect bool) *gfx.Canvas {
	if src == nil {
		return nil
	}
	sw, sh, ok := l.factors(retainAspect)
	if !ok {
		return src
	}
	l.Log.Debug().Int("w", src.Width()).Int("h", src.Height()).
		Float64("sw", sw).Float64("sh", sh).Msg("scaling canvas")
	dst, err := gfx.ScaleCanvas(src, sw, sh)
	if err != nil {
		l.Log.Info().Err(err).Msg("error scaling canvas, using regular size")
		return src
	}
	src.Free()
	return dst
}

package resource

import (
	"fmt"

	"recoveryui/gui/archive"
	"recoveryui/gui/gfx"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"
)

// MaxAnimationFrames bounds frame probing; frame names carry three digits.
const MaxAnimationFrames = 999

// ImageResource holds one image as both a display surface and an alpha
// canvas, each scaled independently.
type ImageResource struct {
	base
	surface *gfx.Surface
	canvas  *gfx.Canvas
}

// NewImageResource loads the image named by the node's filename
// attribute. A retainaspect attribute, whatever its value, keeps the
// aspect ratio when scaling.
func NewImageResource(n theme.Node, arc archive.Archive, l *Loader) *ImageResource {
	r := &ImageResource{base: newBase(n)}
	file, ok := "", false
	if n != nil {
		file, ok = n.Attr("filename")
	}
	if !ok {
		l.Log.Error().Err(uierr.ErrNoFilename).Str("image", r.name).Msg("image resource")
		return r
	}
	retain := theme.HasAttr(n, "retainaspect")
	r.surface = l.CheckAndScaleImage(l.LoadImage(arc, file), retain)
	r.canvas = l.CheckAndScaleCanvas(l.LoadCanvas(arc, file), retain)
	return r
}

func (r *ImageResource) Kind() Kind            { return KindImage }
func (r *ImageResource) Surface() *gfx.Surface { return r.surface }
func (r *ImageResource) Canvas() *gfx.Canvas   { return r.canvas }
func (r *ImageResource) Width() int            { return r.canvas.Width() }
func (r *ImageResource) Height() int           { return r.canvas.Height() }
func (r *ImageResource) usable() bool          { return r.surface != nil && r.canvas != nil }

func (r *ImageResource) Release() {
	r.surface.Free()
	r.canvas.Free()
	r.surface = nil
	r.canvas = nil
}

// AnimationResource is a numbered frame sequence <filename>001,
// <filename>002 and so on. Its length is fixed once loaded.
type AnimationResource struct {
	base
	surfaces []*gfx.Surface
	canvases []*gfx.Canvas
}

// NewAnimationResource loads frames until one fails on either the
// surface or canvas path. The failing index is not included.
func NewAnimationResource(n theme.Node, arc archive.Archive, l *Loader) *AnimationResource {
	r := &AnimationResource{base: newBase(n)}
	file, ok := "", false
	if n != nil {
		file, ok = n.Attr("filename")
	}
	if !ok {
		l.Log.Error().Err(uierr.ErrNoFilename).Str("animation", r.name).Msg("animation resource")
		return r
	}
	retain := theme.HasAttr(n, "retainaspect")
	for i := 1; i <= MaxAnimationFrames; i++ {
		frame := fmt.Sprintf("%s%03d", file, i)
		s := l.CheckAndScaleImage(l.LoadImage(arc, frame), retain)
		c := l.CheckAndScaleCanvas(l.LoadCanvas(arc, frame), retain)
		if s == nil || c == nil {
			s.Free()
			c.Free()
			break
		}
		r.surfaces = append(r.surfaces, s)
		r.canvases = append(r.canvases, c)
	}
	l.Log.Debug().Str("animation", r.name).Int("frames", len(r.surfaces)).Msg("loaded animation")
	return r
}

func (r *AnimationResource) Kind() Kind { return KindAnimation }

// Len is the number of frames.
func (r *AnimationResource) Len() int { return len(r.canvases) }

// Surface returns frame i (0-based) or nil when out of range.
func (r *AnimationResource) Surface(i int) *gfx.Surface {
	if i < 0 || i >= len(r.surfaces) {
		return nil
	}
	return r.surfaces[i]
}

// Canvas returns frame i (0-based) or nil when out of range.
func (r *AnimationResource) Canvas(i int) *gfx.Canvas {
	if i < 0 || i >= len(r.canvases) {
		return nil
	}
	return r.canvases[i]
}

func (r *AnimationResource) Release() {
	for _, s := range r.surfaces {
		s.Free()
	}
	for _, c := range r.canvases {
		c.Free()
	}
	r.surfaces = nil
	r.canvases = nil
}

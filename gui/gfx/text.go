package gfx

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// MeasureText returns the rendered width and line height of s in face.
func MeasureText(face font.Face, s string) (w, h int) {
	if face == nil {
		return 0, 0
	}
	return font.MeasureString(face, s).Ceil(), face.Metrics().Height.Ceil()
}

// LineHeight is the advance between baselines for face.
func LineHeight(face font.Face) int {
	if face == nil {
		return 0
	}
	return face.Metrics().Height.Ceil()
}

// DrawText draws s with its top-left corner at (x, y). When maxWidth is
// positive, glyphs past that width are clipped.
func (c *Canvas) DrawText(face font.Face, x, y int, s string, col Color, maxWidth int) {
	if c.Freed() || face == nil || s == "" {
		return
	}
	var dst = c.img
	if maxWidth > 0 {
		clip := image.Rect(x, y, x+maxWidth, y+LineHeight(face)).Intersect(c.img.Bounds())
		if clip.Empty() {
			return
		}
		dst = c.img.SubImage(clip).(*image.RGBA)
	}
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

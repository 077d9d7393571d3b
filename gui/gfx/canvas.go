package gfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	xdraw "golang.org/x/image/draw"
)

// maxCanvasPixels bounds allocations so a corrupt size cannot exhaust memory.
const maxCanvasPixels = 8192 * 8192

var ErrFreed = errors.New("gfx: canvas freed")

// Canvas is an RGBA drawing surface with alpha, the high-level counterpart
// of a display Surface.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a transparent w×h canvas.
func NewCanvas(w, h int) (*Canvas, error) {
	if w <= 0 || h <= 0 || w*h > maxCanvasPixels {
		return nil, fmt.Errorf("gfx: invalid canvas size %dx%d", w, h)
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}, nil
}

// CanvasFromImage copies img into a new canvas.
func CanvasFromImage(img image.Image) (*Canvas, error) {
	b := img.Bounds()
	c, err := NewCanvas(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	draw.Draw(c.img, c.img.Bounds(), img, b.Min, draw.Src)
	return c, nil
}

func (c *Canvas) Width() int {
	if c == nil || c.img == nil {
		return 0
	}
	return c.img.Bounds().Dx()
}

func (c *Canvas) Height() int {
	if c == nil || c.img == nil {
		return 0
	}
	return c.img.Bounds().Dy()
}

// Image exposes the backing image for font drawing. Nil after Free.
func (c *Canvas) Image() *image.RGBA {
	if c == nil {
		return nil
	}
	return c.img
}

// Free drops the pixel buffer. Further drawing is a no-op.
func (c *Canvas) Free() {
	if c != nil {
		c.img = nil
	}
}

func (c *Canvas) Freed() bool { return c == nil || c.img == nil }

// Clear replaces every pixel with col.
func (c *Canvas) Clear(col Color) {
	if c.Freed() {
		return
	}
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect blends col over the rectangle.
func (c *Canvas) FillRect(x, y, w, h int, col Color) {
	if c.Freed() || w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	op := draw.Over
	if col.A == 0xFF {
		op = draw.Src
	}
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, op)
}

// FillAlpha sets the rectangle to transparent black at alpha a.
func (c *Canvas) FillAlpha(x, y, w, h int, a uint8) {
	if c.Freed() || w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(c.img.Bounds())
	draw.Draw(c.img, r, image.NewUniform(color.RGBA{A: a}), image.Point{}, draw.Src)
}

// Draw composites the w×h region of src at (sx,sy) onto c at (dx,dy),
// scaled by alpha.
func (c *Canvas) Draw(src *Canvas, dx, dy, sx, sy, w, h int, alpha uint8) {
	if c.Freed() || src.Freed() || w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(dx, dy, dx+w, dy+h)
	sp := image.Pt(sx, sy)
	if alpha == 0xFF {
		draw.Draw(c.img, r, src.img, sp, draw.Over)
		return
	}
	draw.DrawMask(c.img, r, src.img, sp, image.NewUniform(color.Alpha{A: alpha}), image.Point{}, draw.Over)
}

// DrawScaled composites the whole of src into the dw×dh box at (dx,dy).
func (c *Canvas) DrawScaled(src *Canvas, dx, dy, dw, dh int) error {
	if c.Freed() || src.Freed() {
		return ErrFreed
	}
	if dw <= 0 || dh <= 0 {
		return fmt.Errorf("gfx: invalid scale target %dx%d", dw, dh)
	}
	xdraw.CatmullRom.Scale(c.img, image.Rect(dx, dy, dx+dw, dy+dh), src.img, src.img.Bounds(), xdraw.Over, nil)
	return nil
}

// ScaleCanvas returns a new canvas holding src scaled by (sw, sh). The
// destination starts fully transparent so alpha in src is preserved.
func ScaleCanvas(src *Canvas, sw, sh float64) (*Canvas, error) {
	if src.Freed() {
		return nil, ErrFreed
	}
	w := int(float64(src.Width()) * sw)
	h := int(float64(src.Height()) * sh)
	dst, err := NewCanvas(w, h)
	if err != nil {
		return nil, err
	}
	dst.FillAlpha(0, 0, w, h, 0)
	if err := dst.DrawScaled(src, 0, 0, w, h); err != nil {
		dst.Free()
		return nil, err
	}
	return dst, nil
}

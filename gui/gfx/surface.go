package gfx

import (
	"fmt"
	"image"

	"recoveryui/hal"
)

// Surface is an opaque RGB565 pixel buffer, the low-level image form.
type Surface struct {
	W, H   int
	Stride int
	Pix    []byte
}

// NewSurface allocates a black w×h surface.
func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 || w*h > maxCanvasPixels {
		return nil, fmt.Errorf("gfx: invalid surface size %dx%d", w, h)
	}
	return &Surface{W: w, H: h, Stride: w * 2, Pix: make([]byte, w*h*2)}, nil
}

// SurfaceFromImage converts img to RGB565, blending alpha onto black.
func SurfaceFromImage(img image.Image) (*Surface, error) {
	b := img.Bounds()
	s, err := NewSurface(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < s.H; y++ {
		row := s.Pix[y*s.Stride:]
		for x := 0; x < s.W; x++ {
			r, g, bb, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			hal.PutPixel(hal.PixelFormatRGB565, row[x*2:], uint8(r>>8), uint8(g>>8), uint8(bb>>8))
		}
	}
	return s, nil
}

func (s *Surface) Width() int {
	if s == nil {
		return 0
	}
	return s.W
}

func (s *Surface) Height() int {
	if s == nil {
		return 0
	}
	return s.H
}

func (s *Surface) Free() {
	if s != nil {
		s.Pix = nil
	}
}

func (s *Surface) Freed() bool { return s == nil || s.Pix == nil }

// At returns the 8-bit RGB value at (x, y).
func (s *Surface) At(x, y int) (r, g, b uint8) {
	return hal.GetPixel(hal.PixelFormatRGB565, s.Pix[y*s.Stride+x*2:])
}

// Canvas converts s to an opaque canvas.
func (s *Surface) Canvas() (*Canvas, error) {
	if s.Freed() {
		return nil, ErrFreed
	}
	c, err := NewCanvas(s.W, s.H)
	if err != nil {
		return nil, err
	}
	pix := c.img.Pix
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			r, g, b := s.At(x, y)
			o := y*c.img.Stride + x*4
			pix[o], pix[o+1], pix[o+2], pix[o+3] = r, g, b, 0xFF
		}
	}
	return c, nil
}

// ScaleSurface returns src resized by (sw, sh) with nearest-neighbour
// sampling.
func ScaleSurface(src *Surface, sw, sh float64) (*Surface, error) {
	if src.Freed() {
		return nil, ErrFreed
	}
	dw := int(float64(src.W) * sw)
	dh := int(float64(src.H) * sh)
	dst, err := NewSurface(dw, dh)
	if err != nil {
		return nil, err
	}
	for y := 0; y < dh; y++ {
		sy := y * src.H / dh
		srow := src.Pix[sy*src.Stride:]
		drow := dst.Pix[y*dst.Stride:]
		for x := 0; x < dw; x++ {
			sx := x * src.W / dw
			drow[x*2] = srow[sx*2]
			drow[x*2+1] = srow[sx*2+1]
		}
	}
	return dst, nil
}

package gfx

import (
	"fmt"

	"recoveryui/hal"
)

// Present converts c into the framebuffer's pixel format. The caller
// flips the backend afterwards.
func Present(c *Canvas, fb hal.Framebuffer) error {
	if c.Freed() {
		return ErrFreed
	}
	if fb == nil {
		return fmt.Errorf("gfx: no framebuffer")
	}
	buf := fb.Buffer()
	if buf == nil {
		return hal.ErrNotImplemented
	}
	format := fb.Format()
	bpp := format.BytesPerPixel()
	stride := fb.StrideBytes()
	w := min(c.Width(), fb.Width())
	h := min(c.Height(), fb.Height())
	src := c.img.Pix
	for y := 0; y < h; y++ {
		srow := src[y*c.img.Stride:]
		drow := buf[y*stride:]
		for x := 0; x < w; x++ {
			o := x * 4
			hal.PutPixel(format, drow[x*bpp:], srow[o], srow[o+1], srow[o+2])
		}
	}
	return nil
}

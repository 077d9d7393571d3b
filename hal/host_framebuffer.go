package hal

import "sync"

// memFramebuffer is an in-memory draw surface. Device backends draw into one
// and copy it to the hardware buffer on Present.
type memFramebuffer struct {
	mu      sync.Mutex
	width   int
	height  int
	stride  int
	format  PixelFormat
	buf     []byte
	present func(buf []byte) error
}

func newMemFramebuffer(width, height int, format PixelFormat, present func([]byte) error) *memFramebuffer {
	stride := width * format.BytesPerPixel()
	return &memFramebuffer{
		width:   width,
		height:  height,
		stride:  stride,
		format:  format,
		buf:     make([]byte, stride*height),
		present: present,
	}
}

// NewMemoryFramebuffer returns a framebuffer whose Present is a no-op.
// Tests and offline renderers draw into it directly.
func NewMemoryFramebuffer(width, height int, format PixelFormat) Framebuffer {
	return newMemFramebuffer(width, height, format, nil)
}

func (f *memFramebuffer) Width() int          { return f.width }
func (f *memFramebuffer) Height() int         { return f.height }
func (f *memFramebuffer) Format() PixelFormat { return f.format }
func (f *memFramebuffer) StrideBytes() int    { return f.stride }
func (f *memFramebuffer) Buffer() []byte      { return f.buf }

func (f *memFramebuffer) Present() error {
	if f.present == nil {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.present(f.buf)
}

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()

	bpp := f.format.BytesPerPixel()
	if bpp == 0 {
		return
	}
	for i := 0; i+bpp <= len(f.buf); i += bpp {
		PutPixel(f.format, f.buf[i:], r, g, b)
	}
}

func (f *memFramebuffer) snapshot(dst []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.buf)
}

package gfx

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"recoveryui/hal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 0xFF, G: 0x80, B: 0x00, A: 0xFF}, c)

	c, err = ParseColor("#00000080")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x80), c.A)

	_, err = ParseColor("blue")
	assert.Error(t, err)
	_, err = ParseColor("#0000zz80")
	assert.Error(t, err)
}

func TestNewCanvasRejectsBadSize(t *testing.T) {
	_, err := NewCanvas(0, 10)
	assert.Error(t, err)
	_, err = NewCanvas(10, -1)
	assert.Error(t, err)
}

func TestFillRectClipsAndBlends(t *testing.T) {
	c, err := NewCanvas(4, 4)
	require.NoError(t, err)
	c.Clear(RGB(0, 0, 0))
	c.FillRect(2, 2, 10, 10, RGB(255, 0, 0))

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, c.Image().RGBAAt(3, 3))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, c.Image().RGBAAt(1, 1))

	c.FillRect(0, 0, 1, 1, RGBA(255, 255, 255, 128))
	px := c.Image().RGBAAt(0, 0)
	assert.InDelta(t, 128, int(px.R), 2)
}

func TestScaleCanvasKeepsAlpha(t *testing.T) {
	src, err := NewCanvas(10, 10)
	require.NoError(t, err)
	src.FillRect(0, 0, 10, 10, RGBA(0, 0, 255, 0xFF))

	dst, err := ScaleCanvas(src, 0.5, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, dst.Width())
	assert.Equal(t, 20, dst.Height())
	assert.GreaterOrEqual(t, dst.Image().RGBAAt(2, 10).A, uint8(250))

	empty, err := NewCanvas(10, 10)
	require.NoError(t, err)
	scaled, err := ScaleCanvas(empty, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), scaled.Image().RGBAAt(5, 5).A)
}

func TestScaleSurfaceNearest(t *testing.T) {
	src, err := NewSurface(2, 1)
	require.NoError(t, err)
	hal.PutPixel(hal.PixelFormatRGB565, src.Pix[0:], 255, 255, 255)

	dst, err := ScaleSurface(src, 2, 2)
	require.NoError(t, err)
	require.Equal(t, 4, dst.W)
	require.Equal(t, 2, dst.H)
	for y := 0; y < 2; y++ {
		r, _, _ := dst.At(0, y)
		assert.Equal(t, uint8(255), r)
		r, _, _ = dst.At(1, y)
		assert.Equal(t, uint8(255), r)
		r, _, _ = dst.At(2, y)
		assert.Equal(t, uint8(0), r)
	}

	_, err = ScaleSurface(src, 0, 1)
	assert.Error(t, err)
}

func TestFreedCanvasIsInert(t *testing.T) {
	c, err := NewCanvas(2, 2)
	require.NoError(t, err)
	c.Free()
	assert.True(t, c.Freed())
	assert.Zero(t, c.Width())
	c.FillRect(0, 0, 1, 1, RGB(1, 2, 3))
	_, err = ScaleCanvas(c, 1, 1)
	assert.ErrorIs(t, err, ErrFreed)
}

func TestPresentConvertsFormat(t *testing.T) {
	c, err := NewCanvas(3, 2)
	require.NoError(t, err)
	c.Clear(RGB(10, 20, 30))

	fb := hal.NewMemoryFramebuffer(3, 2, hal.PixelFormatBGRA8888)
	require.NoError(t, Present(c, fb))
	assert.Equal(t, []byte{30, 20, 10, 0xFF}, fb.Buffer()[:4])
}

func TestDrawTextMeasures(t *testing.T) {
	face := basicfont.Face7x13
	w, h := MeasureText(face, "abc")
	assert.Equal(t, 21, w)
	assert.Equal(t, 13, h)

	c, err := NewCanvas(40, 20)
	require.NoError(t, err)
	c.DrawText(face, 0, 0, "abc", RGB(255, 255, 255), 0)
	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			if c.Image().RGBAAt(x, y).A != 0 {
				lit++
			}
		}
	}
	assert.Positive(t, lit)
}

func TestLoadSurfaceAndCanvas(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.NRGBA{R: 255, A: 255})
	path := filepath.Join(t.TempDir(), "x.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	s, err := LoadSurface(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Width())
	r, _, _ := s.At(0, 0)
	assert.Equal(t, uint8(255), r)

	cv, err := LoadCanvas(path)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), cv.Image().RGBAAt(1, 1).A)

	_, err = LoadSurface(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

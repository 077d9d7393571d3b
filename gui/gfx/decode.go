package gfx

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// DecodeFile reads an image file in any registered format.
func DecodeFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("gfx: decode: %w", err)
	}
	return img, nil
}

// LoadSurface decodes path into an RGB565 surface.
func LoadSurface(path string) (*Surface, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return SurfaceFromImage(img)
}

// LoadCanvas decodes path into a canvas, keeping alpha.
func LoadCanvas(path string) (*Canvas, error) {
	img, err := DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return CanvasFromImage(img)
}

package hal

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// RGB565 packs an 8-bit RGB triple into 16bpp.
func RGB565(r, g, b uint8) uint16 { return rgb565(r, g, b) }

// RGB888From565 expands a 16bpp pixel.
func RGB888From565(p uint16) (r, g, b uint8) { return rgb888From565(p) }

// PutPixel encodes one pixel at dst[0:] in format f. dst must hold
// f.BytesPerPixel() bytes.
func PutPixel(f PixelFormat, dst []byte, r, g, b uint8) {
	switch f {
	case PixelFormatRGB565:
		p := rgb565(r, g, b)
		dst[0] = byte(p)
		dst[1] = byte(p >> 8)
	case PixelFormatRGBX8888:
		dst[0] = r
		dst[1] = g
		dst[2] = b
		dst[3] = 0xFF
	case PixelFormatBGRA8888:
		dst[0] = b
		dst[1] = g
		dst[2] = r
		dst[3] = 0xFF
	}
}

// GetPixel decodes one pixel stored at src[0:] in format f.
func GetPixel(f PixelFormat, src []byte) (r, g, b uint8) {
	switch f {
	case PixelFormatRGB565:
		return rgb888From565(uint16(src[0]) | uint16(src[1])<<8)
	case PixelFormatRGBX8888:
		return src[0], src[1], src[2]
	case PixelFormatBGRA8888:
		return src[2], src[1], src[0]
	}
	return 0, 0, 0
}

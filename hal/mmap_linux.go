//go:build linux

package hal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

// ashmemHeaderSize is sizeof({int w; int h; uint8 alpha; uint8 hicolor}) with
// C padding. Pixel data (RGB565) follows the header.
const ashmemHeaderSize = 12

type ashmemHeader struct {
	W, H    int
	Alpha   uint8
	HiColor uint8
}

func parseAshmemHeader(b []byte) (ashmemHeader, error) {
	if len(b) < ashmemHeaderSize {
		return ashmemHeader{}, errors.New("ashmem: short header")
	}
	h := ashmemHeader{
		W:       int(int32(binary.NativeEndian.Uint32(b[0:4]))),
		H:       int(int32(binary.NativeEndian.Uint32(b[4:8]))),
		Alpha:   b[8],
		HiColor: b[9],
	}
	if h.W <= 0 || h.H <= 0 {
		return h, fmt.Errorf("ashmem: invalid canvas size %dx%d", h.W, h.H)
	}
	return h, nil
}

// mmapBackend draws into an in-memory RGB565 surface and copies it into a
// shared canvas on Flip. Drawing directly to the mapping is much slower.
type mmapBackend struct {
	cfg DeviceConfig
	log zerolog.Logger

	fd     int
	mem    []byte
	pixels []byte
	draw   *memFramebuffer
}

func newMmapBackend(cfg DeviceConfig) Backend {
	return &mmapBackend{cfg: cfg, log: cfg.Log, fd: -1}
}

func (b *mmapBackend) Init() (Framebuffer, error) {
	fd, err := unix.Open(b.cfg.Path, unix.O_RDWR, 0o666)
	if err != nil {
		return nil, fmt.Errorf("mmap: open %s: %w", b.cfg.Path, err)
	}

	head, err := unix.Mmap(fd, 0, ashmemHeaderSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap: map header: %w", err)
	}
	hdr, err := parseAshmemHeader(head)
	_ = unix.Munmap(head)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	b.log.Info().Int("width", hdr.W).Int("height", hdr.H).
		Uint8("alpha", hdr.Alpha).Uint8("hicolor", hdr.HiColor).Msg("ashmem canvas")

	size := hdr.W*hdr.H*2 + ashmemHeaderSize
	mem, err := unix.Mmap(fd, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap: map canvas: %w", err)
	}

	b.fd = fd
	b.mem = mem
	b.pixels = mem[ashmemHeaderSize:]
	b.draw = newMemFramebuffer(hdr.W, hdr.H, PixelFormatRGB565, func(buf []byte) error {
		copy(b.pixels, buf)
		return nil
	})

	_ = b.Blank(true)
	_ = b.Blank(false)
	return b.draw, nil
}

func (b *mmapBackend) Flip() (Framebuffer, error) {
	if b.draw == nil {
		return nil, errors.New("mmap: not initialized")
	}
	return b.draw, b.draw.Present()
}

// Blank drives the backlight when a brightness path is configured.
func (b *mmapBackend) Blank(blank bool) error {
	if b.cfg.BrightnessPath == "" || b.cfg.MaxBrightness <= 0 {
		return nil
	}
	val := fmt.Sprintf("%03d", b.cfg.MaxBrightness/2)
	if blank {
		val = "000"
	}
	if err := os.WriteFile(b.cfg.BrightnessPath, []byte(val), 0o644); err != nil {
		return fmt.Errorf("mmap: backlight: %w", err)
	}
	return nil
}

func (b *mmapBackend) Exit() error {
	var err error
	if b.mem != nil {
		err = unix.Munmap(b.mem)
		b.mem = nil
		b.pixels = nil
	}
	if b.fd >= 0 {
		if cerr := unix.Close(b.fd); err == nil {
			err = cerr
		}
		b.fd = -1
	}
	b.draw = nil
	return err
}

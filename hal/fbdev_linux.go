//go:build linux

package hal

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
	fbioBlank          = 0x4611

	fbBlankUnblank   = 0
	fbBlankPowerdown = 4
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MsbRight uint32
}

type fbVarScreenInfo struct {
	Xres, Yres               uint32
	XresVirtual, YresVirtual uint32
	Xoffset, Yoffset         uint32
	BitsPerPixel             uint32
	Grayscale                uint32
	Red, Green, Blue, Transp fbBitfield
	Nonstd                   uint32
	Activate                 uint32
	Height, Width            uint32
	AccelFlags               uint32
	Pixclock                 uint32
	LeftMargin, RightMargin  uint32
	UpperMargin, LowerMargin uint32
	HsyncLen, VsyncLen       uint32
	Sync, Vmode              uint32
	Rotate                   uint32
	Colorspace               uint32
	Reserved                 [4]uint32
}

type fbFixScreenInfo struct {
	ID           [16]byte
	SmemStart    uintptr
	SmemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	Xpanstep     uint16
	Ypanstep     uint16
	Ywrapstep    uint16
	LineLength   uint32
	MmioStart    uintptr
	MmioLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

func ioctlPtr(fd int, req uint, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(req), uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func fbFormat(v *fbVarScreenInfo) (PixelFormat, error) {
	switch v.BitsPerPixel {
	case 16:
		return PixelFormatRGB565, nil
	case 32:
		if v.Red.Offset == 0 {
			return PixelFormatRGBX8888, nil
		}
		if v.Blue.Offset == 0 {
			return PixelFormatBGRA8888, nil
		}
	}
	return 0, fmt.Errorf("fbdev: unsupported pixel layout bpp=%d red=%d blue=%d",
		v.BitsPerPixel, v.Red.Offset, v.Blue.Offset)
}

// fbdevBackend renders through the Linux fbdev interface. Like the mmap
// backend it draws into memory and copies row by row on Flip.
type fbdevBackend struct {
	cfg DeviceConfig
	log zerolog.Logger

	fd         int
	mem        []byte
	lineLength int
	draw       *memFramebuffer
}

func newFbdevBackend(cfg DeviceConfig) Backend {
	return &fbdevBackend{cfg: cfg, log: cfg.Log, fd: -1}
}

func (b *fbdevBackend) Init() (Framebuffer, error) {
	fd, err := unix.Open(b.cfg.Path, unix.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("fbdev: open %s: %w", b.cfg.Path, err)
	}

	var vi fbVarScreenInfo
	if err := ioctlPtr(fd, fbioGetVScreenInfo, unsafe.Pointer(&vi)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("fbdev: FBIOGET_VSCREENINFO: %w", err)
	}
	var fi fbFixScreenInfo
	if err := ioctlPtr(fd, fbioGetFScreenInfo, unsafe.Pointer(&fi)); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("fbdev: FBIOGET_FSCREENINFO: %w", err)
	}

	format, err := fbFormat(&vi)
	if err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	b.log.Info().Uint32("xres", vi.Xres).Uint32("yres", vi.Yres).
		Uint32("bpp", vi.BitsPerPixel).Uint32("line_length", fi.LineLength).
		Str("format", format.String()).Msg("fbdev")

	mem, err := unix.Mmap(fd, 0, int(fi.SmemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("fbdev: mmap: %w", err)
	}

	b.fd = fd
	b.mem = mem
	b.lineLength = int(fi.LineLength)
	w, h := int(vi.Xres), int(vi.Yres)
	b.draw = newMemFramebuffer(w, h, format, func(buf []byte) error {
		rowBytes := w * format.BytesPerPixel()
		for y := 0; y < h; y++ {
			dst := y * b.lineLength
			if dst+rowBytes > len(b.mem) {
				break
			}
			copy(b.mem[dst:dst+rowBytes], buf[y*rowBytes:(y+1)*rowBytes])
		}
		return nil
	})

	_ = b.Blank(true)
	_ = b.Blank(false)
	return b.draw, nil
}

func (b *fbdevBackend) Flip() (Framebuffer, error) {
	if b.draw == nil {
		return nil, errors.New("fbdev: not initialized")
	}
	return b.draw, b.draw.Present()
}

func (b *fbdevBackend) Blank(blank bool) error {
	if b.fd < 0 {
		return nil
	}
	mode := fbBlankUnblank
	if blank {
		mode = fbBlankPowerdown
	}
	if err := unix.IoctlSetInt(b.fd, fbioBlank, mode); err != nil {
		return fmt.Errorf("fbdev: FBIOBLANK: %w", err)
	}
	return nil
}

func (b *fbdevBackend) Exit() error {
	var err error
	if b.mem != nil {
		err = unix.Munmap(b.mem)
		b.mem = nil
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

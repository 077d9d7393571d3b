package hal

import (
	"errors"
	"time"
)

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb, little endian.
	PixelFormatRGB565 PixelFormat = iota + 1
	// PixelFormatRGBX8888 is 32bpp with bytes R, G, B, X.
	PixelFormatRGBX8888
	// PixelFormatBGRA8888 is 32bpp with bytes B, G, R, A.
	PixelFormatBGRA8888
)

// BytesPerPixel returns the storage size of one pixel, or 0 for unknown formats.
func (f PixelFormat) BytesPerPixel() int {
	switch f {
	case PixelFormatRGB565:
		return 2
	case PixelFormatRGBX8888, PixelFormatBGRA8888:
		return 4
	default:
		return 0
	}
}

func (f PixelFormat) String() string {
	switch f {
	case PixelFormatRGB565:
		return "rgb565"
	case PixelFormatRGBX8888:
		return "rgbx8888"
	case PixelFormatBGRA8888:
		return "bgra8888"
	default:
		return "unknown"
	}
}

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Backend is a display backend in the minui style.
//
// Init returns the surface callers draw into. Flip makes the drawn contents
// visible and returns the surface to draw the next frame into.
type Backend interface {
	Init() (Framebuffer, error)
	Flip() (Framebuffer, error)
	Blank(blank bool) error
	Exit() error
}

// TouchState is the phase of a touch contact.
type TouchState uint8

const (
	TouchStart TouchState = iota
	TouchDrag
	TouchRelease
	TouchHold
	TouchRepeat
)

func (s TouchState) String() string {
	switch s {
	case TouchStart:
		return "start"
	case TouchDrag:
		return "drag"
	case TouchRelease:
		return "release"
	case TouchHold:
		return "hold"
	case TouchRepeat:
		return "repeat"
	default:
		return "unknown"
	}
}

// TouchEvent is a single touch sample in framebuffer coordinates.
type TouchEvent struct {
	State TouchState
	X, Y  int
}

// TouchPanel provides touch events (best-effort on each platform).
type TouchPanel interface {
	Events() <-chan TouchEvent
}

// Input provides access to input devices (if available).
type Input interface {
	Touch() TouchPanel
}

// Vibrator drives the haptic motor.
type Vibrator interface {
	Vibrate(d time.Duration) error
}

// HAL provides the only contact point between the UI and the device.
type HAL interface {
	Display() Backend
	Input() Input
	Vibrator() Vibrator
}

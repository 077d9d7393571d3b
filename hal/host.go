package hal

import (
	"time"

	"github.com/rs/zerolog"
)

// HostConfig sizes the host (desktop) display.
type HostConfig struct {
	Width  int
	Height int
	Format PixelFormat
	Log    zerolog.Logger
}

type hostHAL struct {
	fb    *memFramebuffer
	disp  *hostBackend
	touch *hostTouch
	vib   Vibrator
}

// New returns a host HAL implementation.
func New(cfg HostConfig) HAL {
	if cfg.Width <= 0 {
		cfg.Width = 480
	}
	if cfg.Height <= 0 {
		cfg.Height = 800
	}
	if cfg.Format.BytesPerPixel() == 0 {
		cfg.Format = PixelFormatRGB565
	}
	fb := newMemFramebuffer(cfg.Width, cfg.Height, cfg.Format, nil)
	return &hostHAL{
		fb:    fb,
		disp:  &hostBackend{fb: fb, log: cfg.Log},
		touch: newHostTouch(),
		vib:   NewLogVibrator(cfg.Log),
	}
}

func (h *hostHAL) Display() Backend   { return h.disp }
func (h *hostHAL) Input() Input       { return hostInput{touch: h.touch} }
func (h *hostHAL) Vibrator() Vibrator { return h.vib }

type hostInput struct {
	touch *hostTouch
}

func (in hostInput) Touch() TouchPanel { return in.touch }

type hostBackend struct {
	fb      *memFramebuffer
	log     zerolog.Logger
	blanked bool
	frames  uint64
}

func (b *hostBackend) Init() (Framebuffer, error) {
	b.log.Info().Int("width", b.fb.width).Int("height", b.fb.height).Str("format", b.fb.format.String()).Msg("host framebuffer")
	return b.fb, nil
}

func (b *hostBackend) Flip() (Framebuffer, error) {
	b.frames++
	return b.fb, b.fb.Present()
}

func (b *hostBackend) Blank(blank bool) error {
	b.blanked = blank
	if blank {
		b.fb.ClearRGB(0, 0, 0)
	}
	return nil
}

func (b *hostBackend) Exit() error { return nil }

type logVibrator struct {
	log zerolog.Logger
}

// NewLogVibrator returns a Vibrator that only logs requests.
func NewLogVibrator(log zerolog.Logger) Vibrator { return logVibrator{log: log} }

func (v logVibrator) Vibrate(d time.Duration) error {
	v.log.Debug().Dur("duration", d).Msg("vibrate")
	return nil
}

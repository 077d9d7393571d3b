package hal

import (
	"fmt"

	"github.com/rs/zerolog"
)

// DeviceConfig selects a framebuffer backend on real hardware.
type DeviceConfig struct {
	// Backend is "mmap" (ashmem style shared canvas) or "fbdev".
	Backend string
	// Path is the backing device or shared memory file.
	Path string
	// BrightnessPath and MaxBrightness drive Blank on the mmap backend.
	BrightnessPath string
	MaxBrightness  int
	// VibratorPath enables haptics when non-empty.
	VibratorPath string
	Log          zerolog.Logger
}

type deviceHAL struct {
	disp  Backend
	touch *deviceTouch
	vib   Vibrator
}

// NewDevice returns a HAL backed by a hardware display.
func NewDevice(cfg DeviceConfig) (HAL, error) {
	var disp Backend
	switch cfg.Backend {
	case "mmap":
		disp = newMmapBackend(cfg)
	case "fbdev":
		disp = newFbdevBackend(cfg)
	default:
		return nil, fmt.Errorf("unknown display backend %q", cfg.Backend)
	}
	var vib Vibrator = NewLogVibrator(cfg.Log)
	if cfg.VibratorPath != "" {
		vib = NewSysfsVibrator(cfg.VibratorPath)
	}
	return &deviceHAL{
		disp:  disp,
		touch: &deviceTouch{ch: make(chan TouchEvent, 64)},
		vib:   vib,
	}, nil
}

func (h *deviceHAL) Display() Backend   { return h.disp }
func (h *deviceHAL) Input() Input       { return deviceInput{touch: h.touch} }
func (h *deviceHAL) Vibrator() Vibrator { return h.vib }

type deviceInput struct {
	touch *deviceTouch
}

func (in deviceInput) Touch() TouchPanel { return in.touch }

// deviceTouch is fed by an external input reader through Inject.
type deviceTouch struct {
	ch chan TouchEvent
}

func (t *deviceTouch) Events() <-chan TouchEvent { return t.ch }

// Inject queues ev, dropping it when the queue is full.
func (t *deviceTouch) Inject(ev TouchEvent) {
	select {
	case t.ch <- ev:
	default:
	}
}

package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recoveryui/hal"
	"recoveryui/internal/config"

	"github.com/rs/zerolog"
)

// Run opens the configured display backend and drives the UI until the
// context ends, the window closes or the quit action runs.
func Run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	var a *App
	newApp := func(h hal.HAL) (func() error, error) {
		var err error
		if a, err = New(cfg, log, h); err != nil {
			return nil, err
		}
		return a.Step, nil
	}
	defer func() {
		if a != nil {
			if err := a.Close(); err != nil {
				log.Warn().Err(err).Msg("close")
			}
		}
	}()

	hc := hal.HostConfig{Width: cfg.Display.Width, Height: cfg.Display.Height, Log: log}
	var err error
	switch cfg.Display.Backend {
	case "window":
		err = hal.RunWindow(hc, newApp)
	case "headless":
		err = hal.RunHeadless(ctx, hc, hal.HeadlessConfig{
			Enabled: true,
			Hz:      cfg.Display.Hz,
			Ticks:   cfg.Display.Ticks,
		}, newApp)
	case "mmap", "fbdev":
		err = runDevice(ctx, cfg, log, newApp)
	default:
		err = fmt.Errorf("app: unknown display backend %q", cfg.Display.Backend)
	}
	if errors.Is(err, ErrQuit) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runDevice(ctx context.Context, cfg *config.Config, log zerolog.Logger, newApp func(hal.HAL) (func() error, error)) error {
	h, err := hal.NewDevice(hal.DeviceConfig{
		Backend:        cfg.Display.Backend,
		Path:           cfg.Display.Device,
		BrightnessPath: cfg.Display.BrightnessPath,
		MaxBrightness:  cfg.Display.MaxBrightness,
		VibratorPath:   cfg.VibratorPath,
		Log:            log,
	})
	if err != nil {
		return err
	}
	step, err := newApp(h)
	if err != nil {
		return err
	}

	hz := cfg.Display.Hz
	if hz <= 0 {
		hz = 60
	}
	t := time.NewTicker(time.Second / time.Duration(hz))
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := step(); err != nil {
				return err
			}
			tick++
			if cfg.Display.Ticks > 0 && tick >= cfg.Display.Ticks {
				return nil
			}
		}
	}
}

// Package app wires a theme, its resources and pages to a HAL and drives
// them one tick at a time.
package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"recoveryui/gui/archive"
	"recoveryui/gui/data"
	"recoveryui/gui/gfx"
	"recoveryui/gui/page"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"
	"recoveryui/gui/widget"
	"recoveryui/hal"
	"recoveryui/internal/config"

	"github.com/rs/zerolog"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ErrQuit is returned by Step once the quit action has run.
var ErrQuit = errors.New("app: quit requested")

// BuiltinFont names the font registered before any theme font.
const BuiltinFont = "builtin"

const builtinFontSize = 12

// App is one loaded theme bound to a display.
type App struct {
	cfg *config.Config
	log zerolog.Logger
	h   hal.HAL

	fb       hal.Framebuffer
	canvas   *gfx.Canvas
	res      *resource.Manager
	store    *data.Store
	pages    *page.PageSet
	closeArc func() error

	frames uint64
	quit   bool
	failed bool
}

// New initialises the display, loads the configured theme and shows its
// start page on the first Step.
func New(cfg *config.Config, log zerolog.Logger, h hal.HAL) (_ *App, err error) {
	fb, err := h.Display().Init()
	if err != nil {
		return nil, fmt.Errorf("app: display init: %w", err)
	}
	var canvas *gfx.Canvas
	closeArc := func() error { return nil }
	defer func() {
		if err == nil {
			return
		}
		canvas.Free()
		_ = closeArc()
		if xerr := h.Display().Exit(); xerr != nil {
			log.Warn().Err(xerr).Msg("display exit")
		}
	}()

	canvas, err = gfx.NewCanvas(fb.Width(), fb.Height())
	if err != nil {
		return nil, fmt.Errorf("app: canvas: %w", err)
	}

	arc, closeFn, raw, err := openTheme(cfg)
	if err != nil {
		return nil, err
	}
	closeArc = closeFn
	doc, err := theme.Parse(raw)
	if err != nil {
		return nil, uierr.New("app.New", uierr.KindConfig, cfg.Theme, err)
	}
	root := doc.Root()

	tw, th := resolution(root, cfg)
	scale := theme.NewScale(tw, th, fb.Width(), fb.Height())
	if scale.Enabled() {
		log.Info().Int("theme_w", tw).Int("theme_h", th).
			Float64("scale_w", scale.W).Float64("scale_h", scale.H).Msg("scaling theme")
	}

	loader := &resource.Loader{
		ScratchPath: cfg.Scratch.Path,
		FontTmpDir:  cfg.Scratch.FontTmpDir,
		ResDir:      cfg.ResDir,
		Scale:       scale,
		Log:         log,
	}
	res := resource.NewManager(loader, resource.Options{TrackMisses: cfg.Strings.TrackMissesOrDefault()})
	if f, err := builtinFont(loader); err != nil {
		log.Warn().Err(err).Msg("builtin font unavailable")
	} else {
		res.AddFont(f)
	}

	store := data.NewStore()
	for k, v := range cfg.Variables {
		store.SetValue(k, v)
	}

	a := &App{
		cfg:      cfg,
		log:      log,
		h:        h,
		fb:       fb,
		canvas:   canvas,
		res:      res,
		store:    store,
		closeArc: closeArc,
	}
	env := &widget.Env{
		Canvas:    canvas,
		Resources: res,
		Data:      store,
		Haptics:   h.Vibrator(),
		Scale:     scale,
		Log:       log,
	}
	a.pages = page.NewPageSet(env, widget.ActionFunc(a.do))
	if err = a.pages.Load(root, arc, themeSource(cfg)); err != nil {
		res.Release()
		return nil, err
	}

	counts := res.Counts()
	log.Info().
		Int("fonts", counts[resource.KindFont]).
		Int("images", counts[resource.KindImage]).
		Int("animations", counts[resource.KindAnimation]).
		Int("strings", counts[resource.KindString]).
		Int("pages", len(a.pages.Pages())).
		Msg("theme loaded")
	return a, nil
}

// openTheme returns the archive and description bytes for cfg.Theme. A
// bare XML file has no archive; its assets come from cfg.ResDir.
func openTheme(cfg *config.Config) (archive.Archive, func() error, []byte, error) {
	if strings.EqualFold(filepath.Ext(cfg.Theme), ".xml") {
		raw, err := os.ReadFile(cfg.Theme)
		if err != nil {
			return nil, nil, nil, uierr.New("app.openTheme", uierr.KindConfig, cfg.Theme, err)
		}
		return nil, func() error { return nil }, raw, nil
	}
	arc, closeArc, err := archive.Open(cfg.Theme)
	if err != nil {
		return nil, nil, nil, uierr.New("app.openTheme", uierr.KindConfig, cfg.Theme, err)
	}
	raw, err := arc.ReadFile(cfg.ThemeFile)
	if err != nil {
		_ = closeArc()
		return nil, nil, nil, uierr.New("app.openTheme", uierr.KindConfig, cfg.ThemeFile, err)
	}
	return arc, closeArc, raw, nil
}

func themeSource(cfg *config.Config) string {
	if strings.EqualFold(filepath.Ext(cfg.Theme), ".xml") {
		return cfg.Theme
	}
	return cfg.ThemeFile
}

// resolution is the theme's design size: the configured override, else
// <details><resolution width height/>.
func resolution(root theme.Node, cfg *config.Config) (int, int) {
	if cfg.Display.ThemeWidth > 0 && cfg.Display.ThemeHeight > 0 {
		return cfg.Display.ThemeWidth, cfg.Display.ThemeHeight
	}
	r := theme.Find(theme.Find(root, "details"), "resolution")
	return theme.AttrInt(r, "width", 0), theme.AttrInt(r, "height", 0)
}

func builtinFont(l *resource.Loader) (*resource.FontResource, error) {
	ft, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, err
	}
	size := builtinFontSize
	if l.Scale.Enabled() {
		size = l.Scale.Min(size)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{Size: float64(size), DPI: 72})
	if err != nil {
		return nil, err
	}
	return resource.NewFontResourceFromFace(BuiltinFont, face, size, l), nil
}

// Step drains pending touches, updates the active page and presents the
// canvas when anything changed.
func (a *App) Step() (err error) {
	if a.failed {
		return errors.New("app: stopped after panic")
	}
	defer func() {
		if r := recover(); r != nil {
			a.failed = true
			a.log.Error().Interface("panic", r).Msg("render loop panic")
			showPanic(a.fb, r, debug.Stack())
			_, _ = a.h.Display().Flip()
			err = fmt.Errorf("app: panic: %v", r)
		}
	}()
	if a.quit {
		return ErrQuit
	}

	a.drainTouch()

	switch a.pages.Tick() {
	case widget.FullRepaintNeeded:
		if err := a.pages.Render(); err != nil {
			return err
		}
		if err := a.present(); err != nil {
			return err
		}
	case widget.PartialRepaint:
		if err := a.present(); err != nil {
			return err
		}
	}
	if a.quit {
		return ErrQuit
	}
	return nil
}

func (a *App) drainTouch() {
	in := a.h.Input()
	if in == nil || in.Touch() == nil {
		return
	}
	ch := in.Touch().Events()
	for {
		select {
		case ev := <-ch:
			a.pages.NotifyTouch(ev.State, ev.X, ev.Y)
		default:
			return
		}
	}
}

func (a *App) present() error {
	if err := gfx.Present(a.canvas, a.fb); err != nil {
		return err
	}
	fb, err := a.h.Display().Flip()
	if err != nil {
		return err
	}
	if fb != nil {
		a.fb = fb
	}
	a.frames++
	return nil
}

// do handles actions that are not page-level.
func (a *App) do(function, arg string) error {
	switch function {
	case "print":
		a.log.Info().Str("text", arg).Msg("print")
		if c := a.pages.Console(); c != nil {
			_, _ = fmt.Fprintln(c, arg)
		}
		return nil
	case "dumpstrings":
		if c := a.pages.Console(); c != nil {
			return a.res.DumpStrings(c)
		}
		return a.res.DumpStrings(os.Stdout)
	case "vibrate":
		ms, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return fmt.Errorf("vibrate: %w", err)
		}
		return a.h.Vibrator().Vibrate(time.Duration(ms) * time.Millisecond)
	case "blank":
		return a.h.Display().Blank(arg == "1" || arg == "true")
	case "quit":
		a.quit = true
		return nil
	}
	return uierr.New("app.do", uierr.KindUnsupported, function, uierr.ErrNotFound)
}

// Frames counts presented frames.
func (a *App) Frames() uint64 { return a.frames }

func (a *App) Pages() *page.PageSet { return a.pages }

func (a *App) Resources() *resource.Manager { return a.res }

func (a *App) Data() *data.Store { return a.store }

func (a *App) Canvas() *gfx.Canvas { return a.canvas }

// Close releases resources, the theme archive and the display.
func (a *App) Close() error {
	var errs []error
	if a.res != nil {
		a.res.Release()
	}
	a.canvas.Free()
	if a.closeArc != nil {
		errs = append(errs, a.closeArc())
		a.closeArc = nil
	}
	errs = append(errs, a.h.Display().Exit())
	return errors.Join(errs...)
}

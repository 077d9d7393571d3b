// Package widget implements the drawable objects a page is built from.
//
// Widgets draw into a shared canvas. A page calls Render for a full
// repaint and Update once per tick; Update reports whether the widget
// patched itself or needs the page to repaint.
package widget

import (
	"time"

	"recoveryui/gui/data"
	"recoveryui/gui/geom"
	"recoveryui/gui/gfx"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/hal"

	"github.com/rs/zerolog"
)

// RenderResult is what Update tells the page driver.
type RenderResult int

const (
	// NoChange means nothing needs drawing.
	NoChange RenderResult = iota
	// PartialRepaint means the widget already redrew its own pixels.
	PartialRepaint
	// FullRepaintNeeded means the page must clear and render again.
	FullRepaintNeeded
)

func (r RenderResult) String() string {
	switch r {
	case NoChange:
		return "no_change"
	case PartialRepaint:
		return "partial"
	case FullRepaintNeeded:
		return "full"
	default:
		return "unknown"
	}
}

// Widget is the contract every page object satisfies.
type Widget interface {
	Render() error
	Update() (RenderResult, error)
	// NotifyTouch returns -1 when hidden, 0 when the touch was not
	// handled and a positive value when it was.
	NotifyTouch(state hal.TouchState, x, y int) int
	IsVisible() bool
	SetRenderPos(x, y, w, h int)
	RenderPos() geom.Rect
}

// ActionHandler runs a named action such as "page" or "reboot".
type ActionHandler interface {
	Do(function, arg string) error
}

// ActionFunc adapts a function to ActionHandler.
type ActionFunc func(function, arg string) error

func (f ActionFunc) Do(function, arg string) error { return f(function, arg) }

// VibrateVar holds the button press vibration length in milliseconds.
const VibrateVar = "tw_button_vibrate"

// Env is what widgets share: the canvas, resources and collaborators.
type Env struct {
	Canvas    *gfx.Canvas
	Resources *resource.Manager
	Data      *data.Store
	Haptics   hal.Vibrator
	Actions   ActionHandler
	Scale     theme.Scale
	Log       zerolog.Logger
}

// Vibrate pulses the haptics for the duration stored in the named
// variable. Zero or unset durations do nothing.
func (e *Env) Vibrate(variable string) {
	if e.Haptics == nil || e.Data == nil {
		return
	}
	ms := e.Data.GetInt(variable, 0)
	if ms <= 0 {
		return
	}
	if err := e.Haptics.Vibrate(time.Duration(ms) * time.Millisecond); err != nil {
		e.Log.Warn().Err(err).Msg("vibrate")
	}
}

// LoadAttrColor parses a colour attribute of n. ok is false when n is nil,
// the attribute is absent or it does not parse.
func (e *Env) LoadAttrColor(n theme.Node, attr string) (gfx.Color, bool) {
	v, ok := "", false
	if n != nil {
		v, ok = n.Attr(attr)
	}
	if !ok {
		return gfx.Color{}, false
	}
	c, err := gfx.ParseColor(v)
	if err != nil {
		e.Log.Error().Err(err).Str("attr", attr).Msg("invalid color")
		return gfx.Color{}, false
	}
	return c, true
}

// LoadAttrImage resolves an image resource named by an attribute of n.
func (e *Env) LoadAttrImage(n theme.Node, attr string) *resource.ImageResource {
	name := theme.Attr(n, attr, "")
	if name == "" || e.Resources == nil {
		return nil
	}
	img, ok := e.Resources.FindImage(name)
	if !ok {
		e.Log.Error().Str("image", name).Msg("unable to locate image resource")
		return nil
	}
	return img
}

// LoadAttrFont resolves a font resource named by an attribute of n.
func (e *Env) LoadAttrFont(n theme.Node, attr string) *resource.FontResource {
	name := theme.Attr(n, attr, "")
	if name == "" || e.Resources == nil {
		return nil
	}
	f, ok := e.Resources.FindFont(name)
	if !ok {
		e.Log.Error().Str("font", name).Msg("unable to locate font resource")
		return nil
	}
	return f
}

// LoadAttrAnimation resolves an animation resource named by an attribute of n.
func (e *Env) LoadAttrAnimation(n theme.Node, attr string) *resource.AnimationResource {
	name := theme.Attr(n, attr, "")
	if name == "" || e.Resources == nil {
		return nil
	}
	a, ok := e.Resources.FindAnimation(name)
	if !ok {
		e.Log.Error().Str("animation", name).Msg("unable to locate animation resource")
		return nil
	}
	return a
}

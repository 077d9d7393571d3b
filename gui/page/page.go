// Package page groups widgets into pages and drives them: it routes
// touches, aggregates per-tick update results and switches pages.
package page

import (
	"recoveryui/gui/gfx"
	"recoveryui/gui/theme"
	"recoveryui/gui/widget"
	"recoveryui/hal"
)

// Page is an ordered list of widgets drawn back to front.
type Page struct {
	name       string
	env        *widget.Env
	widgets    []widget.Widget
	background gfx.Color

	// target receives the rest of a gesture once it accepted the start.
	target widget.Widget
}

// NewPage builds the widgets of a <page> node. Unknown object types are
// logged and skipped.
func NewPage(n theme.Node, env *widget.Env) *Page {
	p := &Page{
		name:       theme.Attr(n, "name", ""),
		env:        env,
		background: gfx.RGB(0, 0, 0),
	}
	if c, ok := env.LoadAttrColor(theme.Find(n, "background"), "color"); ok {
		p.background = c
	}
	if n == nil {
		return p
	}
	for _, c := range n.Children() {
		typ := c.Name()
		if typ == "object" {
			typ = theme.Attr(c, "type", "")
		}
		if w := newWidget(typ, c, env); w != nil {
			p.widgets = append(p.widgets, w)
		}
	}
	return p
}

func newWidget(typ string, n theme.Node, env *widget.Env) widget.Widget {
	switch typ {
	case "button":
		return widget.NewButton(n, env)
	case "text":
		return widget.NewText(n, env)
	case "image":
		return widget.NewImage(n, env)
	case "fill":
		return widget.NewFill(n, env)
	case "animation":
		return widget.NewAnimation(n, env)
	case "console":
		return widget.NewConsole(n, env)
	case "action":
		if a := widget.NewAction(n, env); a != nil {
			return a
		}
		return nil
	case "background":
		return nil
	default:
		env.Log.Error().Str("type", typ).Msg("unknown object type")
		return nil
	}
}

func (p *Page) Name() string { return p.name }

// Widgets returns the page's widgets in draw order.
func (p *Page) Widgets() []widget.Widget { return p.widgets }

// Render clears the canvas and renders every widget; hidden widgets
// draw nothing but forget that they were drawn. Widget errors are logged
// and leave that widget out.
func (p *Page) Render() error {
	p.env.Canvas.Clear(p.background)
	for _, w := range p.widgets {
		if err := w.Render(); err != nil {
			p.env.Log.Debug().Err(err).Str("page", p.name).Msg("widget render")
		}
	}
	return nil
}

// Tick updates every widget and returns the strongest result.
func (p *Page) Tick() widget.RenderResult {
	res := widget.NoChange
	for _, w := range p.widgets {
		r, err := w.Update()
		if err != nil {
			p.env.Log.Debug().Err(err).Str("page", p.name).Msg("widget update")
			continue
		}
		if r > res {
			res = r
		}
	}
	return res
}

// NotifyTouch offers a touch start to widgets front to back until one
// handles it; the rest of that gesture goes to the same widget.
func (p *Page) NotifyTouch(state hal.TouchState, x, y int) int {
	if state != hal.TouchStart && p.target != nil {
		ret := p.target.NotifyTouch(state, x, y)
		if state == hal.TouchRelease {
			p.target = nil
		}
		return ret
	}
	p.target = nil
	for i := len(p.widgets) - 1; i >= 0; i-- {
		w := p.widgets[i]
		if ret := w.NotifyTouch(state, x, y); ret > 0 {
			if state == hal.TouchStart {
				p.target = w
			}
			return ret
		}
	}
	return 0
}

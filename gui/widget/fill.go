package widget

import (
	"recoveryui/gui/geom"
	"recoveryui/gui/gfx"
	"recoveryui/gui/theme"
	"recoveryui/hal"
)

// Fill paints a solid rectangle.
//
//	<fill color="#202020"/>
//	<placement x="0" y="0" w="480" h="800"/>
type Fill struct {
	Object
	color    gfx.Color
	rendered bool
}

func NewFill(n theme.Node, env *Env) *Fill {
	f := &Fill{Object: newObject(n, env)}
	if n == nil {
		return f
	}
	cn := n.Child("fill")
	if cn == nil {
		cn = n
	}
	c, ok := env.LoadAttrColor(cn, "color")
	if !ok {
		env.Log.Error().Msg("fill object has no color")
	}
	f.color = c
	r, _ := geom.LoadPlacement(n.Child("placement"), env.Scale)
	f.Object.SetRenderPos(r.X, r.Y, r.W, r.H)
	return f
}

func (f *Fill) Render() error {
	if !f.IsVisible() {
		f.rendered = false
		return nil
	}
	r := f.RenderPos()
	f.env.Canvas.FillRect(r.X, r.Y, r.W, r.H, f.color)
	f.rendered = true
	return nil
}

func (f *Fill) Update() (RenderResult, error) {
	if f.IsVisible() != f.rendered {
		return FullRepaintNeeded, nil
	}
	return NoChange, nil
}

func (f *Fill) NotifyTouch(hal.TouchState, int, int) int {
	if !f.IsVisible() {
		return -1
	}
	return 0
}

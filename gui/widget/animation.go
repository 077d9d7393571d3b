package widget

import (
	"recoveryui/gui/geom"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/hal"
)

// Animation cycles through the frames of an animation resource.
//
//	<object type="animation">
//	  <placement x="240" y="400" placement="4"/>
//	  <animation resource="spinner"/>
//	  <speed render="2"/>
//	  <loop frame="1"/>
//	</object>
//
// render is the number of updates each frame stays up. loop is the
// 1-based frame to restart from after the last one; -1 stops on the last
// frame.
type Animation struct {
	Object

	anim      *resource.AnimationResource
	frame     int
	every     int
	loopFrame int
	ticks     int
	rendered  bool
	// opaque[i] is false when frame i has transparent pixels; such frames
	// need the page redrawn underneath them.
	opaque []bool
}

func NewAnimation(n theme.Node, env *Env) *Animation {
	a := &Animation{Object: newObject(n, env), every: 1, loopFrame: 1}
	if n == nil {
		return a
	}
	a.anim = env.LoadAttrAnimation(n.Child("animation"), "resource")
	if v := theme.AttrInt(n.Child("speed"), "render", 1); v > 0 {
		a.every = v
	}
	a.loopFrame = theme.AttrInt(n.Child("loop"), "frame", 1)

	pn := n.Child("placement")
	_, p := geom.LoadPlacement(pn, env.Scale)
	x := env.Scale.X(theme.AttrInt(pn, "x", 0))
	y := env.Scale.Y(theme.AttrInt(pn, "y", 0))
	var w, h int
	if a.anim != nil && a.anim.Len() > 0 {
		c := a.anim.Canvas(0)
		w, h = c.Width(), c.Height()
		a.opaque = make([]bool, a.anim.Len())
		for i := range a.opaque {
			img := a.anim.Canvas(i).Image()
			a.opaque[i] = img != nil && img.Opaque()
		}
	}
	if p != geom.TextOnlyRight {
		x, y = geom.Anchor(p, x, y, w, h)
	}
	a.Object.SetRenderPos(x, y, w, h)
	return a
}

// Frame is the 0-based index of the frame on screen.
func (a *Animation) Frame() int { return a.frame }

func (a *Animation) Render() error {
	if !a.IsVisible() {
		a.rendered = false
		return nil
	}
	if a.anim == nil {
		return errNoImage
	}
	c := a.anim.Canvas(a.frame)
	if c == nil {
		return errNoImage
	}
	r := a.RenderPos()
	a.env.Canvas.Draw(c, r.X, r.Y, 0, 0, r.W, r.H, 0xFF)
	a.rendered = true
	return nil
}

func (a *Animation) advance() bool {
	if a.anim == nil || a.anim.Len() < 2 {
		return false
	}
	a.ticks++
	if a.ticks < a.every {
		return false
	}
	a.ticks = 0
	next := a.frame + 1
	if next >= a.anim.Len() {
		if a.loopFrame < 1 {
			return false
		}
		next = min(a.loopFrame-1, a.anim.Len()-1)
	}
	if next == a.frame {
		return false
	}
	a.frame = next
	return true
}

// Update steps the animation. Opaque frames are drawn in place; a frame
// with transparency asks for a full repaint so the previous frame does
// not show through.
func (a *Animation) Update() (RenderResult, error) {
	if !a.IsVisible() {
		if a.rendered {
			return FullRepaintNeeded, nil
		}
		return NoChange, nil
	}
	if !a.rendered {
		return FullRepaintNeeded, nil
	}
	if !a.advance() {
		return NoChange, nil
	}
	if !a.opaque[a.frame] {
		return FullRepaintNeeded, nil
	}
	if err := a.Render(); err != nil {
		return NoChange, err
	}
	return PartialRepaint, nil
}

func (a *Animation) NotifyTouch(hal.TouchState, int, int) int {
	if !a.IsVisible() {
		return -1
	}
	return 0
}

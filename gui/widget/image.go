package widget

import (
	"errors"

	"recoveryui/gui/geom"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/hal"
)

var errNoImage = errors.New("image has no resource")

// Image draws an image resource, swapping to a highlight resource while
// highlighted.
//
//	<image resource="btn" highlightresource="btn_pressed"/>
//	<placement x="0" y="0" placement="4"/>
type Image struct {
	Object

	image     *resource.ImageResource
	highlight *resource.ImageResource

	highlighted      bool
	drawnHighlighted bool
	rendered         bool
}

// NewImage sizes the widget from the image itself; placement anchors it.
func NewImage(n theme.Node, env *Env) *Image {
	img := &Image{Object: newObject(n, env)}
	if n == nil {
		return img
	}
	if in := n.Child("image"); in != nil {
		img.image = env.LoadAttrImage(in, "resource")
		img.highlight = env.LoadAttrImage(in, "highlightresource")
	}
	pn := n.Child("placement")
	_, p := geom.LoadPlacement(pn, env.Scale)
	x := env.Scale.X(theme.AttrInt(pn, "x", 0))
	y := env.Scale.Y(theme.AttrInt(pn, "y", 0))
	var w, h int
	if img.image != nil {
		w, h = img.image.Width(), img.image.Height()
	}
	if p != geom.TextOnlyRight {
		x, y = geom.Anchor(p, x, y, w, h)
	}
	img.Object.SetRenderPos(x, y, w, h)
	return img
}

func (img *Image) SetHighlighted(on bool) { img.highlighted = on }

func (img *Image) Highlighted() bool { return img.highlighted }

func (img *Image) current() *resource.ImageResource {
	if img.highlighted && img.highlight != nil {
		return img.highlight
	}
	return img.image
}

func (img *Image) Render() error {
	if !img.IsVisible() {
		img.rendered = false
		return nil
	}
	res := img.current()
	if res == nil || res.Canvas() == nil {
		return errNoImage
	}
	r := img.RenderPos()
	img.env.Canvas.Draw(res.Canvas(), r.X, r.Y, 0, 0, r.W, r.H, 0xFF)
	img.drawnHighlighted = img.highlighted
	img.rendered = true
	return nil
}

// Update redraws in place when the highlight state flipped and a
// highlight resource exists.
func (img *Image) Update() (RenderResult, error) {
	if !img.IsVisible() {
		if img.rendered {
			return FullRepaintNeeded, nil
		}
		return NoChange, nil
	}
	if !img.rendered {
		return FullRepaintNeeded, nil
	}
	if img.highlight == nil || img.highlighted == img.drawnHighlighted {
		return NoChange, nil
	}
	if err := img.Render(); err != nil {
		return NoChange, err
	}
	return PartialRepaint, nil
}

func (img *Image) NotifyTouch(hal.TouchState, int, int) int {
	if !img.IsVisible() {
		return -1
	}
	return 0
}

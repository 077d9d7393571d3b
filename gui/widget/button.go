package widget

import (
	"recoveryui/gui/geom"
	"recoveryui/gui/gfx"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/hal"
)

// labelGap separates a TextOnlyRight label from its box.
const labelGap = 5

// Button composes a background image or fill, an icon, a label, a
// highlight overlay and an action.
//
//	<object type="button">
//	  <placement x="10" y="10" w="200" h="60" textplacement="6"/>
//	  <image resource="btn"/>
//	  <fill color="#303030"/>
//	  <icon resource="ic_ok"/>
//	  <highlight color="#ffffff40"/>
//	  <text>{@ok_btn=OK}</text>
//	  <font resource="regular" color="#ffffff"/>
//	  <action function="page">main</action>
//	</object>
type Button struct {
	Object

	label  *Text
	image  *Image
	action *Action
	icon   *resource.ImageResource

	fill           gfx.Color
	hasFill        bool
	highlightColor gfx.Color
	hasHighlight   bool
	textPlacement  geom.Placement

	// baseW and baseH are the box size before a TextOnlyRight label grows
	// it, so repeated SetRenderPos calls do not compound.
	baseW, baseH int
	iconRect     geom.Rect
	textX, textY int
	textW, textH int

	rendered        bool
	renderHighlight bool
	pressed         bool
}

func NewButton(n theme.Node, env *Env) *Button {
	b := &Button{Object: newObject(n, env)}
	if n == nil {
		return b
	}
	log := env.Log.With().Str("widget", "button").Logger()

	b.label = NewText(n, env)
	b.action = NewAction(n, env)

	b.image = NewImage(n, env)
	if err := b.image.Render(); err != nil {
		log.Debug().Err(err).Msg("button has no usable image")
		b.image = nil
	}
	if err := b.label.Render(); err != nil {
		log.Debug().Err(err).Msg("button has no usable label")
		b.label = nil
	}

	b.fill, b.hasFill = env.LoadAttrColor(n.Child("fill"), "color")
	if !b.hasFill && b.image == nil {
		log.Error().Msg("no image resource or fill specified for button")
	}
	b.icon = env.LoadAttrImage(n.Child("icon"), "resource")
	b.highlightColor, b.hasHighlight = env.LoadAttrColor(n.Child("highlight"), "color")

	pn := n.Child("placement")
	var r geom.Rect
	placement := geom.TopLeft
	switch {
	case b.image != nil:
		r = b.image.RenderPos()
	case b.hasFill:
		r, placement = geom.LoadPlacement(pn, env.Scale)
	}
	b.textPlacement = geom.Placement(theme.AttrInt(pn, "textplacement", int(placement)))
	if !b.textPlacement.Valid() {
		b.textPlacement = geom.TopLeft
	}
	b.SetRenderPos(r.X, r.Y, r.W, r.H)
	return b
}

// Label returns the label sub-widget, or nil.
func (b *Button) Label() *Text { return b.label }

// IconRect is where the icon is drawn.
func (b *Button) IconRect() geom.Rect { return b.iconRect }

// TextPos is the label anchor.
func (b *Button) TextPos() (x, y int) { return b.textX, b.textY }

func (b *Button) Highlighted() bool { return b.renderHighlight }

// SetRenderPos lays out the icon and label inside the box and moves the
// touch region. A zero w and h keep the previous size.
func (b *Button) SetRenderPos(x, y, w, h int) {
	if w != 0 || h != 0 {
		b.baseW, b.baseH = w, h
	}
	r := geom.Rect{X: x, Y: y, W: b.baseW, H: b.baseH}

	var iconW, iconH int
	if b.icon != nil && b.icon.Canvas() != nil {
		iconW, iconH = b.icon.Width(), b.icon.Height()
	}
	b.textW, b.textH = 0, 0
	if b.label != nil {
		if b.textPlacement != geom.TextOnlyRight {
			b.label.maxWidth = r.W
			b.label.placement = geom.Center
		}
		b.textW, b.textH = b.label.CurrentBounds()
	}

	if b.textPlacement == geom.TextOnlyRight {
		b.textX = r.X + r.W + labelGap
		b.textY = r.Y + r.H/2 - b.textH/2
		if b.textW > 0 {
			r.W += b.textW + labelGap
		}
	} else {
		b.textX = r.X + r.W/2
		b.textY = r.Y + r.H/2
	}

	b.iconRect = geom.Rect{
		X: r.X + (b.baseW-iconW)/2,
		Y: geom.IconY(r.Y, r.H, iconH, b.textH),
		W: iconW,
		H: iconH,
	}

	if b.label != nil {
		b.label.SetRenderPos(b.textX, b.textY, 0, 0)
	}
	b.Object.SetRenderPos(r.X, r.Y, r.W, r.H)
	if b.action != nil {
		b.action.SetActionPos(r)
	}
}

func (b *Button) drawIcon() {
	if b.icon == nil || b.icon.Canvas() == nil {
		return
	}
	ir := b.iconRect
	b.env.Canvas.Draw(b.icon.Canvas(), ir.X, ir.Y, 0, 0, ir.W, ir.H, 0xFF)
}

// Render draws background, fill, icon, label and highlight in that order.
func (b *Button) Render() error {
	if !b.IsVisible() {
		b.rendered = false
		return nil
	}
	r := b.RenderPos()
	if b.image != nil {
		if err := b.image.Render(); err != nil {
			return err
		}
	} else if b.hasFill {
		b.env.Canvas.FillRect(r.X, r.Y, r.W, r.H, b.fill)
	}
	b.drawIcon()
	if b.label != nil {
		if w, _ := b.label.CurrentBounds(); w != b.textW {
			b.textW = w
		}
		if err := b.label.Render(); err != nil {
			return err
		}
	}
	if b.renderHighlight && b.hasHighlight {
		b.env.Canvas.FillRect(r.X, r.Y, r.W, r.H, b.highlightColor)
	}
	b.rendered = true
	return nil
}

func (b *Button) Update() (RenderResult, error) {
	if !b.IsVisible() {
		if b.rendered {
			return FullRepaintNeeded, nil
		}
		return NoChange, nil
	}
	if !b.rendered {
		return FullRepaintNeeded, nil
	}

	res := NoChange
	if b.image != nil {
		var err error
		if res, err = b.image.Update(); err != nil {
			return res, err
		}
	}
	switch res {
	case NoChange:
		if b.label != nil {
			lr, err := b.label.Update()
			if err != nil {
				return lr, err
			}
			if lr > res {
				res = lr
			}
		}
		return res, nil
	case PartialRepaint:
		b.drawIcon()
		if b.label != nil {
			if err := b.label.Render(); err != nil {
				return res, err
			}
		}
		return PartialRepaint, nil
	default:
		return FullRepaintNeeded, nil
	}
}

func (b *Button) setHighlight(on bool) {
	b.pressed = on
	if b.label != nil {
		b.label.SetHighlighted(on)
	}
	if b.image != nil {
		b.image.SetHighlighted(on)
	}
	b.renderHighlight = on
	b.rendered = false
}

// NotifyTouch tracks press state for highlighting and forwards touches
// inside the box to the action.
func (b *Button) NotifyTouch(state hal.TouchState, x, y int) int {
	if !b.IsVisible() {
		return -1
	}
	inside := b.RenderPos().Contains(x, y)
	if !inside || state == hal.TouchRelease {
		if b.pressed {
			b.setHighlight(false)
		}
	} else if !b.pressed {
		b.env.Vibrate(VibrateVar)
		b.setHighlight(true)
	}
	if !inside {
		return 0
	}
	if b.action == nil {
		return 1
	}
	return b.action.NotifyTouch(state, x, y)
}

package widget

import (
	"errors"
	"strings"

	"recoveryui/gui/geom"
	"recoveryui/gui/gfx"
	"recoveryui/gui/resource"
	"recoveryui/gui/theme"
	"recoveryui/hal"

	"golang.org/x/image/font"
)

var (
	errNoFont = errors.New("text has no font")
	errNoText = errors.New("text is empty")
)

// Text draws one line of text anchored at a point.
//
//	<text>Hello %tw_version% {@install_btn=Install}</text>
//	<font resource="regular" color="#ffffff" highlightcolor="#ff0000"/>
//	<placement x="10" y="10" placement="4"/>
type Text struct {
	Object

	raw            string
	font           *resource.FontResource
	color          gfx.Color
	highlightColor gfx.Color
	hasHighlight   bool
	placement      geom.Placement
	maxWidth       int

	x, y        int
	highlighted bool
	lastValue   string
	rendered    bool
}

// NewText reads a label from n. The text content may come from a <text>
// child or from a text attribute on n.
func NewText(n theme.Node, env *Env) *Text {
	t := &Text{Object: newObject(n, env), color: gfx.RGB(0xFF, 0xFF, 0xFF)}
	if n == nil {
		return t
	}
	if c := n.Child("text"); c != nil {
		t.raw = c.Value()
	} else {
		t.raw = theme.Attr(n, "text", "")
	}
	if fn := n.Child("font"); fn != nil {
		t.font = env.LoadAttrFont(fn, "resource")
		if c, ok := env.LoadAttrColor(fn, "color"); ok {
			t.color = c
		}
		t.highlightColor, t.hasHighlight = env.LoadAttrColor(fn, "highlightcolor")
	}
	// Text anchors itself on every move, so keep the raw point.
	pn := n.Child("placement")
	_, t.placement = geom.LoadPlacement(pn, env.Scale)
	t.x = env.Scale.X(theme.AttrInt(pn, "x", 0))
	t.y = env.Scale.Y(theme.AttrInt(pn, "y", 0))
	t.updatePos()
	return t
}

func (t *Text) face() font.Face {
	if t.font == nil {
		return nil
	}
	return t.font.Face()
}

// Value is the text after string resource and variable substitution.
func (t *Text) Value() string {
	s := t.raw
	if t.env == nil {
		return s
	}
	if t.env.Resources != nil {
		s = expandStrings(s, t.env.Resources)
	}
	if t.env.Data != nil {
		s = t.env.Data.Expand(s)
	}
	return s
}

// expandStrings replaces {@name} and {@name=default} with string resources.
func expandStrings(s string, m *resource.Manager) string {
	if !strings.Contains(s, "{@") {
		return s
	}
	var b strings.Builder
	for {
		start := strings.Index(s, "{@")
		if start < 0 {
			break
		}
		end := strings.IndexByte(s[start:], '}')
		if end < 0 {
			break
		}
		end += start
		b.WriteString(s[:start])
		key := s[start+2 : end]
		if name, def, ok := strings.Cut(key, "="); ok {
			b.WriteString(m.FindStringDefault(name, def))
		} else {
			b.WriteString(m.FindString(key))
		}
		s = s[end+1:]
	}
	b.WriteString(s)
	return b.String()
}

// CurrentBounds measures the current value, clipped to the max width.
func (t *Text) CurrentBounds() (w, h int) {
	face := t.face()
	if face == nil {
		return 0, 0
	}
	w, h = gfx.MeasureText(face, t.Value())
	if t.maxWidth > 0 && w > t.maxWidth {
		w = t.maxWidth
	}
	return w, h
}

func (t *Text) updatePos() {
	w, h := t.CurrentBounds()
	x, y := t.x, t.y
	if t.placement != geom.TopLeft && t.placement != geom.TextOnlyRight {
		x, y = geom.Anchor(t.placement, x, y, w, h)
	}
	t.Object.SetRenderPos(x, y, w, h)
}

// SetRenderPos moves the anchor point. Width and height come from the
// text itself.
func (t *Text) SetRenderPos(x, y, _, _ int) {
	t.x, t.y = x, y
	t.updatePos()
}

func (t *Text) SetPlacement(p geom.Placement) {
	t.placement = p
	t.updatePos()
}

func (t *Text) SetMaxWidth(w int) {
	t.maxWidth = w
	t.updatePos()
}

func (t *Text) SetHighlighted(on bool) { t.highlighted = on }

func (t *Text) Highlighted() bool { return t.highlighted }

func (t *Text) Render() error {
	if !t.IsVisible() {
		t.rendered = false
		return nil
	}
	face := t.face()
	if face == nil {
		return errNoFont
	}
	v := t.Value()
	if v == "" {
		return errNoText
	}
	t.lastValue = v
	t.updatePos()
	col := t.color
	if t.highlighted && t.hasHighlight {
		col = t.highlightColor
	}
	r := t.RenderPos()
	t.env.Canvas.DrawText(face, r.X, r.Y, v, col, t.maxWidth)
	t.rendered = true
	return nil
}

// Update asks for a repaint when the substituted value changed, since the
// old glyphs must be cleared first.
func (t *Text) Update() (RenderResult, error) {
	if !t.IsVisible() {
		if t.rendered {
			return FullRepaintNeeded, nil
		}
		return NoChange, nil
	}
	if !t.rendered || t.Value() != t.lastValue {
		return FullRepaintNeeded, nil
	}
	return NoChange, nil
}

func (t *Text) NotifyTouch(hal.TouchState, int, int) int {
	if !t.IsVisible() {
		return -1
	}
	return 0
}

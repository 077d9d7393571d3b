// Package geom holds the fixed placement rules used to lay out widgets.
package geom

import "recoveryui/gui/theme"

// Placement anchors a box (or a label) relative to a point.
// The numeric values are the ones theme files use.
type Placement int

const (
	TopLeft Placement = iota
	TopRight
	BottomLeft
	BottomRight
	Center
	CenterXOnly
	// TextOnlyRight puts a label to the right of its box and grows the box
	// to include it.
	TextOnlyRight
)

func (p Placement) String() string {
	switch p {
	case TopLeft:
		return "top_left"
	case TopRight:
		return "top_right"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	case Center:
		return "center"
	case CenterXOnly:
		return "center_x_only"
	case TextOnlyRight:
		return "text_only_right"
	default:
		return "unknown"
	}
}

// Valid reports whether p is one of the known placements.
func (p Placement) Valid() bool { return p >= TopLeft && p <= TextOnlyRight }

// Rect is a render rectangle in framebuffer pixels.
type Rect struct {
	X, Y, W, H int
}

// Contains hit-tests a point. Both edges are inclusive, so a w-wide box
// accepts w+1 columns.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x-r.X <= r.W && y >= r.Y && y-r.Y <= r.H
}

// Empty reports a zero-area rectangle.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Anchor converts an anchor point into the top-left corner of a w×h box.
func Anchor(p Placement, x, y, w, h int) (int, int) {
	switch p {
	case TopRight:
		x -= w
	case BottomLeft:
		y -= h
	case BottomRight:
		x -= w
		y -= h
	case Center:
		x -= w / 2
		y -= h / 2
	case CenterXOnly:
		x -= w / 2
	}
	return x, y
}

// IconY places an icon vertically inside a box that may also hold a label.
// When both have height and fit together, the icon starts a third of the way
// into the leftover space; otherwise it is centred.
func IconY(renderY, renderH, iconH, textH int) int {
	if iconH == 0 || textH == 0 || iconH+textH > renderH {
		return renderY + renderH/2 - iconH/2
	}
	return renderY + (renderH-(iconH+textH))/3
}

// LoadPlacement reads x, y, w, h and placement from a <placement> node,
// scaling coordinates into display space. Absent values degrade to zero and
// TopLeft.
func LoadPlacement(n theme.Node, s theme.Scale) (Rect, Placement) {
	if n == nil {
		return Rect{}, TopLeft
	}
	r := Rect{
		X: s.X(theme.AttrInt(n, "x", 0)),
		Y: s.Y(theme.AttrInt(n, "y", 0)),
		W: s.X(theme.AttrInt(n, "w", 0)),
		H: s.Y(theme.AttrInt(n, "h", 0)),
	}
	p := Placement(theme.AttrInt(n, "placement", int(TopLeft)))
	if !p.Valid() {
		p = TopLeft
	}
	if p != TopLeft && p != TextOnlyRight {
		r.X, r.Y = Anchor(p, r.X, r.Y, r.W, r.H)
	}
	return r, p
}

package widget

import (
	"strconv"
	"strings"

	"recoveryui/gui/geom"
	"recoveryui/gui/theme"
)

type condition struct {
	var1, op, var2 string
}

// Object carries what all widgets share: visibility conditions, the
// render rectangle and the touch region.
type Object struct {
	env        *Env
	conditions []condition
	render     geom.Rect
	action     geom.Rect
}

func newObject(n theme.Node, env *Env) Object {
	o := Object{env: env}
	if n == nil {
		return o
	}
	add := func(c theme.Node) {
		if c.Name() != "condition" {
			return
		}
		o.conditions = append(o.conditions, condition{
			var1: theme.Attr(c, "var1", ""),
			op:   theme.Attr(c, "op", "="),
			var2: theme.Attr(c, "var2", ""),
		})
	}
	for _, c := range n.Children() {
		add(c)
	}
	if cs := n.Child("conditions"); cs != nil {
		for _, c := range cs.Children() {
			add(c)
		}
	}
	return o
}

func (o *Object) value(name string) string {
	if o.env == nil || o.env.Data == nil {
		return name
	}
	if v, ok := o.env.Data.Lookup(name); ok {
		return v
	}
	return name
}

func (c condition) eval(o *Object) bool {
	if c.var1 == "" {
		return true
	}
	a := o.value(c.var1)
	b := o.value(c.var2)
	switch c.op {
	case "=", "==":
		return a == b
	case "!=":
		return a != b
	case "<", ">", "<=", ">=":
		x, err1 := strconv.Atoi(strings.TrimSpace(a))
		y, err2 := strconv.Atoi(strings.TrimSpace(b))
		if err1 != nil || err2 != nil {
			return false
		}
		switch c.op {
		case "<":
			return x < y
		case ">":
			return x > y
		case "<=":
			return x <= y
		default:
			return x >= y
		}
	}
	return false
}

// IsVisible reports whether every condition holds.
func (o *Object) IsVisible() bool {
	for _, c := range o.conditions {
		if !c.eval(o) {
			return false
		}
	}
	return true
}

func (o *Object) RenderPos() geom.Rect { return o.render }

func (o *Object) SetRenderPos(x, y, w, h int) {
	o.render = geom.Rect{X: x, Y: y, W: w, H: h}
	o.action = o.render
}

// SetActionPos sets the touch region independently of the render box.
func (o *Object) SetActionPos(r geom.Rect) { o.action = r }

func (o *Object) ActionPos() geom.Rect { return o.action }

// IsInRegion hit-tests the touch region.
func (o *Object) IsInRegion(x, y int) bool { return o.action.Contains(x, y) }

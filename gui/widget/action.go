package widget

import (
	"strings"

	"recoveryui/gui/geom"
	"recoveryui/gui/theme"
	"recoveryui/hal"
)

// ActionDef is one function call bound to a touch region.
type ActionDef struct {
	Function string
	Arg      string
}

// Action fires its functions when a touch is released inside its region.
//
//	<action function="page">main</action>
//	<actions>
//	  <action function="set">tw_x=1</action>
//	  <action function="reboot">system</action>
//	</actions>
type Action struct {
	Object
	actions []ActionDef
}

// NewAction returns nil when n binds no actions.
func NewAction(n theme.Node, env *Env) *Action {
	if n == nil {
		return nil
	}
	a := &Action{Object: newObject(n, env)}
	add := func(c theme.Node) {
		if c.Name() != "action" {
			return
		}
		fn := theme.Attr(c, "function", "")
		if fn == "" {
			env.Log.Error().Msg("action without function")
			return
		}
		a.actions = append(a.actions, ActionDef{Function: fn, Arg: strings.TrimSpace(c.Value())})
	}
	add(n)
	for _, c := range n.Children() {
		add(c)
	}
	if as := n.Child("actions"); as != nil {
		for _, c := range as.Children() {
			add(c)
		}
	}
	if len(a.actions) == 0 {
		return nil
	}
	if pn := n.Child("placement"); pn != nil {
		r, _ := geom.LoadPlacement(pn, env.Scale)
		a.SetRenderPos(r.X, r.Y, r.W, r.H)
	}
	return a
}

func (a *Action) Actions() []ActionDef { return a.actions }

func (a *Action) Render() error { return nil }

func (a *Action) Update() (RenderResult, error) { return NoChange, nil }

// NotifyTouch reports every touch inside the region as handled and runs
// the actions on release.
func (a *Action) NotifyTouch(state hal.TouchState, x, y int) int {
	if !a.IsVisible() {
		return -1
	}
	if !a.IsInRegion(x, y) {
		return 0
	}
	if state == hal.TouchRelease {
		a.Run()
	}
	return 1
}

// Run calls every bound function in order. Errors are logged and do not
// stop later functions.
func (a *Action) Run() {
	if a.env == nil || a.env.Actions == nil {
		return
	}
	for _, def := range a.actions {
		arg := def.Arg
		if a.env.Data != nil {
			arg = a.env.Data.Expand(arg)
		}
		if err := a.env.Actions.Do(def.Function, arg); err != nil {
			a.env.Log.Error().Err(err).Str("function", def.Function).Str("arg", def.Arg).Msg("action failed")
		}
	}
}

package page

import (
	"errors"
	"fmt"
	"strings"

	"recoveryui/gui/archive"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"
	"recoveryui/gui/widget"
	"recoveryui/hal"
)

// ErrNoPages is returned when a theme defines no pages.
var ErrNoPages = errors.New("theme has no pages")

// PageSet owns the pages of a theme and handles the page-level actions
// "page" and "set". Other actions go to the external handler.
type PageSet struct {
	env      *widget.Env
	external widget.ActionHandler

	pages    []*Page
	byName   map[string]*Page
	current  *Page
	needFull bool
}

// NewPageSet installs itself as env's action handler.
func NewPageSet(env *widget.Env, external widget.ActionHandler) *PageSet {
	ps := &PageSet{env: env, external: external, byName: make(map[string]*Page)}
	env.Actions = ps
	return ps
}

// Load reads resources, variables and pages from a theme root. source
// tags the strings it loads.
func (ps *PageSet) Load(root theme.Node, arc archive.Archive, source string) error {
	if root == nil {
		return uierr.New("page.Load", uierr.KindConfig, source, uierr.ErrNotFound)
	}
	ps.env.Resources.LoadResources(root.Child("resources"), arc, source)
	if n := ps.env.Data.LoadVariables(root.Child("variables")); n > 0 {
		ps.env.Log.Debug().Int("variables", n).Msg("loaded variables")
	}

	var pageNodes []theme.Node
	if pn := root.Child("pages"); pn != nil {
		pageNodes = pn.Children()
	}
	for _, n := range pageNodes {
		if n.Name() != "page" {
			continue
		}
		p := NewPage(n, ps.env)
		if p.name == "" {
			ps.env.Log.Error().Msg("page without a name")
			continue
		}
		ps.pages = append(ps.pages, p)
		ps.byName[p.name] = p
	}
	if len(ps.pages) == 0 {
		return uierr.New("page.Load", uierr.KindConfig, source, ErrNoPages)
	}

	start := ""
	if sp := theme.Find(theme.Find(root, "details"), "startpage"); sp != nil {
		start = strings.TrimSpace(sp.Value())
	}
	if start == "" {
		start = ps.pages[0].name
	}
	return ps.ChangePage(start)
}

func (ps *PageSet) Pages() []*Page { return ps.pages }

// Current returns the active page.
func (ps *PageSet) Current() *Page { return ps.current }

// ChangePage activates the named page and schedules a full repaint.
func (ps *PageSet) ChangePage(name string) error {
	p, ok := ps.byName[name]
	if !ok {
		return uierr.New("page.ChangePage", uierr.KindLookup, name, uierr.ErrNotFound)
	}
	if ps.current != nil {
		ps.current.target = nil
	}
	ps.current = p
	ps.needFull = true
	ps.env.Log.Info().Str("page", name).Msg("page changed")
	return nil
}

// Do implements widget.ActionHandler.
func (ps *PageSet) Do(function, arg string) error {
	switch function {
	case "page":
		return ps.ChangePage(arg)
	case "set":
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("set: %q is not name=value", arg)
		}
		ps.env.Data.SetValue(strings.TrimSpace(name), value)
		return nil
	}
	if ps.external == nil {
		return uierr.New("page.Do", uierr.KindUnsupported, function, uierr.ErrNotFound)
	}
	return ps.external.Do(function, arg)
}

// Tick updates the active page. A page change reports a full repaint.
func (ps *PageSet) Tick() widget.RenderResult {
	if ps.current == nil {
		return widget.NoChange
	}
	res := ps.current.Tick()
	if ps.needFull {
		res = widget.FullRepaintNeeded
	}
	return res
}

// Render fully repaints the active page.
func (ps *PageSet) Render() error {
	if ps.current == nil {
		return nil
	}
	ps.needFull = false
	return ps.current.Render()
}

func (ps *PageSet) NotifyTouch(state hal.TouchState, x, y int) int {
	if ps.current == nil {
		return 0
	}
	return ps.current.NotifyTouch(state, x, y)
}

// Console returns the first console widget on the active page, or on
// any page when the active one has none.
func (ps *PageSet) Console() *widget.Console {
	find := func(p *Page) *widget.Console {
		for _, w := range p.widgets {
			if c, ok := w.(*widget.Console); ok {
				return c
			}
		}
		return nil
	}
	if ps.current != nil {
		if c := find(ps.current); c != nil {
			return c
		}
	}
	for _, p := range ps.pages {
		if c := find(p); c != nil {
			return c
		}
	}
	return nil
}

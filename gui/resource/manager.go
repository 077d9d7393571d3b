package resource

import (
	"fmt"
	"io"

	"recoveryui/gui/archive"
	"recoveryui/gui/theme"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/rs/zerolog"
)

// Provenance tags for strings registered by a failed lookup.
const (
	SourceNoDefault = "NO DEFAULT"
	SourceDefault   = "DEFAULT"
)

// StringEntry is one string table value and where it came from.
type StringEntry struct {
	Value  string
	Source string
}

// Options tunes Manager behaviour.
type Options struct {
	// TrackMisses registers a placeholder entry for every failed string
	// lookup so that dumps list them.
	TrackMisses bool
}

// DefaultOptions tracks misses.
func DefaultOptions() Options { return Options{TrackMisses: true} }

// Manager owns every loaded resource. Lookups return non-owning
// references that stay valid until Release.
type Manager struct {
	loader *Loader
	opts   Options
	log    zerolog.Logger

	fonts      []*FontResource
	images     []*ImageResource
	animations []*AnimationResource
	strings    *treemap.Map
}

func NewManager(l *Loader, opts Options) *Manager {
	return &Manager{
		loader:  l,
		opts:    opts,
		log:     l.Log,
		strings: treemap.NewWithStringComparator(),
	}
}

// Loader returns the loader the manager decodes assets with.
func (m *Manager) Loader() *Loader { return m.loader }

// LoadResources loads every child of list. Failures are logged and the
// offending resource is skipped.
func (m *Manager) LoadResources(list theme.Node, arc archive.Archive, source string) {
	if list == nil {
		return
	}
	for _, child := range list.Children() {
		typ := child.Name()
		if typ == "resource" {
			typ = theme.Attr(child, "type", "*unspecified*")
		}

		failed := false
		switch typ {
		case "font":
			r := NewFontResource(child, arc, m.loader)
			if r.Face() != nil {
				m.fonts = append(m.fonts, r)
			} else {
				failed = true
			}
		case "fontoverride":
			m.overrideFont(child, arc)
		case "image":
			r := NewImageResource(child, arc, m.loader)
			if r.usable() {
				m.images = append(m.images, r)
			} else {
				r.Release()
				failed = true
			}
		case "animation":
			r := NewAnimationResource(child, arc, m.loader)
			if r.Len() > 0 {
				m.animations = append(m.animations, r)
			} else {
				failed = true
			}
		case "string":
			if name, ok := child.Attr("name"); ok {
				m.strings.Put(name, StringEntry{Value: child.Value(), Source: source})
			} else {
				failed = true
			}
		default:
			m.log.Error().Str("type", typ).Msg("resource type not supported")
			failed = true
		}

		if failed {
			m.logRejected(typ, child)
		}
	}
}

func (m *Manager) overrideFont(n theme.Node, arc archive.Archive) {
	if len(m.fonts) == 0 {
		m.log.Error().Str("name", theme.Attr(n, "name", "")).Msg("no fonts loaded to override")
		return
	}
	name, ok := n.Attr("name")
	if !ok {
		m.log.Error().Msg("unable to locate font name for type fontoverride")
		return
	}
	f, ok := m.FindFont(name)
	if !ok {
		m.log.Error().Str("font", name).Msg("unable to locate font for override")
		return
	}
	_ = f.Override(n, arc)
}

// AddFont registers a font built outside LoadResources. Fonts without a
// face are ignored.
func (m *Manager) AddFont(f *FontResource) bool {
	if f == nil || f.Face() == nil {
		return false
	}
	m.fonts = append(m.fonts, f)
	return true
}

func (m *Manager) logRejected(typ string, n theme.Node) {
	name := theme.Attr(n, "name", "")
	if name == "" {
		name = theme.Attr(n, "filename", "")
	}
	if name != "" {
		m.log.Error().Msgf("Resource (%s)-(%s) failed to load", typ, name)
		return
	}
	m.log.Error().Msgf("Resource type (%s) failed to load", typ)
}

func find[R interface{ Name() string }](list []R, name string) (R, bool) {
	for _, r := range list {
		if r.Name() == name {
			return r, true
		}
	}
	var zero R
	return zero, false
}

func (m *Manager) FindFont(name string) (*FontResource, bool) { return find(m.fonts, name) }

func (m *Manager) FindImage(name string) (*ImageResource, bool) { return find(m.images, name) }

func (m *Manager) FindAnimation(name string) (*AnimationResource, bool) {
	return find(m.animations, name)
}

func (m *Manager) lookup(name string) (string, bool) {
	v, ok := m.strings.Get(name)
	if !ok {
		return "", false
	}
	return v.(StringEntry).Value, true
}

// FindString returns the named string, or "[name]" after logging the miss
// and registering the placeholder under SourceNoDefault.
func (m *Manager) FindString(name string) string {
	if v, ok := m.lookup(name); ok {
		return v
	}
	m.log.Error().Str("string", name).Msg("string resource not found, no default value")
	fallback := "[" + name + "]"
	if m.opts.TrackMisses {
		m.AddStringResource(SourceNoDefault, name, fallback)
	}
	return fallback
}

// FindStringDefault is FindString with a caller default, registered under
// SourceDefault on a miss.
func (m *Manager) FindStringDefault(name, def string) string {
	if v, ok := m.lookup(name); ok {
		return v
	}
	m.log.Error().Str("string", name).Msg("string resource not found, using default value")
	if m.opts.TrackMisses {
		m.AddStringResource(SourceDefault, name, def)
	}
	return def
}

// AddStringResource sets name, replacing any earlier entry.
func (m *Manager) AddStringResource(source, name, value string) {
	m.strings.Put(name, StringEntry{Value: value, Source: source})
}

// String returns the raw table entry.
func (m *Manager) String(name string) (StringEntry, bool) {
	v, ok := m.strings.Get(name)
	if !ok {
		return StringEntry{}, false
	}
	return v.(StringEntry), true
}

// DumpStrings writes the string table sorted by name.
func (m *Manager) DumpStrings(w io.Writer) error {
	if _, err := fmt.Fprint(w, "Dumping all strings:\n"); err != nil {
		return err
	}
	it := m.strings.Iterator()
	for it.Next() {
		e := it.Value().(StringEntry)
		if _, err := fmt.Fprintf(w, "source: %s: '%s' = '%s'\n", e.Source, it.Key(), e.Value); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "Done dumping strings\n")
	return err
}

// Counts reports how many resources of each kind are held.
func (m *Manager) Counts() map[Kind]int {
	return map[Kind]int{
		KindFont:      len(m.fonts),
		KindImage:     len(m.images),
		KindAnimation: len(m.animations),
		KindString:    m.strings.Size(),
	}
}

// Release frees every held font, image and animation once.
func (m *Manager) Release() {
	for _, f := range m.fonts {
		f.Release()
	}
	for _, r := range m.images {
		r.Release()
	}
	for _, r := range m.animations {
		r.Release()
	}
	m.fonts, m.images, m.animations = nil, nil, nil
	m.strings.Clear()
}

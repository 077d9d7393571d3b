// Package resource loads theme assets (fonts, images, animations and
// strings) and indexes them by name.
package resource

import (
	"fmt"

	"recoveryui/gui/archive"
	"recoveryui/gui/theme"
	"recoveryui/gui/uierr"
)

// Kind is the closed set of resource types.
type Kind int

const (
	KindFont Kind = iota
	KindImage
	KindAnimation
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindFont:
		return "font"
	case KindImage:
		return "image"
	case KindAnimation:
		return "animation"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Resource is a named asset owned by a Manager.
type Resource interface {
	Name() string
	Kind() Kind
	// Release frees the asset's buffers. It is safe to call twice.
	Release()
}

type base struct {
	name string
}

func newBase(n theme.Node) base {
	return base{name: theme.Attr(n, "name", "")}
}

func (b base) Name() string { return b.name }

// ExtractResource copies folder/file+ext out of arc into dest. A nil
// archive fails with uierr.ErrNoArchive.
func ExtractResource(arc archive.Archive, folder, file, ext, dest string) error {
	if arc == nil {
		return uierr.ErrNoArchive
	}
	src := folder + "/" + file + ext
	if err := arc.ExtractEntry(src, dest, 0o666); err != nil {
		return uierr.New("resource.Extract", uierr.KindAsset, src, err)
	}
	return nil
}

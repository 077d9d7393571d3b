// Package theme exposes the theme description as a read-only tree.
//
// The renderer only needs attribute lookup, child lookup by tag, child
// iteration and text content, so that is all Node offers.
package theme

import (
	"strconv"
	"strings"
)

// Node is one element of the theme tree.
type Node interface {
	Name() string
	Attr(name string) (string, bool)
	// Child returns the first child with the given tag, or nil.
	Child(name string) Node
	Children() []Node
	Value() string
}

// Attr returns the attribute value or def when n is nil or lacks it.
func Attr(n Node, name, def string) string {
	if n == nil {
		return def
	}
	if v, ok := n.Attr(name); ok {
		return v
	}
	return def
}

// HasAttr reports whether n carries the attribute, whatever its value.
func HasAttr(n Node, name string) bool {
	if n == nil {
		return false
	}
	_, ok := n.Attr(name)
	return ok
}

// AttrInt parses an integer attribute. Malformed values yield def.
func AttrInt(n Node, name string, def int) int {
	v, ok := "", false
	if n != nil {
		v, ok = n.Attr(name)
	}
	if !ok {
		return def
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

// Find returns the first child of n named name, tolerating a nil n.
func Find(n Node, name string) Node {
	if n == nil {
		return nil
	}
	return n.Child(name)
}

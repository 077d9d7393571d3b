package theme

import (
	"fmt"

	"github.com/beevik/etree"
)

// Document is a parsed XML theme description.
type Document struct {
	doc *etree.Document
}

// Parse reads a theme description from XML bytes.
func Parse(data []byte) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("theme: parse: %w", err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("theme: parse: no root element")
	}
	return &Document{doc: doc}, nil
}

// ParseFile reads a theme description from disk.
func ParseFile(path string) (*Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("theme: read %s: %w", path, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("theme: %s: no root element", path)
	}
	return &Document{doc: doc}, nil
}

// Root returns the document element.
func (d *Document) Root() Node { return xmlNode{e: d.doc.Root()} }

type xmlNode struct {
	e *etree.Element
}

func (n xmlNode) Name() string { return n.e.Tag }

func (n xmlNode) Attr(name string) (string, bool) {
	a := n.e.SelectAttr(name)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (n xmlNode) Child(name string) Node {
	c := n.e.SelectElement(name)
	if c == nil {
		return nil
	}
	return xmlNode{e: c}
}

func (n xmlNode) Children() []Node {
	elems := n.e.ChildElements()
	out := make([]Node, 0, len(elems))
	for _, c := range elems {
		out = append(out, xmlNode{e: c})
	}
	return out
}

func (n xmlNode) Value() string { return n.e.Text() }

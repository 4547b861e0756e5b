// Package oxml provides namespace-aware accessors over the DrawingML,
// ChartML and PresentationML element trees held by package parts.
package oxml

import (
	"fmt"

	"github.com/beevik/etree"
)

// Namespace URIs used by the parts this module reads and writes.
const (
	NsA   = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NsC   = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	NsDgm = "http://schemas.openxmlformats.org/drawingml/2006/diagram"
	NsDsp = "http://schemas.microsoft.com/office/drawing/2008/diagram"
	NsP   = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NsR   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

// Parse parses an XML document and returns its root element.
func Parse(b []byte) (*etree.Element, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(b); err != nil {
		return nil, fmt.Errorf("parse xml: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return root, nil
}

// MustParse is Parse for fixtures known to be well formed.
func MustParse(s string) *etree.Element {
	el, err := Parse([]byte(s))
	if err != nil {
		panic(err)
	}
	return el
}

// Is reports whether el has the given namespace and local name.
func Is(el *etree.Element, ns, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == ns
}

// Child returns the first child element of el named {ns}local, or nil.
func Child(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			return c
		}
	}
	return nil
}

// Children returns every child element of el named {ns}local in document order.
func Children(el *etree.Element, ns, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			out = append(out, c)
		}
	}
	return out
}

// Path follows a chain of single children, each in namespace ns.
func Path(el *etree.Element, ns string, locals ...string) *etree.Element {
	for _, l := range locals {
		el = Child(el, ns, l)
		if el == nil {
			return nil
		}
	}
	return el
}

// Descendants returns every element below el named {ns}local in document
// order. el itself is never included.
func Descendants(el *etree.Element, ns, local string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, c := range e.ChildElements() {
			if Is(c, ns, local) {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(el)
	return out
}

// FirstDescendant returns the first element below el named {ns}local, or nil.
func FirstDescendant(el *etree.Element, ns, local string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if Is(c, ns, local) {
			return c
		}
		if d := FirstDescendant(c, ns, local); d != nil {
			return d
		}
	}
	return nil
}

// AttrNS returns the value of the attribute {ns}local on el. An empty ns
// matches unqualified attributes only.
func AttrNS(el *etree.Element, ns, local string) (string, bool) {
	if el == nil {
		return "", false
	}
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key != local {
			continue
		}
		if ns == "" {
			if a.Space == "" {
				return a.Value, true
			}
			continue
		}
		if a.NamespaceURI() == ns {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the unqualified attribute value, or "" when absent.
func Attr(el *etree.Element, name string) string {
	v, _ := AttrNS(el, "", name)
	return v
}

// NewChild creates a child of parent named local in parent's own namespace
// prefix and inserts it at index, or appends it when index is out of range.
func NewChild(parent *etree.Element, local string, index int) *etree.Element {
	tag := local
	if parent.Space != "" {
		tag = parent.Space + ":" + local
	}
	el := etree.NewElement(tag)
	if index < 0 || index >= len(parent.Child) {
		parent.AddChild(el)
	} else {
		parent.InsertChildAt(index, el)
	}
	return el
}

package opc

import (
	"fmt"

	"github.com/beevik/etree"
)

// Part is one named member of a package. XML parts are parsed on first
// access and serialized again when the package is saved.
type Part struct {
	pkg         *Package
	name        string
	contentType string
	blob        []byte
	doc         *etree.Document
	rels        []Relationship
}

// NewPart creates a detached part that belongs to no package. Detached parts
// resolve no relationships.
func NewPart(name, contentType string, blob []byte) *Part {
	return &Part{name: name, contentType: contentType, blob: blob}
}

// Name returns the part name, e.g. /ppt/charts/chart1.xml.
func (p *Part) Name() string { return p.name }

// ContentType returns the part's content type, or "" when undeclared.
func (p *Part) ContentType() string { return p.contentType }

// Element returns the root element of the part's XML, parsing it on first use.
func (p *Part) Element() (*etree.Element, error) {
	if p.doc == nil {
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(p.blob); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p.name, err)
		}
		if doc.Root() == nil {
			return nil, fmt.Errorf("parse %s: no root element", p.name)
		}
		p.doc = doc
	}
	return p.doc.Root(), nil
}

// Blob returns the part's current bytes, serializing its element tree when
// it has been loaded.
func (p *Part) Blob() ([]byte, error) {
	if p.doc == nil {
		return p.blob, nil
	}
	b, err := p.doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serialize %s: %w", p.name, err)
	}
	return b, nil
}

// SetBlob replaces the part's bytes and discards any loaded element tree.
func (p *Part) SetBlob(b []byte) {
	p.blob = b
	p.doc = nil
}

// Rels returns the part's outbound relationships in declaration order.
func (p *Part) Rels() []Relationship { return p.rels }

// RelatedPart resolves an internal relationship by id.
func (p *Part) RelatedPart(rID string) (*Part, bool) {
	if p.pkg == nil {
		return nil, false
	}
	for _, r := range p.rels {
		if r.ID == rID && !r.External {
			target := p.pkg.Part(resolveTarget(p.name, r.Target))
			return target, target != nil
		}
	}
	return nil, false
}

// RelatedParts returns every internal target of the given relationship type.
func (p *Part) RelatedParts(relType string) []*Part {
	if p.pkg == nil {
		return nil
	}
	var out []*Part
	for _, r := range p.rels {
		if r.Type != relType || r.External {
			continue
		}
		if target := p.pkg.Part(resolveTarget(p.name, r.Target)); target != nil {
			out = append(out, target)
		}
	}
	return out
}

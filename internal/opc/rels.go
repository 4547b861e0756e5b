package opc

import (
	"encoding/xml"
	"fmt"
	"path"
	"strings"
)

// Relationship is one entry of a .rels part.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

type relsXML struct {
	XMLName xml.Name `xml:"Relationships"`
	Rels    []relXML `xml:"Relationship"`
}

type relXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func parseRels(b []byte) ([]Relationship, error) {
	var doc relsXML
	if err := xml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse rels: %w", err)
	}
	out := make([]Relationship, 0, len(doc.Rels))
	for _, r := range doc.Rels {
		out = append(out, Relationship{
			ID:       r.ID,
			Type:     r.Type,
			Target:   r.Target,
			External: strings.EqualFold(r.TargetMode, "External"),
		})
	}
	return out, nil
}

// relsNameFor maps a part name to the name of its relationships part,
// e.g. /ppt/slides/slide1.xml -> /ppt/slides/_rels/slide1.xml.rels.
func relsNameFor(partName string) string {
	if partName == "/" {
		return packageRelsName
	}
	dir, file := path.Split(partName)
	return dir + "_rels/" + file + ".rels"
}

// resolveTarget resolves a relationship target relative to its source part.
func resolveTarget(sourceName, target string) string {
	if strings.HasPrefix(target, "/") {
		return path.Clean(target)
	}
	base := path.Dir(sourceName)
	return path.Clean(path.Join(base, target))
}

// isRelsName reports whether a part name belongs to a relationships part.
func isRelsName(name string) bool {
	return strings.HasSuffix(name, ".rels") && strings.Contains(name, "/_rels/")
}

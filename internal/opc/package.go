// Package opc reads and writes Open Packaging Convention containers: the
// zip archive behind .pptx/.xlsx files, its parts, content types and
// relationships.
package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path"
	"strings"
)

// Package is an in-memory OPC package. Member order is preserved on save.
type Package struct {
	entries []string // zip member names in archive order, with leading "/"
	raw     map[string][]byte
	parts   map[string]*Part
	rels    []Relationship
}

// OpenFile reads a package from disk.
func OpenFile(name string) (*Package, error) {
	b, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read package: %w", err)
	}
	return OpenBytes(b)
}

// OpenBytes reads a package from its serialized bytes.
func OpenBytes(b []byte) (*Package, error) {
	return Open(bytes.NewReader(b), int64(len(b)))
}

// Open reads every member of the zip archive in r.
func Open(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}

	pkg := &Package{
		raw:   make(map[string][]byte, len(zr.File)),
		parts: make(map[string]*Part),
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		b, err := readZipFile(f)
		if err != nil {
			return nil, err
		}
		name := "/" + strings.TrimPrefix(f.Name, "/")
		pkg.entries = append(pkg.entries, name)
		pkg.raw[name] = b
	}

	ct, err := parseContentTypes(pkg.raw[contentTypesName])
	if err != nil {
		return nil, err
	}

	for _, name := range pkg.entries {
		if name == contentTypesName || isRelsName(name) {
			continue
		}
		pkg.parts[name] = &Part{
			pkg:         pkg,
			name:        name,
			contentType: ct.lookup(name),
			blob:        pkg.raw[name],
		}
	}

	if b, ok := pkg.raw[packageRelsName]; ok {
		if pkg.rels, err = parseRels(b); err != nil {
			return nil, err
		}
	}
	for name, part := range pkg.parts {
		b, ok := pkg.raw[relsNameFor(name)]
		if !ok {
			continue
		}
		if part.rels, err = parseRels(b); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return pkg, nil
}

func readZipFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	b, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name, err)
	}
	return b, nil
}

// Part returns the part with the given name, or nil.
func (p *Package) Part(name string) *Part {
	return p.parts[name]
}

// Parts returns every part in archive order.
func (p *Package) Parts() []*Part {
	out := make([]*Part, 0, len(p.parts))
	for _, name := range p.entries {
		if part, ok := p.parts[name]; ok {
			out = append(out, part)
		}
	}
	return out
}

// Rels returns the package-level relationships.
func (p *Package) Rels() []Relationship { return p.rels }

// RelatedParts returns every package-level target of relType.
func (p *Package) RelatedParts(relType string) []*Part {
	var out []*Part
	for _, r := range p.rels {
		if r.Type != relType || r.External {
			continue
		}
		if part := p.parts[resolveTarget("/", r.Target)]; part != nil {
			out = append(out, part)
		}
	}
	return out
}

// Save writes the package as a zip archive, serializing every loaded part.
func (p *Package) Save(w io.Writer) error {
	zw := zip.NewWriter(w)
	for _, name := range p.entries {
		b := p.raw[name]
		if part, ok := p.parts[name]; ok {
			var err error
			if b, err = part.Blob(); err != nil {
				return err
			}
		}
		fw, err := zw.Create(strings.TrimPrefix(name, "/"))
		if err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := fw.Write(b); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

// Bytes returns the serialized package.
func (p *Package) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.Save(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type contentTypes struct {
	defaults  map[string]string
	overrides map[string]string
}

type contentTypesXML struct {
	XMLName   xml.Name `xml:"Types"`
	Defaults  []struct {
		Extension   string `xml:"Extension,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Default"`
	Overrides []struct {
		PartName    string `xml:"PartName,attr"`
		ContentType string `xml:"ContentType,attr"`
	} `xml:"Override"`
}

func parseContentTypes(b []byte) (*contentTypes, error) {
	ct := &contentTypes{
		defaults:  make(map[string]string),
		overrides: make(map[string]string),
	}
	if b == nil {
		return ct, nil
	}
	var doc contentTypesXML
	if err := xml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parse content types: %w", err)
	}
	for _, d := range doc.Defaults {
		ct.defaults[strings.ToLower(d.Extension)] = d.ContentType
	}
	for _, o := range doc.Overrides {
		ct.overrides[strings.ToLower(o.PartName)] = o.ContentType
	}
	return ct, nil
}

func (ct *contentTypes) lookup(name string) string {
	if v, ok := ct.overrides[strings.ToLower(name)]; ok {
		return v
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	return ct.defaults[ext]
}

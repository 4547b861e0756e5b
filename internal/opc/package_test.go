package opc

import (
	"strings"
	"testing"

	"github.com/dgallion1/pptxdom/internal/opc/opctest"
)

const testContentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Override PartName="/ppt/slides/slide1.xml" ContentType="` + CTSlide + `"/>` +
	`<Override PartName="/ppt/drawings/drawing1.xml" ContentType="` + CTDiagramDrawing + `"/>` +
	`</Types>`

func testPackage(t *testing.T) *Package {
	t.Helper()
	b := opctest.Zip(map[string]string{
		"[Content_Types].xml": testContentTypes,
		"_rels/.rels":         opctest.Rels([3]string{"rId1", RTOfficeDocument, "ppt/slides/slide1.xml"}),
		"ppt/slides/slide1.xml": `<p:sld xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"/>`,
		"ppt/slides/_rels/slide1.xml.rels": opctest.Rels(
			[3]string{"rId1", RTDiagramDrawing, "../drawings/drawing1.xml"},
			[3]string{"rId2", RTDiagramDrawing, "../drawings/missing.xml"},
			[3]string{"rId3", RTChart, "../charts/chart1.xml"},
		),
		"ppt/drawings/drawing1.xml": `<dsp:drawing xmlns:dsp="http://schemas.microsoft.com/office/drawing/2008/diagram"/>`,
	})
	pkg, err := OpenBytes(b)
	if err != nil {
		t.Fatalf("open package: %v", err)
	}
	return pkg
}

func TestOpen_ContentTypes(t *testing.T) {
	pkg := testPackage(t)
	slide := pkg.Part("/ppt/slides/slide1.xml")
	if slide == nil {
		t.Fatal("expected slide part")
	}
	if slide.ContentType() != CTSlide {
		t.Errorf("expected override content type, got %q", slide.ContentType())
	}
	if pkg.Part("/ppt/slides/_rels/slide1.xml.rels") != nil {
		t.Error("expected rels members not to be exposed as parts")
	}
}

func TestRelatedParts_SkipsUnresolvedTargets(t *testing.T) {
	pkg := testPackage(t)
	slide := pkg.Part("/ppt/slides/slide1.xml")

	drawings := slide.RelatedParts(RTDiagramDrawing)
	if len(drawings) != 1 {
		t.Fatalf("expected 1 drawing, got %d", len(drawings))
	}
	if drawings[0].Name() != "/ppt/drawings/drawing1.xml" {
		t.Errorf("unexpected target %q", drawings[0].Name())
	}
	if _, ok := slide.RelatedPart("rId3"); ok {
		t.Error("expected missing chart target to be unresolved")
	}
	if got := pkg.RelatedParts(RTOfficeDocument); len(got) != 1 || got[0] != slide {
		t.Errorf("expected package rel to resolve to slide, got %v", got)
	}
}

func TestSave_RoundTripsEditedElements(t *testing.T) {
	pkg := testPackage(t)
	drawing := pkg.Part("/ppt/drawings/drawing1.xml")
	root, err := drawing.Element()
	if err != nil {
		t.Fatalf("element: %v", err)
	}
	root.CreateAttr("edited", "yes")

	b, err := pkg.Bytes()
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	again, err := OpenBytes(b)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	blob, err := again.Part("/ppt/drawings/drawing1.xml").Blob()
	if err != nil {
		t.Fatalf("blob: %v", err)
	}
	if !strings.Contains(string(blob), `edited="yes"`) {
		t.Errorf("expected edit to survive save, got %s", blob)
	}
	if len(again.Parts()) != len(pkg.Parts()) {
		t.Errorf("expected %d parts after round trip, got %d", len(pkg.Parts()), len(again.Parts()))
	}
}

func TestDetachedPart_ResolvesNothing(t *testing.T) {
	p := NewPart("/x.xml", CTXML, []byte(`<x/>`))
	if p.RelatedParts(RTChart) != nil {
		t.Error("expected no related parts for a detached part")
	}
	if _, err := p.Element(); err != nil {
		t.Errorf("unexpected parse error: %v", err)
	}
}

func TestOpen_NotAZip(t *testing.T) {
	if _, err := OpenBytes([]byte("plain text")); err == nil {
		t.Error("expected error for non-zip input")
	}
}

func TestResolveTarget(t *testing.T) {
	cases := []struct{ source, target, want string }{
		{"/ppt/slides/slide1.xml", "../charts/chart1.xml", "/ppt/charts/chart1.xml"},
		{"/ppt/charts/chart1.xml", "../embeddings/Book1.xlsx", "/ppt/embeddings/Book1.xlsx"},
		{"/", "ppt/presentation.xml", "/ppt/presentation.xml"},
		{"/ppt/slides/slide1.xml", "/ppt/media/image1.png", "/ppt/media/image1.png"},
	}
	for _, c := range cases {
		if got := resolveTarget(c.source, c.target); got != c.want {
			t.Errorf("resolveTarget(%q, %q) = %q, want %q", c.source, c.target, got, c.want)
		}
	}
}

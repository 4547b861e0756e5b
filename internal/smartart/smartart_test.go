package smartart

import (
	"reflect"
	"strings"
	"testing"

	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/dgallion1/pptxdom/internal/oxml"
)

const ns = ` xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram"` +
	` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`

func textPt(id, typ string, runs ...string) string {
	attrs := ` modelId="` + id + `"`
	if typ != "" {
		attrs += ` type="` + typ + `"`
	}
	if runs == nil {
		return `<dgm:pt` + attrs + `/>`
	}
	var b strings.Builder
	b.WriteString(`<dgm:pt` + attrs + `><dgm:t><a:bodyPr/><a:p>`)
	for _, r := range runs {
		b.WriteString(`<a:r><a:t>` + r + `</a:t></a:r>`)
	}
	b.WriteString(`</a:p></dgm:t></dgm:pt>`)
	return b.String()
}

func dataModel(pts ...string) string {
	return `<dgm:dataModel` + ns + `><dgm:ptLst>` + strings.Join(pts, "") + `</dgm:ptLst>` +
		`<dgm:cxnLst><dgm:cxn modelId="{c1}" srcId="{1}" destId="{2}"/>` +
		`<dgm:cxn modelId="{c2}" type="presOf" srcId="{2}" destId="{p2}"/></dgm:cxnLst></dgm:dataModel>`
}

func drawingXML(cells ...string) string {
	var b strings.Builder
	b.WriteString(`<dsp:drawing xmlns:dsp="http://schemas.microsoft.com/office/drawing/2008/diagram"` +
		` xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><dsp:spTree>`)
	for _, c := range cells {
		b.WriteString(`<dsp:sp><dsp:txBody><a:p><a:r><a:t>` + c + `</a:t></a:r></a:p></dsp:txBody></dsp:sp>`)
	}
	b.WriteString(`</dsp:spTree></dsp:drawing>`)
	return b.String()
}

type fakeOwner map[string][]*opc.Part

func (o fakeOwner) RelatedParts(relType string) []*opc.Part { return o[relType] }

func drawingPart(name, xml string) *opc.Part {
	return opc.NewPart(name, opc.CTDiagramDrawing, []byte(xml))
}

func cellTexts(t *testing.T, p *opc.Part) []string {
	t.Helper()
	root, err := p.Element()
	if err != nil {
		t.Fatalf("drawing element: %v", err)
	}
	var out []string
	for _, c := range oxml.DrawingCells(root) {
		out = append(out, c.Text())
	}
	return out
}

func TestNodes_SkipsMetadataPoints(t *testing.T) {
	sa := New(oxml.MustParse(dataModel(
		textPt("{1}", ""),
		textPt("{2}", "pres"),
		textPt("{3}", "parTrans"),
		textPt("{4}", "sibTrans"),
		textPt("{5}", "doc"),
		textPt("{6}", "future"),
	)), nil)

	var ids []string
	for node := range sa.Nodes().All() {
		id, ok := node.ModelID()
		if !ok {
			t.Fatal("expected modelId to be set")
		}
		ids = append(ids, id)
	}
	if want := []string{"{1}", "{5}", "{6}"}; !reflect.DeepEqual(ids, want) {
		t.Errorf("expected %v, got %v", want, ids)
	}
	if n := sa.Nodes().Len(); n != len(ids) {
		t.Errorf("expected Len %d to equal iteration length %d", n, len(ids))
	}
	if got := sa.Nodes().At(2).Type(); got != NodeTypeOther {
		t.Errorf("expected unknown type to map to other, got %v", got)
	}
	if got := sa.Nodes().At(1).RawType(); got != "doc" {
		t.Errorf("expected raw type doc, got %q", got)
	}
	if sa.Nodes().At(3) != nil {
		t.Error("expected nil past the end")
	}
}

func TestParseNodeType(t *testing.T) {
	cases := map[string]NodeType{
		"":         NodeTypeNode,
		"node":     NodeTypeNode,
		"asst":     NodeTypeAsst,
		"doc":      NodeTypeDoc,
		"pres":     NodeTypePres,
		"parTrans": NodeTypeParTrans,
		"sibTrans": NodeTypeSibTrans,
		"whatever": NodeTypeOther,
	}
	for raw, want := range cases {
		if got := ParseNodeType(raw); got != want {
			t.Errorf("ParseNodeType(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNode_Text(t *testing.T) {
	sa := New(oxml.MustParse(dataModel(
		textPt("{1}", "", "Node ", "Text"),
		textPt("{2}", ""),
		`<dgm:pt modelId="{3}"><dgm:t/></dgm:pt>`,
	)), nil)
	nodes := sa.Nodes()

	if got := nodes.At(0).Text(); got != "Node Text" {
		t.Errorf("expected %q, got %q", "Node Text", got)
	}
	if got := nodes.At(1).Text(); got != "" {
		t.Errorf("expected empty text without container, got %q", got)
	}
	if got := nodes.At(2).Text(); got != "" {
		t.Errorf("expected empty text for empty container, got %q", got)
	}
}

func TestNode_SetTextCollapsesRuns(t *testing.T) {
	sa := New(oxml.MustParse(dataModel(textPt("{1}", "", "a", "b", "c"))), nil)
	node := sa.Nodes().At(0)

	node.SetText("X")

	runs, _ := oxml.PointTextRuns(node.pt)
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs to remain, got %d", len(runs))
	}
	if runs[0].Text() != "X" || runs[1].Text() != "" || runs[2].Text() != "" {
		t.Errorf("unexpected runs %q %q %q", runs[0].Text(), runs[1].Text(), runs[2].Text())
	}
	if got := node.Text(); got != "X" {
		t.Errorf("expected %q, got %q", "X", got)
	}
}

func TestNode_SetTextWithoutContainerIsNoop(t *testing.T) {
	drawing := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("old"))
	sa := New(oxml.MustParse(dataModel(textPt("{1}", ""))), fakeOwner{opc.RTDiagramDrawing: {drawing}})

	sa.Nodes().At(0).SetText("X")

	if sa.Nodes().At(0).HasText() {
		t.Error("expected no text container to be created")
	}
	if got := cellTexts(t, drawing); got[0] != "old" {
		t.Errorf("expected drawing untouched, got %v", got)
	}
}

func TestNode_SetTextWithoutRunsSkipsSync(t *testing.T) {
	drawing := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("old", "stale"))
	sa := New(oxml.MustParse(dataModel(
		`<dgm:pt modelId="{1}"><dgm:t><a:bodyPr/><a:p/></dgm:t></dgm:pt>`,
		textPt("{2}", "", "b"),
	)), fakeOwner{opc.RTDiagramDrawing: {drawing}})

	sa.Nodes().At(0).SetText("X")

	if got := sa.Nodes().At(0).Text(); got != "" {
		t.Errorf("expected empty container to stay empty, got %q", got)
	}
	if got := cellTexts(t, drawing); !reflect.DeepEqual(got, []string{"old", "stale"}) {
		t.Errorf("expected drawing untouched, got %v", got)
	}
}

func TestSetText_SyncsEveryDrawing(t *testing.T) {
	d1 := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("a", "b", "c"))
	d2 := drawingPart("/ppt/diagrams/drawing2.xml", drawingXML("a", "b", "c"))
	owner := fakeOwner{opc.RTDiagramDrawing: {d1, d2}}
	sa := New(oxml.MustParse(dataModel(
		textPt("{1}", "", "a"),
		textPt("{p1}", "pres", "ignored"),
		textPt("{2}", "", "b"),
		textPt("{3}", "", "c"),
	)), owner)

	sa.Nodes().At(1).SetText("B!")

	want := []string{"a", "B!", "c"}
	for _, d := range []*opc.Part{d1, d2} {
		if got := cellTexts(t, d); !reflect.DeepEqual(got, want) {
			t.Errorf("%s: expected %v, got %v", d.Name(), want, got)
		}
	}
}

func TestSync_ShortCacheIsFilledUpToItsCells(t *testing.T) {
	d := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("a", "b"))
	var reports []SyncReport
	sa := New(oxml.MustParse(dataModel(
		textPt("{1}", "", "a"),
		textPt("{2}", "", "b"),
		textPt("{3}", "", "c"),
	)), fakeOwner{opc.RTDiagramDrawing: {d}}, WithSyncObserver(func(r SyncReport) { reports = append(reports, r) }))

	sa.Nodes().At(0).SetText("A")

	if got := cellTexts(t, d); !reflect.DeepEqual(got, []string{"A", "b"}) {
		t.Errorf("expected [A b], got %v", got)
	}
	if len(reports) != 1 {
		t.Fatalf("expected 1 report, got %d", len(reports))
	}
	r := reports[0]
	if r.Nodes != 3 || r.Cells != 2 || r.Written != 2 || !r.Mismatch() || r.Err != nil {
		t.Errorf("unexpected report %+v", r)
	}
}

func TestSync_LongCacheKeepsExtraCells(t *testing.T) {
	d := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("a", "b", "extra"))
	sa := New(oxml.MustParse(dataModel(textPt("{1}", "", "a"), textPt("{2}", "", "b"))),
		fakeOwner{opc.RTDiagramDrawing: {d}})

	sa.Nodes().At(1).SetText("B")

	if got := cellTexts(t, d); !reflect.DeepEqual(got, []string{"a", "B", "extra"}) {
		t.Errorf("expected [a B extra], got %v", got)
	}
}

func TestSync_SkipsUnreadableDrawing(t *testing.T) {
	bad := drawingPart("/ppt/diagrams/broken.xml", "")
	good := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("a"))
	var reports []SyncReport
	sa := New(oxml.MustParse(dataModel(textPt("{1}", "", "a"))),
		fakeOwner{opc.RTDiagramDrawing: {bad, good}},
		WithSyncObserver(func(r SyncReport) { reports = append(reports, r) }))

	sa.Nodes().At(0).SetText("Z")

	if got := cellTexts(t, good); got[0] != "Z" {
		t.Errorf("expected good drawing to be synced, got %v", got)
	}
	if len(reports) != 2 || reports[0].Err == nil || reports[1].Err != nil {
		t.Errorf("unexpected reports %+v", reports)
	}
}

func TestSync_DetachedAndCachelessAreNoops(t *testing.T) {
	detached := New(oxml.MustParse(dataModel(textPt("{1}", "", "a"))), nil)
	detached.Nodes().At(0).SetText("X")
	if got := detached.Nodes().At(0).Text(); got != "X" {
		t.Errorf("expected data model write without owner, got %q", got)
	}

	called := false
	noCache := New(oxml.MustParse(dataModel(textPt("{1}", "", "a"))), fakeOwner{},
		WithSyncObserver(func(SyncReport) { called = true }))
	noCache.Nodes().At(0).SetText("X")
	if called {
		t.Error("expected no sync reports without drawing caches")
	}
}

func TestTextContentAndConnections(t *testing.T) {
	sa := New(oxml.MustParse(dataModel(
		textPt("{1}", "", "test1"),
		textPt("{2}", ""),
		textPt("{3}", "", "test2"),
	)), nil)

	if got := sa.TextContent(); !reflect.DeepEqual(got, []string{"test1", "test2"}) {
		t.Errorf("expected non-empty texts only, got %v", got)
	}
	if got := sa.Nodes().Texts(); !reflect.DeepEqual(got, []string{"test1", "", "test2"}) {
		t.Errorf("expected every node text, got %v", got)
	}

	cxns := sa.Connections()
	if len(cxns) != 2 {
		t.Fatalf("expected 2 connections, got %d", len(cxns))
	}
	if cxns[0] != (Connection{ModelID: "{c1}", SrcID: "{1}", DestID: "{2}"}) {
		t.Errorf("unexpected connection %+v", cxns[0])
	}
	if cxns[1].Type != "presOf" {
		t.Errorf("expected presOf, got %q", cxns[1].Type)
	}
}

func TestFromPart_RejectsOtherRoots(t *testing.T) {
	p := opc.NewPart("/ppt/diagrams/data1.xml", opc.CTDiagramData, []byte(drawingXML()))
	if _, err := FromPart(p, nil); err == nil {
		t.Error("expected error for non-dataModel root")
	}
}

func TestSync_SecondDiagramOnSlideOverwritesSharedCaches(t *testing.T) {
	first := drawingPart("/ppt/diagrams/drawing1.xml", drawingXML("a1", "a2"))
	second := drawingPart("/ppt/diagrams/drawing2.xml", drawingXML("b1", "b2"))
	slide := fakeOwner{opc.RTDiagramDrawing: {first, second}}

	a := New(oxml.MustParse(dataModel(textPt("{1}", "", "a1"), textPt("{2}", "", "a2"))), slide)
	b := New(oxml.MustParse(dataModel(textPt("{1}", "", "b1"), textPt("{2}", "", "b2"))), slide)

	a.Nodes().At(0).SetText("A")
	for _, d := range []*opc.Part{first, second} {
		if got := cellTexts(t, d); !reflect.DeepEqual(got, []string{"A", "a2"}) {
			t.Errorf("%s: expected first diagram's texts, got %v", d.Name(), got)
		}
	}

	b.Nodes().At(1).SetText("B")
	for _, d := range []*opc.Part{first, second} {
		if got := cellTexts(t, d); !reflect.DeepEqual(got, []string{"b1", "B"}) {
			t.Errorf("%s: expected second diagram's texts, got %v", d.Name(), got)
		}
	}
}

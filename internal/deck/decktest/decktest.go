// Package decktest builds a small presentation for tests: slide 1 holds a
// two-level category chart backed by an embedded workbook, slide 2 a
// three-node SmartArt process with its drawing cache.
package decktest

import (
	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/dgallion1/pptxdom/internal/opc/opctest"
	"github.com/xuri/excelize/v2"
)

const (
	ChartShape    = "Sales Chart"
	SmartArtShape = "Process"
)

const (
	nsP   = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	nsA   = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"`
	nsR   = `xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	nsC   = `xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"`
	nsDgm = `xmlns:dgm="http://schemas.openxmlformats.org/drawingml/2006/diagram"`
	nsDsp = `xmlns:dsp="http://schemas.microsoft.com/office/drawing/2008/diagram"`
)

const contentTypes = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Default Extension="rels" ContentType="` + opc.CTRelationships + `"/>` +
	`<Default Extension="xlsx" ContentType="` + opc.CTXlsx + `"/>` +
	`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` +
	`<Override PartName="/ppt/slides/slide1.xml" ContentType="` + opc.CTSlide + `"/>` +
	`<Override PartName="/ppt/slides/slide2.xml" ContentType="` + opc.CTSlide + `"/>` +
	`<Override PartName="/ppt/charts/chart1.xml" ContentType="` + opc.CTChart + `"/>` +
	`<Override PartName="/ppt/diagrams/data1.xml" ContentType="` + opc.CTDiagramData + `"/>` +
	`<Override PartName="/ppt/diagrams/drawing1.xml" ContentType="` + opc.CTDiagramDrawing + `"/>` +
	`</Types>`

const presentation = `<p:presentation ` + nsP + ` ` + nsR + `><p:sldIdLst>` +
	`<p:sldId id="256" r:id="rId2"/><p:sldId id="257" r:id="rId3"/>` +
	`</p:sldIdLst></p:presentation>`

func frame(id, name, graphicData string) string {
	return `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="` + id + `" name="` + name + `"/>` +
		`<p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr><p:xfrm/>` +
		`<a:graphic>` + graphicData + `</a:graphic></p:graphicFrame>`
}

func slide(frames string) string {
	return `<p:sld ` + nsP + ` ` + nsA + ` ` + nsR + ` ` + nsC + ` ` + nsDgm + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>` +
		frames + `</p:spTree></p:cSld></p:sld>`
}

var slide1 = slide(frame("4", ChartShape,
	`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart r:id="rId2"/></a:graphicData>`))

var slide2 = slide(frame("5", SmartArtShape,
	`<a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/diagram">`+
		`<dgm:relIds r:dm="rId2" r:lo="rId3" r:qs="rId4" r:cs="rId5"/></a:graphicData>`))

// Leaves Q1..Q4 grouped under 2023 (idx 0) and 2024 (idx 2).
const chart = `<c:chartSpace ` + nsC + ` ` + nsA + ` ` + nsR + `><c:chart><c:plotArea><c:layout/>` +
	`<c:barChart><c:barDir val="col"/>` +
	`<c:ser><c:idx val="0"/><c:order val="0"/>` +
	`<c:cat><c:multiLvlStrRef><c:f>Sheet1!$A$2:$B$5</c:f><c:multiLvlStrCache><c:ptCount val="4"/>` +
	`<c:lvl><c:pt idx="0"><c:v>Q1</c:v></c:pt><c:pt idx="1"><c:v>Q2</c:v></c:pt>` +
	`<c:pt idx="2"><c:v>Q3</c:v></c:pt><c:pt idx="3"><c:v>Q4</c:v></c:pt></c:lvl>` +
	`<c:lvl><c:pt idx="0"><c:v>2023</c:v></c:pt><c:pt idx="2"><c:v>2024</c:v></c:pt></c:lvl>` +
	`</c:multiLvlStrCache></c:multiLvlStrRef></c:cat>` +
	`<c:val><c:numRef><c:f>Sheet1!$C$2:$C$5</c:f><c:numCache><c:ptCount val="4"/>` +
	`<c:pt idx="0"><c:v>10</c:v></c:pt><c:pt idx="1"><c:v>12</c:v></c:pt>` +
	`<c:pt idx="2"><c:v>9</c:v></c:pt><c:pt idx="3"><c:v>15</c:v></c:pt></c:numCache></c:numRef></c:val>` +
	`</c:ser></c:barChart><c:catAx/><c:valAx/></c:plotArea></c:chart>` +
	`<c:externalData r:id="rId1"/></c:chartSpace>`

func pt(id, typ, text string) string {
	attrs := ` modelId="` + id + `"`
	if typ != "" {
		attrs += ` type="` + typ + `"`
	}
	if text == "" {
		return `<dgm:pt` + attrs + `/>`
	}
	return `<dgm:pt` + attrs + `><dgm:t><a:bodyPr/><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></dgm:t></dgm:pt>`
}

var dataModel = `<dgm:dataModel ` + nsDgm + ` ` + nsA + `><dgm:ptLst>` +
	pt("{1}", "", "Plan") + pt("{p1}", "pres", "") + pt("{t1}", "parTrans", "") +
	pt("{2}", "", "Build") + pt("{p2}", "pres", "") + pt("{t2}", "sibTrans", "") +
	pt("{3}", "", "Ship") + pt("{p3}", "pres", "") +
	`</dgm:ptLst><dgm:cxnLst>` +
	`<dgm:cxn modelId="{c1}" srcId="{1}" destId="{2}"/>` +
	`<dgm:cxn modelId="{c2}" srcId="{2}" destId="{3}"/>` +
	`</dgm:cxnLst></dgm:dataModel>`

func cell(text string) string {
	return `<dsp:sp><dsp:txBody><a:bodyPr/><a:p><a:r><a:t>` + text + `</a:t></a:r></a:p></dsp:txBody></dsp:sp>`
}

var drawing = `<dsp:drawing ` + nsDsp + ` ` + nsA + `><dsp:spTree>` +
	cell("Plan") + cell("Build") + cell("Ship") + `</dsp:spTree></dsp:drawing>`

// Workbook returns the chart's embedded workbook: years in column A, quarters
// in column B and values in column C, from row 2.
func Workbook() []byte {
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]string{
		{"", "", "Sales"},
		{"2023", "Q1", "10"},
		{"", "Q2", "12"},
		{"2024", "Q3", "9"},
		{"", "Q4", "15"},
	}
	for r, row := range rows {
		for c, v := range row {
			if v == "" {
				continue
			}
			name, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				panic(err)
			}
			if err := f.SetCellStr("Sheet1", name, v); err != nil {
				panic(err)
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Files returns the members of the sample presentation, keyed by zip name.
// Tests may alter them before zipping.
func Files() map[string]string {
	return map[string]string{
		"[Content_Types].xml":  contentTypes,
		"_rels/.rels":          opctest.Rels([3]string{"rId1", opc.RTOfficeDocument, "ppt/presentation.xml"}),
		"ppt/presentation.xml": presentation,
		"ppt/_rels/presentation.xml.rels": opctest.Rels(
			[3]string{"rId2", opc.RTSlide, "slides/slide1.xml"},
			[3]string{"rId3", opc.RTSlide, "slides/slide2.xml"},
		),
		"ppt/slides/slide1.xml": slide1,
		"ppt/slides/_rels/slide1.xml.rels": opctest.Rels(
			[3]string{"rId2", opc.RTChart, "../charts/chart1.xml"},
		),
		"ppt/charts/chart1.xml": chart,
		"ppt/charts/_rels/chart1.xml.rels": opctest.Rels(
			[3]string{"rId1", opc.RTPackage, "../embeddings/Microsoft_Excel_Worksheet.xlsx"},
		),
		"ppt/embeddings/Microsoft_Excel_Worksheet.xlsx": string(Workbook()),
		"ppt/slides/slide2.xml":                         slide2,
		"ppt/slides/_rels/slide2.xml.rels": opctest.Rels(
			[3]string{"rId2", opc.RTDiagramData, "../diagrams/data1.xml"},
			[3]string{"rId6", opc.RTDiagramDrawing, "../diagrams/drawing1.xml"},
		),
		"ppt/diagrams/data1.xml":    dataModel,
		"ppt/diagrams/drawing1.xml": drawing,
	}
}

// Pptx returns the sample presentation as .pptx bytes.
func Pptx() []byte {
	return opctest.Zip(Files())
}

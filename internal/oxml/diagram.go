package oxml

import (
	"strings"

	"github.com/beevik/etree"
)

// Points returns the dgm:pt elements of a dgm:dataModel in document order.
func Points(dataModel *etree.Element) []*etree.Element {
	return Children(Child(dataModel, NsDgm, "ptLst"), NsDgm, "pt")
}

// Connections returns the dgm:cxn elements of a dgm:dataModel in document order.
func Connections(dataModel *etree.Element) []*etree.Element {
	return Children(Child(dataModel, NsDgm, "cxnLst"), NsDgm, "cxn")
}

// PointTextRuns returns every a:t below the point's dgm:t container. The
// bool is false when the point has no text container.
func PointTextRuns(pt *etree.Element) ([]*etree.Element, bool) {
	t := Child(pt, NsDgm, "t")
	if t == nil {
		return nil, false
	}
	return Descendants(t, NsA, "t"), true
}

// PointText concatenates the point's text runs in document order.
func PointText(pt *etree.Element) string {
	runs, _ := PointTextRuns(pt)
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text())
	}
	return b.String()
}

// SetPointText writes value into the first text run of the point and empties
// the rest. Points without a text container or without runs are left
// untouched and false is returned.
func SetPointText(pt *etree.Element, value string) bool {
	runs, ok := PointTextRuns(pt)
	if !ok || len(runs) == 0 {
		return false
	}
	runs[0].SetText(value)
	for _, r := range runs[1:] {
		r.SetText("")
	}
	return true
}

// DrawingCells returns the a:t cells of a dsp:drawing in document order.
func DrawingCells(drawing *etree.Element) []*etree.Element {
	return Descendants(drawing, NsA, "t")
}

// UpdateDrawingCells overwrites cell i with texts[i] for every index present
// in both and returns the number of cells written.
func UpdateDrawingCells(drawing *etree.Element, texts []string) int {
	cells := DrawingCells(drawing)
	n := min(len(cells), len(texts))
	for i := range n {
		cells[i].SetText(texts[i])
	}
	return n
}

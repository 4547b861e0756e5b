package oxml

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Plots returns the chart-type elements (c:barChart, c:lineChart, ...) of a
// c:chartSpace root, in document order.
func Plots(chartSpace *etree.Element) []*etree.Element {
	plotArea := Path(chartSpace, NsC, "chart", "plotArea")
	if plotArea == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range plotArea.ChildElements() {
		if strings.HasSuffix(c.Tag, "Chart") && c.NamespaceURI() == NsC {
			out = append(out, c)
		}
	}
	return out
}

// Series returns the c:ser children of a chart-type element.
func Series(xChart *etree.Element) []*etree.Element {
	return Children(xChart, NsC, "ser")
}

// Cat wraps a c:cat element, the category data source of one series.
type Cat struct {
	El *etree.Element
}

// FirstCat returns the c:cat of the first series of xChart, or nil when the
// plot has no series or the first series has no categories.
func FirstCat(xChart *etree.Element) *Cat {
	sers := Series(xChart)
	if len(sers) == 0 {
		return nil
	}
	return CatOf(sers[0])
}

// CatOf returns the c:cat of a c:ser element, or nil.
func CatOf(ser *etree.Element) *Cat {
	el := Child(ser, NsC, "cat")
	if el == nil {
		return nil
	}
	return &Cat{El: el}
}

// MultiLvlStrRef returns the c:multiLvlStrRef child, or nil.
func (c *Cat) MultiLvlStrRef() *etree.Element {
	return Child(c.El, NsC, "multiLvlStrRef")
}

// Lvls returns the c:lvl elements of a multi-level reference, leaf first.
func (c *Cat) Lvls() []*etree.Element {
	cache := Path(c.El, NsC, "multiLvlStrRef", "multiLvlStrCache")
	return Children(cache, NsC, "lvl")
}

// Formula returns the workbook reference (c:f) of the category source.
func (c *Cat) Formula() string {
	for _, ref := range []string{"multiLvlStrRef", "strRef", "numRef"} {
		if f := Path(c.El, NsC, ref, "f"); f != nil {
			return strings.TrimSpace(f.Text())
		}
	}
	return ""
}

// PtCount returns the declared leaf count, the first c:ptCount/@val below
// c:cat. Zero when absent or malformed.
func (c *Cat) PtCount() int {
	el := FirstDescendant(c.El, NsC, "ptCount")
	if el == nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(Attr(el, "val")))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// LeafPts returns the c:pt elements of the leaf level. For a multi-level
// source that is the first c:lvl; otherwise every c:pt below c:cat.
func (c *Cat) LeafPts() []*etree.Element {
	if lvls := c.Lvls(); len(lvls) > 0 {
		if pts := Children(lvls[0], NsC, "pt"); len(pts) > 0 {
			return pts
		}
	}
	return Descendants(c.El, NsC, "pt")
}

// LeafCache returns the element that directly holds the leaf c:pt entries:
// the first c:lvl, c:strCache or c:numCache. Nil when the source carries no
// cache at all.
func (c *Cat) LeafCache() *etree.Element {
	if lvls := c.Lvls(); len(lvls) > 0 {
		return lvls[0]
	}
	if el := Path(c.El, NsC, "strRef", "strCache"); el != nil {
		return el
	}
	if el := Path(c.El, NsC, "numRef", "numCache"); el != nil {
		return el
	}
	if el := Child(c.El, NsC, "strLit"); el != nil {
		return el
	}
	return Child(c.El, NsC, "numLit")
}

// UpdateStrCache rewrites the leaf cache so it holds labels in position
// order. Positions with an empty label get no c:pt, matching how the format
// stores empty cells. Reports false when there is no cache to rewrite.
func (c *Cat) UpdateStrCache(labels []string) bool {
	cache := c.LeafCache()
	if cache == nil {
		return false
	}
	for _, pt := range Children(cache, NsC, "pt") {
		cache.RemoveChild(pt)
	}
	if cnt := Child(cache, NsC, "ptCount"); cnt != nil {
		cnt.CreateAttr("val", strconv.Itoa(len(labels)))
	}

	at := len(cache.Child)
	if ext := Child(cache, NsC, "extLst"); ext != nil {
		at = ext.Index()
	}
	for i, label := range labels {
		if label == "" {
			continue
		}
		pt := NewChild(cache, "pt", at)
		pt.CreateAttr("idx", strconv.Itoa(i))
		v := NewChild(pt, "v", -1)
		v.SetText(label)
		at = pt.Index() + 1
	}
	return true
}

// PtIdx returns the idx attribute of a c:pt, or -1 when it is missing or
// not a non-negative integer.
func PtIdx(pt *etree.Element) int {
	n, err := strconv.Atoi(strings.TrimSpace(Attr(pt, "idx")))
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// PtValue returns the text of the c:v child of a c:pt.
func PtValue(pt *etree.Element) string {
	v := Child(pt, NsC, "v")
	if v == nil {
		return ""
	}
	return v.Text()
}

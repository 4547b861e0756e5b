package chart

import (
	"fmt"
	"iter"
	"slices"

	"github.com/beevik/etree"
	"github.com/dgallion1/pptxdom/internal/oxml"
)

// Category is one category label and its idx. For a leaf, Idx identifies
// the category; for an ancestor it is the idx of the first leaf it encloses.
// A placeholder for a position with no stored c:pt has an empty Label.
type Category struct {
	Label string
	Idx   int
}

func (c Category) String() string { return c.Label }

func categoryOf(pt *etree.Element) Category {
	return Category{Label: oxml.PtValue(pt), Idx: oxml.PtIdx(pt)}
}

// CategoryLevel is one level of a hierarchical category collection. It is a
// view over a c:lvl element and reflects the element's current content.
type CategoryLevel struct {
	lvl *etree.Element
}

// Len returns the number of c:pt entries in the level.
func (l CategoryLevel) Len() int {
	return len(oxml.Children(l.lvl, oxml.NsC, "pt"))
}

// At returns the i-th entry of the level.
func (l CategoryLevel) At(i int) Category {
	return categoryOf(oxml.Children(l.lvl, oxml.NsC, "pt")[i])
}

// Categories returns the level's entries in document order.
func (l CategoryLevel) Categories() []Category {
	pts := oxml.Children(l.lvl, oxml.NsC, "pt")
	out := make([]Category, len(pts))
	for i, pt := range pts {
		out[i] = categoryOf(pt)
	}
	return out
}

// Categories is the category collection of a plot: the labels of the plot's
// first series. Nothing is cached; every call reads the element tree.
type Categories struct {
	xChart *etree.Element
	source WorkbookSource
}

// NewCategories returns the categories of a chart-type element such as
// c:barChart. source may be nil, in which case UpdateAll reports
// ErrNotAvailable.
func NewCategories(xChart *etree.Element, source WorkbookSource) *Categories {
	return &Categories{xChart: xChart, source: source}
}

func (c *Categories) cat() *oxml.Cat {
	return oxml.FirstCat(c.xChart)
}

// Len returns the declared category count. Positions without a stored c:pt
// are still counted.
func (c *Categories) Len() int {
	cat := c.cat()
	if cat == nil {
		return 0
	}
	return cat.PtCount()
}

// leaves returns the leaf categories by position, placeholders included.
func (c *Categories) leaves() []Category {
	cat := c.cat()
	if cat == nil {
		return nil
	}
	n := cat.PtCount()
	out := make([]Category, n)
	for i := range out {
		out[i] = Category{Idx: i}
	}
	for _, pt := range cat.LeafPts() {
		if idx := oxml.PtIdx(pt); idx >= 0 && idx < n {
			out[idx] = Category{Label: oxml.PtValue(pt), Idx: idx}
		}
	}
	return out
}

// At returns the category at position i, a placeholder when no c:pt is
// stored for it. It panics when i is out of range.
func (c *Categories) At(i int) Category {
	leaves := c.leaves()
	if i < 0 || i >= len(leaves) {
		panic(fmt.Sprintf("chart: category index %d out of range [0,%d)", i, len(leaves)))
	}
	return leaves[i]
}

// All yields every declared leaf position. The sequence may be ranged over
// repeatedly and reads the current element state each time.
func (c *Categories) All() iter.Seq2[int, Category] {
	return func(yield func(int, Category) bool) {
		for i, cat := range c.leaves() {
			if !yield(i, cat) {
				return
			}
		}
	}
}

// Labels returns the leaf labels in position order.
func (c *Categories) Labels() []string {
	leaves := c.leaves()
	out := make([]string, len(leaves))
	for i, cat := range leaves {
		out[i] = cat.Label
	}
	return out
}

// Depth returns the number of hierarchy levels: 0 when there are no
// categories, 1 when they are not hierarchical, otherwise the level count.
func (c *Categories) Depth() int {
	cat := c.cat()
	if cat == nil {
		return 0
	}
	if cat.MultiLvlStrRef() == nil {
		return 1
	}
	return len(cat.Lvls())
}

// Levels returns the hierarchy levels, leaf level first and root last. It
// is empty unless the categories are multi-level.
func (c *Categories) Levels() []CategoryLevel {
	cat := c.cat()
	if cat == nil {
		return nil
	}
	lvls := cat.Lvls()
	out := make([]CategoryLevel, len(lvls))
	for i, lvl := range lvls {
		out[i] = CategoryLevel{lvl: lvl}
	}
	return out
}

// Flattened returns, for each leaf of the leaf level, the leaf followed by
// its ancestors in child -> parent order. Chains are shorter than Depth when
// an intermediate level is present but empty.
func (c *Categories) Flattened() [][]Category {
	levels := c.Levels()
	if len(levels) == 0 {
		return nil
	}
	ancestors := make([][]Category, len(levels)-1)
	for i, lvl := range levels[1:] {
		ancestors[i] = lvl.Categories()
	}

	var out [][]Category
	for _, leaf := range levels[0].Categories() {
		out = append(out, parentage([]Category{leaf}, ancestors))
	}
	return out
}

// parentage extends chain with the parent of its first (leaf) entry from each
// remaining level. The parent is the entry with the largest idx not
// exceeding the leaf's idx; when every entry's idx exceeds it, the level's
// first entry is used.
func parentage(chain []Category, levels [][]Category) []Category {
	if len(levels) == 0 {
		return chain
	}
	parentLevel := levels[0]
	if len(parentLevel) == 0 {
		return chain
	}

	leaf := chain[0]
	parent := parentLevel[0]
	for _, cat := range parentLevel {
		if cat.Idx > leaf.Idx {
			break
		}
		parent = cat
	}
	return parentage(append(chain, parent), levels[1:])
}

// FlattenedLabels returns one label path per leaf in root -> leaf order,
// e.g. ["USA", "CA", "San Francisco"]. Non-hierarchical categories yield a
// single-label path per declared position. Returns nil when there are no
// categories.
func (c *Categories) FlattenedLabels() [][]string {
	cat := c.cat()
	if cat == nil {
		return nil
	}
	if cat.MultiLvlStrRef() == nil {
		var out [][]string
		for _, leaf := range c.leaves() {
			out = append(out, []string{leaf.Label})
		}
		return out
	}

	var out [][]string
	for _, chain := range c.Flattened() {
		labels := make([]string, len(chain))
		for i, cat := range chain {
			labels[i] = cat.Label
		}
		slices.Reverse(labels)
		out = append(out, labels)
	}
	return out
}

// UpdateAll replaces every leaf label, in position order, in both the
// embedded workbook and the chart's cached strings. labels must have Len()
// entries. Nothing is written when validation fails, and the cached strings
// are only rewritten after the workbook accepted the new labels.
func (c *Categories) UpdateAll(labels []string) error {
	if n := c.Len(); len(labels) != n {
		return fmt.Errorf("%w: got %d labels, categories have %d", ErrLengthMismatch, len(labels), n)
	}
	if c.source == nil {
		return fmt.Errorf("%w: chart part", ErrNotAvailable)
	}
	wb, err := c.source.Workbook()
	if err != nil {
		return err
	}

	cat := c.cat()
	var formula string
	if cat != nil {
		formula = cat.Formula()
	}
	if err := wb.UpdateCategories(formula, c.Depth(), labels); err != nil {
		return fmt.Errorf("update workbook categories: %w", err)
	}

	for _, ser := range oxml.Series(c.xChart) {
		if sc := oxml.CatOf(ser); sc != nil {
			sc.UpdateStrCache(labels)
		}
	}
	return nil
}

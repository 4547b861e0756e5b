// Package chart exposes the category hierarchy of chart parts and keeps the
// chart's cached labels consistent with its embedded workbook.
package chart

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
	"github.com/dgallion1/pptxdom/internal/opc"
	"github.com/dgallion1/pptxdom/internal/oxml"
	"github.com/dgallion1/pptxdom/internal/workbook"
)

var (
	// ErrLengthMismatch is returned when a relabel does not supply exactly one
	// label per category.
	ErrLengthMismatch = errors.New("category count mismatch")
	// ErrNotAvailable is returned when the chart part or its embedded
	// workbook cannot be reached.
	ErrNotAvailable = errors.New("not available")
)

// Workbook is the spreadsheet that owns a chart's source data.
type Workbook interface {
	// UpdateCategories writes labels to the leaf category cells referenced by
	// formula; depth is the category depth, used when formula is unusable.
	UpdateCategories(formula string, depth int, labels []string) error
}

// WorkbookSource resolves the workbook behind a chart.
type WorkbookSource interface {
	Workbook() (Workbook, error)
}

// Part is a chart part (c:chartSpace).
type Part struct {
	part  *opc.Part
	space *etree.Element
}

// NewPart wraps a package part holding a c:chartSpace.
func NewPart(p *opc.Part) (*Part, error) {
	root, err := p.Element()
	if err != nil {
		return nil, err
	}
	if !oxml.Is(root, oxml.NsC, "chartSpace") {
		return nil, fmt.Errorf("%s: root is %s, not c:chartSpace", p.Name(), root.FullTag())
	}
	return &Part{part: p, space: root}, nil
}

// Name returns the part name.
func (c *Part) Name() string { return c.part.Name() }

// Plots returns the chart's plots in document order.
func (c *Part) Plots() []*Plot {
	var out []*Plot
	for _, el := range oxml.Plots(c.space) {
		out = append(out, &Plot{el: el, chart: c})
	}
	return out
}

// Categories returns the categories of the first plot, or nil when the chart
// has no plot.
func (c *Part) Categories() *Categories {
	plots := c.Plots()
	if len(plots) == 0 {
		return nil
	}
	return plots[0].Categories()
}

// Workbook returns the embedded workbook related to the chart part.
func (c *Part) Workbook() (Workbook, error) {
	parts := c.part.RelatedParts(opc.RTPackage)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: no embedded workbook for %s", ErrNotAvailable, c.part.Name())
	}
	return workbook.New(parts[0]), nil
}

// Plot is one chart-type element of the plot area, e.g. c:barChart.
type Plot struct {
	el    *etree.Element
	chart *Part
}

// Kind returns the element's local name, e.g. "barChart".
func (p *Plot) Kind() string { return p.el.Tag }

// Categories returns the plot's category collection.
func (p *Plot) Categories() *Categories {
	return NewCategories(p.el, p.chart)
}

// SeriesCount returns the number of c:ser elements in the plot.
func (p *Plot) SeriesCount() int { return len(oxml.Series(p.el)) }

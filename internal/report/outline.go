// Package report summarizes the charts and SmartArt diagrams of a deck as a
// JSON outline, Markdown or HTML.
package report

import (
	"slices"
	"strings"

	"github.com/dgallion1/pptxdom/internal/chart"
	"github.com/dgallion1/pptxdom/internal/deck"
	"github.com/dgallion1/pptxdom/internal/smartart"
)

// Outline is the root of a deck summary.
type Outline struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
}

// Slide lists the editable graphics of one slide. Slides without any are
// omitted from the outline.
type Slide struct {
	Number    int        `json:"number"`
	Charts    []Chart    `json:"charts,omitempty"`
	SmartArts []SmartArt `json:"smartarts,omitempty"`
}

type Chart struct {
	Shape string `json:"shape"`
	Part  string `json:"part"`
	Plots []Plot `json:"plots"`
}

type Plot struct {
	Kind       string          `json:"kind"`
	Series     int             `json:"series"`
	Depth      int             `json:"depth"`
	Count      int             `json:"count"`
	Categories []*CategoryNode `json:"categories"`
}

// CategoryNode is a category label with the labels grouped below it. Leaves
// have no children.
type CategoryNode struct {
	Label    string          `json:"label"`
	Children []*CategoryNode `json:"children,omitempty"`
}

type SmartArt struct {
	Shape       string `json:"shape"`
	Nodes       []Node `json:"nodes"`
	Connections int    `json:"connections"`
	Drawings    int    `json:"drawings"`
}

type Node struct {
	ModelID string `json:"model_id,omitempty"`
	Type    string `json:"type"`
	Text    string `json:"text"`
}

// Build walks the deck and returns its outline. title is usually the upload
// filename; a .pptx suffix is dropped.
func Build(d *deck.Deck, title string) (*Outline, error) {
	out := &Outline{Title: strings.TrimSuffix(title, ".pptx")}

	charts, err := d.Charts()
	if err != nil {
		return nil, err
	}
	diagrams, err := d.SmartArts()
	if err != nil {
		return nil, err
	}

	bySlide := map[int]*Slide{}
	var order []int
	slideFor := func(n int) *Slide {
		s, ok := bySlide[n]
		if !ok {
			s = &Slide{Number: n}
			bySlide[n] = s
			order = append(order, n)
		}
		return s
	}

	for _, c := range charts {
		s := slideFor(c.Slide)
		s.Charts = append(s.Charts, chartOutline(c))
	}
	for _, sa := range diagrams {
		s := slideFor(sa.Slide)
		s.SmartArts = append(s.SmartArts, smartArtOutline(sa))
	}

	slices.Sort(order)
	for _, n := range order {
		out.Slides = append(out.Slides, *bySlide[n])
	}
	return out, nil
}

func chartOutline(c deck.ChartShape) Chart {
	out := Chart{Shape: c.Name, Part: c.Chart.Name()}
	for _, p := range c.Chart.Plots() {
		cats := p.Categories()
		out.Plots = append(out.Plots, Plot{
			Kind:       p.Kind(),
			Series:     p.SeriesCount(),
			Depth:      cats.Depth(),
			Count:      cats.Len(),
			Categories: categoryTree(cats),
		})
	}
	return out
}

// categoryTree groups the root -> leaf label paths of cats. Consecutive
// paths sharing an ancestor label hang below the same node.
func categoryTree(cats *chart.Categories) []*CategoryNode {
	root := &CategoryNode{}
	for _, path := range cats.FlattenedLabels() {
		parent := root
		for i, label := range path {
			leaf := i == len(path)-1
			if n := len(parent.Children); !leaf && n > 0 && parent.Children[n-1].Label == label {
				parent = parent.Children[n-1]
				continue
			}
			node := &CategoryNode{Label: label}
			parent.Children = append(parent.Children, node)
			parent = node
		}
	}
	return root.Children
}

func smartArtOutline(s deck.SmartArtShape) SmartArt {
	out := SmartArt{
		Shape:       s.Name,
		Connections: len(s.SmartArt.Connections()),
		Drawings:    len(s.SmartArt.Drawings()),
	}
	for node := range s.SmartArt.Nodes().All() {
		out.Nodes = append(out.Nodes, nodeOutline(node))
	}
	return out
}

func nodeOutline(n *smartart.Node) Node {
	id, _ := n.ModelID()
	return Node{ModelID: id, Type: n.Type().String(), Text: n.Text()}
}

package deck

import (
	"errors"
	"fmt"
)

// Op names an edit operation.
type Op string

const (
	OpSetNodeText       Op = "set_node_text"
	OpRelabelCategories Op = "relabel_categories"
)

var (
	ErrUnknownOp      = errors.New("unknown edit operation")
	ErrNodeOutOfRange = errors.New("node index out of range")
	ErrPlotOutOfRange = errors.New("plot index out of range")
)

// Edit is one change to apply to a deck. Slide is 1-based; Shape is the
// graphic frame name, empty for the first of its kind on the slide.
type Edit struct {
	Op     Op       `json:"op"`
	Slide  int      `json:"slide"`
	Shape  string   `json:"shape,omitempty"`
	Node   int      `json:"node,omitempty"`
	Text   string   `json:"text,omitempty"`
	Plot   int      `json:"plot,omitempty"`
	Labels []string `json:"labels,omitempty"`
}

// Apply performs e against the deck.
func (d *Deck) Apply(e Edit) error {
	switch e.Op {
	case OpSetNodeText:
		sa, err := d.SmartArt(e.Slide, e.Shape)
		if err != nil {
			return err
		}
		node := sa.Nodes().At(e.Node)
		if node == nil {
			return fmt.Errorf("%w: %d of %d", ErrNodeOutOfRange, e.Node, sa.Nodes().Len())
		}
		node.SetText(e.Text)
		return nil

	case OpRelabelCategories:
		c, err := d.Chart(e.Slide, e.Shape)
		if err != nil {
			return err
		}
		plots := c.Plots()
		if e.Plot < 0 || e.Plot >= len(plots) {
			return fmt.Errorf("%w: %d of %d", ErrPlotOutOfRange, e.Plot, len(plots))
		}
		return plots[e.Plot].Categories().UpdateAll(e.Labels)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownOp, e.Op)
	}
}

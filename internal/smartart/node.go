package smartart

import (
	"iter"

	"github.com/beevik/etree"
	"github.com/dgallion1/pptxdom/internal/oxml"
)

// NodeType is the dgm:pt/@type of a point.
type NodeType int

const (
	// NodeTypeNode is a plain content node; also used when type is unset.
	NodeTypeNode NodeType = iota
	NodeTypeAsst
	NodeTypeDoc
	// NodeTypePres is layout metadata binding a node to its presentation.
	NodeTypePres
	NodeTypeParTrans
	NodeTypeSibTrans
	// NodeTypeOther is any value this package does not know.
	NodeTypeOther
)

// ParseNodeType maps a raw type attribute to a NodeType.
func ParseNodeType(s string) NodeType {
	switch s {
	case "", "node":
		return NodeTypeNode
	case "asst":
		return NodeTypeAsst
	case "doc":
		return NodeTypeDoc
	case "pres":
		return NodeTypePres
	case "parTrans":
		return NodeTypeParTrans
	case "sibTrans":
		return NodeTypeSibTrans
	default:
		return NodeTypeOther
	}
}

// IsMetadata reports whether points of this type are layout metadata rather
// than content, and so are excluded from Nodes.
func (t NodeType) IsMetadata() bool {
	switch t {
	case NodeTypePres, NodeTypeParTrans, NodeTypeSibTrans:
		return true
	case NodeTypeNode, NodeTypeAsst, NodeTypeDoc, NodeTypeOther:
		return false
	}
	return false
}

func (t NodeType) String() string {
	switch t {
	case NodeTypeNode:
		return "node"
	case NodeTypeAsst:
		return "asst"
	case NodeTypeDoc:
		return "doc"
	case NodeTypePres:
		return "pres"
	case NodeTypeParTrans:
		return "parTrans"
	case NodeTypeSibTrans:
		return "sibTrans"
	}
	return "other"
}

// Nodes is the content nodes of a diagram, in document order. Presentation
// and transition points are skipped.
type Nodes struct {
	sa *SmartArt
}

// All yields each content node in document order.
func (n *Nodes) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, pt := range oxml.Points(n.sa.data) {
			if ParseNodeType(oxml.Attr(pt, "type")).IsMetadata() {
				continue
			}
			if !yield(&Node{pt: pt, sa: n.sa}) {
				return
			}
		}
	}
}

// Len returns the number of content nodes.
func (n *Nodes) Len() int {
	count := 0
	for range n.All() {
		count++
	}
	return count
}

// At returns the i-th content node, or nil when i is out of range.
func (n *Nodes) At(i int) *Node {
	if i < 0 {
		return nil
	}
	for node := range n.All() {
		if i == 0 {
			return node
		}
		i--
	}
	return nil
}

// Texts returns every content node's text in document order, empty ones
// included.
func (n *Nodes) Texts() []string {
	var out []string
	for node := range n.All() {
		out = append(out, node.Text())
	}
	return out
}

// Node is a single content point of a diagram.
type Node struct {
	pt *etree.Element
	sa *SmartArt
}

// ModelID returns the node's modelId and whether it is set.
func (n *Node) ModelID() (string, bool) {
	return oxml.AttrNS(n.pt, "", "modelId")
}

// Type returns the node's type.
func (n *Node) Type() NodeType {
	return ParseNodeType(oxml.Attr(n.pt, "type"))
}

// RawType returns the type attribute as stored, "" when unset.
func (n *Node) RawType() string {
	return oxml.Attr(n.pt, "type")
}

// HasText reports whether the node carries a text container.
func (n *Node) HasText() bool {
	_, ok := oxml.PointTextRuns(n.pt)
	return ok
}

// Text returns the concatenation of the node's text runs.
func (n *Node) Text() string {
	return oxml.PointText(n.pt)
}

// SetText replaces the node's text. The value goes into the first run and
// later runs are emptied, so formatting collapses to the first run. Nodes
// without a text container (or without runs) are left as they are. After a
// write the diagram's drawing caches are resynchronized.
func (n *Node) SetText(value string) {
	if !oxml.SetPointText(n.pt, value) {
		return
	}
	if n.sa != nil {
		n.sa.Sync()
	}
}

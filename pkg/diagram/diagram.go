package diagram

import (
	"fmt"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// Defaults applied when a caller does not override them.
const (
	DefaultWidth  = 120.0
	DefaultHeight = 60.0

	// DefaultNodeStyle renders as a rounded rectangle.
	DefaultNodeStyle = "rounded=1;whiteSpace=wrap;html=1;"
	// DefaultEdgeStyle renders as a straight line with a classic arrowhead.
	DefaultEdgeStyle = "endArrow=classic;html=1;rounded=0;"
)

// Kind distinguishes the two cell variants.
type Kind string

const (
	KindNode Kind = "node"
	KindEdge Kind = "edge"
)

// Cell is the atomic diagram element. It is implemented by *Node and *Edge
// only; use a type switch to reach variant fields.
type Cell interface {
	CellID() string
	CellKind() Kind
	CellLabel() string
	CellStyle() string
	isCell()
}

// Node is a positioned, sized shape with a label.
// X and Y are the top-left corner and may be negative.
type Node struct {
	ID     string
	Label  string
	Style  string
	X, Y   float64
	Width  float64
	Height float64
}

func (n *Node) CellID() string    { return n.ID }
func (n *Node) CellKind() Kind    { return KindNode }
func (n *Node) CellLabel() string { return n.Label }
func (n *Node) CellStyle() string { return n.Style }
func (*Node) isCell()             {}

// Edge is a directed connector between two node ids.
// An empty Label means the edge has no label.
type Edge struct {
	ID     string
	Source string
	Target string
	Label  string
	Style  string
}

func (e *Edge) CellID() string    { return e.ID }
func (e *Edge) CellKind() Kind    { return KindEdge }
func (e *Edge) CellLabel() string { return e.Label }
func (e *Edge) CellStyle() string { return e.Style }
func (*Edge) isCell()             {}

// Diagram is an ordered collection of cells with a title.
//
// The zero value is an untitled empty diagram and is ready to use.
type Diagram struct {
	Title    string
	Cells    []Cell
	Modified bool
}

// New returns an empty, unmodified diagram.
func New(title string) *Diagram {
	return &Diagram{Title: title, Cells: []Cell{}}
}

// NodeOption configures a node created by [Diagram.AddNode].
type NodeOption func(*Node)

// WithSize overrides the default 120x60 node size.
func WithSize(width, height float64) NodeOption {
	return func(n *Node) { n.Width, n.Height = width, height }
}

// WithNodeStyle sets the node's style string. An empty string keeps the default.
func WithNodeStyle(style string) NodeOption {
	return func(n *Node) {
		if style != "" {
			n.Style = style
		}
	}
}

// EdgeOption configures an edge created by [Diagram.AddEdge].
type EdgeOption func(*Edge)

// WithLabel labels the edge.
func WithLabel(label string) EdgeOption {
	return func(e *Edge) { e.Label = label }
}

// WithEdgeStyle sets the edge's style string. An empty string keeps the default.
func WithEdgeStyle(style string) EdgeOption {
	return func(e *Edge) {
		if style != "" {
			e.Style = style
		}
	}
}

// AddNode appends a node and marks the diagram modified.
// Numeric ranges are not validated.
func (d *Diagram) AddNode(label string, x, y float64, opts ...NodeOption) *Node {
	n := &Node{
		ID:     d.nextID(KindNode),
		Label:  label,
		Style:  DefaultNodeStyle,
		X:      x,
		Y:      y,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
	for _, opt := range opts {
		opt(n)
	}
	d.Cells = append(d.Cells, n)
	d.Modified = true
	return n
}

// AddEdge appends an edge from source to target and marks the diagram
// modified. The endpoints are not required to exist.
func (d *Diagram) AddEdge(source, target string, opts ...EdgeOption) *Edge {
	e := &Edge{
		ID:     d.nextID(KindEdge),
		Source: source,
		Target: target,
		Style:  DefaultEdgeStyle,
	}
	for _, opt := range opts {
		opt(e)
	}
	d.Cells = append(d.Cells, e)
	d.Modified = true
	return e
}

// nextID derives the id of the cell about to be appended from the shared
// insertion counter.
func (d *Diagram) nextID(k Kind) string {
	return fmt.Sprintf("%s_%d", k, len(d.Cells)+1)
}

// Len returns the number of cells.
func (d *Diagram) Len() int { return len(d.Cells) }

// Nodes returns the node cells in insertion order.
func (d *Diagram) Nodes() []*Node {
	var out []*Node
	for _, c := range d.Cells {
		if n, ok := c.(*Node); ok {
			out = append(out, n)
		}
	}
	return out
}

// Edges returns the edge cells in insertion order.
func (d *Diagram) Edges() []*Edge {
	var out []*Edge
	for _, c := range d.Cells {
		if e, ok := c.(*Edge); ok {
			out = append(out, e)
		}
	}
	return out
}

// NodeIndex maps node ids to nodes. Renderers build it once so endpoint
// resolution stays linear in the number of cells.
func (d *Diagram) NodeIndex() map[string]*Node {
	idx := make(map[string]*Node, len(d.Cells))
	for _, c := range d.Cells {
		if n, ok := c.(*Node); ok {
			idx[n.ID] = n
		}
	}
	return idx
}

// Cell returns the cell with the given id.
func (d *Diagram) Cell(id string) (Cell, bool) {
	for _, c := range d.Cells {
		if c.CellID() == id {
			return c, true
		}
	}
	return nil, false
}

// Validate reports every edge endpoint that does not name a node in the
// diagram. The returned error is an *errors.DanglingReferenceError; nil means
// every edge resolves.
func (d *Diagram) Validate() error {
	idx := d.NodeIndex()
	var refs []errors.Reference
	for _, e := range d.Edges() {
		if _, ok := idx[e.Source]; !ok {
			refs = append(refs, errors.Reference{EdgeID: e.ID, End: "source", NodeID: e.Source})
		}
		if _, ok := idx[e.Target]; !ok {
			refs = append(refs, errors.Reference{EdgeID: e.ID, End: "target", NodeID: e.Target})
		}
	}
	if len(refs) > 0 {
		return &errors.DanglingReferenceError{Refs: refs}
	}
	return nil
}

// Package diagram provides the in-memory model of a Draw.io diagram.
//
// # Overview
//
// A [Diagram] is an ordered sequence of cells. Each cell is either a [Node]
// (a positioned, sized, labelled shape) or an [Edge] (a directed connector
// between two node ids). Cell order is significant: it drives id numbering
// and, for the XML serializer, document order.
//
// # Basic Usage
//
// Create a diagram with [New], then append cells with [Diagram.AddNode] and
// [Diagram.AddEdge]:
//
//	d := diagram.New("Checkout flow")
//	start := d.AddNode("Start", 200, 40, diagram.WithSize(120, 40))
//	pay := d.AddNode("Pay", 200, 120)
//	d.AddEdge(start.ID, pay.ID, diagram.WithLabel("next"))
//
// # Identity
//
// Ids are assigned at insertion time as "node_<n>" or "edge_<n>", where n is
// the 1-based position of the new cell. Nodes and edges share one counter, so
// the second cell is always "..._2" regardless of its kind. Ids are never
// reused or rewritten; there is no removal operation.
//
// # Ownership
//
// A Diagram is owned by the caller that created it. AddNode and AddEdge mutate
// the diagram in place and return the appended cell. Serializers and renderers
// only read the diagram. A Diagram is not safe for concurrent mutation, but
// any number of goroutines may read a diagram nobody is mutating.
//
// # References
//
// Edge endpoints are not checked on insertion. A dangling reference is a
// valid model state; renderers skip such edges and [Diagram.Validate] reports
// them for callers that want to reject the diagram.
package diagram

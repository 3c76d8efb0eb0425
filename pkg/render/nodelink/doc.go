// Package nodelink exports diagrams to Graphviz.
//
// # Overview
//
// [ToDOT] writes a diagram as DOT source: one node statement per node with
// its shape, size and colours, one edge statement per resolvable edge. The
// result can be saved (drawio render --format dot) or laid out in process
// with [RenderSVG], which uses [github.com/goccy/go-graphviz].
//
// # Usage
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineDot)
//
// With Positioned set, nodes are pinned to their diagram coordinates and
// [Render] picks the neato engine so the authored layout survives:
//
//	svg, err := nodelink.Render(ctx, d, nodelink.Options{Positioned: true})
//
// # Shapes
//
// Rectangles become rounded boxes (plain boxes for rounded=0), ellipses
// ellipses, rhombus nodes diamonds and cylinder nodes Graphviz cylinders.
// Orthogonal edges switch the whole graph to splines=ortho, since Graphviz
// does not route individual edges differently.
package nodelink

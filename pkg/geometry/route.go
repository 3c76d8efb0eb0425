package geometry

import "github.com/timeless-residents/handson-drawio-api/pkg/diagram"

// LabelRaise is how far an edge label sits above its anchor line.
const LabelRaise = 10.0

// Point is a 2D coordinate.
type Point struct {
	X, Y float64
}

// BottomCenter is where edges leave a node.
func BottomCenter(n *diagram.Node) Point {
	return Point{X: n.X + n.Width/2, Y: n.Y + n.Height}
}

// TopCenter is where edges enter a node.
func TopCenter(n *diagram.Node) Point {
	return Point{X: n.X + n.Width/2, Y: n.Y}
}

// Route returns the polyline from src to dst. A straight route has two
// points. An orthogonal route has four: down from src to the vertical
// midpoint, across to dst's x, then down into dst.
func Route(src, dst Point, orthogonal bool) []Point {
	if !orthogonal {
		return []Point{src, dst}
	}
	mid := (src.Y + dst.Y) / 2
	return []Point{
		src,
		{X: src.X, Y: mid},
		{X: dst.X, Y: mid},
		dst,
	}
}

// LabelAnchor returns the centre of an edge label for a route from [Route]:
// the midpoint of the crossing segment (or of the line), raised by LabelRaise.
func LabelAnchor(route []Point) Point {
	if len(route) == 0 {
		return Point{}
	}
	a, b := route[0], route[len(route)-1]
	if len(route) == 4 {
		a, b = route[1], route[2]
	}
	return Point{X: (a.X + b.X) / 2, Y: (a.Y+b.Y)/2 - LabelRaise}
}

// Package geometry computes canvas bounds, anchor points and edge routes for
// diagrams.
//
// # Bounds
//
// [Bounds] covers every node rectangle, pads it by [Padding] on each side and
// grows each axis to at least [MinExtent] around its centre. An empty diagram
// gets the fixed [DefaultBox].
//
// Whether the resulting box may start left of or above the origin is decided
// by the caller through a [Policy]:
//
//   - [AllowNegative] keeps the box exactly where the nodes are. The SVG
//     renderer and the native painter use it because their viewBox can start
//     anywhere.
//   - [ClampToOrigin] raises a negative MinX or MinY to 0 after the extent
//     rule. Consumers that can only address positive coordinates use it.
//
// Shape kind never changes bounds: every primitive stays inside its node's
// rectangle.
package geometry

import (
	"math"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
)

const (
	// Padding is added on every side of the node union.
	Padding = 50.0
	// MinExtent is the smallest width and height of a non-empty canvas.
	MinExtent = 500.0
)

// DefaultBox is the bounding box of a diagram without nodes.
var DefaultBox = Box{MinX: 0, MinY: 0, MaxX: 800, MaxY: 600}

// Policy selects how negative origins are treated.
type Policy int

const (
	AllowNegative Policy = iota
	ClampToOrigin
)

func (p Policy) String() string {
	if p == ClampToOrigin {
		return "clamp-to-origin"
	}
	return "allow-negative"
}

// Box is an axis-aligned rectangle given by its corners.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns MaxY - MinY.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.MinX >= b.MinX && o.MinY >= b.MinY && o.MaxX <= b.MaxX && o.MaxY <= b.MaxY
}

// Union returns the smallest box covering b and o.
func (b Box) Union(o Box) Box {
	return Box{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Pad grows b by p on every side.
func (b Box) Pad(p float64) Box {
	return Box{MinX: b.MinX - p, MinY: b.MinY - p, MaxX: b.MaxX + p, MaxY: b.MaxY + p}
}

// NodeBox returns the rectangle a node occupies.
func NodeBox(n *diagram.Node) Box {
	return Box{MinX: n.X, MinY: n.Y, MaxX: n.X + n.Width, MaxY: n.Y + n.Height}
}

// Bounds returns the canvas box for d under the given policy.
func Bounds(d *diagram.Diagram, policy Policy) Box {
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return DefaultBox
	}

	b := NodeBox(nodes[0])
	for _, n := range nodes[1:] {
		b = b.Union(NodeBox(n))
	}
	b = b.Pad(Padding)
	b.MinX, b.MaxX = minExtent(b.MinX, b.MaxX)
	b.MinY, b.MaxY = minExtent(b.MinY, b.MaxY)

	if policy == ClampToOrigin {
		b.MinX = math.Max(0, b.MinX)
		b.MinY = math.Max(0, b.MinY)
	}
	return b
}

func minExtent(lo, hi float64) (float64, float64) {
	if hi-lo >= MinExtent {
		return lo, hi
	}
	c := (lo + hi) / 2
	return c - MinExtent/2, c + MinExtent/2
}

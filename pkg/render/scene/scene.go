// Package scene turns a diagram into positioned drawing primitives.
//
// A [Scene] is the single place where styles are parsed, colours resolved,
// edge endpoints looked up and labels laid out. The SVG encoder and the
// native painter both draw from it, so they agree on every coordinate.
//
// Edges whose source or target is not a node in the diagram are not drawn.
// They are listed in [Scene.Skipped] and, when a logger is supplied, logged
// at warn level.
package scene

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/fonts"
	"github.com/timeless-residents/handson-drawio-api/pkg/geometry"
	"github.com/timeless-residents/handson-drawio-api/pkg/style"
)

// Label layout.
const (
	LineHeight     = 16.0
	BaselineFactor = 0.7 // Baseline of line i sits at (i+0.7) line heights
	CenterNudge    = 5.0 // Single-line baseline offset below the centre
	FontFamily     = fonts.Family
)

// CylinderCapMax caps the height of a cylinder's top ellipse.
const CylinderCapMax = 20.0

// Scene is everything needed to draw one diagram.
type Scene struct {
	Title      string
	Bounds     geometry.Box
	Shapes     []Shape
	Connectors []Connector
	Skipped    []errors.Reference
}

// Shape is a node ready to draw.
type Shape struct {
	ID          string
	Kind        style.Shape
	X, Y, W, H  float64
	Radius      float64 // Rectangle corner radius
	Fill        string
	Stroke      string
	StrokeWidth float64
	Dash        string
	Text        Text
}

// Text is a block of centred label lines.
type Text struct {
	Lines    []TextLine
	Color    string
	FontSize float64
}

// TextLine is one line of text anchored at its horizontal centre and baseline.
type TextLine struct {
	Value string
	X, Y  float64
}

// Connector is an edge ready to draw.
type Connector struct {
	ID          string
	SourceID    string
	TargetID    string
	Points      []geometry.Point // 2 for straight, 4 for orthogonal
	Orthogonal  bool
	Stroke      string
	StrokeWidth float64
	Dash        string
	Arrow       bool
	Label       Text // No lines when the edge is unlabelled
}

// Option configures [Build].
type Option func(*builder)

type builder struct {
	logger *log.Logger
	policy geometry.Policy
}

// WithLogger reports skipped edges to logger.
func WithLogger(logger *log.Logger) Option {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithPolicy overrides the bounds policy. Renderers use
// [geometry.AllowNegative], the default.
func WithPolicy(p geometry.Policy) Option {
	return func(b *builder) { b.policy = p }
}

// Build lays out d. It never fails and never mutates d.
func Build(d *diagram.Diagram, opts ...Option) Scene {
	b := builder{
		logger: log.New(io.Discard),
		policy: geometry.AllowNegative,
	}
	for _, opt := range opts {
		opt(&b)
	}

	sc := Scene{
		Title:  d.Title,
		Bounds: geometry.Bounds(d, b.policy),
	}

	for _, n := range d.Nodes() {
		sc.Shapes = append(sc.Shapes, buildShape(n))
	}

	idx := d.NodeIndex()
	for _, e := range d.Edges() {
		src, okSrc := idx[e.Source]
		dst, okDst := idx[e.Target]
		if !okSrc || !okDst {
			for _, ref := range missingEnds(e, okSrc, okDst) {
				b.logger.Warn("skipping edge with dangling reference", "edge", ref.EdgeID, ref.End, ref.NodeID)
				sc.Skipped = append(sc.Skipped, ref)
			}
			continue
		}
		sc.Connectors = append(sc.Connectors, buildConnector(e, src, dst))
	}
	return sc
}

func missingEnds(e *diagram.Edge, okSrc, okDst bool) []errors.Reference {
	var refs []errors.Reference
	if !okSrc {
		refs = append(refs, errors.Reference{EdgeID: e.ID, End: "source", NodeID: e.Source})
	}
	if !okDst {
		refs = append(refs, errors.Reference{EdgeID: e.ID, End: "target", NodeID: e.Target})
	}
	return refs
}

func buildShape(n *diagram.Node) Shape {
	p := style.Parse(n.Style)
	s := Shape{
		ID:          n.ID,
		Kind:        p.Shape,
		X:           n.X,
		Y:           n.Y,
		W:           n.Width,
		H:           n.Height,
		Fill:        p.Fill(style.DefaultFill),
		Stroke:      p.Stroke(style.DefaultStroke),
		StrokeWidth: p.StrokeWidth,
		Dash:        p.DashArray(),
		Text: Text{
			Lines:    NodeLabel(n),
			Color:    p.Font(style.DefaultFont),
			FontSize: p.FontSize,
		},
	}
	if s.Kind == style.ShapeRectangle {
		s.Radius = p.CornerRadius()
	}
	return s
}

func buildConnector(e *diagram.Edge, src, dst *diagram.Node) Connector {
	p := style.Parse(e.Style)
	route := geometry.Route(geometry.BottomCenter(src), geometry.TopCenter(dst), p.Orthogonal)
	c := Connector{
		ID:          e.ID,
		SourceID:    src.ID,
		TargetID:    dst.ID,
		Points:      route,
		Orthogonal:  p.Orthogonal,
		Stroke:      p.Stroke(style.DefaultLine),
		StrokeWidth: p.StrokeWidth,
		Dash:        p.DashArray(),
		Arrow:       p.HasArrow(),
		Label: Text{
			Color:    p.Font(style.DefaultFont),
			FontSize: p.FontSize,
		},
	}
	if e.Label != "" {
		at := geometry.LabelAnchor(route)
		c.Label.Lines = []TextLine{{Value: e.Label, X: at.X, Y: at.Y}}
	}
	return c
}

// NodeLabel splits a node label on line breaks and positions each line.
// A single line is centred at h/2+5; n lines are stacked 16 units apart
// around the vertical centre.
func NodeLabel(n *diagram.Node) []TextLine {
	if n.Label == "" {
		return nil
	}
	cx := n.X + n.Width/2
	if !strings.Contains(n.Label, "\n") {
		return []TextLine{{Value: n.Label, X: cx, Y: n.Y + n.Height/2 + CenterNudge}}
	}

	parts := strings.Split(n.Label, "\n")
	top := n.Y + (n.Height-float64(len(parts))*LineHeight)/2
	lines := make([]TextLine, len(parts))
	for i, part := range parts {
		lines[i] = TextLine{Value: part, X: cx, Y: top + (float64(i)+BaselineFactor)*LineHeight}
	}
	return lines
}

// Cylinder returns the cap height and the cap ellipse's vertical radius.
func (s Shape) Cylinder() (capHeight, ry float64) {
	capHeight = min(s.H*0.3, CylinderCapMax)
	return capHeight, capHeight / 2
}

// Diamond returns the left, top, right and bottom vertices.
func (s Shape) Diamond() [4]geometry.Point {
	return [4]geometry.Point{
		{X: s.X, Y: s.Y + s.H/2},
		{X: s.X + s.W/2, Y: s.Y},
		{X: s.X + s.W, Y: s.Y + s.H/2},
		{X: s.X + s.W/2, Y: s.Y + s.H},
	}
}

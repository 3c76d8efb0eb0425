// Package svg renders diagrams as standalone SVG documents.
//
// The canvas is the diagram's bounding box with negative origins allowed, so
// nodes left of or above (0,0) stay visible. One arrowhead marker is defined
// in <defs> and referenced by every edge that has an arrow. Nodes are drawn
// first, then edges, each in insertion order.
//
//	out := svg.Render(d, svg.WithBackground("#f5f5f5"))
//	os.WriteFile("flow.svg", out, 0o644)
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/geometry"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/scene"
	"github.com/timeless-residents/handson-drawio-api/pkg/style"
)

// DefaultBackground fills the canvas unless transparency is requested.
const DefaultBackground = "white"

const arrowMarker = `<marker id="arrow" markerWidth="10" markerHeight="10" refX="9" refY="3" orient="auto" markerUnits="strokeWidth">` +
	`<path d="M0,0 L0,6 L9,3 z" fill="#000"/></marker>`

// Option configures the renderer.
type Option func(*renderer)

type renderer struct {
	background  string
	transparent bool
	logger      *log.Logger
}

// WithBackground sets the canvas colour. Invalid colours fall back to white.
func WithBackground(c string) Option {
	return func(r *renderer) { r.background = c }
}

// WithTransparent omits the background rectangle.
func WithTransparent() Option { return func(r *renderer) { r.transparent = true } }

// WithLogger reports edges skipped for dangling references.
func WithLogger(l *log.Logger) Option { return func(r *renderer) { r.logger = l } }

// Render draws d. Edges that reference missing nodes are left out.
func Render(d *diagram.Diagram, opts ...Option) []byte {
	r := newRenderer(opts...)
	var sceneOpts []scene.Option
	if r.logger != nil {
		sceneOpts = append(sceneOpts, scene.WithLogger(r.logger))
	}
	return r.render(scene.Build(d, sceneOpts...))
}

// RenderScene draws an already built scene.
func RenderScene(sc scene.Scene, opts ...Option) []byte {
	return newRenderer(opts...).render(sc)
}

func newRenderer(opts ...Option) renderer {
	r := renderer{background: DefaultBackground}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r renderer) render(sc scene.Scene) []byte {
	b := sc.Bounds
	w, h := b.Width(), b.Height()

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="%s" height="%s" viewBox="%s %s %s %s">`+"\n",
		num(w), num(h), num(b.MinX), num(b.MinY), num(w), num(h))
	if sc.Title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(sc.Title))
	}
	fmt.Fprintf(&buf, "  <defs>%s</defs>\n", arrowMarker)

	if !r.transparent {
		fmt.Fprintf(&buf, `  <rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`+"\n",
			num(b.MinX), num(b.MinY), num(w), num(h), style.ResolveColor(r.background, DefaultBackground))
	}

	for _, s := range sc.Shapes {
		renderShape(&buf, s)
		renderText(&buf, s.Text)
	}
	for _, c := range sc.Connectors {
		renderConnector(&buf, c)
		renderText(&buf, c.Label)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderShape(buf *bytes.Buffer, s scene.Shape) {
	paint := paintAttrs(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)
	switch s.Kind {
	case style.ShapeEllipse:
		fmt.Fprintf(buf, `  <ellipse id="%s" cx="%s" cy="%s" rx="%s" ry="%s"%s/>`+"\n",
			escape(s.ID), num(s.X+s.W/2), num(s.Y+s.H/2), num(s.W/2), num(s.H/2), paint)
	case style.ShapeDiamond:
		pts := s.Diamond()
		coords := make([]string, len(pts))
		for i, p := range pts {
			coords[i] = num(p.X) + "," + num(p.Y)
		}
		fmt.Fprintf(buf, `  <polygon id="%s" points="%s"%s/>`+"\n", escape(s.ID), strings.Join(coords, " "), paint)
	case style.ShapeCylinder:
		renderCylinder(buf, s)
	default:
		fmt.Fprintf(buf, `  <rect id="%s" x="%s" y="%s" width="%s" height="%s" rx="%s"%s/>`+"\n",
			escape(s.ID), num(s.X), num(s.Y), num(s.W), num(s.H), num(s.Radius), paint)
	}
}

// renderCylinder draws a database shape: body, top cap and the visible half
// of the bottom cap.
func renderCylinder(buf *bytes.Buffer, s scene.Shape) {
	_, ry := s.Cylinder()
	rx := s.W / 2
	x, y, w, h := s.X, s.Y, s.W, s.H
	fill := paintAttrs(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)
	line := paintAttrs(style.None, s.Stroke, s.StrokeWidth, s.Dash)

	fmt.Fprintf(buf, `  <g id="%s" class="database-cylinder">`+"\n", escape(s.ID))
	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s"%s/>`+"\n",
		num(x), num(y+ry), num(w), num(h-2*ry), fill)
	fmt.Fprintf(buf, `    <ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s/>`+"\n",
		num(x+rx), num(y+ry), num(rx), num(ry), fill)
	fmt.Fprintf(buf, `    <path d="M %s %s Q %s %s, %s %s"%s/>`+"\n",
		num(x), num(y+h-ry), num(x+w/2), num(y+h+ry), num(x+w), num(y+h-ry), line)
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		num(x), num(y+ry), num(x), num(y+h-ry), line)
	fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
		num(x+w), num(y+ry), num(x+w), num(y+h-ry), line)
	buf.WriteString("  </g>\n")
}

func renderConnector(buf *bytes.Buffer, c scene.Connector) {
	attrs := paintAttrs(style.None, c.Stroke, c.StrokeWidth, c.Dash)
	if c.Arrow {
		attrs += ` marker-end="url(#arrow)"`
	}
	if !c.Orthogonal {
		p, q := c.Points[0], c.Points[len(c.Points)-1]
		fmt.Fprintf(buf, `  <line id="%s" x1="%s" y1="%s" x2="%s" y2="%s"%s/>`+"\n",
			escape(c.ID), num(p.X), num(p.Y), num(q.X), num(q.Y), attrs)
		return
	}
	fmt.Fprintf(buf, `  <path id="%s" d="%s"%s/>`+"\n", escape(c.ID), pathData(c.Points), attrs)
}

func pathData(pts []geometry.Point) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(num(p.X))
		sb.WriteByte(' ')
		sb.WriteString(num(p.Y))
	}
	return sb.String()
}

func renderText(buf *bytes.Buffer, t scene.Text) {
	for _, l := range t.Lines {
		fmt.Fprintf(buf, `  <text x="%s" y="%s" text-anchor="middle" font-family="%s" font-size="%s" fill="%s">%s</text>`+"\n",
			num(l.X), num(l.Y), scene.FontFamily, num(t.FontSize), t.Color, escape(l.Value))
	}
}

func paintAttrs(fill, stroke string, width float64, dash string) string {
	s := fmt.Sprintf(` fill="%s" stroke="%s" stroke-width="%s"`, fill, stroke, num(width))
	if dash != "" {
		s += fmt.Sprintf(` stroke-dasharray="%s"`, escape(dash))
	}
	return s
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/fonts"
	"github.com/timeless-residents/handson-drawio-api/pkg/style"
)

// Engine names a Graphviz layout engine.
type Engine string

const (
	EngineDot   Engine = "dot"
	EngineNeato Engine = "neato"
)

// pointsPerInch converts diagram units to Graphviz inches for node sizes.
const pointsPerInch = 72.0

// Options configures DOT generation.
type Options struct {
	// Positioned pins every node at its diagram coordinates ("pos" with "!")
	// so the neato engine keeps the authored layout. When false Graphviz
	// lays the graph out itself.
	Positioned bool

	// Background is the canvas colour; empty or "none" leaves it
	// transparent.
	Background string
}

var dotShapes = map[style.Shape]string{
	style.ShapeRectangle: "box",
	style.ShapeEllipse:   "ellipse",
	style.ShapeDiamond:   "diamond",
	style.ShapeCylinder:  "cylinder",
}

// ToDOT converts a diagram to Graphviz DOT source. Node ids are quoted.
// Edges whose endpoints are not nodes are left out, as in the SVG renderer.
func ToDOT(d *diagram.Diagram, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	if bg := colorAttr("bgcolor", opts.Background); opts.Background != "" && len(bg) > 0 {
		fmt.Fprintf(&buf, "  %s;\n", bg[0])
	} else {
		buf.WriteString("  bgcolor=\"transparent\";\n")
	}
	if d.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n", d.Title)
	}
	if hasOrthogonal(d) {
		buf.WriteString("  splines=ortho;\n")
	}
	fmt.Fprintf(&buf, "  node [fontname=%q, fontsize=12, style=\"filled\"];\n", fonts.Family)
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range d.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(nodeAttrs(n, opts), ", "))
	}

	buf.WriteString("\n")
	idx := d.NodeIndex()
	for _, e := range d.Edges() {
		if idx[e.Source] == nil || idx[e.Target] == nil {
			continue
		}
		attrs := edgeAttrs(e)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func hasOrthogonal(d *diagram.Diagram) bool {
	for _, e := range d.Edges() {
		if style.Parse(e.Style).Orthogonal {
			return true
		}
	}
	return false
}

func nodeAttrs(n *diagram.Node, opts Options) []string {
	p := style.Parse(n.Style)
	attrs := []string{
		fmt.Sprintf("label=%q", n.Label),
		"shape=" + dotShapes[p.Shape],
		fmt.Sprintf("width=%s", inches(n.Width)),
		fmt.Sprintf("height=%s", inches(n.Height)),
		"fixedsize=true",
	}
	styles := []string{"filled"}
	if p.Shape == style.ShapeRectangle && p.Rounded {
		styles = append(styles, "rounded")
	}
	if p.Dashed {
		styles = append(styles, "dashed")
	}
	attrs = append(attrs, fmt.Sprintf("style=%q", strings.Join(styles, ",")))
	attrs = append(attrs, colorAttr("fillcolor", p.Fill(style.DefaultFill))...)
	attrs = append(attrs, colorAttr("color", p.Stroke(style.DefaultStroke))...)
	attrs = append(attrs, colorAttr("fontcolor", p.Font(style.DefaultFont))...)

	if opts.Positioned {
		// Graphviz y grows upwards.
		cx := n.X + n.Width/2
		cy := -(n.Y + n.Height/2)
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(cx), num(cy)))
	}
	return attrs
}

func edgeAttrs(e *diagram.Edge) []string {
	p := style.Parse(e.Style)
	var attrs []string
	if e.Label != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", e.Label))
	}
	if p.StrokeColor != "" {
		attrs = append(attrs, colorAttr("color", p.Stroke(style.DefaultLine))...)
	}
	if p.Dashed {
		attrs = append(attrs, "style=dashed")
	}
	if !p.HasArrow() {
		attrs = append(attrs, "arrowhead=none")
	}
	return attrs
}

// colorAttr writes a colour as #rrggbb. "none" becomes Graphviz's
// "transparent"; unparsable colours are dropped.
func colorAttr(name, value string) []string {
	if value == style.None {
		return []string{name + "=transparent"}
	}
	hex, err := style.Hex(value)
	if err != nil {
		return nil
	}
	return []string{fmt.Sprintf("%s=%q", name, hex)}
}

func inches(v float64) string { return num(v / pointsPerInch) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG lays out DOT source with Graphviz and returns SVG.
// An empty engine means [EngineDot].
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	if engine != "" {
		gv.SetLayout(graphviz.Layout(engine))
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

// Render converts d to DOT and lays it out. Positioned diagrams use neato so
// the pinned coordinates are honoured.
func Render(ctx context.Context, d *diagram.Diagram, opts Options) ([]byte, error) {
	engine := EngineDot
	if opts.Positioned {
		engine = EngineNeato
	}
	return RenderSVG(ctx, ToDOT(d, opts), engine)
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// Size returns the width and height of an SVG produced by [RenderSVG].
func Size(svg []byte) (w, h float64, ok bool) {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return 0, 0, false
	}
	w, errW := strconv.ParseFloat(string(match[3]), 64)
	h, errH := strconv.ParseFloat(string(match[4]), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}

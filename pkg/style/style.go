// Package style decodes Draw.io style strings into typed properties.
//
// A style string is a semicolon-delimited list of key=value pairs and bare
// flags, for example:
//
//	rounded=0;whiteSpace=wrap;html=1;fillColor=#fff2cc;strokeColor=#d6b656;
//	ellipse;whiteSpace=wrap;html=1;
//	edgeStyle=orthogonalEdgeStyle;endArrow=classic;html=1;
//
// [Parse] runs once per cell and produces a [Properties] value that renderers
// consume. The raw string is kept so serializers can write it back verbatim.
package style

import (
	"strconv"
	"strings"
)

// Shape is the primitive used to draw a node.
type Shape int

const (
	ShapeRectangle Shape = iota
	ShapeEllipse
	ShapeDiamond
	ShapeCylinder
)

func (s Shape) String() string {
	switch s {
	case ShapeEllipse:
		return "ellipse"
	case ShapeDiamond:
		return "diamond"
	case ShapeCylinder:
		return "cylinder"
	default:
		return "rectangle"
	}
}

// Shape tokens, checked in this order against the raw style string.
var shapeTokens = []struct {
	token string
	shape Shape
}{
	{"rhombus", ShapeDiamond},
	{"ellipse", ShapeEllipse},
	{"cylinder", ShapeCylinder},
}

const (
	orthogonalToken = "edgeStyle=orthogonalEdgeStyle"

	// DefaultCornerRadius is the rx/ry of a rounded rectangle.
	DefaultCornerRadius = 6.0
	// DefaultStrokeWidth is used when strokeWidth is absent or malformed.
	DefaultStrokeWidth = 1.0
	// DefaultFontSize is used when fontSize is absent or malformed.
	DefaultFontSize = 12.0
	// DefaultDashPattern is the dash array of a dashed line without dashPattern.
	DefaultDashPattern = "3 3"
)

// Properties is the typed view of a style string.
type Properties struct {
	Raw    string            // Original style string
	Values map[string]string // key=value segments; last occurrence wins
	Flags  []string          // Segments without '=' in order

	Shape      Shape
	Orthogonal bool // Route edges vertical-horizontal-vertical
	Rounded    bool // False only for rounded=0

	FillColor   string // Raw values; resolve with [ResolveColor]
	StrokeColor string
	FontColor   string

	Dashed      bool
	DashPattern string
	StrokeWidth float64
	FontSize    float64
	EndArrow    string
}

// Parse decodes a style string. It never fails: unknown keys are kept in
// Values, and malformed numbers fall back to defaults.
func Parse(s string) Properties {
	p := Properties{
		Raw:         s,
		Values:      make(map[string]string),
		Shape:       ShapeRectangle,
		Rounded:     true,
		StrokeWidth: DefaultStrokeWidth,
		FontSize:    DefaultFontSize,
	}

	for _, seg := range strings.Split(s, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			p.Flags = append(p.Flags, seg)
			continue
		}
		p.Values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	for _, st := range shapeTokens {
		if strings.Contains(s, st.token) {
			p.Shape = st.shape
			break
		}
	}
	p.Orthogonal = strings.Contains(s, orthogonalToken)

	if p.Values["rounded"] == "0" {
		p.Rounded = false
	}
	p.FillColor = p.Values["fillColor"]
	p.StrokeColor = p.Values["strokeColor"]
	p.FontColor = p.Values["fontColor"]
	p.Dashed = p.Values["dashed"] == "1"
	p.DashPattern = p.Values["dashPattern"]
	p.EndArrow = p.Values["endArrow"]

	if v, ok := positive(p.Values["strokeWidth"]); ok {
		p.StrokeWidth = v
	}
	if v, ok := positive(p.Values["fontSize"]); ok {
		p.FontSize = v
	}
	return p
}

func positive(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, false
	}
	return v, true
}

// Get returns the value of a key=value segment.
func (p Properties) Get(key string) (string, bool) {
	v, ok := p.Values[key]
	return v, ok
}

// HasFlag reports whether a bare segment is present.
func (p Properties) HasFlag(flag string) bool {
	for _, f := range p.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// CornerRadius is the rectangle corner radius: 6, or 0 when rounded=0.
func (p Properties) CornerRadius() float64 {
	if !p.Rounded {
		return 0
	}
	return DefaultCornerRadius
}

// HasArrow reports whether an edge ends in an arrowhead.
func (p Properties) HasArrow() bool {
	return p.EndArrow != "none"
}

// DashArray returns the SVG stroke-dasharray for the line, or "" when solid.
func (p Properties) DashArray() string {
	if !p.Dashed {
		return ""
	}
	if p.DashPattern != "" {
		return p.DashPattern
	}
	return DefaultDashPattern
}

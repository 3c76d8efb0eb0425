package style

import (
	"image/color"
	"testing"
)

func TestParseSegments(t *testing.T) {
	p := Parse("rounded=0;;whiteSpace=wrap; html=1;ellipse;label=a=b;")

	if got := p.Values["rounded"]; got != "0" {
		t.Errorf("rounded = %q, want %q", got, "0")
	}
	if got := p.Values["html"]; got != "1" {
		t.Errorf("html = %q, want %q", got, "1")
	}
	if got := p.Values["label"]; got != "a=b" {
		t.Errorf("label = %q, want split on first '='", got)
	}
	if len(p.Flags) != 1 || p.Flags[0] != "ellipse" {
		t.Errorf("Flags = %v, want [ellipse]", p.Flags)
	}
	if !p.HasFlag("ellipse") || p.HasFlag("rhombus") {
		t.Error("HasFlag mismatch")
	}
	if _, ok := p.Get("whiteSpace"); !ok {
		t.Error("Get(whiteSpace) missing")
	}
}

func TestParseEmpty(t *testing.T) {
	p := Parse("")
	if p.Shape != ShapeRectangle {
		t.Errorf("Shape = %v, want rectangle", p.Shape)
	}
	if !p.Rounded || p.CornerRadius() != DefaultCornerRadius {
		t.Errorf("CornerRadius() = %v, want %v", p.CornerRadius(), DefaultCornerRadius)
	}
	if len(p.Values) != 0 || len(p.Flags) != 0 {
		t.Errorf("expected no segments, got %v %v", p.Values, p.Flags)
	}
	if !p.HasArrow() {
		t.Error("HasArrow() = false, want true")
	}
}

func TestShape(t *testing.T) {
	tests := []struct {
		style string
		want  Shape
	}{
		{"rounded=1;whiteSpace=wrap;html=1;", ShapeRectangle},
		{"ellipse;whiteSpace=wrap;html=1;", ShapeEllipse},
		{"rhombus;whiteSpace=wrap;html=1;", ShapeDiamond},
		{"shape=cylinder3;whiteSpace=wrap;boundedLbl=1;", ShapeCylinder},
		{"shape=rhombus;perimeter=ellipsePerimeter;", ShapeDiamond},
		{"ellipse;shape=cylinder;", ShapeEllipse},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			if got := Parse(tt.style).Shape; got != tt.want {
				t.Errorf("Shape = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEdgeProperties(t *testing.T) {
	p := Parse("edgeStyle=orthogonalEdgeStyle;endArrow=none;dashed=1;strokeWidth=2;")
	if !p.Orthogonal {
		t.Error("Orthogonal = false, want true")
	}
	if p.HasArrow() {
		t.Error("HasArrow() = true, want false")
	}
	if got := p.DashArray(); got != DefaultDashPattern {
		t.Errorf("DashArray() = %q, want %q", got, DefaultDashPattern)
	}
	if p.StrokeWidth != 2 {
		t.Errorf("StrokeWidth = %v, want 2", p.StrokeWidth)
	}

	q := Parse("endArrow=classic;dashed=1;dashPattern=8 4;strokeWidth=-1;fontSize=abc;")
	if got := q.DashArray(); got != "8 4" {
		t.Errorf("DashArray() = %q, want %q", got, "8 4")
	}
	if q.StrokeWidth != DefaultStrokeWidth || q.FontSize != DefaultFontSize {
		t.Errorf("malformed numbers should fall back, got %v %v", q.StrokeWidth, q.FontSize)
	}
	if q.Orthogonal {
		t.Error("Orthogonal = true, want false")
	}
}

func TestRounded(t *testing.T) {
	if r := Parse("rounded=0;").CornerRadius(); r != 0 {
		t.Errorf("CornerRadius() = %v, want 0", r)
	}
	if r := Parse("rounded=1;").CornerRadius(); r != DefaultCornerRadius {
		t.Errorf("CornerRadius() = %v, want %v", r, DefaultCornerRadius)
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		value, fallback, want string
	}{
		{"", DefaultFill, DefaultFill},
		{"#fff2cc", DefaultFill, "#fff2cc"},
		{"red", DefaultFill, "red"},
		{"rgb(10, 20, 30)", DefaultFill, "rgb(10, 20, 30)"},
		{"none", DefaultFill, "none"},
		{"NONE", DefaultFill, "none"},
		{"notacolor", DefaultFill, DefaultFill},
		{`#fff"/><script>`, DefaultStroke, DefaultStroke},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := ResolveColor(tt.value, tt.fallback); got != tt.want {
				t.Errorf("ResolveColor(%q) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}

	p := Parse("fillColor=#d5e8d4;strokeColor=bogus;")
	if got := p.Fill(DefaultFill); got != "#d5e8d4" {
		t.Errorf("Fill() = %q", got)
	}
	if got := p.Stroke(DefaultStroke); got != DefaultStroke {
		t.Errorf("Stroke() = %q, want fallback", got)
	}
	if got := p.Font(DefaultFont); got != DefaultFont {
		t.Errorf("Font() = %q, want fallback", got)
	}
}

func TestRGBA(t *testing.T) {
	tests := []struct {
		value string
		want  color.NRGBA
	}{
		{"#dae8fc", color.NRGBA{R: 0xda, G: 0xe8, B: 0xfc, A: 0xff}},
		{"white", color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
		{"none", color.NRGBA{}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := RGBA(tt.value)
			if err != nil {
				t.Fatalf("RGBA(%q) error: %v", tt.value, err)
			}
			if got != tt.want {
				t.Errorf("RGBA(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	if _, err := RGBA("nope"); err == nil {
		t.Error("RGBA(nope) expected error")
	}
}

func TestHex(t *testing.T) {
	got, err := Hex("rgb(255, 0, 0)")
	if err != nil {
		t.Fatal(err)
	}
	if got != "#ff0000" {
		t.Errorf("Hex() = %q, want #ff0000", got)
	}
}

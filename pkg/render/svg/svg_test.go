package svg

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
)

func TestRenderIsWellFormed(t *testing.T) {
	d := diagram.New("Flow <1>")
	a := d.AddNode("A & B", 0, 0, diagram.WithSize(100, 50))
	b := d.AddNode("two\nlines", 0, 150, diagram.WithNodeStyle("ellipse;"))
	c := d.AddNode("DB", 200, 150, diagram.WithNodeStyle("shape=cylinder3;"))
	d.AddEdge(a.ID, b.ID, diagram.WithLabel("<yes>"))
	d.AddEdge(a.ID, c.ID, diagram.WithEdgeStyle("edgeStyle=orthogonalEdgeStyle;dashed=1;"))

	out := Render(d)
	dec := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("invalid XML: %v\n%s", err, out)
		}
	}

	s := string(out)
	for _, want := range []string{
		`<title>Flow &lt;1&gt;</title>`,
		`>A &amp; B</text>`,
		`>&lt;yes&gt;</text>`,
		`<ellipse id="node_2"`,
		`class="database-cylinder"`,
		`stroke-dasharray="3 3"`,
		`<path id="edge_5" d="M 50 50 L 50 100 L 260 100 L 260 150"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderRhombusIsPolygon(t *testing.T) {
	d := diagram.New("T")
	d.AddNode("Decide", 0, 0, diagram.WithSize(100, 60), diagram.WithNodeStyle("rhombus;whiteSpace=wrap;html=1;"))

	s := string(Render(d))
	if strings.Contains(s, `<rect id="node_1"`) {
		t.Error("rhombus rendered as rect")
	}
	const want = `<polygon id="node_1" points="0,30 50,0 100,30 50,60"`
	if !strings.Contains(s, want) {
		t.Errorf("output missing %q\n%s", want, s)
	}
}

func TestRenderSkipsDanglingEdge(t *testing.T) {
	d := diagram.New("T")
	a := d.AddNode("A", 0, 0)
	d.AddEdge(a.ID, "node_404", diagram.WithLabel("lost"))

	var out []byte
	func() {
		defer func() {
			if r := recover(); r != nil {
				t.Fatalf("Render panicked: %v", r)
			}
		}()
		out = Render(d)
	}()

	s := string(out)
	if strings.Contains(s, "edge_2") || strings.Contains(s, "lost") {
		t.Errorf("dangling edge was drawn:\n%s", s)
	}
	if !strings.Contains(s, `<rect id="node_1"`) {
		t.Error("node missing")
	}
}

func TestRenderCanvas(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := string(Render(diagram.New("")))
		if !strings.Contains(s, `width="800" height="600" viewBox="0 0 800 600"`) {
			t.Errorf("unexpected canvas:\n%s", s)
		}
		if strings.Count(s, `<marker id="arrow"`) != 1 {
			t.Error("arrow marker must be defined exactly once")
		}
	})

	t.Run("negative origin", func(t *testing.T) {
		d := diagram.New("T")
		d.AddNode("A", -600, -20, diagram.WithSize(100, 50))
		d.AddNode("B", 0, 0, diagram.WithSize(100, 50))
		s := string(Render(d))
		if !strings.Contains(s, `viewBox="-650 -235 800 500"`) {
			t.Errorf("unexpected viewBox:\n%s", s)
		}
	})

	t.Run("background", func(t *testing.T) {
		s := string(Render(diagram.New(""), WithBackground("#123456")))
		if !strings.Contains(s, `fill="#123456"/>`) {
			t.Error("background colour not applied")
		}
		s = string(Render(diagram.New(""), WithBackground(`red"/><script>`)))
		if strings.Contains(s, "<script>") || !strings.Contains(s, `fill="white"/>`) {
			t.Error("invalid background should fall back to white")
		}
	})

	t.Run("transparent", func(t *testing.T) {
		s := string(Render(diagram.New(""), WithTransparent()))
		if strings.Contains(s, `<rect x="0" y="0" width="800" height="600"`) {
			t.Error("transparent output has a background rect")
		}
	})
}

func TestRenderArrows(t *testing.T) {
	d := diagram.New("T")
	a := d.AddNode("A", 0, 0)
	b := d.AddNode("B", 0, 200)
	d.AddEdge(a.ID, b.ID)
	d.AddEdge(a.ID, b.ID, diagram.WithEdgeStyle("endArrow=none;"))

	s := string(Render(d))
	if got := strings.Count(s, `marker-end="url(#arrow)"`); got != 1 {
		t.Errorf("marker-end count = %d, want 1", got)
	}
}

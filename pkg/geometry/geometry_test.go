package geometry

import (
	"testing"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
)

func TestBoundsEmpty(t *testing.T) {
	for _, p := range []Policy{AllowNegative, ClampToOrigin} {
		t.Run(p.String(), func(t *testing.T) {
			if got := Bounds(diagram.New("T"), p); got != DefaultBox {
				t.Errorf("Bounds() = %+v, want %+v", got, DefaultBox)
			}
		})
	}

	// Edges alone do not count as nodes.
	d := diagram.New("T")
	d.AddEdge("a", "b")
	if got := Bounds(d, AllowNegative); got != (Box{0, 0, 800, 600}) {
		t.Errorf("Bounds() with only edges = %+v", got)
	}
}

func TestBoundsLarge(t *testing.T) {
	d := diagram.New("T")
	d.AddNode("A", 0, 0, diagram.WithSize(100, 50))
	d.AddNode("B", 900, 700, diagram.WithSize(100, 50))

	got := Bounds(d, AllowNegative)
	want := Box{MinX: -50, MinY: -50, MaxX: 1050, MaxY: 800}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}

	clamped := Bounds(d, ClampToOrigin)
	want = Box{MinX: 0, MinY: 0, MaxX: 1050, MaxY: 800}
	if clamped != want {
		t.Errorf("Bounds(ClampToOrigin) = %+v, want %+v", clamped, want)
	}
}

func TestBoundsMinExtent(t *testing.T) {
	d := diagram.New("T")
	d.AddNode("A", 100, 100, diagram.WithSize(100, 50))

	got := Bounds(d, AllowNegative)
	// Padded box is (50,50)-(250,200); centre (150,125).
	want := Box{MinX: -100, MinY: -125, MaxX: 400, MaxY: 375}
	if got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if got.Width() != MinExtent || got.Height() != MinExtent {
		t.Errorf("extent = %vx%v, want %v", got.Width(), got.Height(), MinExtent)
	}

	clamped := Bounds(d, ClampToOrigin)
	want = Box{MinX: 0, MinY: 0, MaxX: 400, MaxY: 375}
	if clamped != want {
		t.Errorf("Bounds(ClampToOrigin) = %+v, want %+v", clamped, want)
	}
}

func TestBoundsContainsPaddedNodes(t *testing.T) {
	d := diagram.New("T")
	d.AddNode("A", -300, -40, diagram.WithSize(80, 40))
	d.AddNode("B", 20, 10)
	d.AddNode("C", 640, 900, diagram.WithSize(10, 10), diagram.WithNodeStyle("ellipse;"))
	d.AddEdge("node_1", "node_3")

	b := Bounds(d, AllowNegative)
	for _, n := range d.Nodes() {
		if nb := NodeBox(n).Pad(Padding); !b.Contains(nb) {
			t.Errorf("bounds %+v does not contain padded %s %+v", b, n.ID, nb)
		}
	}
	if b.MinX != -350 || b.MinY != -90 {
		t.Errorf("negative origin lost: %+v", b)
	}
}

func TestRoute(t *testing.T) {
	src, dst := Point{50, 50}, Point{250, 150}

	straight := Route(src, dst, false)
	if len(straight) != 2 || straight[0] != src || straight[1] != dst {
		t.Errorf("straight route = %v", straight)
	}
	if got := LabelAnchor(straight); got != (Point{150, 90}) {
		t.Errorf("straight LabelAnchor() = %v, want {150 90}", got)
	}

	ortho := Route(src, dst, true)
	want := []Point{{50, 50}, {50, 100}, {250, 100}, {250, 150}}
	if len(ortho) != len(want) {
		t.Fatalf("orthogonal route = %v, want %v", ortho, want)
	}
	for i := range want {
		if ortho[i] != want[i] {
			t.Errorf("point %d = %v, want %v", i, ortho[i], want[i])
		}
	}
	if got := LabelAnchor(ortho); got != (Point{150, 90}) {
		t.Errorf("orthogonal LabelAnchor() = %v, want {150 90}", got)
	}
}

func TestAnchors(t *testing.T) {
	n := &diagram.Node{X: 10, Y: 20, Width: 100, Height: 50}
	if got := BottomCenter(n); got != (Point{60, 70}) {
		t.Errorf("BottomCenter() = %v", got)
	}
	if got := TopCenter(n); got != (Point{60, 20}) {
		t.Errorf("TopCenter() = %v", got)
	}
}

package paint

import (
	"bytes"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/scene"
)

func near(c color.Color, want color.NRGBA) bool {
	got := color.NRGBAModel.Convert(c).(color.NRGBA)
	d := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	return d(got.R, want.R) <= 2 && d(got.G, want.G) <= 2 && d(got.B, want.B) <= 2 && d(got.A, want.A) <= 2
}

func sample() scene.Scene {
	d := diagram.New("T")
	a := d.AddNode("", 0, 0, diagram.WithSize(100, 50))
	b := d.AddNode("", 0, 200, diagram.WithSize(100, 50), diagram.WithNodeStyle("ellipse;fillColor=#ff0000;"))
	d.AddEdge(a.ID, b.ID, diagram.WithLabel("go"))
	d.AddEdge(a.ID, "missing")
	return scene.Build(d)
}

func TestImageColours(t *testing.T) {
	sc := sample()
	img, err := Image(sc, Options{})
	if err != nil {
		t.Fatal(err)
	}

	b := sc.Bounds
	if got := img.Bounds().Dx(); got != int(b.Width()) {
		t.Errorf("width = %d, want %v", got, b.Width())
	}

	at := func(x, y float64) color.Color {
		return img.At(int(x-b.MinX), int(y-b.MinY))
	}
	if c := at(50, 25); !near(c, color.NRGBA{R: 0xda, G: 0xe8, B: 0xfc, A: 0xff}) {
		t.Errorf("rect centre = %v, want default fill", c)
	}
	if c := at(50, 225); !near(c, color.NRGBA{R: 0xff, A: 0xff}) {
		t.Errorf("ellipse centre = %v, want red", c)
	}
	if c := at(b.MinX+1, b.MinY+1); !near(c, color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Errorf("corner = %v, want white background", c)
	}
}

func TestImageTransparent(t *testing.T) {
	sc := sample()
	img, err := Image(sc, Options{Transparent: true})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d, want 0", a)
	}
}

func TestPNGScale(t *testing.T) {
	sc := sample()
	data, err := PNG(sc, Options{Scale: 2, Background: "#000000"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Width != int(sc.Bounds.Width()*2) || cfg.Height != int(sc.Bounds.Height()*2) {
		t.Errorf("size = %dx%d, want %vx%v", cfg.Width, cfg.Height, sc.Bounds.Width()*2, sc.Bounds.Height()*2)
	}
}

func TestImageTooLarge(t *testing.T) {
	spread := diagram.New("T")
	spread.AddNode("near", 0, 0)
	spread.AddNode("far", 1e5, 1e5)

	huge := diagram.New("T")
	huge.AddNode("big", 0, 0, diagram.WithSize(1<<32-100, 1<<32-100))

	tests := []struct {
		name  string
		d     *diagram.Diagram
		scale float64
	}{
		{"spread nodes", spread, 0},
		{"huge scale", diagram.New("T"), 1e7},
		{"product wraps int", huge, 0},
		{"infinite scale", diagram.New("T"), math.Inf(1)},
		{"nan scale", diagram.New("T"), math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PNG(scene.Build(tt.d), Options{Scale: tt.scale})
			if !errors.Is(err, errors.ErrCodeRenderFailed) {
				t.Errorf("error = %v, want RENDER_FAILED", err)
			}
		})
	}
}

func TestDashes(t *testing.T) {
	got := dashes("8 4,2 x -1")
	want := []float64{8, 4, 2}
	if len(got) != len(want) {
		t.Fatalf("dashes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dashes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if dashes("") != nil {
		t.Error("empty dash pattern should be nil")
	}
}

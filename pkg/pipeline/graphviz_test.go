package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/timeless-residents/handson-drawio-api/pkg/export"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/raster"
)

// recordingRasterizer returns a fixed payload and keeps the options it was
// called with.
type recordingRasterizer struct {
	got raster.Options
}

func (r *recordingRasterizer) Name() string     { return "recorder" }
func (r *recordingRasterizer) Available() error { return nil }

func (r *recordingRasterizer) Rasterize(_ context.Context, _ []byte, _ raster.Format, opts raster.Options) ([]byte, error) {
	r.got = opts
	return []byte("%PDF-1.4"), nil
}

func TestRenderGraphvizRasterSize(t *testing.T) {
	rec := &recordingRasterizer{}
	r := NewRunner(nil, nil, nil)
	path := filepath.Join(t.TempDir(), "g.pdf")

	out, err := r.renderGraphviz(context.Background(), sample(), export.ImagePDF, path, []raster.Rasterizer{rec}, Options{Scale: 2})
	if err != nil {
		t.Fatal(err)
	}
	if out.Method != "graphviz+recorder" {
		t.Errorf("Method = %q", out.Method)
	}
	if rec.got.Width <= 0 || rec.got.Height <= 0 {
		t.Errorf("rasterizer got no canvas size: %+v", rec.got)
	}
	if rec.got.Scale != 2 {
		t.Errorf("Scale = %v, want 2", rec.got.Scale)
	}
}

func TestRenderGraphvizBackground(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	dir := t.TempDir()

	tests := []struct {
		name string
		opts Options
		want []string // any of
	}{
		{"default white", Options{}, []string{`fill="white"`, `fill="#ffffff"`}},
		{"custom", Options{Background: "#f5f5f5"}, []string{`fill="#f5f5f5"`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".svg")
			if _, err := r.renderGraphviz(context.Background(), sample(), export.ImageSVG, path, nil, tt.opts); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if bytes.Contains(data, []byte(w)) {
					return
				}
			}
			t.Errorf("graphviz svg missing background %v", tt.want)
		})
	}
}

func TestGraphvizBackground(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{Options{}, "white"},
		{Options{Background: "#123456"}, "#123456"},
		{Options{Background: "not-a-colour"}, "white"},
		{Options{Background: "#123456", Transparent: true}, "none"},
	}
	for _, tt := range tests {
		if got := graphvizBackground(tt.opts); got != tt.want {
			t.Errorf("graphvizBackground(%+v) = %q, want %q", tt.opts, got, tt.want)
		}
	}
}

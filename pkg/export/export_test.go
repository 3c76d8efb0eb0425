package export

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timeless-residents/handson-drawio-api/pkg/cache"
	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/drawio"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/observability"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/raster"
)

func sample() *diagram.Diagram {
	d := diagram.New("T")
	a := d.AddNode("A", 0, 0, diagram.WithSize(100, 50))
	b := d.AddNode("B", 200, 0, diagram.WithSize(100, 50))
	d.AddEdge(a.ID, b.ID, diagram.WithLabel("L"))
	return d
}

type fakeRasterizer struct {
	name    string
	missing bool
	fail    bool
	calls   int
}

func (f *fakeRasterizer) Name() string { return f.name }

func (f *fakeRasterizer) Available() error {
	if f.missing {
		return errors.New(errors.ErrCodeMissingRenderDependency, "%s not installed", f.name)
	}
	return nil
}

func (f *fakeRasterizer) Rasterize(_ context.Context, _ []byte, format raster.Format, _ raster.Options) ([]byte, error) {
	f.calls++
	if f.fail {
		return nil, errors.New(errors.ErrCodeRenderFailed, "boom")
	}
	return []byte("fake-" + string(format)), nil
}

func missing() []raster.Rasterizer {
	return []raster.Rasterizer{&fakeRasterizer{name: "a", missing: true}, &fakeRasterizer{name: "b", missing: true}}
}

func TestExportFormats(t *testing.T) {
	d := sample()
	at := drawio.WithModified(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		format string
		want   []string
	}{
		{"json", []string{`"title": "T"`, `"type": "edge"`, `"modified": true`}},
		{"xml", []string{"<?xml", "<mxGraphModel", `value="L"`}},
		{"drawio-container", []string{"<mxfile", `modified="2024-03-01T00:00:00.000Z"`, `name="T"`}},
		{"drawio", []string{"<mxfile"}},
		{"DOT", []string{"digraph G", `"node_1" -> "node_2"`}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := Export(d, tt.format, at)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}

func TestExportUnsupported(t *testing.T) {
	_, err := Export(sample(), "yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedFormat))
}

func TestExportJSONIsNative(t *testing.T) {
	out, err := Export(sample(), "json")
	require.NoError(t, err)
	data, err := sample().MarshalJSON()
	require.NoError(t, err)

	var compact bytes.Buffer
	require.NoError(t, json.Compact(&compact, []byte(out)))
	assert.Equal(t, string(data), compact.String())
}

func TestExportImageSVG(t *testing.T) {
	dir := t.TempDir()
	path, err := ExportImage(context.Background(), sample(), filepath.Join(dir, "out.svg"), ImageOptions{Format: "svg"})
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportImageUnsupportedWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.gif")
	_, err := ExportImage(context.Background(), sample(), out, ImageOptions{Format: "gif"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedFormat))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExportImageInvalidInput(t *testing.T) {
	ctx := context.Background()
	_, err := ExportImage(ctx, sample(), "", ImageOptions{Format: "svg"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidPath))

	_, err = ExportImage(ctx, sample(), filepath.Join(t.TempDir(), "x.svg"), ImageOptions{Format: "svg", Background: "red;evil"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestExportImagePlaceholder(t *testing.T) {
	for _, fail := range []bool{false, true} {
		name := "missing"
		rs := missing()
		if fail {
			name = "failing"
			rs = []raster.Rasterizer{&fakeRasterizer{name: "x", fail: true}}
		}
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "out.png")
			r, err := ExportImageReport(context.Background(), sample(), out, ImageOptions{Format: "png", Rasterizers: rs})
			require.NoError(t, err)
			assert.Equal(t, MethodPlaceholder, r.Method)
			assert.True(t, r.Degraded())
			assert.Equal(t, out+".html", r.HelperPath)

			text, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(text), "This is not a PNG file.")
			assert.Contains(t, string(text), "out.png.html")

			page, err := os.ReadFile(r.HelperPath)
			require.NoError(t, err)
			assert.Contains(t, string(page), "<svg")
			assert.Contains(t, string(page), "&lt;mxGraphModel")
			assert.Contains(t, string(page), EditorURL+"#R")
			assert.NotContains(t, string(page), "<?xml")
		})
	}
}

func TestExportImagePlaceholderNegativeOrigin(t *testing.T) {
	d := diagram.New("T")
	a := d.AddNode("left", -40, 0, diagram.WithSize(100, 50))
	b := d.AddNode("right", 200, 0, diagram.WithSize(100, 50))
	d.AddEdge(a.ID, b.ID)

	out := filepath.Join(t.TempDir(), "out.png")
	r, err := ExportImageReport(context.Background(), d, out, ImageOptions{Format: "png", Rasterizers: missing()})
	require.NoError(t, err)

	page, err := os.ReadFile(r.HelperPath)
	require.NoError(t, err)
	assert.Contains(t, string(page), `viewBox="-120 -225 500 500"`, "preview keeps nodes left of the origin")
	assert.Contains(t, string(page), "width: 500px")
}

func TestExportImageNative(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	tests := []struct {
		format string
		check  func(t *testing.T, data []byte)
	}{
		{"png", func(t *testing.T, data []byte) {
			cfg, err := png.DecodeConfig(bytes.NewReader(data))
			require.NoError(t, err)
			assert.Equal(t, 500, cfg.Height)
		}},
		{"jpg", func(t *testing.T, data []byte) {
			assert.True(t, bytes.HasPrefix(data, []byte{0xff, 0xd8}))
		}},
		{"pdf", func(t *testing.T, data []byte) {
			assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out := filepath.Join(dir, "out."+tt.format)
			r, err := ExportImageReport(ctx, sample(), out, ImageOptions{Format: tt.format, Rasterizers: missing(), Native: true})
			require.NoError(t, err)
			assert.Equal(t, MethodNative, r.Method)
			assert.Empty(t, r.HelperPath)

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			tt.check(t, data)
		})
	}
}

func TestExportImageRasterizerAndCache(t *testing.T) {
	ctx := context.Background()
	c, err := cache.NewFileCache(t.TempDir())
	require.NoError(t, err)

	fake := &fakeRasterizer{name: "fake"}
	opts := ImageOptions{Format: "png", Rasterizers: []raster.Rasterizer{&fakeRasterizer{name: "gone", missing: true}, fake}, Cache: c}
	out := filepath.Join(t.TempDir(), "nested", "out.png")

	r, err := ExportImageReport(ctx, sample(), out, opts)
	require.NoError(t, err)
	assert.Equal(t, Method("fake"), r.Method)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "fake-png", string(data))

	r, err = ExportImageReport(ctx, sample(), out, opts)
	require.NoError(t, err)
	assert.Equal(t, MethodCache, r.Method)
	assert.Equal(t, 1, fake.calls)

	opts.Scale = 2
	r, err = ExportImageReport(ctx, sample(), out, opts)
	require.NoError(t, err)
	assert.Equal(t, Method("fake"), r.Method, "scale is part of the cache key")
}

func TestExportImageSkippedEdges(t *testing.T) {
	d := sample()
	d.AddEdge("node_1", "node_99")
	r, err := ExportImageReport(context.Background(), d, filepath.Join(t.TempDir(), "o.svg"), ImageOptions{Format: "svg"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Skipped)
}

type recordingHooks struct {
	observability.NoopExportHooks
	fallbacks []string
	completed []string
}

func (h *recordingHooks) OnFallback(_ context.Context, format, kind string, _ error) {
	h.fallbacks = append(h.fallbacks, format+":"+kind)
}

func (h *recordingHooks) OnExportComplete(_ context.Context, format, _ string, _ time.Duration, _ error) {
	h.completed = append(h.completed, format)
}

func TestExportImageHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetExportHooks(h)
	defer observability.Reset()

	_, err := ExportImage(context.Background(), sample(), filepath.Join(t.TempDir(), "o.pdf"), ImageOptions{Format: "pdf", Rasterizers: missing()})
	require.NoError(t, err)
	assert.Equal(t, []string{"pdf:placeholder"}, h.fallbacks)
	assert.Equal(t, []string{"pdf"}, h.completed)
}

func TestParseImageFormat(t *testing.T) {
	tests := map[string]ImageFormat{"svg": ImageSVG, "PNG": ImagePNG, "jpg": ImageJPEG, "jpeg": ImageJPEG, "pdf": ImagePDF}
	for in, want := range tests {
		got, err := ParseImageFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, "jpg", ImageJPEG.Extension())

	_, err := ParseImageFormat("bmp")
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedFormat))
}

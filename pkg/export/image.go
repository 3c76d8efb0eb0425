package export

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/timeless-residents/handson-drawio-api/pkg/cache"
	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/observability"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/paint"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/raster"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/scene"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/svg"
)

// ImageFormat is an image export format.
type ImageFormat string

const (
	ImageSVG  ImageFormat = "svg"
	ImagePNG  ImageFormat = ImageFormat(raster.PNG)
	ImageJPEG ImageFormat = ImageFormat(raster.JPEG)
	ImagePDF  ImageFormat = ImageFormat(raster.PDF)
)

// ImageFormats lists the image formats in display order.
var ImageFormats = []ImageFormat{ImageSVG, ImagePNG, ImageJPEG, ImagePDF}

// ParseImageFormat maps a name to an ImageFormat. "jpg" is accepted.
func ParseImageFormat(s string) (ImageFormat, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == string(ImageSVG) {
		return ImageSVG, nil
	}
	f, err := raster.ParseFormat(name)
	if err != nil {
		return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported image format: %s", s)
	}
	return ImageFormat(f), nil
}

// Extension returns the conventional file extension without the dot.
func (f ImageFormat) Extension() string {
	if f == ImageSVG {
		return "svg"
	}
	return raster.Format(f).Extension()
}

// Method records how an image file was produced.
type Method string

const (
	MethodSVG         Method = "svg"
	MethodNative      Method = "native"
	MethodPlaceholder Method = "placeholder"
	MethodCache       Method = "cache"
)

// ImageOptions configure [ExportImage].
type ImageOptions struct {
	Format      string  // svg, png, jpg, jpeg or pdf; empty means png
	Transparent bool    // Omit the background (SVG and PNG)
	Scale       float64 // Pixel density for raster output; 0 means 1.0
	Background  string  // Canvas colour; empty means white

	// Rasterizers are tried in order for png, jpeg and pdf. Nil means
	// [raster.Defaults].
	Rasterizers []raster.Rasterizer

	// Native paints the image in process when no rasterizer works instead
	// of writing the instructional stand-in.
	Native bool

	Cache    cache.Cache   // Rasterized bytes; nil disables caching
	Keyer    cache.Keyer   // Nil means [cache.DefaultKeyer]
	CacheTTL time.Duration // Zero means [cache.DefaultTTL]
	Logger   *log.Logger
}

// Report describes a finished image export.
type Report struct {
	Path       string      // Absolute path of the written file
	Format     ImageFormat // Format that was requested
	Method     Method      // svg, native, placeholder, cache or a rasterizer name
	HelperPath string      // HTML helper page; set only for placeholders
	Skipped    int         // Edges left out for dangling references
}

// Degraded reports whether the file at Path is not a real image.
func (r Report) Degraded() bool { return r.Method == MethodPlaceholder }

// ExportImage renders d to outputPath and returns the absolute path written.
// See [ExportImageReport] for the full outcome.
func ExportImage(ctx context.Context, d *diagram.Diagram, outputPath string, opts ImageOptions) (string, error) {
	r, err := ExportImageReport(ctx, d, outputPath, opts)
	if err != nil {
		return "", err
	}
	return r.Path, nil
}

// ExportImageReport renders d to outputPath.
//
// Validation errors and UNSUPPORTED_FORMAT are returned before any file is
// written. A missing or failing rasterizer is not an error: the export falls
// back as described in the package documentation and the report says so.
func ExportImageReport(ctx context.Context, d *diagram.Diagram, outputPath string, opts ImageOptions) (report Report, err error) {
	if opts.Format == "" {
		opts.Format = string(ImagePNG)
	}
	f, err := ParseImageFormat(opts.Format)
	if err != nil {
		return Report{}, err
	}
	if err := errors.ValidateOutputPath(outputPath); err != nil {
		return Report{}, err
	}
	if err := errors.ValidateColor(opts.Background); err != nil {
		return Report{}, err
	}
	abs, err := filepath.Abs(outputPath)
	if err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", outputPath)
	}
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	hooks := observability.Export()
	start := time.Now()
	hooks.OnExportStart(ctx, string(f))
	defer func() {
		hooks.OnExportComplete(ctx, string(f), report.Path, time.Since(start), err)
	}()

	sc := scene.Build(d, scene.WithLogger(opts.Logger))
	report = Report{Path: abs, Format: f, Skipped: len(sc.Skipped)}
	doc := svg.RenderScene(sc, svgOptions(opts)...)

	if f == ImageSVG {
		report.Method = MethodSVG
		return report, writeFile(abs, doc)
	}

	data, method, rasterErr := rasterize(ctx, sc, doc, raster.Format(f), opts)
	if rasterErr == nil {
		report.Method = method
		return report, writeFile(abs, data)
	}
	if ctx.Err() != nil {
		return Report{}, ctx.Err()
	}
	if !errors.Is(rasterErr, errors.ErrCodeMissingRenderDependency) && !errors.Is(rasterErr, errors.ErrCodeRenderFailed) {
		return Report{}, rasterErr
	}

	if opts.Native {
		hooks.OnFallback(ctx, string(f), string(MethodNative), rasterErr)
		opts.Logger.Info("no rasterizer available, painting natively", "format", f)
		data, err := paintNative(sc, raster.Format(f), opts)
		if err != nil {
			return Report{}, err
		}
		report.Method = MethodNative
		return report, writeFile(abs, data)
	}

	hooks.OnFallback(ctx, string(f), string(MethodPlaceholder), rasterErr)
	opts.Logger.Warn("no rasterizer available, writing placeholder", "format", f, "reason", errors.UserMessage(rasterErr))
	helper, err := writePlaceholder(d, sc, doc, abs, f, rasterErr)
	if err != nil {
		return Report{}, err
	}
	report.Method = MethodPlaceholder
	report.HelperPath = helper
	return report, nil
}

func svgOptions(opts ImageOptions) []svg.Option {
	out := []svg.Option{svg.WithLogger(opts.Logger)}
	if opts.Background != "" {
		out = append(out, svg.WithBackground(opts.Background))
	}
	if opts.Transparent {
		out = append(out, svg.WithTransparent())
	}
	return out
}

// rasterize converts doc through the rasterizer chain, consulting the cache
// first. Only successful conversions are stored.
func rasterize(ctx context.Context, sc scene.Scene, doc []byte, f raster.Format, opts ImageOptions) ([]byte, Method, error) {
	c := opts.Cache
	if c == nil {
		c = cache.NewNullCache()
	}
	keyer := opts.Keyer
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	key := keyer.ArtifactKey(cache.Hash(doc), cache.ArtifactKeyOpts{
		Format:      string(f),
		Scale:       opts.Scale,
		Background:  opts.Background,
		Transparent: opts.Transparent,
	})

	hooks := observability.Cache()
	if data, ok, err := c.Get(ctx, key); err != nil {
		opts.Logger.Debug("cache read failed", "err", err)
	} else if ok {
		hooks.OnCacheHit(ctx, "artifact")
		return data, MethodCache, nil
	}
	hooks.OnCacheMiss(ctx, "artifact")

	rs := opts.Rasterizers
	if rs == nil {
		rs = raster.Defaults()
	}
	start := time.Now()
	res, err := raster.Convert(ctx, rs, doc, f, raster.Options{
		Scale:       opts.Scale,
		Width:       sc.Bounds.Width(),
		Height:      sc.Bounds.Height(),
		Background:  opts.Background,
		Transparent: opts.Transparent,
	}, opts.Logger)
	observability.Export().OnRasterize(ctx, res.By, string(f), time.Since(start), err)
	if err != nil {
		return nil, "", err
	}

	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = cache.DefaultTTL
	}
	if err := c.Set(ctx, key, res.Data, ttl); err != nil {
		opts.Logger.Debug("cache write failed", "err", err)
	} else {
		hooks.OnCacheSet(ctx, "artifact", len(res.Data))
	}
	return res.Data, Method(res.By), nil
}

func paintNative(sc scene.Scene, f raster.Format, opts ImageOptions) ([]byte, error) {
	png, err := paint.PNG(sc, paint.Options{
		Scale:       opts.Scale,
		Background:  opts.Background,
		Transparent: opts.Transparent && f == raster.PNG,
	})
	if err != nil {
		return nil, err
	}
	switch f {
	case raster.JPEG:
		return raster.ToJPEG(png, opts.Background, raster.DefaultJPEGQuality)
	case raster.PDF:
		return raster.PNGToPDF(png, opts.Scale)
	}
	return png, nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", path)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

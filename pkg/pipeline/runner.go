package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/timeless-residents/handson-drawio-api/pkg/cache"
	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/drawio"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/export"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/nodelink"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/raster"
	"github.com/timeless-residents/handson-drawio-api/pkg/style"
)

// Runner renders diagrams with a shared cache.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL of rasterized entries; zero means cache.DefaultTTL.
	TTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute writes d in every requested format. The first failing format
// cancels the others and its error is returned; files already written are
// left in place.
func (r *Runner) Execute(ctx context.Context, d *diagram.Diagram, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Strict {
		if err := d.Validate(); err != nil {
			return nil, err
		}
	}
	rs, err := r.rasterizers(opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{Outputs: make([]Output, len(opts.Formats))}
	res.Stats.Nodes = len(d.Nodes())
	res.Stats.Edges = len(d.Edges())

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, format := range opts.Formats {
		g.Go(func() error {
			out, skipped, err := r.renderOne(gctx, d, format, rs, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", format, err)
			}
			r.Logger.Debug("wrote output", "format", out.Format, "path", out.Path, "method", out.Method)
			mu.Lock()
			res.Outputs[i] = out
			if skipped > res.Stats.Skipped {
				res.Stats.Skipped = skipped
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	res.Stats.Duration = time.Since(start)
	r.Logger.Info("rendered diagram",
		"title", d.Title,
		"formats", opts.Formats,
		"duration", res.Stats.Duration.Round(time.Millisecond))
	return res, nil
}

func (r *Runner) rasterizers(opts Options) ([]raster.Rasterizer, error) {
	if len(opts.Rasterizers) == 0 {
		return raster.Defaults(), nil
	}
	return raster.ByName(opts.Rasterizers...)
}

func (r *Runner) renderOne(ctx context.Context, d *diagram.Diagram, format string, rs []raster.Rasterizer, opts Options) (Output, int, error) {
	kind, canonical, err := Classify(format)
	if err != nil {
		return Output{}, 0, err
	}

	if kind == KindText {
		f := export.Format(canonical)
		path, err := export.WriteFile(d, f, opts.Output+"."+f.Extension(), fileOptions(opts)...)
		if err != nil {
			return Output{}, 0, err
		}
		return Output{Format: canonical, Path: path, Method: canonical}, 0, nil
	}

	f := export.ImageFormat(canonical)
	path := opts.Output + "." + f.Extension()
	if opts.Engine == EngineGraphviz {
		out, err := r.renderGraphviz(ctx, d, f, path, rs, opts)
		return out, 0, err
	}

	rep, err := export.ExportImageReport(ctx, d, path, export.ImageOptions{
		Format:      canonical,
		Transparent: opts.Transparent,
		Scale:       opts.Scale,
		Background:  opts.Background,
		Rasterizers: rs,
		Native:      opts.Native,
		Cache:       r.Cache,
		Keyer:       r.Keyer,
		CacheTTL:    r.TTL,
		Logger:      r.Logger,
	})
	if err != nil {
		return Output{}, 0, err
	}
	return Output{
		Format:     canonical,
		Path:       rep.Path,
		Method:     string(rep.Method),
		HelperPath: rep.HelperPath,
	}, rep.Skipped, nil
}

// renderGraphviz lays the diagram out with Graphviz. Raster formats need a
// working rasterizer; there is no native or placeholder fallback because the
// built-in painter cannot reproduce Graphviz's layout.
func (r *Runner) renderGraphviz(ctx context.Context, d *diagram.Diagram, f export.ImageFormat, path string, rs []raster.Rasterizer, opts Options) (Output, error) {
	doc, err := nodelink.Render(ctx, d, nodelink.Options{Background: graphvizBackground(opts)})
	if err != nil {
		return Output{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "graphviz layout")
	}

	data, method := doc, string(export.MethodSVG)
	if f != export.ImageSVG {
		ro := raster.Options{
			Scale:       opts.Scale,
			Background:  opts.Background,
			Transparent: opts.Transparent,
		}
		if w, h, ok := nodelink.Size(doc); ok {
			ro.Width, ro.Height = w, h
		}
		res, err := raster.Convert(ctx, rs, doc, raster.Format(f), ro, r.Logger)
		if err != nil {
			return Output{}, err
		}
		data, method = res.Data, res.By
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return Output{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return Output{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "create directory for %s", abs)
	}
	if err := os.WriteFile(abs, data, 0o644); err != nil {
		return Output{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", abs)
	}
	return Output{Format: string(f), Path: abs, Method: "graphviz+" + method}, nil
}

// graphvizBackground matches the built-in engine: white unless another
// colour or transparency is requested.
func graphvizBackground(opts Options) string {
	if opts.Transparent {
		return style.None
	}
	return style.ResolveColor(opts.Background, "white")
}

func fileOptions(opts Options) []drawio.FileOption {
	if opts.Modified.IsZero() {
		return nil
	}
	return []drawio.FileOption{drawio.WithModified(opts.Modified)}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

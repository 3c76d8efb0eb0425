package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/timeless-residents/handson-drawio-api/pkg/config"
	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/export"
	"github.com/timeless-residents/handson-drawio-api/pkg/io"
	"github.com/timeless-residents/handson-drawio-api/pkg/pipeline"
)

// renderFlags holds the flags shared by render and demo. Values from the
// config file apply unless the flag was given explicitly.
type renderFlags struct {
	output      string // output path without extension
	formats     string // comma-separated output formats
	engine      string // builtin or graphviz
	scale       float64
	background  string
	transparent bool
	native      bool   // paint in process when no rasterizer works
	rasterizers string // comma-separated rasterizer names
	strict      bool   // fail on dangling edge references
	noCache     bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.output, "output", "o", "", "output path; the format extension is appended (default: input name)")
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s), comma-separated: "+strings.Join(pipeline.FormatNames(), ", "))
	fs.StringVar(&f.engine, "engine", pipeline.DefaultEngine, "layout engine: builtin, graphviz")
	fs.Float64Var(&f.scale, "scale", pipeline.DefaultScale, "pixel density for png, jpg and pdf")
	fs.StringVar(&f.background, "background", "", "canvas colour (default white)")
	fs.BoolVar(&f.transparent, "transparent", false, "omit the background")
	fs.BoolVar(&f.native, "native", false, "paint images in process when no rasterizer is installed")
	fs.StringVar(&f.rasterizers, "rasterizer", "", "rasterizers to try in order, comma-separated: rsvg, chrome")
	fs.BoolVar(&f.strict, "strict", false, "fail on edges that reference missing nodes")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable the raster cache")
}

// options merges the config file defaults with explicitly set flags.
func (f *renderFlags) options(cmd *cobra.Command, cfg config.Render) pipeline.Options {
	opts := pipeline.Options{
		Formats:     cfg.Formats,
		Engine:      cfg.Engine,
		Scale:       cfg.Scale,
		Background:  cfg.Background,
		Transparent: cfg.Transparent,
		Native:      cfg.Native,
		Rasterizers: cfg.Rasterizers,
		Strict:      cfg.Strict,
	}

	changed := cmd.Flags().Changed
	if changed("format") {
		opts.Formats = splitList(f.formats)
	}
	if changed("engine") {
		opts.Engine = f.engine
	}
	if changed("scale") {
		opts.Scale = f.scale
	}
	if changed("background") {
		opts.Background = f.background
	}
	if changed("transparent") {
		opts.Transparent = f.transparent
	}
	if changed("native") {
		opts.Native = f.native
	}
	if changed("rasterizer") {
		opts.Rasterizers = splitList(f.rasterizers)
	}
	if changed("strict") {
		opts.Strict = f.strict
	}
	return opts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render <diagram.json>",
		Short: "Render a JSON diagram to images and Draw.io files",
		Long: `Render a diagram stored as JSON. Use "-" to read from stdin.

Each format is written next to the output path with its own extension.
PNG, JPEG and PDF need rsvg-convert or Chrome; without them an
instructional placeholder and an HTML helper page are written instead,
unless --native is given.`,
		Example: `  drawio render flow.json
  drawio render flow.json -f png,pdf --scale 2
  drawio render flow.json -f svg --engine graphviz -o out/flow`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeDiagramFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := withLogger(cmd.Context(), c.Logger)
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}

			d, err := readDiagram(ctx, args[0])
			if err != nil {
				return err
			}

			opts := flags.options(cmd, cfg.Render)
			opts.Output = basePath(flags.output, args[0])
			return c.runRender(ctx, d, opts, cfg.Cache, flags.noCache)
		},
	}

	flags.register(cmd)
	return cmd
}

// readDiagram loads a diagram from a file, or from stdin for "-".
func readDiagram(ctx context.Context, input string) (*diagram.Diagram, error) {
	prog := newProgress(loggerFromContext(ctx))
	var (
		d   *diagram.Diagram
		err error
	)
	if input == "-" {
		d, err = io.ReadJSON(os.Stdin)
	} else {
		d, err = io.ImportJSON(input)
	}
	if err != nil {
		return nil, err
	}
	prog.done("Loaded " + input)
	return d, nil
}

// basePath derives the output path without extension. An empty output uses
// the input name; a known format extension on output is stripped.
func basePath(output, input string) string {
	if output == "" {
		if input == "-" {
			return "diagram"
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if ext != "" && pipeline.ValidateFormat(strings.TrimPrefix(ext, ".")) == nil {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// runRender executes the pipeline and prints the outputs.
func (c *CLI) runRender(ctx context.Context, d *diagram.Diagram, opts pipeline.Options, cc config.Cache, noCache bool) error {
	runner, err := c.newRunner(cc, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	title := d.Title
	if title == "" {
		title = "diagram"
	}

	spinner := newSpinnerWithContext(ctx, "Rendering "+title+"...")
	spinner.Start()
	res, err := runner.Execute(ctx, d, opts)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("Rendering " + title + " failed")
		return err
	}
	spinner.StopWithSuccess("Rendered " + title)
	printStats(res.Stats, fromCache(res.Outputs))
	var degraded []pipeline.Output
	for _, o := range res.Outputs {
		printOutput(o)
		if o.Degraded() {
			degraded = append(degraded, o)
		}
	}

	if len(degraded) > 0 {
		printNewline()
		for _, o := range degraded {
			printWarning("%s is a placeholder, no rasterizer could produce %s", filepath.Base(o.Path), o.Format)
			printFile(o.HelperPath)
		}
		printNextStep("Install rsvg-convert or Chrome, or paint in process", "drawio render --native")
		printDetail("Or open the helper page and export from %s", StyleLink.Render(export.EditorURL))
	}
	return nil
}

func fromCache(outputs []pipeline.Output) bool {
	for _, o := range outputs {
		if o.Method == string(export.MethodCache) {
			return true
		}
	}
	return false
}

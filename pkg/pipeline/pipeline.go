// Package pipeline renders one diagram to several output files at once.
//
// The CLI's render and demo commands both go through a [Runner]. Each
// requested format is written by its own goroutine; they share the diagram
// read-only and the runner's cache.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, d, pipeline.Options{
//	    Output:  "out/architecture",
//	    Formats: []string{"svg", "png", "drawio"},
//	})
//	for _, o := range res.Outputs {
//	    fmt.Println(o.Format, o.Path)
//	}
//
// Output files are named Output plus the format's extension.
package pipeline

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/export"
)

// Engines lay out the SVG.
const (
	// EngineBuiltin draws nodes at their own coordinates.
	EngineBuiltin = "builtin"
	// EngineGraphviz lets Graphviz place and route the graph.
	EngineGraphviz = "graphviz"
)

// Defaults shared by the CLI and the config file.
const (
	DefaultEngine = EngineBuiltin
	DefaultScale  = 1.0
)

// DefaultFormats are rendered when none are requested.
var DefaultFormats = []string{"svg", "drawio"}

// ValidEngines is the set of supported engines.
var ValidEngines = map[string]bool{
	EngineBuiltin:  true,
	EngineGraphviz: true,
}

// Options configures one [Runner.Execute] call.
type Options struct {
	Output  string   // Output path without extension
	Formats []string // Text and image format names; empty means DefaultFormats
	Engine  string   // builtin or graphviz

	Scale       float64
	Background  string
	Transparent bool

	// Rasterizers names the external rasterizers to try, in order
	// ("rsvg", "chrome"). Empty means both.
	Rasterizers []string
	Native      bool // Paint in process when no rasterizer works

	// Strict rejects diagrams with dangling edge references instead of
	// rendering them without those edges.
	Strict bool

	// Modified pins the container timestamp; zero means now.
	Modified time.Time

	// Concurrency bounds parallel renders; 0 means GOMAXPROCS.
	Concurrency int
}

// ValidateAndSetDefaults checks the options and fills in defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if strings.TrimSpace(o.Output) == "" {
		return errors.New(errors.ErrCodeInvalidPath, "output path cannot be empty")
	}
	if len(o.Formats) == 0 {
		o.Formats = append([]string(nil), DefaultFormats...)
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if o.Engine == "" {
		o.Engine = DefaultEngine
	}
	if err := ValidateEngine(o.Engine); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if err := errors.ValidateColor(o.Background); err != nil {
		return err
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return nil
}

// Kind tells text formats from image formats.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Classify parses a format name. Image names win for "svg"; text names
// include the "drawio" alias.
func Classify(format string) (Kind, string, error) {
	if f, err := export.ParseImageFormat(format); err == nil {
		return KindImage, string(f), nil
	}
	if f, err := export.ParseFormat(format); err == nil {
		return KindText, string(f), nil
	}
	return 0, "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported format: %s (want %s)", format, strings.Join(FormatNames(), ", "))
}

// FormatNames lists every accepted format name.
func FormatNames() []string {
	var out []string
	for _, f := range export.ImageFormats {
		out = append(out, string(f))
	}
	for _, f := range export.Formats {
		out = append(out, string(f))
	}
	return out
}

// ValidateFormat returns an error if format is not supported.
func ValidateFormat(format string) error {
	_, _, err := Classify(format)
	return err
}

// ValidateFormats validates every format in the list.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine returns an error if engine is not supported.
func ValidateEngine(engine string) error {
	if !ValidEngines[engine] {
		return errors.New(errors.ErrCodeInvalidInput, "invalid engine: %s (must be %s or %s)", engine, EngineBuiltin, EngineGraphviz)
	}
	return nil
}

// dedupe keeps the first of formats that resolve to the same output, so
// "jpg,jpeg" or "drawio,drawio-container" render once.
func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		_, canonical, _ := Classify(f)
		if seen[canonical] {
			continue
		}
		seen[canonical] = true
		out = append(out, f)
	}
	return out
}

// Output is one written file.
type Output struct {
	Format     string
	Path       string
	Method     string // How the file was produced; see [export.Method]
	HelperPath string // Set when Method is "placeholder"
}

// Degraded reports whether the output is a placeholder.
func (o Output) Degraded() bool { return o.Method == string(export.MethodPlaceholder) }

// Stats summarises a run.
type Stats struct {
	Nodes    int
	Edges    int
	Skipped  int // Edges left out for dangling references
	Duration time.Duration
}

// Result is everything [Runner.Execute] wrote, in the order requested.
type Result struct {
	Outputs []Output
	Stats   Stats
}

func (r *Result) String() string {
	return fmt.Sprintf("%d outputs, %d nodes, %d edges in %s", len(r.Outputs), r.Stats.Nodes, r.Stats.Edges, r.Stats.Duration.Round(time.Millisecond))
}

// Package raster converts SVG documents to PNG, JPEG and PDF.
//
// # Collaborators
//
// Conversion is delegated to a [Rasterizer]. Two are provided:
//
//   - [RSVG] shells out to rsvg-convert (librsvg).
//     Install with: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
//   - [Chrome] drives a headless Chrome or Chromium through the DevTools
//     protocol.
//
// Neither is required at build time. [Convert] tries each in order and
// reports MISSING_RENDER_DEPENDENCY only when none is installed; callers
// decide how to degrade.
//
// # JPEG and PDF
//
// JPEG is always produced from a PNG: transparency is flattened onto the
// background colour first. PDF goes straight through the collaborator; a PNG
// painted without one can be wrapped into a single-page PDF with [PNGToPDF].
package raster

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// Format is a raster or print target.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	PDF  Format = "pdf"
)

// ParseFormat maps a user supplied name to a Format. "jpg" is accepted.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "pdf":
		return PDF, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported image format: %s", s)
}

// Extension returns the conventional file extension without the dot.
func (f Format) Extension() string {
	if f == JPEG {
		return "jpg"
	}
	return string(f)
}

// Options control a single conversion.
type Options struct {
	Scale       float64 // Pixel density; 1.0 is one pixel per SVG unit
	Width       float64 // Canvas width in SVG units
	Height      float64 // Canvas height in SVG units
	Background  string  // Flatten colour for JPEG
	Transparent bool
}

func (o Options) scale() float64 {
	if o.Scale <= 0 {
		return 1
	}
	return o.Scale
}

// Rasterizer turns SVG bytes into PNG or PDF bytes.
type Rasterizer interface {
	// Name identifies the collaborator in logs and errors.
	Name() string
	// Available returns a MISSING_RENDER_DEPENDENCY error when the
	// collaborator is not installed.
	Available() error
	// Rasterize converts svg. Only PNG and PDF are requested.
	Rasterize(ctx context.Context, svg []byte, f Format, opts Options) ([]byte, error)
}

// Defaults returns the collaborators tried when none are configured:
// rsvg-convert first, then headless Chrome.
func Defaults() []Rasterizer {
	return []Rasterizer{NewRSVG(), NewChrome()}
}

// ByName builds collaborators from names such as "rsvg" or "chrome".
func ByName(names ...string) ([]Rasterizer, error) {
	out := make([]Rasterizer, 0, len(names))
	for _, n := range names {
		switch strings.ToLower(strings.TrimSpace(n)) {
		case "rsvg", "rsvg-convert", "librsvg":
			out = append(out, NewRSVG())
		case "chrome", "chromium", "chromedp":
			out = append(out, NewChrome())
		default:
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown rasterizer %q (want rsvg or chrome)", n)
		}
	}
	return out, nil
}

// Result is a successful conversion.
type Result struct {
	Data []byte
	By   string // Name of the collaborator that produced Data
}

// Convert rasterizes svg with the first collaborator that is available and
// succeeds. When every collaborator is missing the error carries
// MISSING_RENDER_DEPENDENCY; when at least one was tried and failed it
// carries RENDER_FAILED.
func Convert(ctx context.Context, rs []Rasterizer, svg []byte, f Format, opts Options, logger *log.Logger) (Result, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	target := f
	if f == JPEG {
		target = PNG
	}

	var missing, failed []error
	for _, r := range rs {
		if err := r.Available(); err != nil {
			logger.Debug("rasterizer unavailable", "rasterizer", r.Name(), "error", err)
			missing = append(missing, err)
			continue
		}
		data, err := r.Rasterize(ctx, svg, target, opts)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			logger.Warn("rasterizer failed", "rasterizer", r.Name(), "error", err)
			failed = append(failed, fmt.Errorf("%s: %w", r.Name(), err))
			continue
		}
		if f == JPEG {
			data, err = ToJPEG(data, opts.Background, DefaultJPEGQuality)
			if err != nil {
				return Result{}, err
			}
		}
		return Result{Data: data, By: r.Name()}, nil
	}

	if len(failed) > 0 {
		return Result{}, errors.Wrap(errors.ErrCodeRenderFailed, stderrors.Join(failed...), "%s conversion failed", f)
	}
	cause := stderrors.Join(missing...)
	return Result{}, errors.Wrap(errors.ErrCodeMissingRenderDependency, cause,
		"%s export needs rsvg-convert or a Chrome/Chromium browser", f)
}

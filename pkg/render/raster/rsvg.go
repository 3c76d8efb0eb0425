package raster

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// RSVG converts with the rsvg-convert command line tool.
type RSVG struct {
	// Path is the executable to run. Empty means "rsvg-convert" on PATH.
	Path string
}

// NewRSVG returns an RSVG that looks up rsvg-convert on PATH.
func NewRSVG() *RSVG { return &RSVG{} }

func (r *RSVG) Name() string { return "rsvg-convert" }

func (r *RSVG) bin() string {
	if r.Path != "" {
		return r.Path
	}
	return "rsvg-convert"
}

func (r *RSVG) Available() error {
	if _, err := exec.LookPath(r.bin()); err != nil {
		return errors.Wrap(errors.ErrCodeMissingRenderDependency, err,
			"rsvg-convert not found. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin")
	}
	return nil
}

func (r *RSVG) Rasterize(ctx context.Context, svg []byte, f Format, opts Options) ([]byte, error) {
	args := []string{"-f", string(f)}
	if f == PNG {
		args = append(args, "-z", fmt.Sprintf("%.2f", opts.scale()))
	}
	if !opts.Transparent && opts.Background != "" {
		args = append(args, "-b", opts.Background)
	}
	return run(ctx, r.bin(), svg, args...)
}

// run pipes svg through an external converter.
func run(ctx context.Context, bin string, svg []byte, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s: %v: %s", bin, err, errBuf.String())
	}
	return out.Bytes(), nil
}

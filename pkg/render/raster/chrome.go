package raster

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"os"
	"os/exec"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// cssPixelsPerInch converts SVG units to paper inches for PDF output.
const cssPixelsPerInch = 96.0

// chromeCandidates are tried in order when no explicit path is configured.
var chromeCandidates = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
	"headless-shell",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
}

// Chrome converts by loading the SVG in a headless browser.
type Chrome struct {
	// Path is the browser executable. Empty means search PATH, honouring
	// the CHROME_PATH environment variable first.
	Path string
	// NoSandbox disables the Chrome sandbox (needed in some containers).
	NoSandbox bool
}

// NewChrome returns a Chrome rasterizer that searches for a browser.
func NewChrome() *Chrome { return &Chrome{} }

func (c *Chrome) Name() string { return "chrome" }

func (c *Chrome) execPath() string {
	if c.Path != "" {
		return c.Path
	}
	if p := os.Getenv("CHROME_PATH"); p != "" {
		return p
	}
	for _, name := range chromeCandidates {
		if p, err := exec.LookPath(name); err == nil {
			return p
		}
	}
	return ""
}

func (c *Chrome) Available() error {
	p := c.execPath()
	if p == "" {
		return errors.New(errors.ErrCodeMissingRenderDependency, "no Chrome or Chromium browser found (set CHROME_PATH)")
	}
	if _, err := exec.LookPath(p); err != nil {
		return errors.Wrap(errors.ErrCodeMissingRenderDependency, err, "browser %s is not executable", p)
	}
	return nil
}

func (c *Chrome) Rasterize(ctx context.Context, svg []byte, f Format, opts Options) ([]byte, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.ExecPath(c.execPath()),
		chromedp.Headless,
	)
	if c.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(svg)
	tasks := chromedp.Tasks{}
	if opts.Width > 0 && opts.Height > 0 {
		tasks = append(tasks, chromedp.EmulateViewport(int64(math.Ceil(opts.Width)), int64(math.Ceil(opts.Height))))
	}
	if opts.Transparent {
		tasks = append(tasks, emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 0, G: 0, B: 0, A: 0}))
	}
	tasks = append(tasks,
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
	)

	var out []byte
	switch f {
	case PNG:
		tasks = append(tasks, chromedp.ScreenshotScale(`svg`, opts.scale(), &out, chromedp.ByQuery))
	case PDF:
		tasks = append(tasks, chromedp.ActionFunc(func(ctx context.Context) error {
			params := page.PrintToPDF().
				WithPrintBackground(!opts.Transparent).
				WithMarginTop(0).WithMarginBottom(0).WithMarginLeft(0).WithMarginRight(0)
			if opts.Width > 0 && opts.Height > 0 {
				params = params.
					WithPaperWidth(opts.Width / cssPixelsPerInch).
					WithPaperHeight(opts.Height / cssPixelsPerInch)
			}
			data, _, err := params.Do(ctx)
			out = data
			return err
		}))
	default:
		return nil, fmt.Errorf("chrome cannot produce %s directly", f)
	}

	if err := chromedp.Run(tabCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp: %w", err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("chromedp: empty %s output", f)
	}
	return out, nil
}

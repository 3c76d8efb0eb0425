// Package paint draws a scene directly to a raster image.
//
// It is the fallback for PNG, JPEG and PDF export when neither rsvg-convert
// nor a headless browser is installed. The output follows the SVG renderer
// primitive for primitive, but text uses the Go Regular font instead of
// Arial and strokes are antialiased by a different rasterizer, so pixels
// will not match an SVG conversion exactly.
package paint

import (
	"bytes"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/fonts"
	"github.com/timeless-residents/handson-drawio-api/pkg/geometry"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/scene"
	"github.com/timeless-residents/handson-drawio-api/pkg/style"
)

// Arrowhead size in stroke widths, matching the SVG marker.
const (
	arrowLength    = 9.0
	arrowHalfWidth = 3.0
)

// maxPixels bounds the canvas so a stray coordinate cannot exhaust memory.
const maxPixels = 64 << 20

// Options control painting.
type Options struct {
	Scale       float64 // Pixels per diagram unit; 0 means 1
	Background  string  // Canvas colour; empty means white
	Transparent bool
}

type painter struct {
	dc    *gg.Context
	font  *truetype.Font
	faces map[float64]font.Face
}

// Image paints sc and returns the canvas.
func Image(sc scene.Scene, opts Options) (image.Image, error) {
	dc, err := paint(sc, opts)
	if err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

// PNG paints sc and encodes it.
func PNG(sc scene.Scene, opts Options) ([]byte, error) {
	dc, err := paint(sc, opts)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode png")
	}
	return buf.Bytes(), nil
}

func paint(sc scene.Scene, opts Options) (*gg.Context, error) {
	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}
	b := sc.Bounds
	fw, fh := math.Ceil(b.Width()*scale), math.Ceil(b.Height()*scale)
	if !(fw > 0 && fh > 0) || math.IsInf(fw, 0) || math.IsInf(fh, 0) || fw*fh > maxPixels {
		return nil, errors.New(errors.ErrCodeRenderFailed, "canvas %gx%g is out of range", fw, fh)
	}
	w, h := int(fw), int(fh)

	f, err := fonts.Regular()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse font")
	}
	p := &painter{dc: gg.NewContext(w, h), font: f, faces: map[float64]font.Face{}}

	if !opts.Transparent {
		bg, err := style.RGBA(style.ResolveColor(opts.Background, "white"))
		if err != nil {
			return nil, err
		}
		p.dc.SetColor(bg)
		p.dc.Clear()
	}

	p.dc.Scale(scale, scale)
	p.dc.Translate(-b.MinX, -b.MinY)

	for _, s := range sc.Shapes {
		p.shape(s)
		p.text(s.Text)
	}
	for _, c := range sc.Connectors {
		p.connector(c)
		p.text(c.Label)
	}
	return p.dc, nil
}

func (p *painter) shape(s scene.Shape) {
	dc := p.dc
	switch s.Kind {
	case style.ShapeEllipse:
		dc.DrawEllipse(s.X+s.W/2, s.Y+s.H/2, s.W/2, s.H/2)
		p.fillStroke(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)
	case style.ShapeDiamond:
		pts := s.Diamond()
		dc.MoveTo(pts[0].X, pts[0].Y)
		for _, pt := range pts[1:] {
			dc.LineTo(pt.X, pt.Y)
		}
		dc.ClosePath()
		p.fillStroke(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)
	case style.ShapeCylinder:
		p.cylinder(s)
	default:
		if s.Radius > 0 {
			dc.DrawRoundedRectangle(s.X, s.Y, s.W, s.H, s.Radius)
		} else {
			dc.DrawRectangle(s.X, s.Y, s.W, s.H)
		}
		p.fillStroke(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)
	}
}

func (p *painter) cylinder(s scene.Shape) {
	dc := p.dc
	_, ry := s.Cylinder()
	x, y, w, h := s.X, s.Y, s.W, s.H

	dc.DrawRectangle(x, y+ry, w, h-2*ry)
	p.fillStroke(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)
	dc.DrawEllipse(x+w/2, y+ry, w/2, ry)
	p.fillStroke(s.Fill, s.Stroke, s.StrokeWidth, s.Dash)

	dc.MoveTo(x, y+h-ry)
	dc.QuadraticTo(x+w/2, y+h+ry, x+w, y+h-ry)
	dc.MoveTo(x, y+ry)
	dc.LineTo(x, y+h-ry)
	dc.MoveTo(x+w, y+ry)
	dc.LineTo(x+w, y+h-ry)
	p.fillStroke(style.None, s.Stroke, s.StrokeWidth, s.Dash)
}

func (p *painter) connector(c scene.Connector) {
	dc := p.dc
	if len(c.Points) < 2 {
		return
	}
	dc.MoveTo(c.Points[0].X, c.Points[0].Y)
	for _, pt := range c.Points[1:] {
		dc.LineTo(pt.X, pt.Y)
	}
	p.fillStroke(style.None, c.Stroke, c.StrokeWidth, c.Dash)

	if c.Arrow {
		n := len(c.Points)
		p.arrow(c.Points[n-2], c.Points[n-1], c.StrokeWidth)
	}
}

// arrow draws a filled triangle whose tip sits on to.
func (p *painter) arrow(from, to geometry.Point, strokeWidth float64) {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	ux, uy := dx/l, dy/l
	bx, by := to.X-ux*arrowLength*strokeWidth, to.Y-uy*arrowLength*strokeWidth
	hw := arrowHalfWidth * strokeWidth

	dc := p.dc
	dc.MoveTo(to.X, to.Y)
	dc.LineTo(bx-uy*hw, by+ux*hw)
	dc.LineTo(bx+uy*hw, by-ux*hw)
	dc.ClosePath()
	p.fillStroke("#000000", style.None, 0, "")
}

func (p *painter) text(t scene.Text) {
	if len(t.Lines) == 0 {
		return
	}
	c, err := style.RGBA(t.Color)
	if err != nil {
		return
	}
	p.dc.SetFontFace(p.face(t.FontSize))
	p.dc.SetColor(c)
	for _, l := range t.Lines {
		p.dc.DrawStringAnchored(l.Value, l.X, l.Y, 0.5, 0)
	}
}

func (p *painter) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
	p.faces[size] = f
	return f
}

// fillStroke paints the current path. "none" skips that half.
func (p *painter) fillStroke(fill, stroke string, width float64, dash string) {
	dc := p.dc
	if fc, err := style.RGBA(fill); err == nil && fc.A > 0 {
		dc.SetColor(fc)
		dc.FillPreserve()
	}
	if sc, err := style.RGBA(stroke); err == nil && sc.A > 0 && width > 0 {
		dc.SetColor(sc)
		dc.SetLineWidth(width)
		dc.SetDash(dashes(dash)...)
		dc.StrokePreserve()
	}
	dc.ClearPath()
}

func dashes(s string) []float64 {
	if s == "" {
		return nil
	}
	var out []float64
	for _, f := range strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == ',' }) {
		if v, err := strconv.ParseFloat(f, 64); err == nil && v > 0 {
			out = append(out, v)
		}
	}
	return out
}

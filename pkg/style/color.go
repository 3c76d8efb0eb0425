package style

import (
	"image/color"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// Fallback colours for nodes and text.
const (
	DefaultFill   = "#dae8fc"
	DefaultStroke = "#6c8ebf"
	DefaultFont   = "#000000"
	DefaultLine   = "#000000"
)

// None disables fill or stroke.
const None = "none"

// ResolveColor returns value when it is a usable CSS colour, otherwise
// fallback. The keyword "none" is accepted as-is. Values containing markup
// or declaration separators are rejected so they can be written into
// attributes unchanged.
func ResolveColor(value, fallback string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if strings.EqualFold(value, None) {
		return None
	}
	if errors.ValidateColor(value) != nil {
		return fallback
	}
	if _, err := csscolorparser.Parse(value); err != nil {
		return fallback
	}
	return value
}

// Fill resolves the fill colour against def.
func (p Properties) Fill(def string) string { return ResolveColor(p.FillColor, def) }

// Stroke resolves the stroke colour against def.
func (p Properties) Stroke(def string) string { return ResolveColor(p.StrokeColor, def) }

// Font resolves the label colour against def.
func (p Properties) Font(def string) string { return ResolveColor(p.FontColor, def) }

// RGBA converts a CSS colour to a non-premultiplied colour for raster
// painting. "none" is fully transparent.
func RGBA(value string) (color.NRGBA, error) {
	if strings.EqualFold(strings.TrimSpace(value), None) {
		return color.NRGBA{}, nil
	}
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "color %q", value)
	}
	r, g, b := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(c.A * 255))}, nil
}

// Hex normalises a CSS colour to #rrggbb. Alpha is dropped.
func Hex(value string) (string, error) {
	c, err := csscolorparser.Parse(value)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidInput, err, "color %q", value)
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex(), nil
}

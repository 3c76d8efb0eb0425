// Package export turns diagrams into text documents and image files.
//
// [Export] produces the text formats: the native JSON dump, the bare
// mxGraphModel XML, the Draw.io container file and Graphviz DOT.
//
// [ExportImage] writes SVG, PNG, JPEG or PDF files. SVG is drawn in process.
// The other formats go through an external rasterizer (rsvg-convert or
// headless Chrome); when none works the export degrades instead of failing:
//
//  1. With ImageOptions.Native set, the built-in painter draws the image.
//  2. Otherwise an instructional stand-in is written at the output path,
//     next to an HTML helper page (<output>.html) that shows the diagram and
//     carries its XML for manual export.
//
// An unrecognised format name fails with UNSUPPORTED_FORMAT before anything
// is written.
package export

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/drawio"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	dio "github.com/timeless-residents/handson-drawio-api/pkg/io"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/nodelink"
)

// Format is a text export format.
type Format string

const (
	FormatJSON      Format = "json"
	FormatXML       Format = "xml"
	FormatContainer Format = "drawio-container"
	FormatDOT       Format = "dot"
)

// Formats lists the text formats in display order.
var Formats = []Format{FormatJSON, FormatXML, FormatContainer, FormatDOT}

// ParseFormat maps a name to a Format. "drawio" is accepted for the
// container format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatXML, FormatContainer, FormatDOT:
		return f, nil
	case "drawio":
		return FormatContainer, nil
	}
	return "", errors.New(errors.ErrCodeUnsupportedFormat, "unsupported export format: %s", s)
}

// Extension returns the conventional file extension without the dot.
func (f Format) Extension() string {
	if f == FormatContainer {
		return "drawio"
	}
	return string(f)
}

// Export renders d in the named text format. Container options such as
// [drawio.WithModified] are passed through to [drawio.EncodeFile] and
// ignored by the other formats.
func Export(d *diagram.Diagram, format string, opts ...drawio.FileOption) (string, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return "", err
	}
	data, err := Bytes(d, f, opts...)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Bytes is [Export] for an already parsed format.
func Bytes(d *diagram.Diagram, f Format, opts ...drawio.FileOption) ([]byte, error) {
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		if err := dio.WriteJSON(d, &buf); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "export json")
		}
		return buf.Bytes(), nil
	case FormatXML:
		return drawio.EncodeModel(d)
	case FormatContainer:
		return drawio.EncodeFile(d, opts...)
	case FormatDOT:
		return []byte(nodelink.ToDOT(d, nodelink.Options{Positioned: true})), nil
	}
	return nil, errors.New(errors.ErrCodeUnsupportedFormat, "unsupported export format: %s", f)
}

// WriteFile renders d in format f and writes it to path. It returns the
// absolute path written.
func WriteFile(d *diagram.Diagram, f Format, path string, opts ...drawio.FileOption) (string, error) {
	if err := errors.ValidateOutputPath(path); err != nil {
		return "", err
	}
	data, err := Bytes(d, f, opts...)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", path)
	}
	return abs, writeFile(abs, data)
}

package export

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/drawio"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/scene"
)

// EditorURL opens diagrams.net; the model XML is appended after "#R".
const EditorURL = "https://app.diagrams.net/"

var helperTemplate = template.Must(template.New("helper").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Title}} - export helper</title>
<style>
  body { font-family: Arial, sans-serif; margin: 24px; }
  .canvas { width: {{.Width}}px; height: {{.Height}}px; border: 1px solid #ccc; }
  textarea { width: 100%; height: 160px; font-family: monospace; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>No rasterizer was available to write <code>{{.Target}}</code> as {{.Format}}.
Right-click the diagram and choose "Save image as...", or print this page to PDF.</p>
<div class="canvas">{{.SVG}}</div>
<p><a href="{{.EditURL}}">Open in diagrams.net</a> and use File &gt; Export as.</p>
<h2>Diagram XML</h2>
<textarea readonly>{{.ModelXML}}</textarea>
</body>
</html>
`))

type helperData struct {
	Title    string
	Target   string
	Format   string
	Width    float64
	Height   float64
	SVG      template.HTML
	EditURL  template.URL
	ModelXML string
}

// writePlaceholder writes the HTML helper page at path+".html" and the
// instructional stand-in at path. The page embeds doc, the SVG rendered from
// sc, so the preview covers nodes at negative coordinates too.
func writePlaceholder(d *diagram.Diagram, sc scene.Scene, doc []byte, path string, f ImageFormat, cause error) (string, error) {
	model, err := drawio.EncodeModel(d)
	if err != nil {
		return "", err
	}

	title := d.Title
	if title == "" {
		title = drawio.DefaultTitle
	}

	var page bytes.Buffer
	err = helperTemplate.Execute(&page, helperData{
		Title:    title,
		Target:   filepath.Base(path),
		Format:   strings.ToUpper(string(f)),
		Width:    sc.Bounds.Width(),
		Height:   sc.Bounds.Height(),
		SVG:      template.HTML(stripDeclaration(doc)),
		EditURL:  template.URL(EditorURL + "#R" + url.PathEscape(string(model))),
		ModelXML: string(model),
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "render helper page")
	}

	helper := path + ".html"
	if err := writeFile(helper, page.Bytes()); err != nil {
		return "", err
	}
	if err := writeFile(path, []byte(placeholderText(path, helper, f, cause))); err != nil {
		return "", err
	}
	return helper, nil
}

func placeholderText(path, helper string, f ImageFormat, cause error) string {
	name := strings.ToUpper(string(f))
	var b strings.Builder
	fmt.Fprintf(&b, "This is not a %s file.\n", name)
	fmt.Fprintf(&b, "No rasterizer could produce %s output: %s\n\n", name, errors.UserMessage(cause))
	b.WriteString("To get a real image, install one of:\n")
	b.WriteString("  rsvg-convert   brew install librsvg | apt install librsvg2-bin\n")
	b.WriteString("  Chrome or Chromium (set CHROME_PATH if it is not on PATH)\n")
	b.WriteString("or re-run with --native to use the built-in painter.\n\n")
	b.WriteString("To export by hand:\n")
	fmt.Fprintf(&b, "  1. Open %s in a web browser\n", filepath.Base(helper))
	b.WriteString("  2. Right-click the diagram and choose \"Save image as...\"\n")
	fmt.Fprintf(&b, "  3. Save it as %s\n\n", filepath.Base(path))
	b.WriteString("SVG output needs no extra tools: drawio render --format svg\n")
	return b.String()
}

func stripDeclaration(doc []byte) []byte {
	if i := bytes.Index(doc, []byte("?>")); i >= 0 && bytes.HasPrefix(doc, []byte("<?xml")) {
		return bytes.TrimLeft(doc[i+2:], "\n")
	}
	return doc
}

package drawio

import (
	"bytes"
	"encoding/xml"
	"time"

	"github.com/google/uuid"

	"github.com/timeless-residents/handson-drawio-api/pkg/buildinfo"
	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// Container envelope values.
const (
	Host          = "app.diagrams.net"
	SchemaVersion = "21.1.2"
	FileType      = "device"

	// DefaultTitle names the diagram element when the diagram has no title.
	DefaultTitle = "Diagram"

	timestampLayout = "2006-01-02T15:04:05.000Z"
)

// File is the mxfile container element.
type File struct {
	XMLName  xml.Name `xml:"mxfile"`
	Host     string   `xml:"host,attr"`
	Modified string   `xml:"modified,attr"`
	Agent    string   `xml:"agent,attr"`
	Version  string   `xml:"version,attr"`
	Type     string   `xml:"type,attr"`
	Diagram  Page     `xml:"diagram"`
}

// Page is the named diagram element inside a container.
type Page struct {
	ID    string     `xml:"id,attr"`
	Name  string     `xml:"name,attr"`
	Model GraphModel `xml:"mxGraphModel"`
}

// FileOption configures [EncodeFile].
type FileOption func(*fileConfig)

type fileConfig struct {
	modified time.Time
	agent    string
}

// WithModified pins the container's modification timestamp.
func WithModified(t time.Time) FileOption {
	return func(c *fileConfig) { c.modified = t }
}

// WithAgent sets the generator tag.
func WithAgent(agent string) FileOption {
	return func(c *fileConfig) {
		if agent != "" {
			c.agent = agent
		}
	}
}

// DefaultAgent is the generator tag written when none is given.
func DefaultAgent() string {
	return "drawio/" + buildinfo.Version
}

// PageID derives the diagram element id from a title.
func PageID(title string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("drawio:"+title)).String()
}

// EncodeModel renders d as an XML document whose root is mxGraphModel.
func EncodeModel(d *diagram.Diagram) ([]byte, error) {
	return encode(Model(d))
}

// EncodeFile renders d as a container document that Draw.io opens directly.
func EncodeFile(d *diagram.Diagram, opts ...FileOption) ([]byte, error) {
	cfg := fileConfig{agent: DefaultAgent()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.modified.IsZero() {
		cfg.modified = time.Now()
	}

	title := d.Title
	if title == "" {
		title = DefaultTitle
	}
	return encode(File{
		Host:     Host,
		Modified: cfg.modified.UTC().Format(timestampLayout),
		Agent:    cfg.agent,
		Version:  SchemaVersion,
		Type:     FileType,
		Diagram: Page{
			ID:    PageID(title),
			Name:  title,
			Model: Model(d),
		},
	})
}

func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode xml")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode xml")
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

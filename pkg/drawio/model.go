package drawio

import (
	"encoding/xml"
	"strconv"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
)

// Header is the XML declaration written before every document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Structural cell ids. Every diagram cell is parented to the layer cell.
const (
	rootCellID  = "0"
	layerCellID = "1"
)

// GraphModel is the mxGraphModel element.
type GraphModel struct {
	XMLName    xml.Name `xml:"mxGraphModel"`
	DX         int      `xml:"dx,attr"`
	DY         int      `xml:"dy,attr"`
	Grid       int      `xml:"grid,attr"`
	GridSize   int      `xml:"gridSize,attr"`
	Guides     int      `xml:"guides,attr"`
	Tooltips   int      `xml:"tooltips,attr"`
	Connect    int      `xml:"connect,attr"`
	Arrows     int      `xml:"arrows,attr"`
	Fold       int      `xml:"fold,attr"`
	Page       int      `xml:"page,attr"`
	PageScale  int      `xml:"pageScale,attr"`
	PageWidth  int      `xml:"pageWidth,attr"`
	PageHeight int      `xml:"pageHeight,attr"`
	Root       Root     `xml:"root"`
}

// Root holds the structural cells followed by the diagram cells.
type Root struct {
	Cells []Cell `xml:"mxCell"`
}

// Cell is one mxCell element.
type Cell struct {
	ID       string    `xml:"id,attr"`
	Value    *string   `xml:"value,attr,omitempty"`
	Style    string    `xml:"style,attr,omitempty"`
	Parent   string    `xml:"parent,attr,omitempty"`
	Vertex   string    `xml:"vertex,attr,omitempty"`
	Source   *string   `xml:"source,attr,omitempty"` // Set for edges, even when empty
	Target   *string   `xml:"target,attr,omitempty"`
	Edge     string    `xml:"edge,attr,omitempty"`
	Geometry *Geometry `xml:"mxGeometry,omitempty"`
}

// Geometry is the mxGeometry child of a cell. Vertices carry coordinates;
// edges are relative with none.
type Geometry struct {
	X        string `xml:"x,attr,omitempty"`
	Y        string `xml:"y,attr,omitempty"`
	Width    string `xml:"width,attr,omitempty"`
	Height   string `xml:"height,attr,omitempty"`
	Relative string `xml:"relative,attr,omitempty"`
	As       string `xml:"as,attr"`
}

// Model converts d into its mxGraphModel. d is only read.
func Model(d *diagram.Diagram) GraphModel {
	m := GraphModel{
		DX: 1326, DY: 798,
		Grid: 1, GridSize: 10,
		Guides: 1, Tooltips: 1, Connect: 1, Arrows: 1, Fold: 1,
		Page: 1, PageScale: 1,
		PageWidth: 850, PageHeight: 1100,
	}

	cells := make([]Cell, 0, len(d.Cells)+2)
	cells = append(cells,
		Cell{ID: rootCellID},
		Cell{ID: layerCellID, Parent: rootCellID},
	)
	for _, c := range d.Cells {
		switch c := c.(type) {
		case *diagram.Node:
			label := c.Label
			cells = append(cells, Cell{
				ID:     c.ID,
				Value:  &label,
				Style:  c.Style,
				Parent: layerCellID,
				Vertex: "1",
				Geometry: &Geometry{
					X:      formatNumber(c.X),
					Y:      formatNumber(c.Y),
					Width:  formatNumber(c.Width),
					Height: formatNumber(c.Height),
					As:     "geometry",
				},
			})
		case *diagram.Edge:
			source, target := c.Source, c.Target
			cell := Cell{
				ID:       c.ID,
				Style:    c.Style,
				Parent:   layerCellID,
				Source:   &source,
				Target:   &target,
				Edge:     "1",
				Geometry: &Geometry{Relative: "1", As: "geometry"},
			}
			if c.Label != "" {
				label := c.Label
				cell.Value = &label
			}
			cells = append(cells, cell)
		}
	}
	m.Root.Cells = cells
	return m
}

// formatNumber writes the shortest decimal that parses back to v.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

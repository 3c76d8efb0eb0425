package diagram

import (
	"bytes"
	"encoding/json"

	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// The JSON form is the diagram's native representation: a direct structural
// dump with no schema transformation.
//
//	{
//	  "title": "T",
//	  "cells": [
//	    {"id": "node_1", "type": "node", "label": "A", "x": 0, "y": 0, "width": 100, "height": 50, "style": "..."},
//	    {"id": "edge_2", "type": "edge", "source": "node_1", "target": "node_1", "label": null, "style": "..."}
//	  ],
//	  "modified": true
//	}

type diagramJSON struct {
	Title    string            `json:"title"`
	Cells    []json.RawMessage `json:"cells"`
	Modified bool              `json:"modified"`
}

type nodeJSON struct {
	ID     string  `json:"id"`
	Type   Kind    `json:"type"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Style  string  `json:"style"`
}

type edgeJSON struct {
	ID     string  `json:"id"`
	Type   Kind    `json:"type"`
	Source string  `json:"source"`
	Target string  `json:"target"`
	Label  *string `json:"label"`
	Style  string  `json:"style"`
}

// MarshalJSON encodes the diagram in its native form. Edges without a label
// carry "label": null.
func (d *Diagram) MarshalJSON() ([]byte, error) {
	out := diagramJSON{
		Title:    d.Title,
		Cells:    make([]json.RawMessage, 0, len(d.Cells)),
		Modified: d.Modified,
	}
	for _, c := range d.Cells {
		var v any
		switch c := c.(type) {
		case *Node:
			v = nodeJSON{
				ID: c.ID, Type: KindNode, Label: c.Label,
				X: c.X, Y: c.Y, Width: c.Width, Height: c.Height,
				Style: c.Style,
			}
		case *Edge:
			e := edgeJSON{ID: c.ID, Type: KindEdge, Source: c.Source, Target: c.Target, Style: c.Style}
			if c.Label != "" {
				label := c.Label
				e.Label = &label
			}
			v = e
		}
		raw, err := marshal(v)
		if err != nil {
			return nil, err
		}
		out.Cells = append(out.Cells, raw)
	}
	return marshal(out)
}

// marshal leaves HTML characters alone; encoders that want them escaped
// re-escape the result when compacting it.
func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// UnmarshalJSON decodes the native form. Cells are dispatched on their
// "type" field; anything other than "node" or "edge" is rejected.
func (d *Diagram) UnmarshalJSON(data []byte) error {
	var in diagramJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	cells := make([]Cell, 0, len(in.Cells))
	for i, raw := range in.Cells {
		var head struct {
			Type Kind `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "cell %d", i)
		}
		switch head.Type {
		case KindNode:
			var n nodeJSON
			if err := json.Unmarshal(raw, &n); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "node cell %d", i)
			}
			cells = append(cells, &Node{
				ID: n.ID, Label: n.Label, Style: n.Style,
				X: n.X, Y: n.Y, Width: n.Width, Height: n.Height,
			})
		case KindEdge:
			var e edgeJSON
			if err := json.Unmarshal(raw, &e); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidInput, err, "edge cell %d", i)
			}
			edge := &Edge{ID: e.ID, Source: e.Source, Target: e.Target, Style: e.Style}
			if e.Label != nil {
				edge.Label = *e.Label
			}
			cells = append(cells, edge)
		default:
			return errors.New(errors.ErrCodeInvalidInput, "cell %d: unknown type %q", i, head.Type)
		}
	}

	d.Title = in.Title
	d.Cells = cells
	d.Modified = in.Modified
	return nil
}

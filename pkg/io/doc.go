// Package io reads and writes diagrams in their native JSON form.
//
// # JSON Format
//
// The JSON form is a direct dump of the diagram value, not a derived view:
//
//	{
//	  "title": "Architecture",
//	  "cells": [
//	    {"id": "node_1", "type": "node", "label": "API", "x": 0, "y": 0,
//	     "width": 120, "height": 60, "style": "rounded=1;whiteSpace=wrap;html=1;"},
//	    {"id": "edge_2", "type": "edge", "source": "node_1", "target": "node_3",
//	     "label": null, "style": "endArrow=classic;html=1;rounded=0;"}
//	  ],
//	  "modified": true
//	}
//
// Cell order is significant: it fixes XML document order and the id counter
// of cells appended after import.
//
// # Import
//
// Use [ImportJSON] to read a diagram from a file path, or [ReadJSON] to read
// from any io.Reader. Edges are not checked against nodes on import; call
// [diagram.Diagram.Validate] when dangling references must be rejected.
//
// # Export
//
// Use [ExportJSON] to write a diagram to a file, or [WriteJSON] to write to
// any io.Writer. Output is indented with two spaces and ends in a newline.
package io

// Package drawio encodes diagrams in the Draw.io XML formats.
//
// # Formats
//
// [EncodeModel] writes a bare mxGraphModel document:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<mxGraphModel dx="1326" dy="798" grid="1" ... pageWidth="850" pageHeight="1100">
//	  <root>
//	    <mxCell id="0"></mxCell>
//	    <mxCell id="1" parent="0"></mxCell>
//	    <mxCell id="node_1" value="A" style="..." parent="1" vertex="1">
//	      <mxGeometry x="0" y="0" width="100" height="50" as="geometry"></mxGeometry>
//	    </mxCell>
//	    <mxCell id="edge_2" style="..." parent="1" source="node_1" target="node_1" edge="1">
//	      <mxGeometry relative="1" as="geometry"></mxGeometry>
//	    </mxCell>
//	  </root>
//	</mxGraphModel>
//
// [EncodeFile] wraps the same model in the mxfile container that the Draw.io
// editor opens directly (.drawio files). The container carries a host, a
// modification timestamp, an agent tag, a schema version and a named diagram
// element.
//
// # Determinism
//
// Cells are written in insertion order and numbers use the shortest
// representation that round-trips. Encoding the same diagram twice yields
// identical bytes; for containers the only exception is the modified
// attribute, which can be pinned with [WithModified]. The diagram element id
// is derived from the title, so it is stable too.
//
// An edge without a label has no value attribute at all. Nodes always carry
// one, even when empty.
package drawio

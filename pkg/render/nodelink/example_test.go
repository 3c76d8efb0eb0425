package nodelink_test

import (
	"fmt"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/render/nodelink"
)

func ExampleToDOT() {
	d := diagram.New("")
	app := d.AddNode("app", 0, 0, diagram.WithSize(72, 36), diagram.WithNodeStyle("rounded=0;"))
	db := d.AddNode("db", 0, 100, diagram.WithSize(72, 36), diagram.WithNodeStyle("rounded=0;"))
	d.AddEdge(app.ID, db.ID)

	fmt.Print(nodelink.ToDOT(d, nodelink.Options{}))
	// Output:
	// digraph G {
	//   rankdir=TB;
	//   bgcolor="transparent";
	//   node [fontname="Arial", fontsize=12, style="filled"];
	//   ranksep=0.5;
	//   nodesep=0.3;
	//
	//   "node_1" [label="app", shape=box, width=1, height=0.5, fixedsize=true, style="filled", fillcolor="#dae8fc", color="#6c8ebf", fontcolor="#000000"];
	//   "node_2" [label="db", shape=box, width=1, height=0.5, fixedsize=true, style="filled", fillcolor="#dae8fc", color="#6c8ebf", fontcolor="#000000"];
	//
	//   "node_1" -> "node_2";
	// }
}

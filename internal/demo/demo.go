// Package demo builds the sample diagrams shipped with the CLI.
//
// Each builder returns a fresh diagram, so callers may mutate the result.
package demo

import (
	"sort"

	"github.com/timeless-residents/handson-drawio-api/pkg/diagram"
	"github.com/timeless-residents/handson-drawio-api/pkg/errors"
)

// Styles shared by the samples.
const (
	styleTerminal = "ellipse;whiteSpace=wrap;html=1;fillColor=#d5e8d4;strokeColor=#82b366;"
	styleProcess  = "rounded=1;whiteSpace=wrap;html=1;fillColor=#dae8fc;strokeColor=#6c8ebf;"
	styleDecision = "rhombus;whiteSpace=wrap;html=1;fillColor=#fff2cc;strokeColor=#d6b656;"
	styleError    = "rounded=1;whiteSpace=wrap;html=1;fillColor=#f8cecc;strokeColor=#b85450;"
	styleStore    = "shape=cylinder3;whiteSpace=wrap;html=1;boundedLbl=1;backgroundOutline=1;size=15;fillColor=#f5f5f5;strokeColor=#666666;fontColor=#333333;"

	orthogonal = "edgeStyle=orthogonalEdgeStyle;rounded=0;orthogonalLoop=1;jettySize=auto;html=1;"
	branch     = orthogonal + "align=center;verticalAlign=middle;"
)

// Builder creates one sample diagram.
type Builder func() *diagram.Diagram

var builders = map[string]Builder{
	"simple":    Simple,
	"datastore": Datastore,
	"flowchart": Flowchart,
}

// Names lists the available samples in sorted order.
func Names() []string {
	names := make([]string, 0, len(builders))
	for name := range builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get builds the named sample.
func Get(name string) (*diagram.Diagram, error) {
	b, ok := builders[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown demo %q (available: %v)", name, Names())
	}
	return b(), nil
}

// Simple is a five-node decision flow using the default styles. The failure
// branch sits left of the origin.
func Simple() *diagram.Diagram {
	d := diagram.New("Simple Flowchart")
	start := d.AddNode("Start", 100, 40, diagram.WithSize(120, 40))
	process := d.AddNode("Process Data", 100, 160)
	decision := d.AddNode("Decision", 100, 300)
	success := d.AddNode("End Success", 240, 420, diagram.WithSize(120, 40))
	failure := d.AddNode("End Failure", -40, 420, diagram.WithSize(120, 40))

	d.AddEdge(start.ID, process.ID)
	d.AddEdge(process.ID, decision.ID)
	d.AddEdge(decision.ID, success.ID, diagram.WithLabel("Yes"))
	d.AddEdge(decision.ID, failure.ID, diagram.WithLabel("No"))
	return d
}

// Datastore is a request-handling flow with a cylinder data store and dashed
// query edges.
func Datastore() *diagram.Diagram {
	d := diagram.New("Flowchart with Data Store")
	node := func(label string, x, y, w, h float64, style string) string {
		return d.AddNode(label, x, y, diagram.WithSize(w, h), diagram.WithNodeStyle(style)).ID
	}
	edge := func(src, dst, label, style string) {
		d.AddEdge(src, dst, diagram.WithLabel(label), diagram.WithEdgeStyle(style))
	}

	start := node("Start", 200, 40, 120, 40, styleTerminal)
	request := node("Get Request", 200, 120, 120, 60, styleProcess)
	validate := node("Validate Input", 200, 220, 120, 60, styleProcess)
	db := node("Database", 400, 320, 120, 80, styleStore)
	valid := node("Is Valid?", 200, 320, 120, 80, styleDecision)
	process := node("Process Request", 200, 430, 120, 60, styleProcess)
	response := node("Return Response", 200, 530, 120, 60, styleProcess)
	failure := node("Return Error", 40, 430, 120, 60, styleError)
	end := node("End", 200, 630, 120, 40, styleTerminal)

	edge(start, request, "", orthogonal)
	edge(request, validate, "", orthogonal)
	edge(validate, valid, "", orthogonal)
	edge(validate, db, "Query", orthogonal+"exitX=1;exitY=0.5;entryX=0.5;entryY=0;dashed=1;")
	edge(db, process, "Result", orthogonal+"exitX=0.5;exitY=1;entryX=1;entryY=0.5;dashed=1;")
	edge(valid, process, "Yes", branch+"fontStyle=1;fontColor=#009900;")
	edge(valid, failure, "No", branch+"fontStyle=1;fontColor=#990000;exitX=0;exitY=0.5;")
	edge(process, response, "", orthogonal)
	edge(failure, end, "", orthogonal+"exitX=0.5;exitY=1;entryX=0;entryY=0.5;")
	edge(response, end, "", orthogonal)
	return d
}

// Flowchart charts a small command dispatcher: read an argument, test it
// against each known example and run the match.
func Flowchart() *diagram.Diagram {
	d := diagram.New("main.py Program Flow")
	node := func(label string, x, y, w, h float64, style string) string {
		return d.AddNode(label, x, y, diagram.WithSize(w, h), diagram.WithNodeStyle(style)).ID
	}

	start := node("Start", 300, 40, 120, 40, styleTerminal)
	imports := node("Import modules and examples", 300, 120, 180, 60, styleProcess)
	args := node("Check if command line\narguments provided", 300, 220, 180, 60, styleDecision)
	name := node("Get example name\nfrom sys.argv[1]", 600, 220, 160, 60, styleProcess)

	checks := []struct{ check, run string }{
		{"example == 'simple'?", "Run\ncreate_simple_diagram()"},
		{"example == 'image'?", "Run\nexport_to_image()"},
		{"example == 'datastore'?", "Run\ncreate_datastore_diagram()"},
		{"example == 'drawio'?", "Run\nexport_to_drawio()"},
	}
	var checkIDs, runIDs []string
	for i, c := range checks {
		y := 320 + float64(i)*100
		checkIDs = append(checkIDs, node(c.check, 600, y, 160, 60, styleDecision))
		runIDs = append(runIDs, node(c.run, 800, y, 160, 60, styleProcess))
	}
	failure := node("Print error and\navailable examples", 600, 720, 160, 60, styleError)
	fallback := node("Run\ncreate_datastore_diagram()\n(default)", 300, 320, 180, 60, styleProcess)
	end := node("End", 450, 820, 120, 40, styleTerminal)

	link := func(src, dst, label string) {
		style := orthogonal
		if label != "" {
			style = branch
		}
		d.AddEdge(src, dst, diagram.WithLabel(label), diagram.WithEdgeStyle(style))
	}

	link(start, imports, "")
	link(imports, args, "")
	link(args, name, "Yes")
	link(args, fallback, "No")
	link(name, checkIDs[0], "")
	for i := range checkIDs {
		link(checkIDs[i], runIDs[i], "Yes")
		next := failure
		if i+1 < len(checkIDs) {
			next = checkIDs[i+1]
		}
		link(checkIDs[i], next, "No")
	}
	for _, id := range runIDs {
		link(id, end, "")
	}
	link(failure, end, "")
	link(fallback, end, "")
	return d
}

// Package pkg provides the libraries behind the drawio command.
//
// # Overview
//
// drawio builds diagrams in memory, saves them as Draw.io files and renders
// them to images without a browser or the diagrams.net editor. The pkg
// directory is organized into four areas:
//
//  1. Model - [diagram], [style] and [geometry]
//  2. Serialization - [drawio], [io] and [export]
//  3. Rendering - [render/scene], [render/svg], [render/paint],
//     [render/raster] and [render/nodelink]
//  4. Support - [pipeline], [cache], [config], [observability], [errors]
//
// # Architecture
//
// The typical data flow:
//
//	diagram.New / io.ImportJSON
//	         ↓
//	    [diagram] (ordered cells, ids, JSON)
//	         ↓
//	    [render/scene] (styles, bounds, routes, labels)
//	         ↓
//	    [render/svg] or [render/paint]
//	         ↓
//	    [render/raster] (PNG, JPEG, PDF)
//
// The XML side is independent of rendering: [drawio] encodes the same
// diagram as mxGraphModel XML or a .drawio container.
//
// # Quick Start
//
//	d := diagram.New("Checkout")
//	start := d.AddNode("Start", 200, 40, diagram.WithSize(120, 40))
//	pay := d.AddNode("Pay", 200, 120)
//	d.AddEdge(start.ID, pay.ID, diagram.WithLabel("next"))
//
//	xml, _ := export.Export(d, "drawio")
//	path, _ := export.ExportImage(ctx, d, "checkout.png", export.ImageOptions{})
//
// ExportImage never fails just because no rasterizer is installed: it
// writes an instructional placeholder and an HTML helper page instead, or
// paints the image in process when [export.ImageOptions] Native is set.
//
// # Testing
//
//	go test ./...              # All tests
//	go test ./pkg/render/...   # Renderers only
//	go test -run Example ./... # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/diagram
// [style]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/style
// [geometry]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/geometry
// [drawio]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/drawio
// [io]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/io
// [export]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/export
// [render/scene]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/render/scene
// [render/svg]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/render/svg
// [render/paint]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/render/paint
// [render/raster]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/render/raster
// [render/nodelink]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/cache
// [config]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/config
// [observability]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/observability
// [errors]: https://pkg.go.dev/github.com/timeless-residents/handson-drawio-api/pkg/errors
package pkg

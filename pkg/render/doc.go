// Package render groups the diagram renderers.
//
// # Overview
//
// Rendering starts from a [scene], which resolves styles, bounds, edge
// routes and label positions once. Two backends draw from it:
//
//   - [svg]: the reference output, written as text
//   - [paint]: an in-process raster painter used when no external
//     rasterizer is installed
//
// # Format Conversion
//
// The [raster] subpackage turns SVG into PNG, JPEG or PDF through an
// ordered list of collaborators (rsvg-convert, then headless Chrome). When
// all of them are missing it reports MissingRenderDependency and the caller
// decides how to degrade.
//
//	doc := svg.Render(d)
//	res, err := raster.Convert(ctx, raster.Defaults(), doc, raster.PNG, raster.Options{Scale: 2}, logger)
//
// # Graphviz Layout
//
// The [nodelink] subpackage ignores node coordinates and lets Graphviz lay
// the diagram out, keeping labels, shapes and colours.
//
//	dot := nodelink.ToDOT(d, nodelink.Options{})
//	doc, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineDot)
//
// [scene]: github.com/timeless-residents/handson-drawio-api/pkg/render/scene
// [svg]: github.com/timeless-residents/handson-drawio-api/pkg/render/svg
// [paint]: github.com/timeless-residents/handson-drawio-api/pkg/render/paint
// [raster]: github.com/timeless-residents/handson-drawio-api/pkg/render/raster
// [nodelink]: github.com/timeless-residents/handson-drawio-api/pkg/render/nodelink
package render

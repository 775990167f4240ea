// Package render exports a relation graph for inspection.
//
// # Formats
//
//   - JSON: nodes and edges, see [WriteJSON]
//   - DOT: Graphviz source, see [ToDOT]
//   - SVG: DOT rendered with the embedded Graphviz, see [RenderSVG]
//
// Nodes are labelled "name(version)". The root package is highlighted and
// packages outside the scope set are drawn dashed, so development-only
// subtrees stand out:
//
//	dot := render.ToDOT(d, render.Options{})
//	svg, err := render.RenderSVG(ctx, dot)
package render

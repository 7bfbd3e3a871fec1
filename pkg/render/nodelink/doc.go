// Package nodelink renders a connector walk as a node-link diagram.
//
// # Overview
//
// Each visited connector becomes a box labeled with its old id and the name
// it is given; arrows follow the walk in order. Connectors sharing a parent
// group are drawn in one cluster. When the walk stopped on a cycle, a dashed
// arrow points back at the connector it tried to revisit.
//
// # Usage
//
//	dot := nodelink.ToDOT(nodelink.FromResult(doc, res, connector.DefaultResolveOptions()), nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// # DOT Format
//
// The [ToDOT] function produces Graphviz DOT source that can be:
//
//   - Rendered directly via [RenderSVG]
//   - Saved and processed with external Graphviz tools
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink

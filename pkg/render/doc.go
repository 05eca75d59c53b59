// Package render serializes mark trees to SVG.
//
// Renderer writes any vdom tree as XML with sorted attributes, so output is
// deterministic and diff-friendly. Chart stacks one row per container, each
// row claiming its layout height, and wraps them in an <svg> root:
//
//	chart := render.NewChart(640).
//	    Add(render.RowOf(container, line.LayoutHeight()))
//	svg, err := render.NewRenderer(render.RendererConfig{}).RenderToString(chart.Node())
package render

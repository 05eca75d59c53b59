package render

import (
	"github.com/vango-dev/marks/pkg/selection"
	"github.com/vango-dev/marks/pkg/vdom"
)

// Row is one horizontal band of a chart.
type Row struct {
	// Node is the row content, drawn with its origin on the row's centre line.
	Node *vdom.VNode

	// Height is the vertical extent the row claims.
	Height float64
}

// RowOf builds a row from a container's marks.
func RowOf[T comparable](c *selection.Container[T], height float64) Row {
	return Row{Node: c.Node(), Height: height}
}

// Chart stacks rows top to bottom.
type Chart struct {
	Width      float64
	Title      string
	Background string
	Rows       []Row
}

// NewChart creates an empty chart of the given width.
func NewChart(width float64) *Chart {
	return &Chart{Width: width}
}

// Add appends rows and returns the chart.
func (c *Chart) Add(rows ...Row) *Chart {
	c.Rows = append(c.Rows, rows...)
	return c
}

// Height returns the sum of the row heights.
func (c *Chart) Height() float64 {
	h := 0.0
	for _, r := range c.Rows {
		h += r.Height
	}
	return h
}

// Node builds the <svg> tree. Row nodes are shared with their containers,
// so clone the result before keeping it across reconcile passes.
func (c *Chart) Node() *vdom.VNode {
	h := c.Height()
	root := vdom.SVG(
		vdom.XMLNS(),
		vdom.Width(c.Width),
		vdom.Height(h),
		vdom.ViewBox(0, 0, c.Width, h),
	)
	if c.Title != "" {
		root.Append(vdom.Title(vdom.Key("title"), c.Title))
	}
	if c.Background != "" {
		root.Append(vdom.Rect(vdom.Key("background"), vdom.Class("background"), vdom.Width(c.Width), vdom.Height(h), vdom.Fill(c.Background)))
	}
	y := 0.0
	for i, r := range c.Rows {
		root.Append(vdom.G(
			vdom.Class("row"),
			vdom.Key(rowKey(i)),
			vdom.Translate(0, y+r.Height/2),
			r.Node,
		))
		y += r.Height
	}
	return root
}

func rowKey(i int) string {
	return "row-" + vdom.AttrString(i)
}

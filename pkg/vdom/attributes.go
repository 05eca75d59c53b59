package vdom

import (
	"strconv"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Key sets the reconciliation key. It is not rendered.
func Key(key string) Attr { return attr("key", key) }

// Geometry attributes

func X(v float64) Attr      { return attr("x", v) }
func Y(v float64) Attr      { return attr("y", v) }
func R(v float64) Attr      { return attr("r", v) }
func Width(v float64) Attr  { return attr("width", v) }
func Height(v float64) Attr { return attr("height", v) }
func D(path string) Attr    { return attr("d", path) }
func Points(p string) Attr  { return attr("points", p) }

// ViewBox sets the viewBox attribute.
func ViewBox(minX, minY, w, h float64) Attr {
	return attr("viewBox", strings.Join([]string{
		formatFloat(minX), formatFloat(minY), formatFloat(w), formatFloat(h),
	}, " "))
}

// XMLNS sets the SVG namespace declaration.
func XMLNS() Attr { return attr("xmlns", "http://www.w3.org/2000/svg") }

// Translate sets transform to translate(x,y).
func Translate(x, y float64) Attr { return attr("transform", translateValue(x, y)) }

// translateValue formats a translate transform.
func translateValue(x, y float64) string {
	return "translate(" + formatFloat(x) + "," + formatFloat(y) + ")"
}

// Paint attributes

func Fill(c string) Attr            { return attr("fill", c) }
func Stroke(c string) Attr          { return attr("stroke", c) }
func StrokeWidth(w float64) Attr    { return attr("stroke-width", w) }
func FontSize(s float64) Attr       { return attr("font-size", s) }
func TextAnchor(anchor string) Attr { return attr("text-anchor", anchor) }

// formatFloat renders v with the shortest exact representation.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package symbol

import (
	"fmt"
	"math"
	"strings"

	"github.com/vango-dev/marks/pkg/vdom"
)

// Shape names a symbol outline.
type Shape string

const (
	Circle   Shape = "circle"
	Square   Shape = "square"
	Diamond  Shape = "diamond"
	Triangle Shape = "triangle"
	Cross    Shape = "cross"
)

// ParseShape resolves a shape by name.
func ParseShape(name string) (Shape, error) {
	switch s := Shape(strings.ToLower(name)); s {
	case Circle, Square, Diamond, Triangle, Cross:
		return s, nil
	case "":
		return Circle, nil
	default:
		return "", fmt.Errorf("unknown symbol shape %q", name)
	}
}

// node builds the outline of s with the given diameter, centred on 0,0.
func (s Shape) node(size float64, paint []any) *vdom.VNode {
	h := size / 2
	switch s {
	case Square:
		return vdom.Rect(append([]any{vdom.X(-h), vdom.Y(-h), vdom.Width(size), vdom.Height(size)}, paint...)...)
	case Diamond:
		return vdom.Polygon(append([]any{vdom.Points(points(0, -h, h, 0, 0, h, -h, 0))}, paint...)...)
	case Triangle:
		// Equilateral, pointing up, centroid on the origin.
		side := size * 2 / math.Sqrt(3)
		top := -size * 2 / 3
		base := size / 3
		return vdom.Polygon(append([]any{vdom.Points(points(0, top, side/2, base, -side/2, base))}, paint...)...)
	case Cross:
		t := size / 6
		d := fmt.Sprintf("M%s,%sH%sV%sH%sV%sH%sV%sH%sV%sH%sV%sZ",
			f(-h), f(-t), f(-t), f(-h), f(t), f(-t), f(h), f(t), f(t), f(h), f(-t), f(t))
		return vdom.Path(append([]any{vdom.D(d)}, paint...)...)
	default:
		return vdom.Circle(append([]any{vdom.R(h)}, paint...)...)
	}
}

func points(coords ...float64) string {
	parts := make([]string, 0, len(coords)/2)
	for i := 0; i+1 < len(coords); i += 2 {
		parts = append(parts, f(coords[i])+","+f(coords[i+1]))
	}
	return strings.Join(parts, " ")
}

func f(v float64) string {
	return vdom.AttrString(math.Round(v*1000) / 1000)
}

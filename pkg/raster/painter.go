package raster

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
	"github.com/vango-dev/marks/pkg/vdom"
	"golang.org/x/image/colornames"
)

// Painter rasterizes vdom trees.
type Painter struct {
	// Scale multiplies every coordinate, e.g. 2 for high density output.
	Scale float64

	// Background fills the canvas before painting. Empty leaves it
	// transparent.
	Background string
}

// NewPainter creates a painter at 1x scale on a white background.
func NewPainter() *Painter {
	return &Painter{Scale: 1, Background: "white"}
}

// EncodePNG paints root onto a width×height canvas and writes it as PNG.
func (p *Painter) EncodePNG(w io.Writer, root *vdom.VNode, width, height float64) error {
	s := p.Scale
	if s <= 0 {
		s = 1
	}
	pw, ph := int(math.Ceil(width*s)), int(math.Ceil(height*s))
	if pw <= 0 || ph <= 0 {
		return fmt.Errorf("raster: invalid canvas size %vx%v", width, height)
	}

	dc := gg.NewContext(pw, ph)
	defer dc.Close()

	if bg, ok := parseColor(p.Background); ok {
		dc.SetColor(bg)
		dc.DrawRectangle(0, 0, float64(pw), float64(ph))
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("raster: background: %w", err)
		}
	}
	dc.Scale(s, s)

	if err := p.paint(dc, root); err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func (p *Painter) paint(dc *gg.Context, node *vdom.VNode) error {
	if node == nil || node.Kind == vdom.KindText {
		return nil
	}
	if node.Kind == vdom.KindFragment {
		return p.children(dc, node)
	}

	dc.Push()
	defer dc.Pop()

	if x, y, ok := parseTranslate(node.Attr("transform")); ok {
		dc.Translate(x, y)
	}

	drawn := true
	switch node.Tag {
	case "circle":
		cx, _ := node.Float("cx")
		cy, _ := node.Float("cy")
		r, _ := node.Float("r")
		dc.DrawCircle(cx, cy, r)
	case "rect":
		x, _ := node.Float("x")
		y, _ := node.Float("y")
		w, _ := node.Float("width")
		h, _ := node.Float("height")
		dc.DrawRectangle(x, y, w, h)
	case "polygon":
		pts := parseNumbers(node.Attr("points"))
		if len(pts) < 4 {
			drawn = false
			break
		}
		dc.MoveTo(pts[0], pts[1])
		for i := 2; i+1 < len(pts); i += 2 {
			dc.LineTo(pts[i], pts[i+1])
		}
		dc.ClosePath()
	case "path":
		if err := tracePath(dc, node.Attr("d")); err != nil {
			return err
		}
	default:
		drawn = false
	}

	if drawn {
		if err := p.applyPaint(dc, node); err != nil {
			return err
		}
	}
	return p.children(dc, node)
}

func (p *Painter) children(dc *gg.Context, node *vdom.VNode) error {
	for _, c := range node.Children {
		if err := p.paint(dc, c); err != nil {
			return err
		}
	}
	return nil
}

// applyPaint fills then strokes the current path. SVG fills black when no
// fill is given.
func (p *Painter) applyPaint(dc *gg.Context, node *vdom.VNode) error {
	fill := node.Attr("fill")
	if fill == "" {
		fill = "black"
	}
	stroke, hasStroke := parseColor(node.Attr("stroke"))

	if c, ok := parseColor(fill); ok {
		dc.SetColor(c)
		var err error
		if hasStroke {
			err = dc.FillPreserve()
		} else {
			err = dc.Fill()
		}
		if err != nil {
			return fmt.Errorf("raster: fill <%s>: %w", node.Tag, err)
		}
	}
	if hasStroke {
		width, ok := node.Float("stroke-width")
		if !ok {
			width = 1
		}
		dc.SetColor(stroke)
		dc.SetLineWidth(width)
		if err := dc.Stroke(); err != nil {
			return fmt.Errorf("raster: stroke <%s>: %w", node.Tag, err)
		}
	}
	dc.ClearPath()
	return nil
}

// parseColor resolves "#rgb", "#rrggbb" and CSS colour names. "none" and
// unknown names report false.
func parseColor(s string) (color.Color, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	switch {
	case s == "" || s == "none":
		return nil, false
	case strings.HasPrefix(s, "#"):
		return gg.Hex(s).Color(), true
	}
	c, ok := colornames.Map[s]
	return c, ok
}

// parseTranslate reads a "translate(x,y)" or "translate(x y)" transform.
func parseTranslate(t string) (x, y float64, ok bool) {
	t = strings.TrimSpace(t)
	if !strings.HasPrefix(t, "translate(") || !strings.HasSuffix(t, ")") {
		return 0, 0, false
	}
	nums := parseNumbers(t[len("translate(") : len(t)-1])
	switch len(nums) {
	case 1:
		return nums[0], 0, true
	case 2:
		return nums[0], nums[1], true
	default:
		return 0, 0, false
	}
}

// parseNumbers splits a comma or space separated list of numbers.
func parseNumbers(s string) []float64 {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil
		}
		out = append(out, v)
	}
	return out
}

// tracePath follows an absolute-command path onto the context.
func tracePath(dc *gg.Context, d string) error {
	var cx, cy float64
	cmd := byte(0)
	var args []float64

	flush := func() error {
		switch cmd {
		case 0:
			return nil
		case 'M', 'L':
			if len(args)%2 != 0 || len(args) == 0 {
				return fmt.Errorf("raster: path %c needs coordinate pairs", cmd)
			}
			for i := 0; i < len(args); i += 2 {
				cx, cy = args[i], args[i+1]
				if cmd == 'M' && i == 0 {
					dc.MoveTo(cx, cy)
				} else {
					dc.LineTo(cx, cy)
				}
			}
		case 'H':
			for _, v := range args {
				cx = v
				dc.LineTo(cx, cy)
			}
		case 'V':
			for _, v := range args {
				cy = v
				dc.LineTo(cx, cy)
			}
		case 'Z':
			dc.ClosePath()
		default:
			return fmt.Errorf("raster: unsupported path command %q", cmd)
		}
		return nil
	}

	start := 0
	for i := 0; i <= len(d); i++ {
		if i < len(d) && !isCommand(d[i]) {
			continue
		}
		if cmd != 0 {
			args = parseNumbers(d[start:i])
		}
		if err := flush(); err != nil {
			return err
		}
		if i < len(d) {
			cmd = d[i]
			start = i + 1
		}
	}
	return nil
}

func isCommand(b byte) bool {
	switch b {
	case 'M', 'L', 'H', 'V', 'Z', 'm', 'l', 'h', 'v', 'z', 'C', 'c', 'Q', 'q', 'A', 'a', 'S', 's', 'T', 't':
		return true
	}
	return false
}

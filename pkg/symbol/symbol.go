package symbol

import (
	"github.com/vango-dev/marks/pkg/scatter"
	"github.com/vango-dev/marks/pkg/selection"
	"github.com/vango-dev/marks/pkg/vdom"
)

// Style holds the look of a symbol.
type Style struct {
	Shape       Shape
	Size        float64
	Fill        string
	Stroke      string
	StrokeWidth float64
	Padding     float64
}

// DefaultStyle is a small filled circle.
var DefaultStyle = Style{
	Shape:   Circle,
	Size:    8,
	Fill:    "steelblue",
	Padding: 4,
}

// Option configures a Style.
type Option func(*Style)

// WithShape sets the outline.
func WithShape(s Shape) Option {
	return func(st *Style) { st.Shape = s }
}

// WithSize sets the symbol diameter.
func WithSize(size float64) Option {
	return func(st *Style) { st.Size = size }
}

// WithFill sets the fill colour.
func WithFill(c string) Option {
	return func(st *Style) { st.Fill = c }
}

// WithStroke sets the outline colour and width.
func WithStroke(c string, width float64) Option {
	return func(st *Style) {
		st.Stroke = c
		st.StrokeWidth = width
	}
}

// WithPadding sets the vertical space reserved around the symbol.
func WithPadding(p float64) Option {
	return func(st *Style) { st.Padding = p }
}

// Symbol draws one shape per entering mark.
type Symbol[T comparable] struct {
	style Style
}

// New creates a Symbol renderer.
func New[T comparable](opts ...Option) *Symbol[T] {
	st := DefaultStyle
	for _, opt := range opts {
		opt(&st)
	}
	return &Symbol[T]{style: st}
}

// Style returns the renderer's style.
func (s *Symbol[T]) Style() Style {
	return s.style
}

// Render implements scatter.Renderer.
func (s *Symbol[T]) Render(enter []*selection.Mark[T], opts scatter.Collection[T]) {
	for _, m := range enter {
		m.SetNode(vdom.G(s.Shape()))
		m.SetX(opts.Series.XScale.Apply(m.Datum()))
	}
}

// Shape builds one symbol node.
func (s *Symbol[T]) Shape() *vdom.VNode {
	paint := []any{vdom.Class("symbol", string(s.style.Shape))}
	if s.style.Fill != "" {
		paint = append(paint, vdom.Fill(s.style.Fill))
	}
	if s.style.Stroke != "" {
		paint = append(paint, vdom.Stroke(s.style.Stroke), vdom.StrokeWidth(s.style.StrokeWidth))
	}
	return s.style.Shape.node(s.style.Size, paint)
}

// LayoutHeight implements scatter.LayoutHeighter.
func (s *Symbol[T]) LayoutHeight() float64 {
	return s.style.Size + 2*s.style.Padding
}

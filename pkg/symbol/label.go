package symbol

import (
	"fmt"

	"github.com/vango-dev/marks/pkg/scatter"
	"github.com/vango-dev/marks/pkg/selection"
	"github.com/vango-dev/marks/pkg/vdom"
)

// Label draws a text label above each entering mark and delegates the rest
// of the mark to the nested spec it is handed.
type Label[T comparable] struct {
	format   func(T) string
	fontSize float64
	offset   float64
}

// LabelOption configures a Label.
type LabelOption[T comparable] func(*Label[T])

// WithFormat sets how items are turned into label text.
func WithFormat[T comparable](fn func(T) string) LabelOption[T] {
	return func(l *Label[T]) { l.format = fn }
}

// WithFontSize sets the label font size.
func WithFontSize[T comparable](size float64) LabelOption[T] {
	return func(l *Label[T]) { l.fontSize = size }
}

// WithOffset sets how far above the mark origin the label baseline sits.
func WithOffset[T comparable](offset float64) LabelOption[T] {
	return func(l *Label[T]) { l.offset = offset }
}

// NewLabel creates a Label renderer.
func NewLabel[T comparable](opts ...LabelOption[T]) *Label[T] {
	l := &Label[T]{
		format:   func(d T) string { return fmt.Sprint(d) },
		fontSize: 10,
		offset:   8,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Render implements scatter.Renderer. With a nested spec in opts.Plot the
// nested renderer draws first and the label is appended to its node.
func (l *Label[T]) Render(enter []*selection.Mark[T], opts scatter.Collection[T]) {
	if nested := opts.Plot; nested != nil && nested.Renderer != nil {
		nested.Renderer.Render(enter, opts.Derive(nested.Plot))
	}
	for _, m := range enter {
		text := vdom.SVGText(
			vdom.Class("label"),
			vdom.Y(-l.offset),
			vdom.TextAnchor("middle"),
			vdom.FontSize(l.fontSize),
			l.format(m.Datum()),
		)
		if n := m.Node(); n != nil {
			n.Append(text)
		} else {
			m.SetNode(vdom.G(text))
		}
		m.SetX(opts.Series.XScale.Apply(m.Datum()))
	}
}

// LayoutHeight implements scatter.LayoutHeighter.
func (l *Label[T]) LayoutHeight() float64 {
	return l.fontSize + l.offset
}

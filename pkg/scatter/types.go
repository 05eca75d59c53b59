package scatter

import (
	"slices"

	"github.com/vango-dev/marks/pkg/scale"
	"github.com/vango-dev/marks/pkg/selection"
)

// Series carries the positional mapping of a collection.
type Series[T comparable] struct {
	XScale scale.Scale[T]
}

// Collection is the data bound to one container for one pass.
type Collection[T comparable] struct {
	// Data is the ordered item sequence. Items are joined to marks by ==.
	Data []T

	// Series holds the current scale.
	Series Series[T]

	// Plot overrides the line's default RendererSpec for this pass.
	Plot *RendererSpec[T]
}

// Derive returns the view handed to a renderer: the same data and series
// with Plot narrowed to the nested spec. Data is copied so the renderer
// cannot alias the caller's slice.
func (c Collection[T]) Derive(nested *RendererSpec[T]) Collection[T] {
	return Collection[T]{
		Data:   slices.Clone(c.Data),
		Series: c.Series,
		Plot:   nested,
	}
}

// Renderer draws entering marks. It must install each mark's node and set
// its initial position from opts.Series.XScale.
type Renderer[T comparable] interface {
	Render(enter []*selection.Mark[T], opts Collection[T])
}

// RenderFunc adapts a function to Renderer.
type RenderFunc[T comparable] func(enter []*selection.Mark[T], opts Collection[T])

// Render implements Renderer.
func (f RenderFunc[T]) Render(enter []*selection.Mark[T], opts Collection[T]) {
	f(enter, opts)
}

// LayoutHeighter is implemented by renderers that declare a preferred
// vertical extent.
type LayoutHeighter interface {
	LayoutHeight() float64
}

// RendererSpec bundles a renderer with an optional nested spec that is
// forwarded to the renderer for its own delegation.
type RendererSpec[T comparable] struct {
	Renderer Renderer[T]
	Plot     *RendererSpec[T]
}

// Spec is shorthand for a RendererSpec without nesting.
func Spec[T comparable](r Renderer[T]) *RendererSpec[T] {
	return &RendererSpec[T]{Renderer: r}
}

// Memo is the per-container state a Line keeps between passes.
type Memo[T comparable] struct {
	OldScale scale.Scale[T]
}

// Binding pairs a container with the collection bound to it.
type Binding[T comparable] struct {
	Container  *selection.Container[T]
	Collection Collection[T]
}

package scatter

import (
	"log/slog"

	"github.com/vango-dev/marks/pkg/selection"
	"github.com/vango-dev/marks/pkg/transition"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultMemoKey is the container memo key a Line stores its Memo under.
const DefaultMemoKey = "scatter"

const tracerName = "github.com/vango-dev/marks/pkg/scatter"

// Line is a scatter of marks along a horizontal line.
type Line[T comparable] struct {
	plot *RendererSpec[T]

	layoutHeight    float64
	hasLayoutHeight bool

	scheduler *transition.Scheduler
	logger    *slog.Logger
	metrics   *Metrics
	tracer    trace.Tracer
	memoKey   string
}

// Option configures a Line.
type Option[T comparable] func(*Line[T])

// WithPlot sets the default RendererSpec.
func WithPlot[T comparable](spec *RendererSpec[T]) Option[T] {
	return func(l *Line[T]) {
		l.plot = spec
	}
}

// WithRenderer sets the default renderer without a nested spec.
func WithRenderer[T comparable](r Renderer[T]) Option[T] {
	return func(l *Line[T]) {
		l.plot = Spec(r)
	}
}

// WithScheduler sets the scheduler that runs update transitions. Without
// one, persisting marks jump straight to their new position.
func WithScheduler[T comparable](s *transition.Scheduler) Option[T] {
	return func(l *Line[T]) {
		l.scheduler = s
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger[T comparable](logger *slog.Logger) Option[T] {
	return func(l *Line[T]) {
		l.logger = logger
	}
}

// WithMetrics records per-pass counts into m.
func WithMetrics[T comparable](m *Metrics) Option[T] {
	return func(l *Line[T]) {
		l.metrics = m
	}
}

// WithTracer sets the tracer. Defaults to the global tracer provider.
func WithTracer[T comparable](tracer trace.Tracer) Option[T] {
	return func(l *Line[T]) {
		l.tracer = tracer
	}
}

// WithMemoKey sets the container memo key. Two lines drawing into the same
// container need distinct keys.
func WithMemoKey[T comparable](key string) Option[T] {
	return func(l *Line[T]) {
		l.memoKey = key
	}
}

// New creates a Line.
func New[T comparable](opts ...Option[T]) *Line[T] {
	l := &Line[T]{
		memoKey: DefaultMemoKey,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.logger == nil {
		l.logger = slog.Default()
	}
	if l.tracer == nil {
		l.tracer = otel.Tracer(tracerName)
	}
	return l
}

// Plot returns the default RendererSpec.
func (l *Line[T]) Plot() *RendererSpec[T] {
	return l.plot
}

// SetPlot replaces the default RendererSpec.
func (l *Line[T]) SetPlot(spec *RendererSpec[T]) *Line[T] {
	l.plot = spec
	return l
}

// Renderer returns the default spec's renderer, or nil.
func (l *Line[T]) Renderer() Renderer[T] {
	if l.plot == nil {
		return nil
	}
	return l.plot.Renderer
}

// SetRenderer replaces the default spec with one holding only r. Any nested
// spec configured before is dropped.
func (l *Line[T]) SetRenderer(r Renderer[T]) *Line[T] {
	l.plot = Spec(r)
	return l
}

// SetRenderFunc is SetRenderer for a plain function.
func (l *Line[T]) SetRenderFunc(fn func(enter []*selection.Mark[T], opts Collection[T])) *Line[T] {
	return l.SetRenderer(RenderFunc[T](fn))
}

// LayoutHeight returns the explicit override when one is set, otherwise the
// default renderer's declared height, otherwise 0.
func (l *Line[T]) LayoutHeight() float64 {
	if l.hasLayoutHeight {
		return l.layoutHeight
	}
	if l.plot != nil {
		if lh, ok := l.plot.Renderer.(LayoutHeighter); ok {
			return lh.LayoutHeight()
		}
	}
	return 0
}

// SetLayoutHeight stores an explicit height override. Any value counts,
// including 0, which hides the renderer's own height rather than falling
// back to it. Use ClearLayoutHeight to delegate again.
func (l *Line[T]) SetLayoutHeight(h float64) *Line[T] {
	l.layoutHeight = h
	l.hasLayoutHeight = true
	return l
}

// ClearLayoutHeight removes the override so LayoutHeight delegates again.
func (l *Line[T]) ClearLayoutHeight() *Line[T] {
	l.layoutHeight = 0
	l.hasLayoutHeight = false
	return l
}

// Scheduler returns the transition scheduler, or nil.
func (l *Line[T]) Scheduler() *transition.Scheduler {
	return l.scheduler
}

package scatter

import (
	"context"
	"time"

	"github.com/vango-dev/marks/pkg/selection"
	"go.opentelemetry.io/otel/attribute"
)

// Reconcile performs one enter/update/exit pass of coll against c.
func (l *Line[T]) Reconcile(ctx context.Context, c *selection.Container[T], coll Collection[T]) {
	ctx, span := l.tracer.Start(ctx, "scatter.reconcile")
	defer span.End()
	start := time.Now()

	j := selection.Bind(c, coll.Data)

	spec := coll.Plot
	if spec == nil {
		spec = l.plot
	}

	thisScale := coll.Series.XScale
	oldScale := thisScale
	if v, ok := c.Memo(l.memoKey); ok {
		if memo, ok := v.(Memo[T]); ok {
			oldScale = memo.OldScale
		}
	}
	c.SetMemo(l.memoKey, Memo[T]{OldScale: thisScale})

	if len(j.Enter) > 0 {
		if spec == nil || spec.Renderer == nil {
			panic("scatter: no renderer configured for entering marks")
		}
		spec.Renderer.Render(j.Enter, coll.Derive(spec.Plot))
	}

	animated := 0
	for _, m := range j.Update {
		from := oldScale.Apply(m.Datum())
		to := thisScale.Apply(m.Datum())
		m.SetX(from)
		switch {
		case l.scheduler == nil:
			m.SetX(to)
		case from == to:
			l.scheduler.Cancel(m)
		default:
			l.scheduler.Schedule(m, from, to)
			animated++
		}
	}

	if l.scheduler != nil {
		for _, m := range j.Exit {
			l.scheduler.Cancel(m)
		}
	}
	c.Remove(j.Exit...)

	span.SetAttributes(
		attribute.String("container", c.Name()),
		attribute.Int("entered", len(j.Enter)),
		attribute.Int("updated", len(j.Update)),
		attribute.Int("exited", len(j.Exit)),
		attribute.Int("animated", animated),
	)
	if l.metrics != nil {
		l.metrics.observe(c.Name(), len(j.Enter), len(j.Update), len(j.Exit), animated, time.Since(start))
	}
	l.logger.DebugContext(ctx, "reconciled",
		"container", c.Name(),
		"entered", len(j.Enter),
		"updated", len(j.Update),
		"exited", len(j.Exit),
		"animated", animated,
	)
}

// ReconcileAll runs one pass per binding, in order.
func (l *Line[T]) ReconcileAll(ctx context.Context, bindings ...Binding[T]) {
	for _, b := range bindings {
		l.Reconcile(ctx, b.Container, b.Collection)
	}
}

// Package scatter reconciles a container of marks with a data collection
// laid out along a horizontal scale.
//
// A Line is configured once with a default RendererSpec and then invoked once
// per container per frame:
//
//	line := scatter.New[float64](
//	    scatter.WithRenderer[float64](symbol.New[float64]()),
//	    scatter.WithScheduler[float64](transition.NewScheduler()),
//	)
//	line.Reconcile(ctx, container, scatter.Collection[float64]{
//	    Data:   []float64{10, 20, 30},
//	    Series: scatter.Series[float64]{XScale: scale.Multiply(2)},
//	})
//
// Each pass performs enter/update/exit:
//
//   - Enter: new items get placeholder marks, which are handed to the
//     renderer together with a derived collection whose Plot is the spec's
//     nested Plot. The renderer draws the mark and sets its first position.
//   - Update: persisting marks snap to the previous pass's scale, then
//     animate to the current scale on the transition scheduler.
//   - Exit: marks for vanished items are removed immediately.
//
// The scale used by a pass is remembered in the container's memo table, so
// the next pass knows where marks started. On a container's first pass the
// previous scale is the current one and nothing animates.
//
// Reconcile performs no validation. A missing renderer, a scale that yields
// NaN, or duplicate items are caller errors with undefined visual results.
package scatter

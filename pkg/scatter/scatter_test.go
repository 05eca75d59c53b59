package scatter

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
	"github.com/vango-dev/marks/pkg/scale"
	"github.com/vango-dev/marks/pkg/selection"
	"github.com/vango-dev/marks/pkg/transition"
	"github.com/vango-dev/marks/pkg/vdom"
)

// recorder is a renderer that draws a bare <g> per mark and remembers what
// it was asked to draw.
type recorder struct {
	calls  int
	drawn  []float64
	nested []*RendererSpec[float64]
	height float64
}

func (r *recorder) Render(enter []*selection.Mark[float64], opts Collection[float64]) {
	r.calls++
	r.nested = append(r.nested, opts.Plot)
	for _, m := range enter {
		m.SetNode(vdom.G())
		m.SetX(opts.Series.XScale.Apply(m.Datum()))
		r.drawn = append(r.drawn, m.Datum())
	}
}

func (r *recorder) LayoutHeight() float64 { return r.height }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestLine(r Renderer[float64], s *transition.Scheduler) *Line[float64] {
	opts := []Option[float64]{
		WithRenderer[float64](r),
		WithLogger[float64](quietLogger()),
	}
	if s != nil {
		opts = append(opts, WithScheduler[float64](s))
	}
	return New(opts...)
}

func linearScheduler() *transition.Scheduler {
	return transition.NewScheduler(
		transition.WithDuration(100*time.Millisecond),
		transition.WithEase(ease.Linear),
	)
}

func collection(data []float64, s scale.Scale[float64]) Collection[float64] {
	return Collection[float64]{Data: data, Series: Series[float64]{XScale: s}}
}

func positions(c *selection.Container[float64]) []float64 {
	var out []float64
	for _, m := range c.Marks() {
		out = append(out, m.X())
	}
	return out
}

func TestReconcileEntersEveryNewItem(t *testing.T) {
	r := &recorder{}
	line := newTestLine(r, nil)
	c := selection.NewContainer[float64]("plot")

	line.Reconcile(context.Background(), c, collection([]float64{10, 20, 30}, scale.Multiply(2)))

	if r.calls != 1 {
		t.Fatalf("renderer calls = %d, want 1", r.calls)
	}
	if !reflect.DeepEqual(r.drawn, []float64{10, 20, 30}) {
		t.Errorf("drawn = %v", r.drawn)
	}
	if got := positions(c); !reflect.DeepEqual(got, []float64{20, 40, 60}) {
		t.Errorf("positions = %v, want [20 40 60]", got)
	}
}

func TestReconcileScenarioDataChange(t *testing.T) {
	r := &recorder{}
	s := linearScheduler()
	line := newTestLine(r, s)
	c := selection.NewContainer[float64]("plot")
	ctx := context.Background()
	x2 := scale.Multiply(2)

	line.Reconcile(ctx, c, collection([]float64{10, 20, 30}, x2))
	m20, _ := c.Find(20)
	m30, _ := c.Find(30)
	m10, _ := c.Find(10)

	line.Reconcile(ctx, c, collection([]float64{20, 30, 40}, x2))

	if got := selection.Data(c.Marks()); !reflect.DeepEqual(got, []float64{20, 30, 40}) {
		t.Fatalf("container data = %v, want [20 30 40]", got)
	}
	if m10.Attached() {
		t.Error("mark for 10 should be removed")
	}
	if got, _ := c.Find(20); got != m20 {
		t.Error("mark for 20 should be reused")
	}
	if got, _ := c.Find(30); got != m30 {
		t.Error("mark for 30 should be reused")
	}
	if !reflect.DeepEqual(r.drawn, []float64{10, 20, 30, 40}) {
		t.Errorf("drawn = %v, want only 40 added", r.drawn)
	}
	if got := positions(c); !reflect.DeepEqual(got, []float64{40, 60, 80}) {
		t.Errorf("positions = %v, want [40 60 80]", got)
	}
	if s.Active() != 0 {
		t.Errorf("Active = %d, want no transitions for an unchanged scale", s.Active())
	}
}

func TestReconcileScenarioScaleChange(t *testing.T) {
	r := &recorder{}
	s := linearScheduler()
	line := newTestLine(r, s)
	c := selection.NewContainer[float64]("plot")
	ctx := context.Background()
	data := []float64{20, 30, 40}

	line.Reconcile(ctx, c, collection(data, scale.Multiply(2)))
	// Knock the marks off their positions to prove the snap uses the old
	// scale rather than whatever coordinate the mark holds.
	for _, m := range c.Marks() {
		m.SetX(-1)
	}

	line.Reconcile(ctx, c, collection(data, scale.Multiply(3)))

	if got := positions(c); !reflect.DeepEqual(got, []float64{40, 60, 80}) {
		t.Errorf("positions after snap = %v, want [40 60 80]", got)
	}
	if s.Active() != 3 {
		t.Fatalf("Active = %d, want 3", s.Active())
	}

	s.Step(50 * time.Millisecond)
	mid := positions(c)
	for i, want := range []float64{50, 75, 100} {
		if mid[i] < want-0.01 || mid[i] > want+0.01 {
			t.Errorf("midway position[%d] = %v, want ~%v", i, mid[i], want)
		}
	}

	s.Step(100 * time.Millisecond)
	if got := positions(c); !reflect.DeepEqual(got, []float64{60, 90, 120}) {
		t.Errorf("positions at completion = %v, want [60 90 120]", got)
	}
}

func TestReconcileFirstRenderDoesNotAnimate(t *testing.T) {
	s := linearScheduler()
	line := newTestLine(&recorder{}, s)
	c := selection.NewContainer[float64]("plot")

	line.Reconcile(context.Background(), c, collection([]float64{1, 2}, scale.Multiply(5)))

	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0 on first render", s.Active())
	}
	v, ok := c.Memo(DefaultMemoKey)
	if !ok {
		t.Fatal("memo not stored")
	}
	if memo := v.(Memo[float64]); memo.OldScale != scale.Scale[float64](scale.Multiply(5)) {
		t.Errorf("memo scale = %v, want the scale of this pass", memo.OldScale)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	r := &recorder{}
	s := linearScheduler()
	line := newTestLine(r, s)
	c := selection.NewContainer[float64]("plot")
	coll := collection([]float64{3, 1, 2}, scale.NewLinear(0, 4, 0, 400))
	ctx := context.Background()

	line.Reconcile(ctx, c, coll)
	before := positions(c)
	marks := c.Marks()

	line.Reconcile(ctx, c, coll)

	if r.calls != 1 {
		t.Errorf("renderer calls = %d, want 1", r.calls)
	}
	if !reflect.DeepEqual(c.Marks(), marks) {
		t.Error("marks changed identity")
	}
	s.Flush()
	if got := positions(c); !reflect.DeepEqual(got, before) {
		t.Errorf("positions = %v, want %v", got, before)
	}
}

func TestReconcileMemoTracksPreviousPass(t *testing.T) {
	line := newTestLine(&recorder{}, linearScheduler())
	c := selection.NewContainer[float64]("plot")
	ctx := context.Background()

	line.Reconcile(ctx, c, collection([]float64{10}, scale.Multiply(1)))
	line.Reconcile(ctx, c, collection([]float64{10}, scale.Multiply(2)))
	line.Reconcile(ctx, c, collection([]float64{10}, scale.Multiply(4)))

	m, _ := c.Find(10)
	if m.X() != 20 {
		t.Errorf("snap position = %v, want 20 from the previous pass's scale", m.X())
	}
	to, ok := line.Scheduler().Pending(m)
	if !ok || to != 40 {
		t.Errorf("pending = %v %v, want 40", to, ok)
	}
}

func TestReconcileWithoutSchedulerJumps(t *testing.T) {
	line := newTestLine(&recorder{}, nil)
	c := selection.NewContainer[float64]("plot")
	ctx := context.Background()

	line.Reconcile(ctx, c, collection([]float64{10}, scale.Multiply(1)))
	line.Reconcile(ctx, c, collection([]float64{10}, scale.Multiply(3)))

	if got := positions(c); !reflect.DeepEqual(got, []float64{30}) {
		t.Errorf("positions = %v, want [30]", got)
	}
}

func TestReconcileExitCancelsTransition(t *testing.T) {
	s := linearScheduler()
	line := newTestLine(&recorder{}, s)
	c := selection.NewContainer[float64]("plot")
	ctx := context.Background()

	line.Reconcile(ctx, c, collection([]float64{1, 2}, scale.Multiply(1)))
	line.Reconcile(ctx, c, collection([]float64{1, 2}, scale.Multiply(2)))
	if s.Active() != 2 {
		t.Fatalf("Active = %d, want 2", s.Active())
	}

	line.Reconcile(ctx, c, collection([]float64{1}, scale.Multiply(2)))

	if s.Active() != 0 {
		t.Errorf("Active = %d, want 0: exit cancels and unchanged scale interrupts", s.Active())
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}
}

func TestReconcilePlotOverrideAndNestedSpec(t *testing.T) {
	def := &recorder{}
	override := &recorder{}
	inner := Spec[float64](&recorder{})
	line := newTestLine(def, nil)
	line.SetPlot(&RendererSpec[float64]{Renderer: def, Plot: inner})
	ctx := context.Background()

	c1 := selection.NewContainer[float64]("a")
	line.Reconcile(ctx, c1, collection([]float64{1}, scale.Multiply(1)))
	if def.calls != 1 || def.nested[0] != inner {
		t.Errorf("default renderer calls=%d nested=%v, want 1 and the inner spec", def.calls, def.nested)
	}

	c2 := selection.NewContainer[float64]("b")
	coll := collection([]float64{1}, scale.Multiply(1))
	coll.Plot = Spec[float64](override)
	line.Reconcile(ctx, c2, coll)
	if override.calls != 1 || def.calls != 1 {
		t.Errorf("override calls=%d default calls=%d, want 1 1", override.calls, def.calls)
	}
	if override.nested[0] != nil {
		t.Error("override spec has no nested plot")
	}
	if coll.Plot.Renderer != override {
		t.Error("caller's collection must not be modified")
	}
}

func TestReconcileDerivedDataIsCopied(t *testing.T) {
	data := []float64{1, 2}
	var seen []float64
	line := New[float64](WithLogger[float64](quietLogger())).SetRenderFunc(
		func(enter []*selection.Mark[float64], opts Collection[float64]) {
			opts.Data[0] = 99
			seen = opts.Data
			for _, m := range enter {
				m.SetNode(vdom.G())
			}
		})

	line.Reconcile(context.Background(), selection.NewContainer[float64]("p"), collection(data, scale.Multiply(1)))

	if data[0] != 1 {
		t.Error("renderer wrote through to the caller's data")
	}
	if len(seen) != 2 {
		t.Errorf("renderer saw %d items, want 2", len(seen))
	}
}

func TestReconcileAll(t *testing.T) {
	r := &recorder{}
	line := newTestLine(r, nil)
	a := selection.NewContainer[float64]("a")
	b := selection.NewContainer[float64]("b")

	line.ReconcileAll(context.Background(),
		Binding[float64]{Container: a, Collection: collection([]float64{1, 2}, scale.Multiply(1))},
		Binding[float64]{Container: b, Collection: collection([]float64{3}, scale.Multiply(1))},
	)

	if a.Len() != 2 || b.Len() != 1 || r.calls != 2 {
		t.Errorf("a=%d b=%d calls=%d, want 2 1 2", a.Len(), b.Len(), r.calls)
	}
}

func TestReconcileSeparateMemoKeys(t *testing.T) {
	c := selection.NewContainer[float64]("shared")
	a := New(WithRenderer[float64](&recorder{}), WithMemoKey[float64]("a"), WithLogger[float64](quietLogger()))
	b := New(WithRenderer[float64](&recorder{}), WithMemoKey[float64]("b"), WithLogger[float64](quietLogger()))
	ctx := context.Background()

	a.Reconcile(ctx, c, collection([]float64{1}, scale.Multiply(1)))
	b.Reconcile(ctx, c, collection([]float64{1}, scale.Multiply(7)))

	va, _ := c.Memo("a")
	vb, _ := c.Memo("b")
	if va.(Memo[float64]).OldScale.Apply(1) != 1 || vb.(Memo[float64]).OldScale.Apply(1) != 7 {
		t.Error("memo keys should keep each line's scale separate")
	}
}

func TestReconcileMissingRendererPanics(t *testing.T) {
	line := New[float64](WithLogger[float64](quietLogger()))
	defer func() {
		if recover() == nil {
			t.Error("expected panic when entering without a renderer")
		}
	}()
	line.Reconcile(context.Background(), selection.NewContainer[float64]("p"), collection([]float64{1}, scale.Multiply(1)))
}

func TestReconcileEmptyDataWithoutRenderer(t *testing.T) {
	line := New[float64](WithLogger[float64](quietLogger()))
	c := selection.NewContainer[float64]("p")

	line.Reconcile(context.Background(), c, collection(nil, scale.Multiply(1)))

	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0", c.Len())
	}
}

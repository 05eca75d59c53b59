package scatter

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-dev/marks/pkg/scale"
	"github.com/vango-dev/marks/pkg/selection"
)

func metricCounterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	if m.Counter == nil {
		t.Fatal("expected counter metric to have Counter field")
	}
	return m.GetCounter().GetValue()
}

func TestMetricsRecordPasses(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))
	line := New(
		WithRenderer[float64](&recorder{}),
		WithMetrics[float64](m),
		WithScheduler[float64](linearScheduler()),
		WithLogger[float64](quietLogger()),
	)
	c := selection.NewContainer[float64]("plot")
	ctx := context.Background()

	line.Reconcile(ctx, c, collection([]float64{10, 20, 30}, scale.Multiply(2)))
	line.Reconcile(ctx, c, collection([]float64{20, 30, 40}, scale.Multiply(3)))

	checks := []struct {
		name string
		c    *prometheus.CounterVec
		want float64
	}{
		{"passes", m.passes, 2},
		{"entered", m.entered, 4},
		{"updated", m.updated, 2},
		{"exited", m.exited, 1},
		{"animated", m.animated, 2},
	}
	for _, tt := range checks {
		if got := metricCounterValue(t, tt.c.WithLabelValues("plot")); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "test_scatter_reconcile_duration_seconds" {
			found = true
		}
	}
	if !found {
		t.Error("duration histogram not registered")
	}
}

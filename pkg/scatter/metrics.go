package scatter

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures reconcile metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "marks").
	Namespace string

	// Subsystem is the metrics subsystem (default: "scatter").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for pass duration.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures reconcile metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "marks",
		Subsystem: "scatter",
		// Passes are sub-millisecond for typical mark counts.
		Buckets:  prometheus.ExponentialBuckets(0.00005, 4, 8),
		Registry: prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors updated by Reconcile.
type Metrics struct {
	passes   *prometheus.CounterVec
	entered  *prometheus.CounterVec
	updated  *prometheus.CounterVec
	exited   *prometheus.CounterVec
	animated *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics registers reconcile collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, []string{"container"})
	}

	return &Metrics{
		passes:   counter("reconcile_passes_total", "Total number of reconcile passes"),
		entered:  counter("marks_entered_total", "Total number of marks created"),
		updated:  counter("marks_updated_total", "Total number of marks repositioned"),
		exited:   counter("marks_exited_total", "Total number of marks removed"),
		animated: counter("transitions_scheduled_total", "Total number of update transitions scheduled"),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "reconcile_duration_seconds",
			Help:        "Reconcile pass duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

func (m *Metrics) observe(container string, entered, updated, exited, animated int, d time.Duration) {
	m.passes.WithLabelValues(container).Inc()
	m.entered.WithLabelValues(container).Add(float64(entered))
	m.updated.WithLabelValues(container).Add(float64(updated))
	m.exited.WithLabelValues(container).Add(float64(exited))
	m.animated.WithLabelValues(container).Add(float64(animated))
	m.duration.Observe(d.Seconds())
}

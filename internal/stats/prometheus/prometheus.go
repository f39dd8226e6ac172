// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/discochess/sweep/internal/stats"
)

// DurationBuckets spans one millisecond to roughly nine minutes, which
// covers both tiny inputs and high iteration counts on large files.
var DurationBuckets = prometheus.ExponentialBuckets(0.001, 2, 20)

// Collector implements stats.Collector using Prometheus metrics.
type Collector struct {
	registry    prometheus.Registerer
	constLabels prometheus.Labels
	buckets     map[string][]float64

	mu         sync.RWMutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*Collector)

// WithConstLabels attaches labels to every metric the collector creates.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Collector) {
		c.constLabels = labels
	}
}

// WithBuckets overrides the histogram buckets for one metric name.
func WithBuckets(name string, buckets []float64) Option {
	return func(c *Collector) {
		c.buckets[name] = buckets
	}
}

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
// stats.MetricCompressTime uses DurationBuckets unless overridden.
func New(registry prometheus.Registerer, opts ...Option) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	c := &Collector{
		registry:   registry,
		buckets:    map[string][]float64{stats.MetricCompressTime: DurationBuckets},
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	counter := getOrCreate(c, c.counters, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Name:        name,
			Help:        stats.Help(name),
			ConstLabels: c.constLabels,
		})
	})
	counter.Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	gauge := getOrCreate(c, c.gauges, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        name,
			Help:        stats.Help(name),
			ConstLabels: c.constLabels,
		})
	})
	gauge.Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	histogram := getOrCreate(c, c.histograms, name, func() prometheus.Histogram {
		buckets, ok := c.buckets[name]
		if !ok {
			buckets = prometheus.DefBuckets
		}
		return prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        name,
			Help:        stats.Help(name),
			ConstLabels: c.constLabels,
			Buckets:     buckets,
		})
	})
	histogram.Observe(value)
}

// getOrCreate returns the cached metric for name, creating and registering
// it on first use. A metric already registered elsewhere under the same
// descriptor is adopted instead.
func getOrCreate[M prometheus.Collector](c *Collector, cache map[string]M, name string, create func() M) M {
	c.mu.RLock()
	m, ok := cache[name]
	c.mu.RUnlock()
	if ok {
		return m
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok = cache[name]; ok {
		return m
	}

	m = create()
	if err := c.registry.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m = existing
			}
		}
		// Any other registration failure leaves an unexported but usable metric.
	}
	cache[name] = m
	return m
}

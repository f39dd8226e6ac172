// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the sweep.
const (
	// Runner metrics.
	MetricCompressions   = "sweep_compressions_total"
	MetricCompressTime   = "sweep_compress_seconds"
	MetricIterations     = "sweep_iterations"
	MetricCompressedSize = "sweep_compressed_bytes"
	MetricSavedSpace     = "sweep_saved_bytes"

	// Input metrics.
	MetricInputSize = "sweep_input_bytes"
)

// Help returns a human readable description of a metric name.
// Unknown names describe themselves.
func Help(name string) string {
	switch name {
	case MetricCompressions:
		return "Number of completed compression invocations."
	case MetricCompressTime:
		return "Wall-clock duration of a single compression invocation."
	case MetricIterations:
		return "Iteration count of the most recent invocation."
	case MetricCompressedSize:
		return "Compressed size of the most recent invocation in bytes."
	case MetricSavedSpace:
		return "Bytes saved by the most recent invocation."
	case MetricInputSize:
		return "Size of the input buffer in bytes."
	default:
		return name
	}
}

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}

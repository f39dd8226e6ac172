// Package measure defines the per-invocation measurement record and the
// sinks it is emitted to.
package measure

import (
	"errors"
	"time"
)

// Record describes one compression invocation. Records are emitted as soon
// as they are produced and are never retained.
type Record struct {
	// Iterations is the engine effort used for this invocation.
	Iterations uint64
	// Repetition is the 1-based index within the repetitions for Iterations.
	Repetition uint32
	// Format names the engine's output container.
	Format string
	// Elapsed is the wall-clock time spent inside the engine.
	Elapsed time.Duration
	// OriginalSize is the input length in bytes.
	OriginalSize int
	// CompressedSize is the output length in bytes.
	CompressedSize int
}

// SavedSpace returns OriginalSize minus CompressedSize. The result is
// negative when the engine expanded the input.
func (r Record) SavedSpace() int64 {
	return int64(r.OriginalSize) - int64(r.CompressedSize)
}

// Sink receives records.
type Sink interface {
	// Emit publishes a single record. An error aborts the sweep.
	Emit(rec Record) error
}

// Nop is a sink that discards every record.
type Nop struct{}

// Compile-time check that Nop implements Sink.
var _ Sink = Nop{}

// Emit discards rec.
func (Nop) Emit(Record) error { return nil }

// SinkFunc adapts a function to Sink.
type SinkFunc func(Record) error

// Emit calls f(rec).
func (f SinkFunc) Emit(rec Record) error { return f(rec) }

type multiSink []Sink

// Multi returns a sink that emits to every sink in order. All sinks see the
// record even if an earlier one fails; the errors are joined.
func Multi(sinks ...Sink) Sink {
	switch len(sinks) {
	case 0:
		return Nop{}
	case 1:
		return sinks[0]
	}
	return multiSink(sinks)
}

func (m multiSink) Emit(rec Record) error {
	var errs []error
	for _, s := range m {
		if err := s.Emit(rec); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

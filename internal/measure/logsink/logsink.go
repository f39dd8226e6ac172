// Package logsink emits measurement records as structured zap entries.
package logsink

import (
	"go.uber.org/zap"

	"github.com/discochess/sweep/internal/measure"
)

// Message is the log message used for every record.
const Message = "compressed"

// Compile-time check that Sink implements measure.Sink.
var _ measure.Sink = (*Sink)(nil)

// Sink writes one Info entry per record.
type Sink struct {
	logger *zap.Logger
}

// New returns a sink writing to logger.
// If logger is nil, a no-op logger is used.
func New(logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{logger: logger}
}

// Emit logs rec with the fields iterations, elapsed, original_size,
// compressed_size, saved_space, repetition and format.
func (s *Sink) Emit(rec measure.Record) error {
	s.logger.Info(Message,
		zap.Uint64("iterations", rec.Iterations),
		zap.Duration("elapsed", rec.Elapsed),
		zap.Int("original_size", rec.OriginalSize),
		zap.Int("compressed_size", rec.CompressedSize),
		zap.Int64("saved_space", rec.SavedSpace()),
		zap.Uint32("repetition", rec.Repetition),
		zap.String("format", rec.Format),
	)
	return nil
}

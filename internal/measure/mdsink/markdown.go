// Package mdsink streams measurement records as a Markdown table.
package mdsink

import (
	"fmt"
	"io"
	"time"

	"github.com/discochess/sweep/internal/measure"
)

// Compile-time check that Sink implements measure.Sink.
var _ measure.Sink = (*Sink)(nil)

// Sink writes a Markdown document: a header, a parameter list and then one
// table row per record as records arrive.
type Sink struct {
	w           io.Writer
	now         func() time.Time
	wroteHeader bool
}

// Header describes the sweep being reported.
type Header struct {
	Title         string
	Input         string
	Format        string
	MinIterations uint64
	MaxIterations uint64
	Step          uint64
	Repetitions   uint32
}

// New creates a new Markdown sink writing to w.
func New(w io.Writer) *Sink {
	return &Sink{w: w, now: time.Now}
}

// WriteHeader writes the document title and the sweep parameters.
func (s *Sink) WriteHeader(h Header) error {
	ew := &errWriter{w: s.w}
	ew.printf("# %s\n\n", h.Title)
	ew.printf("Generated: %s\n\n", s.now().Format(time.RFC3339))
	ew.printf("- **Input:** %s\n", h.Input)
	ew.printf("- **Format:** %s\n", h.Format)
	ew.printf("- **Iterations:** %d to %d, step %d\n", h.MinIterations, h.MaxIterations, h.Step)
	ew.printf("- **Repetitions:** %d\n\n", h.Repetitions)
	if ew.err != nil {
		return ew.err
	}
	return s.writeTableHeader()
}

// Emit appends one table row, writing the table header first if needed.
func (s *Sink) Emit(rec measure.Record) error {
	if err := s.writeTableHeader(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(s.w, "| %d | %d | %s | %d | %d | %d | %.2f%% |\n",
		rec.Iterations, rec.Repetition, rec.Elapsed.Round(time.Microsecond),
		rec.OriginalSize, rec.CompressedSize, rec.SavedSpace(), ratio(rec))
	return err
}

func (s *Sink) writeTableHeader() error {
	if s.wroteHeader {
		return nil
	}
	s.wroteHeader = true

	ew := &errWriter{w: s.w}
	ew.printf("| Iterations | Repetition | Elapsed | Original | Compressed | Saved | Ratio |\n")
	ew.printf("|-----------:|-----------:|--------:|---------:|-----------:|------:|------:|\n")
	return ew.err
}

// ratio returns the compressed size as a percentage of the original.
func ratio(rec measure.Record) float64 {
	if rec.OriginalSize == 0 {
		return 0
	}
	return 100 * float64(rec.CompressedSize) / float64(rec.OriginalSize)
}

// errWriter remembers the first write error and skips later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

// Package sweep benchmarks a compression engine across a range of
// iteration counts.
//
// Example usage:
//
//	eng, err := zopfliengine.New(engine.FormatGzip)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	runner, err := sweep.New(sweep.DefaultConfig(),
//	    sweep.WithEngine(eng),
//	    sweep.WithSink(logsink.New(logger)),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := runner.Run(ctx, input); err != nil {
//	    log.Fatal(err)
//	}
package sweep

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/sweep/internal/codec"
	"github.com/discochess/sweep/internal/engine"
	"github.com/discochess/sweep/internal/measure"
	"github.com/discochess/sweep/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrInvalidConfig indicates a Config that cannot be swept.
	ErrInvalidConfig = errors.New("sweep: invalid configuration")

	// ErrNoEngine indicates no engine was provided.
	ErrNoEngine = errors.New("sweep: no engine provided")

	// ErrVerify indicates engine output that does not decode to the input.
	ErrVerify = errors.New("sweep: output does not round-trip")
)

// Runner executes a sweep. Runs are strictly sequential; a Runner must not
// be used by more than one goroutine at a time.
type Runner struct {
	cfg      Config
	engine   engine.Engine
	sink     measure.Sink
	verifier codec.Codec
	stats    stats.Collector
	logger   *zap.Logger
}

// New validates cfg and creates a Runner with the given options.
func New(cfg Config, opts ...Option) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt.apply(&o)
	}

	if o.engine == nil {
		return nil, ErrNoEngine
	}

	r := &Runner{
		cfg:      cfg,
		engine:   o.engine,
		sink:     measure.Multi(o.sinks...),
		verifier: o.verifier,
		stats:    o.stats,
		logger:   o.logger,
	}

	r.logger.Debug("runner initialized",
		zap.Uint64("minIterations", cfg.MinIterations),
		zap.Uint64("maxIterations", cfg.MaxIterations),
		zap.Uint64("step", cfg.Step),
		zap.Uint32("repetitions", cfg.Repetitions),
		zap.Stringer("format", r.engine.Format()),
		zap.Bool("verify", r.verifier != nil),
	)

	return r, nil
}

// Config returns the sweep configuration.
func (r *Runner) Config() Config {
	return r.cfg
}

// Run compresses input once per repetition for every iteration count in the
// sweep and emits a record after each compression. The first error aborts
// the sweep. ctx is checked between compressions; a compression that has
// started always runs to completion.
func (r *Runner) Run(ctx context.Context, input []byte) error {
	r.stats.SetGauge(stats.MetricInputSize, int64(len(input)))
	r.logger.Debug("sweep started",
		zap.Int("inputSize", len(input)),
		zap.Uint64("points", r.cfg.Points()),
		zap.Uint64("invocations", r.cfg.Invocations()),
	)

	start := time.Now()
	var completed uint64
	err := r.cfg.each(func(iterations uint64) error {
		for i := uint32(0); i < r.cfg.Repetitions; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := r.compress(input, iterations, i+1); err != nil {
				return err
			}
			completed++
		}
		return nil
	})
	if err != nil {
		r.logger.Debug("sweep aborted",
			zap.Uint64("completed", completed),
			zap.Error(err),
		)
		return err
	}

	r.logger.Debug("sweep finished",
		zap.Uint64("completed", completed),
		zap.Duration("total", time.Since(start)),
	)
	return nil
}

// compress performs and reports a single invocation.
func (r *Runner) compress(input []byte, iterations uint64, repetition uint32) error {
	start := time.Now()
	out, err := r.engine.Compress(input, iterations)
	elapsed := time.Since(start)
	if err != nil {
		return fmt.Errorf("compressing with %d iterations: %w", iterations, err)
	}

	if r.verifier != nil {
		if err := verify(r.verifier, out, input); err != nil {
			return fmt.Errorf("verifying %d iterations: %w", iterations, err)
		}
	}

	rec := measure.Record{
		Iterations:     iterations,
		Repetition:     repetition,
		Format:         r.engine.Format().String(),
		Elapsed:        elapsed,
		OriginalSize:   len(input),
		CompressedSize: len(out),
	}

	r.stats.IncCounter(stats.MetricCompressions, 1)
	r.stats.ObserveHistogram(stats.MetricCompressTime, elapsed.Seconds())
	r.stats.SetGauge(stats.MetricIterations, int64(min(iterations, uint64(1<<63-1))))
	r.stats.SetGauge(stats.MetricCompressedSize, int64(rec.CompressedSize))
	r.stats.SetGauge(stats.MetricSavedSpace, rec.SavedSpace())

	if err := r.sink.Emit(rec); err != nil {
		return fmt.Errorf("emitting record: %w", err)
	}
	return nil
}

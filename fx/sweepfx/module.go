// Package sweepfx provides an fx module for a zopfli sweep runner.
package sweepfx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/sweep"
	"github.com/discochess/sweep/internal/codec"
	"github.com/discochess/sweep/internal/codec/flatecodec"
	"github.com/discochess/sweep/internal/codec/gzipcodec"
	"github.com/discochess/sweep/internal/codec/zlibcodec"
	"github.com/discochess/sweep/internal/engine"
	"github.com/discochess/sweep/internal/engine/zopfliengine"
	"github.com/discochess/sweep/internal/measure"
	"github.com/discochess/sweep/internal/measure/logsink"
	"github.com/discochess/sweep/internal/stats"
	"github.com/discochess/sweep/internal/stats/logger"
)

// Config holds configuration for the runner.
type Config struct {
	// Sweep is the sweep to run.
	Sweep sweep.Config

	// Format is the engine output format. Default is gzip.
	Format engine.Format

	// BlockSplittingMax caps zopfli's block count.
	// Default is zopfliengine.DefaultBlockSplittingMax.
	BlockSplittingMax int

	// Verify decodes every output and fails on mismatch.
	Verify bool
}

// Module provides a *sweep.Runner backed by zopfli.
// Requires a Config and a *zap.Logger to be provided. Additional sinks can
// be contributed to the "sweep.sinks" value group.
var Module = fx.Module("sweep",
	fx.Provide(
		newStatsCollector,
		newEngine,
		fx.Annotate(newLogSink, fx.ResultTags(`group:"sweep.sinks"`)),
		newRunner,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("sweep.stats"))
}

func newEngine(cfg Config) (engine.Engine, error) {
	limit := cfg.BlockSplittingMax
	if limit <= 0 {
		limit = zopfliengine.DefaultBlockSplittingMax
	}
	return zopfliengine.New(cfg.Format, zopfliengine.WithBlockSplittingMax(limit))
}

func newLogSink(log *zap.Logger) measure.Sink {
	return logsink.New(log.Named("sweep"))
}

// Params holds dependencies for creating the runner.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Engine    engine.Engine
	Sinks     []measure.Sink `group:"sweep.sinks"`
}

// Result holds the provided runner.
type Result struct {
	fx.Out

	Runner *sweep.Runner
}

func newRunner(p Params) (Result, error) {
	opts := []sweep.Option{
		sweep.WithEngine(p.Engine),
		sweep.WithStats(p.Collector),
		sweep.WithLogger(p.Logger.Named("sweep.runner")),
	}
	for _, s := range p.Sinks {
		opts = append(opts, sweep.WithSink(s))
	}
	if p.Config.Verify {
		opts = append(opts, sweep.WithVerifier(verifierFor(p.Config.Format)))
	}

	runner, err := sweep.New(p.Config.Sweep, opts...)
	if err != nil {
		return Result{}, err
	}
	return Result{Runner: runner}, nil
}

func verifierFor(f engine.Format) codec.Codec {
	switch f {
	case engine.FormatZlib:
		return zlibcodec.New()
	case engine.FormatDeflate:
		return flatecodec.New()
	default:
		return gzipcodec.New()
	}
}

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/discochess/sweep"
	"github.com/discochess/sweep/internal/codec"
	"github.com/discochess/sweep/internal/codec/flatecodec"
	"github.com/discochess/sweep/internal/codec/gzipcodec"
	"github.com/discochess/sweep/internal/codec/noopcodec"
	"github.com/discochess/sweep/internal/codec/zlibcodec"
	"github.com/discochess/sweep/internal/codec/zstdcodec"
	"github.com/discochess/sweep/internal/engine"
	"github.com/discochess/sweep/internal/engine/zopfliengine"
	"github.com/discochess/sweep/internal/measure"
	"github.com/discochess/sweep/internal/measure/logsink"
	"github.com/discochess/sweep/internal/measure/mdsink"
	"github.com/discochess/sweep/internal/source"
	"github.com/discochess/sweep/internal/source/filesource"
	"github.com/discochess/sweep/internal/source/gcssource"
	"github.com/discochess/sweep/internal/source/httpsource"
	"github.com/discochess/sweep/internal/source/s3source"
	"github.com/discochess/sweep/internal/stats"
	"github.com/discochess/sweep/internal/stats/logger"
	promstats "github.com/discochess/sweep/internal/stats/prometheus"
)

// Record output modes.
const (
	outputLog      = "log"
	outputMarkdown = "markdown"
)

// execute runs one sweep. Records go to stdout; in markdown mode logs go to
// stderr so the table stays clean.
func execute(ctx context.Context, f flagValues, stdout, stderr io.Writer) error {
	cfg := sweep.Config{
		MinIterations: f.minIterations,
		MaxIterations: f.maxIterations,
		Step:          f.step,
		Repetitions:   f.repetitions,
		Path:          f.file,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if f.file == "" {
		return fmt.Errorf("%w: no input file", sweep.ErrInvalidConfig)
	}

	format, err := engine.ParseFormat(f.format)
	if err != nil {
		return err
	}

	logOut := stdout
	switch f.output {
	case outputLog:
	case outputMarkdown:
		logOut = stderr
	default:
		return fmt.Errorf("unknown output %q: want %s or %s", f.output, outputLog, outputMarkdown)
	}

	log, err := newLogger(logOut, f.logFormat, f.verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	if info, ok := debug.ReadBuildInfo(); ok {
		if reason := unrepresentativeBuild(info); reason != "" {
			log.Warn("timings from this build are not representative", zap.String("reason", reason))
		}
	}

	eng, err := zopfliengine.New(format, zopfliengine.WithBlockSplittingMax(f.blockSplittingMax))
	if err != nil {
		return fmt.Errorf("creating engine: %w", err)
	}

	input, err := loadInput(ctx, f.file, f.decodeInput, log)
	if err != nil {
		return err
	}

	var collector stats.Collector = logger.New(log.Named("stats"))
	if f.metricsAddr != "" {
		reg := newRegistry()
		collector = promstats.New(reg, promstats.WithConstLabels(prometheus.Labels{"format": format.String()}))

		srv, err := serveMetrics(f.metricsAddr, reg, log)
		if err != nil {
			return err
		}
		defer srv.shutdown()
	}

	var sink measure.Sink
	switch f.output {
	case outputMarkdown:
		md := mdsink.New(stdout)
		if err := md.WriteHeader(mdsink.Header{
			Title:         "zopfli iteration sweep",
			Input:         f.file,
			Format:        format.String(),
			MinIterations: cfg.MinIterations,
			MaxIterations: cfg.MaxIterations,
			Step:          cfg.Step,
			Repetitions:   cfg.Repetitions,
		}); err != nil {
			return fmt.Errorf("writing report header: %w", err)
		}
		sink = md
	default:
		sink = logsink.New(log)
	}

	opts := []sweep.Option{
		sweep.WithEngine(eng),
		sweep.WithSink(sink),
		sweep.WithStats(collector),
		sweep.WithLogger(log.Named("runner")),
	}
	if f.verify {
		opts = append(opts, sweep.WithVerifier(codecForFormat(format)))
	}

	runner, err := sweep.New(cfg, opts...)
	if err != nil {
		return err
	}

	if f.baseline {
		size, err := sweep.Baseline(codecForFormat(format), input)
		if err != nil {
			return fmt.Errorf("measuring baseline: %w", err)
		}
		log.Info("baseline",
			zap.String("format", format.String()),
			zap.Int("original_size", len(input)),
			zap.Int("compressed_size", size),
			zap.Int("saved_space", len(input)-size),
		)
	}

	return runner.Run(ctx, input)
}

// loadInput reads the input once, decoding it by extension if asked.
func loadInput(ctx context.Context, location string, decode bool, log *zap.Logger) ([]byte, error) {
	src, err := openSource(ctx, location)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := src.ReadInput(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", location, err)
	}
	log.Debug("input loaded", zap.String("location", location), zap.Int("size", len(data)))

	if !decode {
		return data, nil
	}

	c := codecForExtension(location)
	r, err := c.Reader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", location, err)
	}
	defer r.Close()

	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", location, err)
	}
	log.Debug("input decoded",
		zap.String("extension", c.Extension()),
		zap.Int("size", len(decoded)),
	)
	return decoded, nil
}

func openSource(ctx context.Context, location string) (source.Source, error) {
	loc, err := source.ParseLocation(location)
	if err != nil {
		return nil, err
	}

	switch loc.Scheme {
	case source.SchemeGCS:
		return gcssource.New(ctx, loc.Bucket, loc.Key)
	case source.SchemeS3:
		return s3source.New(ctx, loc.Bucket, loc.Key)
	case source.SchemeHTTP:
		return httpsource.New(loc.Key), nil
	default:
		return filesource.New(loc.Key)
	}
}

// codecForFormat returns the decoder matching the engine's output.
func codecForFormat(f engine.Format) codec.Codec {
	switch f {
	case engine.FormatZlib:
		return zlibcodec.New()
	case engine.FormatDeflate:
		return flatecodec.New()
	default:
		return gzipcodec.New()
	}
}

// codecForExtension picks a decoder from the input's file extension.
// Unknown extensions are read as-is.
func codecForExtension(location string) codec.Codec {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(location), ".")) {
	case "zst", "zstd":
		return zstdcodec.New()
	case "gz", "gzip":
		return gzipcodec.New()
	case "zz", "zlib":
		return zlibcodec.New()
	case "deflate":
		return flatecodec.New()
	default:
		return noopcodec.New()
	}
}

package sweep

import (
	"go.uber.org/zap"

	"github.com/discochess/sweep/internal/codec"
	"github.com/discochess/sweep/internal/engine"
	"github.com/discochess/sweep/internal/measure"
	"github.com/discochess/sweep/internal/stats"
)

// Option configures a Runner.
type Option interface {
	apply(*options)
}

// options holds the runner configuration.
type options struct {
	engine   engine.Engine
	sinks    []measure.Sink
	verifier codec.Codec
	stats    stats.Collector
	logger   *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		stats:  stats.NewNoop(),
		logger: zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithEngine sets the compression engine. Required.
func WithEngine(e engine.Engine) Option {
	return optionFunc(func(o *options) {
		o.engine = e
	})
}

// WithSink adds a destination for measurement records. May be given more
// than once; records go to every sink in the order added.
// If no sink is set, records are discarded.
func WithSink(s measure.Sink) Option {
	return optionFunc(func(o *options) {
		o.sinks = append(o.sinks, s)
	})
}

// WithVerifier decodes every engine output with c and fails the sweep if it
// does not reproduce the input.
func WithVerifier(c codec.Codec) Option {
	return optionFunc(func(o *options) {
		o.verifier = c
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger used for diagnostics. Records are not written
// here; use WithSink.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}

package sweep

import (
	"fmt"
	"math/bits"
)

// Default sweep parameters.
const (
	DefaultMinIterations uint64 = 100
	DefaultMaxIterations uint64 = 500
	DefaultStep          uint64 = 25
	DefaultRepetitions   uint32 = 1
)

// Config describes a sweep. It is immutable once a Runner has been built
// from it.
type Config struct {
	// MinIterations is the first iteration count tried. Must be positive.
	MinIterations uint64
	// MaxIterations is the inclusive upper bound. A value below
	// MinIterations is valid and yields an empty sweep.
	MaxIterations uint64
	// Step is added to the iteration count after each value. Must be positive.
	Step uint64
	// Repetitions is the number of invocations per value. Must be positive.
	Repetitions uint32
	// Path names the input. It is informational to the Runner, which is
	// handed the input bytes directly.
	Path string
}

// DefaultConfig returns a Config with the default sweep parameters and no
// input path.
func DefaultConfig() Config {
	return Config{
		MinIterations: DefaultMinIterations,
		MaxIterations: DefaultMaxIterations,
		Step:          DefaultStep,
		Repetitions:   DefaultRepetitions,
	}
}

// Validate reports whether the sweep can run. All failures wrap
// ErrInvalidConfig.
func (c Config) Validate() error {
	if c.MinIterations == 0 {
		return fmt.Errorf("%w: minimum iterations must be positive", ErrInvalidConfig)
	}
	if c.Step == 0 {
		return fmt.Errorf("%w: step must be positive", ErrInvalidConfig)
	}
	if c.Repetitions == 0 {
		return fmt.Errorf("%w: repetitions must be positive", ErrInvalidConfig)
	}
	return nil
}

// Points returns the number of distinct iteration counts in the sweep.
func (c Config) Points() uint64 {
	if c.Step == 0 || c.MinIterations > c.MaxIterations {
		return 0
	}
	return (c.MaxIterations-c.MinIterations)/c.Step + 1
}

// Invocations returns the total number of compressions the sweep performs,
// saturating at the largest uint64.
func (c Config) Invocations() uint64 {
	hi, lo := bits.Mul64(c.Points(), uint64(c.Repetitions))
	if hi != 0 {
		return ^uint64(0)
	}
	return lo
}

// each calls fn with every iteration count in ascending order, stopping at
// the first error. The progression never wraps past the largest uint64.
func (c Config) each(fn func(iterations uint64) error) error {
	if c.Step == 0 {
		return fmt.Errorf("%w: step must be positive", ErrInvalidConfig)
	}
	for n := c.MinIterations; n <= c.MaxIterations; n += c.Step {
		if err := fn(n); err != nil {
			return err
		}
		if c.MaxIterations-n < c.Step {
			break
		}
	}
	return nil
}

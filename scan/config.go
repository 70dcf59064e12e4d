package scan

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"gonum.org/v1/gonum/floats"

	"github.com/rabbott99/statmech-ising/jackknife"
	"github.com/rabbott99/statmech-ising/sample"
)

// ErrBadConfig indicates an unusable scan configuration.
var ErrBadConfig = errors.New("scan: invalid config")

// Config describes a temperature scan.
//
//   - Size:        linear lattice size L (> 0).
//   - TMin, TMax:  first and last temperature (0 < TMin ≤ TMax).
//   - TStep:       temperature increment (> 0).
//   - Field:       external field strength h.
//   - Seed:        base seed; 0 selects rng.DefaultSeed.
//   - Hot:         random (true) or aligned +1 (false) start.
//   - Sampling:    sweep and sample budget per chain.
//   - Concurrency: maximum chains in flight; ≤ 0 means GOMAXPROCS.
type Config struct {
	Size        int
	TMin        float64
	TMax        float64
	TStep       float64
	Field       float64
	Seed        int64
	Hot         bool
	Sampling    sample.Options
	Concurrency int
}

// DefaultConfig returns the production scan: T from 0.015 to 4.5 in steps
// of 0.015 on a 16×16 lattice, hot start, zero field.
func DefaultConfig() Config {
	return Config{
		Size:     16,
		TMin:     0.015,
		TMax:     4.5,
		TStep:    0.015,
		Hot:      true,
		Sampling: sample.DefaultOptions(),
	}
}

// MaxTemperatures caps the number of grid points a Config may produce.
const MaxTemperatures = 1 << 20

// Validate reports ErrBadConfig, or sample.ErrBadOptions for the sampling
// budget, wrapped with the offending field. A scan always reduces its
// chains, so fewer than two samples also wraps jackknife.ErrTooFewSamples.
func (c Config) Validate() error {
	finite := func(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
	switch {
	case c.Size <= 0:
		return fmt.Errorf("size=%d: %w", c.Size, ErrBadConfig)
	case !finite(c.TMin) || c.TMin <= 0:
		return fmt.Errorf("tmin=%g: %w", c.TMin, ErrBadConfig)
	case !finite(c.TMax) || c.TMax < c.TMin:
		return fmt.Errorf("tmax=%g: %w", c.TMax, ErrBadConfig)
	case !finite(c.TStep) || c.TStep <= 0:
		return fmt.Errorf("tstep=%g: %w", c.TStep, ErrBadConfig)
	case !finite(c.Field):
		return fmt.Errorf("field=%g: %w", c.Field, ErrBadConfig)
	}
	if steps := c.steps(); !(steps < MaxTemperatures) {
		return fmt.Errorf("tstep=%g gives %g temperatures, max %d: %w",
			c.TStep, steps+1, MaxTemperatures, ErrBadConfig)
	}
	if err := c.Sampling.Validate(); err != nil {
		return err
	}
	if c.Sampling.Samples < 2 {
		return fmt.Errorf("samples=%d: %w: %w", c.Sampling.Samples, ErrBadConfig, jackknife.ErrTooFewSamples)
	}
	return nil
}

// steps is the rounded number of TStep increments between TMin and TMax.
// It is NaN or +Inf for an unusable grid.
func (c Config) steps() float64 {
	return math.Round((c.TMax - c.TMin) / c.TStep)
}

// Temperatures returns the n = round((TMax−TMin)/TStep)+1 evenly spaced
// points starting at TMin with spacing TStep, or nil when the grid fails
// the checks of Validate.
func (c Config) Temperatures() []float64 {
	steps := c.steps()
	if !(steps >= 0 && steps < MaxTemperatures) {
		return nil
	}
	n := int(steps) + 1
	ts := make([]float64, n)
	if n == 1 {
		ts[0] = c.TMin
		return ts
	}
	return floats.Span(ts, c.TMin, c.TMin+float64(n-1)*c.TStep)
}

func (c Config) workers() int {
	if c.Concurrency > 0 {
		return c.Concurrency
	}
	return runtime.GOMAXPROCS(0)
}

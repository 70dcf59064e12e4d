package sample

import (
	"context"
	"math/rand"

	"github.com/rabbott99/statmech-ising/lattice"
	"github.com/rabbott99/statmech-ising/metropolis"
)

// Run thermalizes l, then records opts.Samples measurements separated by
// opts.Separation sweeps. l is evolved in place and r is the chain's only
// random source.
//
// Errors:
//   - ErrBadOptions from opts.Validate.
//   - metropolis.ErrNonPositiveBeta for beta ≤ 0; l is untouched.
//
// Complexity: O(opts.TotalSweeps()·V + opts.Samples·V).
func Run(l *lattice.Spins, beta, field float64, opts Options, r *rand.Rand) ([]RawSample, error) {
	samples, _, err := RunContext(context.Background(), l, beta, field, opts, r)
	return samples, err
}

// RunContext is Run with cancellation between sweeps and acceptance
// statistics over every sweep of the run. Cancellation yields ctx.Err();
// the chain and its stream are then left mid-run.
func RunContext(ctx context.Context, l *lattice.Spins, beta, field float64, opts Options, r *rand.Rand) ([]RawSample, metropolis.Stats, error) {
	var stats metropolis.Stats
	if err := opts.Validate(); err != nil {
		return nil, stats, err
	}
	if !(beta > 0) {
		return nil, stats, metropolis.ErrNonPositiveBeta
	}

	sweeps := func(n int) error {
		for i := 0; i < n; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			st, err := metropolis.Sweep(l, beta, field, r)
			if err != nil {
				return err
			}
			stats.Add(st)
		}
		return nil
	}

	if err := sweeps(opts.Thermalization); err != nil {
		return nil, stats, err
	}

	samples := make([]RawSample, 0, opts.Samples)
	for i := 0; i < opts.Samples; i++ {
		if err := sweeps(opts.Separation); err != nil {
			return nil, stats, err
		}
		samples = append(samples, Measure(l, field))
	}

	return samples, stats, nil
}

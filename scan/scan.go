package scan

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/rabbott99/statmech-ising/jackknife"
	"github.com/rabbott99/statmech-ising/lattice"
	"github.com/rabbott99/statmech-ising/rng"
	"github.com/rabbott99/statmech-ising/sample"
)

// Row is the reduced result of one chain.
type Row struct {
	Temperature float64
	Estimate    jackknife.Estimate
	Acceptance  float64
}

// Run executes the scan described by cfg and returns one Row per
// temperature, in increasing temperature order. A nil logger discards
// progress output.
//
// Errors:
//   - ErrBadConfig / sample.ErrBadOptions from cfg.Validate.
//   - ErrBadConfig wrapping jackknife.ErrTooFewSamples when cfg.Sampling.Samples < 2,
//     reported before any chain runs.
//   - ctx.Err() if ctx is cancelled mid-scan.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) ([]Row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fill := lattice.Cold(1)
	if cfg.Hot {
		fill = lattice.Random(cfg.Seed)
	}
	start, err := lattice.New(cfg.Size, fill)
	if err != nil {
		return nil, err
	}

	temps := cfg.Temperatures()
	rows := make([]Row, len(temps))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers())
	for i, T := range temps {
		i, T := i, T
		g.Go(func() error {
			row, err := runChain(ctx, cfg, start.Clone(), T, uint64(i))
			if err != nil {
				return fmt.Errorf("T=%g: %w", T, err)
			}
			rows[i] = row
			logger.Debug("chain finished",
				"T", T,
				"E", row.Estimate.Value.Energy,
				"acceptance", row.Acceptance)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return rows, nil
}

// runChain samples and reduces a single temperature.
func runChain(ctx context.Context, cfg Config, l *lattice.Spins, T float64, stream uint64) (Row, error) {
	samples, stats, err := sample.RunContext(ctx, l, 1/T, cfg.Field, cfg.Sampling, rng.Derive(cfg.Seed, stream))
	if err != nil {
		return Row{}, err
	}
	est, err := jackknife.Reduce(samples, l.Volume(), T)
	if err != nil {
		return Row{}, err
	}

	return Row{Temperature: T, Estimate: est, Acceptance: stats.AcceptanceRate()}, nil
}

// Command ising runs a Metropolis temperature scan of the 2D Ising model
// and prints one row per temperature:
//
//	T  E  C  M  chi  dE  dC  dM  dchi
//
// where the d-columns are jackknife errors.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rabbott99/statmech-ising/plot"
	"github.com/rabbott99/statmech-ising/scan"
	"github.com/rabbott99/statmech-ising/store"
)

func main() {
	def := scan.DefaultConfig()
	var (
		size    = flag.Int("L", def.Size, "linear lattice size")
		tmin    = flag.Float64("tmin", def.TMin, "first temperature")
		tmax    = flag.Float64("tmax", def.TMax, "last temperature")
		tstep   = flag.Float64("tstep", def.TStep, "temperature step")
		field   = flag.Float64("field", def.Field, "external field strength")
		seed    = flag.Int64("seed", def.Seed, "random seed (0 selects the default seed)")
		hot     = flag.Bool("hot", def.Hot, "random start instead of all spins up")
		therm   = flag.Int("therm", def.Sampling.Thermalization, "thermalization sweeps")
		sep     = flag.Int("sep", def.Sampling.Separation, "sweeps between measurements")
		n       = flag.Int("n", def.Sampling.Samples, "measurements per temperature")
		jobs    = flag.Int("j", 0, "parallel chains (0 = GOMAXPROCS)")
		dbPath  = flag.String("db", "", "SQLite file to store results in")
		plotDir = flag.String("plot", "", "directory to write PNG charts to")
		verbose = flag.Bool("v", false, "log every finished chain")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg := scan.Config{
		Size:        *size,
		TMin:        *tmin,
		TMax:        *tmax,
		TStep:       *tstep,
		Field:       *field,
		Seed:        *seed,
		Hot:         *hot,
		Sampling:    def.Sampling,
		Concurrency: *jobs,
	}
	cfg.Sampling.Thermalization = *therm
	cfg.Sampling.Separation = *sep
	cfg.Sampling.Samples = *n

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "ising:", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, cfg, *dbPath, *plotDir, logger)
	stop()
	if err != nil {
		slog.Error("scan failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg scan.Config, dbPath, plotDir string, logger *slog.Logger) error {
	sweeps, proposals := budget(cfg)
	logger.Info("scan started",
		"L", cfg.Size,
		"temperatures", len(cfg.Temperatures()),
		"sweeps", humanize.Comma(sweeps),
		"proposals", humanize.Comma(proposals))

	began := time.Now()
	rows, err := scan.Run(ctx, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("scan finished", "elapsed", time.Since(began).Round(time.Millisecond))

	if err := writeTable(os.Stdout, rows); err != nil {
		return err
	}

	if dbPath != "" {
		db, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer db.Close()
		id, err := db.SaveRun(ctx, cfg, rows)
		if err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		logger.Info("results stored", "path", dbPath, "run", id)
	}

	if plotDir != "" {
		if err := writePlots(plotDir, cfg, rows); err != nil {
			return err
		}
		logger.Info("charts written", "dir", plotDir)
	}

	return nil
}

// budget returns the total sweeps and single-spin proposals of a scan,
// computed in int64 throughout.
func budget(cfg scan.Config) (sweeps, proposals int64) {
	sweeps = int64(len(cfg.Temperatures())) * int64(cfg.Sampling.TotalSweeps())
	return sweeps, sweeps * int64(cfg.Size) * int64(cfg.Size)
}

// writePlots renders one PNG per observable; energy is shown per spin.
func writePlots(dir string, cfg scan.Config, rows []scan.Row) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, obs := range plot.Observables {
		opts := plot.Options{Title: fmt.Sprintf("%s, L = %d", obs, cfg.Size)}
		if obs == plot.Energy {
			opts.Scale = float64(cfg.Size * cfg.Size)
		}
		f, err := os.Create(filepath.Join(dir, obs.String()+".png"))
		if err != nil {
			return err
		}
		err = plot.Render(f, rows, obs, opts)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Command fss runs a finite-size-scaling analysis over scans stored by
// ising -db, one scan per lattice size. It prints the per-size peaks and
// the fitted exponents and critical temperatures, and optionally writes
// the comparison, collapse and thermodynamics charts.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rabbott99/statmech-ising/analysis"
	"github.com/rabbott99/statmech-ising/store"
)

var errNoDB = errors.New("fss: -db is required")

func main() {
	var (
		dbPath  = flag.String("db", "", "SQLite file written by ising -db")
		runIDs  = flag.String("runs", "", "comma-separated run ids (default: latest run per size)")
		plotDir = flag.String("plot", "", "directory to write PNG charts to")
		window  = flag.Float64("window", 25, "half-width of the x axis of collapse charts")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, errNoDB)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, *dbPath, splitIDs(*runIDs), *plotDir, *window, logger)
	stop()
	if err != nil {
		slog.Error("analysis failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dbPath string, ids []string, plotDir string, window float64, logger *slog.Logger) error {
	db, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	series, err := load(ctx, db, ids)
	if err != nil {
		return err
	}
	logger.Debug("series loaded", "sizes", len(series))

	rep, err := analysis.Analyze(series)
	if err != nil {
		return err
	}
	if err := writeReport(os.Stdout, rep); err != nil {
		return err
	}

	if plotDir != "" {
		if err := writePlots(plotDir, series, rep, window); err != nil {
			return err
		}
		logger.Info("charts written", "dir", plotDir)
	}
	return nil
}

// load reads the chosen runs, or the latest run of every size.
func load(ctx context.Context, db *store.DB, ids []string) ([]analysis.Series, error) {
	var runs []store.Run
	if len(ids) == 0 {
		var err error
		if runs, err = db.LatestPerSize(ctx); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		r, err := db.GetRun(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", id, err)
		}
		runs = append(runs, r)
	}

	series := make([]analysis.Series, 0, len(runs))
	for _, r := range runs {
		rows, err := db.LoadRows(ctx, r.ID)
		if err != nil {
			return nil, fmt.Errorf("run %s: %w", r.ID, err)
		}
		series = append(series, analysis.Series{Size: r.Size, Rows: rows})
	}
	return series, nil
}

func splitIDs(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// Package store persists reduced scan results in SQLite.
//
// Only scan output (one row per temperature with its jackknife errors) and
// the parameters that produced it are stored; lattice configurations are
// never written.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/rabbott99/statmech-ising/jackknife"
	"github.com/rabbott99/statmech-ising/scan"
)

// ErrRunNotFound indicates an unknown run id.
var ErrRunNotFound = errors.New("store: run not found")

// DB wraps a SQLite connection for scan results.
type DB struct {
	conn *sqlx.DB
}

// Run is the stored description of one scan.
type Run struct {
	ID             string  `db:"id"`
	Size           int     `db:"size"`
	Field          float64 `db:"field"`
	Seed           int64   `db:"seed"`
	Hot            bool    `db:"hot"`
	Thermalization int     `db:"thermalization"`
	Separation     int     `db:"separation"`
	Samples        int     `db:"samples"`
	CreatedAt      string  `db:"created_at"`
}

// row mirrors the scan_rows table.
type row struct {
	Temperature       float64 `db:"temperature"`
	Energy            float64 `db:"energy"`
	EnergyErr         float64 `db:"energy_err"`
	HeatCapacity      float64 `db:"heat_capacity"`
	HeatCapacityErr   float64 `db:"heat_capacity_err"`
	Magnetization     float64 `db:"magnetization"`
	MagnetizationErr  float64 `db:"magnetization_err"`
	Susceptibility    float64 `db:"susceptibility"`
	SusceptibilityErr float64 `db:"susceptibility_err"`
	Acceptance        float64 `db:"acceptance"`
}

// Open opens or creates a SQLite database at path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		field REAL NOT NULL,
		seed INTEGER NOT NULL,
		hot INTEGER NOT NULL,
		thermalization INTEGER NOT NULL,
		separation INTEGER NOT NULL,
		samples INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scan_rows (
		run_id TEXT NOT NULL REFERENCES runs(id),
		temperature REAL NOT NULL,
		energy REAL NOT NULL,
		energy_err REAL NOT NULL,
		heat_capacity REAL NOT NULL,
		heat_capacity_err REAL NOT NULL,
		magnetization REAL NOT NULL,
		magnetization_err REAL NOT NULL,
		susceptibility REAL NOT NULL,
		susceptibility_err REAL NOT NULL,
		acceptance REAL NOT NULL,
		PRIMARY KEY (run_id, temperature)
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveRun writes cfg and its rows under a fresh run id and returns the id.
func (db *DB) SaveRun(ctx context.Context, cfg scan.Config, rows []scan.Row) (string, error) {
	id := uuid.NewString()

	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, size, field, seed, hot, thermalization, separation, samples, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, cfg.Size, cfg.Field, cfg.Seed, cfg.Hot,
		cfg.Sampling.Thermalization, cfg.Sampling.Separation, cfg.Sampling.Samples,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO scan_rows
		(run_id, temperature, energy, energy_err, heat_capacity, heat_capacity_err,
		 magnetization, magnetization_err, susceptibility, susceptibility_err, acceptance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, r := range rows {
		v, e := r.Estimate.Value, r.Estimate.Error
		_, err := stmt.ExecContext(ctx,
			id, r.Temperature,
			v.Energy, e.Energy,
			v.HeatCapacity, e.HeatCapacity,
			v.Magnetization, e.Magnetization,
			v.Susceptibility, e.Susceptibility,
			r.Acceptance,
		)
		if err != nil {
			return "", fmt.Errorf("insert row T=%g: %w", r.Temperature, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// GetRun returns the stored description of run id.
func (db *DB) GetRun(ctx context.Context, id string) (Run, error) {
	var r Run
	err := db.conn.GetContext(ctx, &r, "SELECT * FROM runs WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return r, ErrRunNotFound
	}
	return r, err
}

// ListRuns returns every stored run, oldest first. Runs saved within the
// same second keep their insertion order.
func (db *DB) ListRuns(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := db.conn.SelectContext(ctx, &runs, "SELECT * FROM runs ORDER BY created_at, rowid")
	return runs, err
}

// LatestPerSize returns the most recently saved run of every lattice size,
// in increasing size order.
func (db *DB) LatestPerSize(ctx context.Context) ([]Run, error) {
	var runs []Run
	err := db.conn.SelectContext(ctx, &runs, `
		SELECT r.* FROM runs r
		WHERE r.rowid = (
			SELECT x.rowid FROM runs x WHERE x.size = r.size
			ORDER BY x.created_at DESC, x.rowid DESC LIMIT 1
		)
		ORDER BY r.size`)
	return runs, err
}

// LoadRows returns the rows of run id in increasing temperature order.
func (db *DB) LoadRows(ctx context.Context, id string) ([]scan.Row, error) {
	if _, err := db.GetRun(ctx, id); err != nil {
		return nil, err
	}

	var stored []row
	err := db.conn.SelectContext(ctx, &stored,
		`SELECT temperature, energy, energy_err, heat_capacity, heat_capacity_err,
		        magnetization, magnetization_err, susceptibility, susceptibility_err, acceptance
		 FROM scan_rows WHERE run_id = ? ORDER BY temperature`, id)
	if err != nil {
		return nil, err
	}

	out := make([]scan.Row, len(stored))
	for i, s := range stored {
		out[i] = scan.Row{
			Temperature: s.Temperature,
			Estimate: jackknife.Estimate{
				Value: jackknife.PhysicalResult{
					Energy:         s.Energy,
					HeatCapacity:   s.HeatCapacity,
					Magnetization:  s.Magnetization,
					Susceptibility: s.Susceptibility,
				},
				Error: jackknife.PhysicalResult{
					Energy:         s.EnergyErr,
					HeatCapacity:   s.HeatCapacityErr,
					Magnetization:  s.MagnetizationErr,
					Susceptibility: s.SusceptibilityErr,
				},
			},
			Acceptance: s.Acceptance,
		}
	}
	return out, nil
}

package telemetry

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"github.com/pthm-cable/aisim/config"
)

// Archive records runs and their stats windows in a SQLite database for
// offline analysis. Nothing is ever loaded back into a simulation.
type Archive struct {
	db    *sql.DB
	runID string
}

// OpenArchive opens (or creates) the database at path and registers a new
// run. Returns nil if path is empty (archiving disabled).
func OpenArchive(ctx context.Context, path string, seed int64, cfg *config.Config) (*Archive, error) {
	if path == "" {
		return nil, nil
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	db.SetMaxOpenConns(1)

	a := &Archive{db: db, runID: uuid.NewString()}
	if err := a.init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	cfgYAML, err := yaml.Marshal(cfg)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO runs(id, seed, started_at, config_yaml) VALUES(?, ?, ?, ?)`,
		a.runID, seed, time.Now().UTC().Format(time.RFC3339), string(cfgYAML))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registering run: %w", err)
	}
	return a, nil
}

func (a *Archive) init(ctx context.Context) error {
	stmts := []string{
		`PRAGMA journal_mode=WAL;`,
		`PRAGMA synchronous=NORMAL;`,
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			started_at TEXT NOT NULL,
			config_yaml TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS windows (
			run_id TEXT NOT NULL,
			window_end INTEGER NOT NULL,
			sim_time REAL NOT NULL,
			units INTEGER NOT NULL,
			countries INTEGER NOT NULL,
			births INTEGER NOT NULL,
			combat_deaths INTEGER NOT NULL,
			starved INTEGER NOT NULL,
			old_age INTEGER NOT NULL,
			gathered REAL NOT NULL,
			energy_mean REAL NOT NULL,
			fitness_mean REAL NOT NULL,
			PRIMARY KEY(run_id, window_end)
		);`,
		`CREATE TABLE IF NOT EXISTS bookmarks (
			run_id TEXT NOT NULL,
			tick INTEGER NOT NULL,
			type TEXT NOT NULL,
			description TEXT NOT NULL
		);`,
	}
	for _, s := range stmts {
		if _, err := a.db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("initializing archive: %w", err)
		}
	}
	return nil
}

// RunID returns the identifier of the run being recorded.
func (a *Archive) RunID() string {
	if a == nil {
		return ""
	}
	return a.runID
}

// RecordWindow stores one stats window.
func (a *Archive) RecordWindow(ctx context.Context, s WindowStats) error {
	if a == nil {
		return nil
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO windows(run_id, window_end, sim_time, units, countries, births,
			combat_deaths, starved, old_age, gathered, energy_mean, fitness_mean)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.runID, s.WindowEndTick, s.SimTime, s.Units, s.Countries, s.Births,
		s.CombatDeaths, s.Starved, s.OldAge, s.Gathered, s.EnergyMean, s.FitnessMean)
	if err != nil {
		return fmt.Errorf("recording window: %w", err)
	}
	return nil
}

// RecordBookmark stores one bookmark.
func (a *Archive) RecordBookmark(ctx context.Context, b Bookmark) error {
	if a == nil {
		return nil
	}
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO bookmarks(run_id, tick, type, description) VALUES(?, ?, ?, ?)`,
		a.runID, b.Tick, string(b.Type), b.Description)
	if err != nil {
		return fmt.Errorf("recording bookmark: %w", err)
	}
	return nil
}

// WindowCount returns how many windows the current run has recorded.
func (a *Archive) WindowCount(ctx context.Context) (int, error) {
	if a == nil {
		return 0, nil
	}
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM windows WHERE run_id = ?`, a.runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting windows: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (a *Archive) Close() error {
	if a == nil {
		return nil
	}
	return a.db.Close()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists a record of every structure preparation run in
// a local SQLite database and exports it for review.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdb2pqr/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20

	// timeFormat is fixed width so stored timestamps sort lexically.
	timeFormat = "2006-01-02T15:04:05.000000000Z"
)

// ErrNotFound is returned by Get when no run has the requested ID.
var ErrNotFound = errors.New("run not found")

// Store manages the run history database.
type Store struct {
	db         *sql.DB
	dir        string
	maxResults int
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, dir: cfg.Dir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			input TEXT NOT NULL,
			output TEXT,
			ff TEXT,
			options TEXT,
			atoms INTEGER,
			residues INTEGER,
			water_dropped INTEGER,
			warnings TEXT,
			status TEXT NOT NULL,
			error TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_input ON runs(input)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts run, replacing any earlier row with the same ID.
func (s *Store) Record(ctx context.Context, run types.Run) error {
	if run.ID == "" {
		return fmt.Errorf("recording run: missing ID")
	}
	optionsJSON, err := json.Marshal(run.Options)
	if err != nil {
		return fmt.Errorf("encoding options: %w", err)
	}
	warningsJSON, err := json.Marshal(run.Warnings)
	if err != nil {
		return fmt.Errorf("encoding warnings: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO runs
			(id, input, output, ff, options, atoms, residues, water_dropped,
			 warnings, status, error, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Input, run.Output, string(run.FF), string(optionsJSON),
		run.Atoms, run.Residues, run.WaterDropped, string(warningsJSON),
		string(run.Status), run.Error,
		run.StartedAt.UTC().Format(timeFormat), run.FinishedAt.UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", run.ID, err)
	}
	return nil
}

// QueryOptions filters List results.
type QueryOptions struct {
	// Input matches runs whose input contains this substring.
	Input string

	// Status restricts results to one outcome.
	Status types.RunStatus

	// MaxResults limits the result count. Zero uses the store default.
	MaxResults int
}

const selectRuns = `SELECT id, input, output, ff, options, atoms, residues, water_dropped,
	warnings, status, error, started_at, finished_at FROM runs`

// List returns runs matching opts, newest first.
func (s *Store) List(ctx context.Context, opts QueryOptions) ([]types.Run, error) {
	limit := opts.MaxResults
	if limit <= 0 {
		limit = s.maxResults
	}

	var (
		qb    strings.Builder
		where []string
		args  []any
	)
	qb.WriteString(selectRuns)
	if opts.Input != "" {
		where = append(where, "input LIKE ?")
		args = append(args, "%"+opts.Input+"%")
	}
	if opts.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(opts.Status))
	}
	if len(where) > 0 {
		qb.WriteString(" WHERE ")
		qb.WriteString(strings.Join(where, " AND "))
	}
	qb.WriteString(" ORDER BY started_at DESC, id LIMIT ?")
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []types.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}

// Get returns the run with the given ID.
func (s *Store) Get(ctx context.Context, id string) (types.Run, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return types.Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (types.Run, error) {
	var (
		run                   types.Run
		output, ff, errMsg    sql.NullString
		optionsJSON, warnJSON sql.NullString
		status, started       string
		finished              sql.NullString
	)
	if err := sc.Scan(&run.ID, &run.Input, &output, &ff, &optionsJSON,
		&run.Atoms, &run.Residues, &run.WaterDropped, &warnJSON,
		&status, &errMsg, &started, &finished); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return run, err
		}
		return run, fmt.Errorf("scanning run: %w", err)
	}

	run.Output = output.String
	run.FF = types.Forcefield(ff.String)
	run.Status = types.RunStatus(status)
	run.Error = errMsg.String

	if optionsJSON.Valid && optionsJSON.String != "" {
		if err := json.Unmarshal([]byte(optionsJSON.String), &run.Options); err != nil {
			return run, fmt.Errorf("decoding options for %s: %w", run.ID, err)
		}
	}
	if warnJSON.Valid && warnJSON.String != "" {
		if err := json.Unmarshal([]byte(warnJSON.String), &run.Warnings); err != nil {
			return run, fmt.Errorf("decoding warnings for %s: %w", run.ID, err)
		}
	}

	var err error
	if run.StartedAt, err = time.Parse(timeFormat, started); err != nil {
		return run, fmt.Errorf("parsing start time for %s: %w", run.ID, err)
	}
	if finished.Valid && finished.String != "" {
		if run.FinishedAt, err = time.Parse(timeFormat, finished.String); err != nil {
			return run, fmt.Errorf("parsing finish time for %s: %w", run.ID, err)
		}
	}
	return run, nil
}

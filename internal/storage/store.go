// Package storage persists solved trajectories. Run metadata lives in a
// SQLite catalogue; each trajectory is a CSV file next to it.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/san-kum/fwdeuler/internal/integrators"

	_ "modernc.org/sqlite" // SQLite driver
)

var ErrRunNotFound = errors.New("storage: run not found")

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	model      TEXT NOT NULL,
	created_at INTEGER NOT NULL,
	t0         REAL NOT NULL,
	t_end      REAL NOT NULL,
	steps      INTEGER NOT NULL,
	dt         REAL NOT NULL,
	dim        INTEGER NOT NULL,
	params     TEXT NOT NULL DEFAULT '{}',
	metrics    TEXT NOT NULL DEFAULT '{}',
	trajectory TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_model ON runs(model);
`

type Store struct {
	baseDir string
	db      *sql.DB
	logger  *slog.Logger

	mu   sync.Mutex
	last int64
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Model     string             `json:"model"`
	Timestamp time.Time          `json:"timestamp"`
	T0        float64            `json:"t0"`
	TEnd      float64            `json:"t_end"`
	Steps     int                `json:"steps"`
	Dt        float64            `json:"dt"`
	Dim       int                `json:"dim"`
	Params    map[string]float64 `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Open creates baseDir if needed and opens the run catalogue in it.
func Open(baseDir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(baseDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(context.Background(), schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{baseDir: baseDir, db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the trajectory and records it in the catalogue. meta.ID and
// meta.Timestamp are filled in when empty; the stored ID is returned.
func (s *Store) Save(ctx context.Context, meta RunMetadata, sol *integrators.Solution) (string, error) {
	if meta.Timestamp.IsZero() {
		meta.Timestamp = s.now()
	}
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("%s_%d", meta.Model, meta.Timestamp.UnixNano())
	}
	meta.Steps = sol.Steps()
	meta.Dt = sol.Dt
	meta.Dim = sol.Dim

	params, err := json.Marshal(toFloatMap(meta.Params))
	if err != nil {
		return "", err
	}
	metrics, err := json.Marshal(toFloatMap(meta.Metrics))
	if err != nil {
		return "", err
	}

	rel := meta.ID + ".csv"
	path := filepath.Join(s.baseDir, rel)
	if err := writeTrajectoryFile(path, sol); err != nil {
		return "", fmt.Errorf("failed to write trajectory: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, model, created_at, t0, t_end, steps, dt, dim, params, metrics, trajectory)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		meta.ID, meta.Model, meta.Timestamp.UnixNano(), meta.T0, meta.TEnd,
		meta.Steps, meta.Dt, meta.Dim, string(params), string(metrics), rel,
	)
	if err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to record run %s: %w", meta.ID, err)
	}

	s.logger.Debug("run saved", "id", meta.ID, "points", sol.Len(), "path", path)
	return meta.ID, nil
}

func (s *Store) List(ctx context.Context) ([]RunMetadata, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, model, created_at, t0, t_end, steps, dt, dim, params, metrics
		FROM runs ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]RunMetadata, 0)
	for rows.Next() {
		meta, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *meta)
	}
	return runs, rows.Err()
}

func (s *Store) Load(ctx context.Context, runID string) (*RunMetadata, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, model, created_at, t0, t_end, steps, dt, dim, params, metrics
		FROM runs WHERE id = ?`, runID)
	meta, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return meta, err
}

// LoadTrajectory reads back the solution saved under runID.
func (s *Store) LoadTrajectory(ctx context.Context, runID string) (*integrators.Solution, error) {
	var rel string
	var dt float64
	err := s.db.QueryRowContext(ctx, `SELECT trajectory, dt FROM runs WHERE id = ?`, runID).Scan(&rel, &dt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up run %s: %w", runID, err)
	}

	f, err := os.Open(filepath.Join(s.baseDir, rel))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sol, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	sol.Dt = dt
	return sol, nil
}

func (s *Store) Delete(ctx context.Context, runID string) error {
	var rel string
	err := s.db.QueryRowContext(ctx, `SELECT trajectory FROM runs WHERE id = ?`, runID).Scan(&rel)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, runID); err != nil {
		return fmt.Errorf("failed to delete run %s: %w", runID, err)
	}
	if err := os.Remove(filepath.Join(s.baseDir, rel)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// now returns a strictly increasing timestamp so generated run IDs are unique
// within one store.
func (s *Store) now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns := time.Now().UnixNano()
	if ns <= s.last {
		ns = s.last + 1
	}
	s.last = ns
	return time.Unix(0, ns).UTC()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*RunMetadata, error) {
	var meta RunMetadata
	var created int64
	var params, metrics string
	if err := sc.Scan(&meta.ID, &meta.Model, &created, &meta.T0, &meta.TEnd,
		&meta.Steps, &meta.Dt, &meta.Dim, &params, &metrics); err != nil {
		return nil, err
	}
	meta.Timestamp = time.Unix(0, created).UTC()
	var ps, ms map[string]Float
	if err := json.Unmarshal([]byte(params), &ps); err != nil {
		return nil, fmt.Errorf("run %s: bad params: %w", meta.ID, err)
	}
	if err := json.Unmarshal([]byte(metrics), &ms); err != nil {
		return nil, fmt.Errorf("run %s: bad metrics: %w", meta.ID, err)
	}
	meta.Params = fromFloatMap(ps)
	meta.Metrics = fromFloatMap(ms)
	return &meta, nil
}

func writeTrajectoryFile(path string, sol *integrators.Solution) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, sol); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

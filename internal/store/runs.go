package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/roach88/deploykit/internal/validate"
)

// timeFormat sorts lexically in time order for UTC timestamps.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned when a run ID is not in the ledger.
var ErrRunNotFound = errors.New("run not found")

// Run summarises one validation run.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	Dir        string    `json:"dir"`
	SchemasDir string    `json:"schemas_dir,omitempty"`
	Files      int       `json:"files"`
	Warnings   int       `json:"warnings"`
	High       int       `json:"high"`
	Medium     int       `json:"medium"`
	Low        int       `json:"low"`
}

// RunInput is what a validation run reports to the ledger.
type RunInput struct {
	Dir        string
	SchemasDir string
	Files      int
	Warnings   validate.WarningList
}

// RecordRun stores a run and its warnings in one transaction.
// Warnings keep their list order.
func (s *Store) RecordRun(ctx context.Context, in RunInput) (Run, error) {
	run := Run{
		ID:         s.ids.Generate(),
		StartedAt:  s.clock.Now().UTC(),
		Dir:        in.Dir,
		SchemasDir: in.SchemasDir,
		Files:      in.Files,
		Warnings:   len(in.Warnings),
		High:       in.Warnings.Count(validate.SeverityHigh),
		Medium:     in.Warnings.Count(validate.SeverityMedium),
		Low:        in.Warnings.Count(validate.SeverityLow),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, started_at, dir, schemas_dir, files, warnings, high, medium, low)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.StartedAt.Format(timeFormat),
		run.Dir,
		run.SchemasDir,
		run.Files,
		run.Warnings,
		run.High,
		run.Medium,
		run.Low,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	for i, w := range in.Warnings {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO warnings
			(run_id, seq, code, kind, severity, file, element, section, key, expected, value, resource)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			run.ID, i, w.Code, w.Kind, int(w.Severity), w.File,
			w.Element, w.Section, w.Key, w.Expected, w.Value, w.Resource,
		)
		if err != nil {
			return Run{}, fmt.Errorf("record run warning %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}
	return run, nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, dir, schemas_dir, files, warnings, high, medium, low
		FROM runs
		ORDER BY started_at DESC, id COLLATE BINARY DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun returns a single run.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, dir, schemas_dir, files, warnings, high, medium, low
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return run, err
}

// RunWarnings returns the warnings recorded for a run in recorded order.
func (s *Store) RunWarnings(ctx context.Context, runID string) (validate.WarningList, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, kind, severity, file, element, section, key, expected, value, resource
		FROM warnings
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query warnings: %w", err)
	}
	defer rows.Close()

	warnings := validate.WarningList{}
	for rows.Next() {
		var w validate.Warning
		var severity int
		if err := rows.Scan(&w.Code, &w.Kind, &severity, &w.File, &w.Element,
			&w.Section, &w.Key, &w.Expected, &w.Value, &w.Resource); err != nil {
			return nil, fmt.Errorf("scan warning: %w", err)
		}
		w.Severity = validate.Severity(severity)
		warnings = append(warnings, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warnings: %w", err)
	}
	return warnings, nil
}

// CodeCounts returns how many warnings of each code were recorded for a run.
func (s *Store) CodeCounts(ctx context.Context, runID string) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, COUNT(*)
		FROM warnings
		WHERE run_id = ?
		GROUP BY code
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query warning codes: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var code string
		var n int
		if err := rows.Scan(&code, &n); err != nil {
			return nil, fmt.Errorf("scan warning code: %w", err)
		}
		counts[code] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate warning codes: %w", err)
	}
	return counts, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var started string
	err := row.Scan(&run.ID, &started, &run.Dir, &run.SchemasDir, &run.Files,
		&run.Warnings, &run.High, &run.Medium, &run.Low)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt, err = time.Parse(timeFormat, started)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", started, err)
	}
	return run, nil
}
